package remediate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the external remediation call failed at the
// transport or auth level. The document model, audit report, and rendered
// text remain valid; only remediation and generation are skipped.
var ErrUnavailable = errors.New("remediation service unavailable")

// Request is the payload for one remediation call
type Request struct {
	SystemInstructions       string
	UserInstructionsTemplate string
	DocumentText             string
	MetadataJSON             string
}

// UserMessage assembles the full user-facing prompt from the template, the
// rendered document text, and the metadata
func (r Request) UserMessage() string {
	return fmt.Sprintf("%s\n\nDocument content:\n\n%s\n\nDocument metadata:\n%s",
		r.UserInstructionsTemplate, r.DocumentText, r.MetadataJSON)
}

// Backend performs the external remediation call. Implementations make a
// single synchronous request with no client-side retry; timeout policy
// belongs to the caller's context.
type Backend interface {
	Remediate(ctx context.Context, req Request) (string, error)
}

// NoopBackend echoes the document text back as a well-formed remediation
// response. Useful for dry runs and tests where no external service is
// reachable.
type NoopBackend struct{}

// NewNoopBackend creates a backend that performs no external call
func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

// Remediate returns the document text wrapped in the response contract
func (n *NoopBackend) Remediate(_ context.Context, req Request) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"compliant_content": req.DocumentText,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return string(payload), nil
}
