package remediate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrResponseMalformed indicates the remediation response was not well-formed
// structured data
var ErrResponseMalformed = errors.New("remediation response malformed")

// ErrContentMissing indicates the response parsed but carried no
// compliant_content field, or the field was empty
var ErrContentMissing = errors.New("remediation response missing compliant content")

// RemediatedDocument carries the full remediated linear content, taken
// verbatim from a successfully parsed response and handed unmodified to
// document generation.
type RemediatedDocument struct {
	CompliantText string
}

// responsePayload is the expected shape of a remediation response. Any other
// fields are ignored.
type responsePayload struct {
	CompliantContent string `json:"compliant_content"`
}

// Applier parses remediation responses and validates them before handoff to
// document generation
type Applier struct{}

// NewApplier creates a new remediation response applier
func NewApplier() *Applier {
	return &Applier{}
}

// Apply parses a raw response into a RemediatedDocument. It fails with
// ErrResponseMalformed when the payload is not valid JSON and with
// ErrContentMissing when the compliant_content field is absent or empty. On
// success the field's value is trusted verbatim.
func (a *Applier) Apply(raw string) (*RemediatedDocument, error) {
	cleaned := stripCodeFences(raw)

	var payload responsePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseMalformed, err)
	}

	if payload.CompliantContent == "" {
		return nil, ErrContentMissing
	}

	return &RemediatedDocument{CompliantText: payload.CompliantContent}, nil
}

// stripCodeFences removes a surrounding Markdown code fence if present.
// Model backends frequently wrap JSON responses in ```json fences despite
// instructions not to.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
