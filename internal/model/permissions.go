package model

import (
	"fmt"
	"strings"
)

// Permissions represents document permissions based on the P entry in the
// PDF encryption dictionary
type Permissions struct {
	Print            bool `json:"print"`              // Bit 3 - Print the document
	Modify           bool `json:"modify"`             // Bit 4 - Modify the contents of the document
	Copy             bool `json:"copy"`               // Bit 5 - Copy or extract text and graphics
	Annotate         bool `json:"annotate"`           // Bit 6 - Add or modify text annotations
	FillForms        bool `json:"fill_forms"`         // Bit 9 - Fill in existing interactive form fields
	Extract          bool `json:"extract"`            // Bit 10 - Extract text and graphics for accessibility
	Assemble         bool `json:"assemble"`           // Bit 11 - Insert, rotate, or delete pages
	PrintHighQuality bool `json:"print_high_quality"` // Bit 12 - Print to a faithful digital representation
}

// PermissionsFromInt32 converts a PDF permissions integer to a Permissions
// struct. PDF permissions are stored as a signed 32-bit integer with specific
// bit flags.
func PermissionsFromInt32(perms int32) Permissions {
	return Permissions{
		Print:            (perms & 0x04) != 0,
		Modify:           (perms & 0x08) != 0,
		Copy:             (perms & 0x10) != 0,
		Annotate:         (perms & 0x20) != 0,
		FillForms:        (perms & 0x200) != 0,
		Extract:          (perms & 0x400) != 0,
		Assemble:         (perms & 0x800) != 0,
		PrintHighQuality: (perms & 0x1000) != 0,
	}
}

// FullPermissions returns a Permissions struct with every operation allowed.
// Unencrypted documents carry no permission restrictions.
func FullPermissions() Permissions {
	return Permissions{
		Print:            true,
		Modify:           true,
		Copy:             true,
		Annotate:         true,
		FillForms:        true,
		Extract:          true,
		Assemble:         true,
		PrintHighQuality: true,
	}
}

// IsRestricted returns true if any operation is denied
func (p Permissions) IsRestricted() bool {
	return !p.Print || !p.Modify || !p.Copy || !p.Annotate ||
		!p.FillForms || !p.Extract || !p.Assemble || !p.PrintHighQuality
}

// DeniedOperations returns a list of denied operations
func (p Permissions) DeniedOperations() []string {
	var denied []string

	if !p.Print {
		denied = append(denied, "print")
	}
	if !p.Modify {
		denied = append(denied, "modify")
	}
	if !p.Copy {
		denied = append(denied, "copy")
	}
	if !p.Annotate {
		denied = append(denied, "annotate")
	}
	if !p.FillForms {
		denied = append(denied, "fill_forms")
	}
	if !p.Extract {
		denied = append(denied, "extract")
	}
	if !p.Assemble {
		denied = append(denied, "assemble")
	}
	if !p.PrintHighQuality {
		denied = append(denied, "print_high_quality")
	}

	return denied
}

// String returns a human-readable representation of the permissions
func (p Permissions) String() string {
	denied := p.DeniedOperations()
	if len(denied) == 0 {
		return "All permissions granted"
	}
	return fmt.Sprintf("Denied: %s", strings.Join(denied, ", "))
}
