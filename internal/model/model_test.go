package model

import (
	"testing"
)

func TestBlocksOnPage(t *testing.T) {
	m := &DocumentModel{
		Blocks: []ContentBlock{
			{Kind: KindHeading, PageIndex: 0, OrderInPage: 0, Text: "Intro"},
			{Kind: KindParagraph, PageIndex: 0, OrderInPage: 1, Text: "Body"},
			{Kind: KindParagraph, PageIndex: 1, OrderInPage: 0, Text: "Next page"},
		},
	}

	page0 := m.BlocksOnPage(0)
	if len(page0) != 2 {
		t.Fatalf("expected 2 blocks on page 0, got %d", len(page0))
	}
	if page0[0].Text != "Intro" || page0[1].Text != "Body" {
		t.Errorf("page 0 blocks out of order: %v", page0)
	}

	page1 := m.BlocksOnPage(1)
	if len(page1) != 1 {
		t.Fatalf("expected 1 block on page 1, got %d", len(page1))
	}

	if got := m.BlocksOnPage(5); got != nil {
		t.Errorf("expected no blocks on absent page, got %v", got)
	}
}

func TestPermissionsFromInt32(t *testing.T) {
	tests := []struct {
		name       string
		perms      int32
		restricted bool
		print      bool
		extract    bool
	}{
		{
			name:       "all bits set",
			perms:      0x04 | 0x08 | 0x10 | 0x20 | 0x200 | 0x400 | 0x800 | 0x1000,
			restricted: false,
			print:      true,
			extract:    true,
		},
		{
			name:       "no bits set",
			perms:      0,
			restricted: true,
			print:      false,
			extract:    false,
		},
		{
			name:       "print only",
			perms:      0x04,
			restricted: true,
			print:      true,
			extract:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PermissionsFromInt32(tt.perms)
			if p.IsRestricted() != tt.restricted {
				t.Errorf("expected IsRestricted=%v but got %v", tt.restricted, p.IsRestricted())
			}
			if p.Print != tt.print {
				t.Errorf("expected Print=%v but got %v", tt.print, p.Print)
			}
			if p.Extract != tt.extract {
				t.Errorf("expected Extract=%v but got %v", tt.extract, p.Extract)
			}
		})
	}
}

func TestFullPermissions(t *testing.T) {
	p := FullPermissions()
	if p.IsRestricted() {
		t.Error("full permissions should not be restricted")
	}
	if len(p.DeniedOperations()) != 0 {
		t.Errorf("expected no denied operations, got %v", p.DeniedOperations())
	}
	if p.String() != "All permissions granted" {
		t.Errorf("unexpected string: %s", p.String())
	}
}

func TestPermissionsString_Denied(t *testing.T) {
	p := FullPermissions()
	p.Modify = false
	p.Assemble = false

	s := p.String()
	if s != "Denied: modify, assemble" {
		t.Errorf("unexpected string: %s", s)
	}
}
