// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Identity
		wantErr error
	}{
		{"legacy discriminator form", "someguy#1234", "someguy#1234", nil},
		{"plain username", "someguy123", "someguy123", nil},
		{"surrounding whitespace trimmed", "  alice#0001  ", "alice#0001", nil},
		{"empty", "", "", ErrEmpty},
		{"whitespace only", "   ", "", ErrEmpty},
		{"embedded newline", "alice\n#0001", "", ErrInvalid},
		{"control character", "alice\x00", "", ErrInvalid},
		{"too long", strings.Repeat("a", MaxLength+1), "", ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/approvals/1/approve", nil)
	req.Header.Set(Header, "bob#0002")

	got, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if got != "bob#0002" {
		t.Errorf("FromRequest = %q, want %q", got, "bob#0002")
	}

	// Missing header is an empty identity.
	req = httptest.NewRequest("POST", "/approvals/1/approve", nil)
	if _, err := FromRequest(req); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty for missing header, got %v", err)
	}
}
