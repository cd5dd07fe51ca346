// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
)

// Header is the request header the chat integration uses to pass the
// resolved caller identity.
const Header = "X-Identity"

var (
	ErrEmpty   = errors.New("identity is empty")
	ErrInvalid = errors.New("identity contains invalid characters")
	ErrTooLong = errors.New("identity exceeds maximum length")
)

// MaxLength bounds an identity string. Discord usernames plus the legacy
// "#NNNN" discriminator fit well within this.
const MaxLength = 100

// Identity is a single chat-platform user reference, e.g. "someguy#1234".
// The chat integration resolves its own context objects into an Identity
// exactly once at the API boundary; everything past the handlers only ever
// sees this type.
type Identity string

func (i Identity) String() string { return string(i) }

// Parse validates a raw identity string. Leading/trailing whitespace is
// trimmed; control characters and embedded newlines are rejected.
func Parse(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	if len(s) > MaxLength {
		return "", ErrTooLong
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", ErrInvalid
		}
	}
	return Identity(s), nil
}

// FromRequest extracts the caller identity from the X-Identity header.
func FromRequest(r *http.Request) (Identity, error) {
	return Parse(r.Header.Get(Header))
}
