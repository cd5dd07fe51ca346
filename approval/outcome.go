// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome classifies the current state of an approval request. It is derived
// from the tally, never set directly by a voter, and recomputed after every
// accepted vote.
type Outcome string

const (
	OutcomeUnknown               Outcome = "UNKNOWN"
	OutcomeApproved              Outcome = "APPROVED"
	OutcomeApprovedNoMajority    Outcome = "APPROVED_NO_MAJORITY"
	OutcomeDisapproved           Outcome = "DISAPPROVED"
	OutcomeDisapprovedNoMajority Outcome = "DISAPPROVED_NO_MAJORITY"
	OutcomeTie                   Outcome = "TIE"
	OutcomeCancelled             Outcome = "CANCELLED"
)

var ErrUnknownOutcome = errors.New("unknown outcome label")

// outcomeSynonyms maps legacy and shorthand spellings onto canonical tags.
// Older databases stored several aliases for the same logical outcome; they
// are accepted on input only and never written back.
var outcomeSynonyms = map[string]Outcome{
	"UNKNOWN":                 OutcomeUnknown,
	"AUTO":                    OutcomeUnknown,
	"APPROVED":                OutcomeApproved,
	"APPROVE":                 OutcomeApproved,
	"YES":                     OutcomeApproved,
	"APPROVED_NO_MAJORITY":    OutcomeApprovedNoMajority,
	"APPROVE_NOMAJ":           OutcomeApprovedNoMajority,
	"APPROVED_NOMAJ":          OutcomeApprovedNoMajority,
	"DISAPPROVED":             OutcomeDisapproved,
	"DISAPPROVE":              OutcomeDisapproved,
	"NO":                      OutcomeDisapproved,
	"DISAPPROVED_NO_MAJORITY": OutcomeDisapprovedNoMajority,
	"DISAPPROVE_NOMAJ":        OutcomeDisapprovedNoMajority,
	"DISAPPROVED_NOMAJ":       OutcomeDisapprovedNoMajority,
	"TIE":                     OutcomeTie,
	"CANCELLED":               OutcomeCancelled,
}

// ParseOutcome resolves a stored or user-supplied outcome label to its
// canonical tag.
func ParseOutcome(s string) (Outcome, error) {
	o, ok := outcomeSynonyms[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return OutcomeUnknown, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
	return o, nil
}

func (o Outcome) String() string { return string(o) }

// Final reports whether the outcome is a binding classification that no
// further voting can change within the same tally.
func (o Outcome) Final() bool {
	return o == OutcomeApproved || o == OutcomeDisapproved || o == OutcomeCancelled
}
