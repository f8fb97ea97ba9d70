package diwoo

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidRecord indicates a record that violates the DIWOO invariants.
// Given the transformers' fallback policy this should not occur for records
// they produce; it guards against construction defects.
var ErrInvalidRecord = errors.New("invalid DIWOO record")

// Validate checks the schema invariants: a resolvable publisher, an official
// title of 1..2000 characters, at least one information category, and at
// least one document handling with a timestamp.
func (m *Metadata) Validate() error {
	if m.Publisher.Resource == "" || m.Publisher.Label == "" {
		return fmt.Errorf("%w: publisher requires resource and label", ErrInvalidRecord)
	}
	if m.Titles.OfficialTitle == "" {
		return fmt.Errorf("%w: officieleTitel is required", ErrInvalidRecord)
	}
	if n := utf8.RuneCountInString(m.Titles.OfficialTitle); n > MaxOfficialTitleLength {
		return fmt.Errorf("%w: officieleTitel exceeds %d characters (%d)",
			ErrInvalidRecord, MaxOfficialTitleLength, n)
	}
	if len(m.Classification.Categories) == 0 {
		return fmt.Errorf("%w: at least one informatiecategorie is required", ErrInvalidRecord)
	}
	if len(m.Handlings) == 0 {
		return fmt.Errorf("%w: at least one documenthandeling is required", ErrInvalidRecord)
	}
	for i, h := range m.Handlings {
		if h.AtTime.IsZero() {
			return fmt.Errorf("%w: documenthandeling %d misses atTime", ErrInvalidRecord, i)
		}
	}
	return nil
}
