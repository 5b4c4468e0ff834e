package model

import (
	"fmt"
	"maps"
	"slices"
)

// Consent categories produced by the synthetic user generator.
const (
	ConsentDataProcessing = "data_processing"
	ConsentProfiling      = "profiling"
	ConsentSharing        = "sharing"
)

// Consent maps a consent category to its current value.
type Consent map[string]bool

// Validate rejects empty maps and blank category names.
func (c Consent) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidConsent)
	}
	for category := range c {
		if category == "" {
			return fmt.Errorf("%w: empty category name", ErrInvalidConsent)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (c Consent) Clone() Consent {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Categories returns category names in sorted order.
func (c Consent) Categories() []string {
	return slices.Sorted(maps.Keys(c))
}
