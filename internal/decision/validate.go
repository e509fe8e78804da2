package decision

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinOptions = 2
	MaxOptions = 4
	MinRating  = 1
	MaxRating  = 5
)

var ErrInvalidInput = errors.New("invalid decision input")

// ValidatePriorities checks ids are unique and non-empty and values are 1-5.
func ValidatePriorities(priorities []Priority) error {
	seen := make(map[string]struct{}, len(priorities))
	for i, p := range priorities {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: priority %d has no id", ErrInvalidInput, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate priority id %q", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Value < MinRating || p.Value > MaxRating {
			return fmt.Errorf("%w: priority %q value %d out of range", ErrInvalidInput, p.ID, p.Value)
		}
	}
	return nil
}

// ValidateOptions checks option ids are unique and every present score is 1-5.
// The option count bounds are only enforced when requireCount is set.
func ValidateOptions(options []Option, requireCount bool) error {
	if requireCount && (len(options) < MinOptions || len(options) > MaxOptions) {
		return fmt.Errorf("%w: need %d to %d options, got %d", ErrInvalidInput, MinOptions, MaxOptions, len(options))
	}
	seen := make(map[string]struct{}, len(options))
	for i, o := range options {
		if strings.TrimSpace(o.ID) == "" {
			return fmt.Errorf("%w: option %d has no id", ErrInvalidInput, i)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: duplicate option id %q", ErrInvalidInput, o.ID)
		}
		seen[o.ID] = struct{}{}
		for pid, s := range o.Scores {
			if s < MinRating || s > MaxRating {
				return fmt.Errorf("%w: option %q score for %q is %d", ErrInvalidInput, o.ID, pid, s)
			}
		}
	}
	return nil
}

// FindOption returns the option with the given id.
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
