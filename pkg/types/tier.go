// pkg/types/tier.go
package types

import "fmt"

// Tier is the strength category assigned to a password.
type Tier int

const (
	// TierNone is the reset state for empty input.
	TierNone Tier = iota
	// TierTooShort overrides every other rule for inputs under MinLength.
	TierTooShort
	TierWeak
	TierFair
	TierGood
	TierStrong
)

// String returns the machine name used by presentation styles.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierTooShort:
		return "too-short"
	case TierWeak:
		return "weak"
	case TierFair:
		return "fair"
	case TierGood:
		return "good"
	case TierStrong:
		return "strong"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Label returns the human-readable display name.
func (t Tier) Label() string {
	switch t {
	case TierNone:
		return "Enter a password"
	case TierTooShort:
		return "Too Short"
	case TierWeak:
		return "Weak"
	case TierFair:
		return "Fair"
	case TierGood:
		return "Good"
	case TierStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Rank orders tiers for comparison. Too-short ranks with weak.
func (t Tier) Rank() int {
	switch t {
	case TierTooShort, TierWeak:
		return 1
	case TierFair:
		return 2
	case TierGood:
		return 3
	case TierStrong:
		return 4
	default:
		return 0
	}
}

// MarshalText encodes the tier as its machine name.
func (t Tier) MarshalText() ([]byte, error) {
	if t < TierNone || t > TierStrong {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier machine name.
func (t *Tier) UnmarshalText(text []byte) error {
	for c := TierNone; c <= TierStrong; c++ {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}
