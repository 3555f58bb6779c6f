// pkg/types/entropy.go
package types

import (
	"encoding/json"
	"math"
)

// EntropyResult is the information-theoretic estimate for a password.
type EntropyResult struct {
	// Entropy is length * log2(CharsetSize), in bits.
	Entropy float64 `json:"entropy"`
	// Combinations is CharsetSize^length. May be +Inf for very long inputs.
	Combinations float64 `json:"combinations"`
	// CharsetSize is the additive class-based alphabet estimate.
	CharsetSize int `json:"charset_size"`
}

// MarshalJSON encodes non-finite combination counts as null.
func (e EntropyResult) MarshalJSON() ([]byte, error) {
	var combos *float64
	if !math.IsInf(e.Combinations, 0) && !math.IsNaN(e.Combinations) {
		c := e.Combinations
		combos = &c
	}
	return json.Marshal(struct {
		Entropy      float64  `json:"entropy"`
		Combinations *float64 `json:"combinations"`
		CharsetSize  int      `json:"charset_size"`
	}{e.Entropy, combos, e.CharsetSize})
}

// UnmarshalJSON decodes a null combination count as +Inf.
func (e *EntropyResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Entropy      float64  `json:"entropy"`
		Combinations *float64 `json:"combinations"`
		CharsetSize  int      `json:"charset_size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Entropy = raw.Entropy
	e.CharsetSize = raw.CharsetSize
	if raw.Combinations == nil {
		e.Combinations = math.Inf(1)
	} else {
		e.Combinations = *raw.Combinations
	}
	return nil
}
