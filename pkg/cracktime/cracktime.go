// Package cracktime maps effective entropy to an approximate time-to-crack bucket.
package cracktime

import (
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Scanner computes a pattern penalty for a password.
type Scanner interface {
	Scan(password string) float64
}

// threshold is an exclusive upper bound on effective entropy.
type threshold struct {
	below  float64
	bucket types.CrackTime
}

// thresholds are evaluated in ascending order; the first match wins.
var thresholds = []threshold{
	{20, types.Seconds},
	{30, types.Minutes},
	{40, types.Hours},
	{50, types.Days},
	{60, types.Months},
	{70, types.Years},
	{80, types.Decades},
}

// Estimator buckets entropy after subtracting the pattern penalty.
type Estimator struct {
	patterns Scanner
}

// New creates an Estimator using patterns to compute penalties.
func New(patterns Scanner) *Estimator {
	return &Estimator{patterns: patterns}
}

// Bucket returns Instantly for zero entropy, otherwise the bucket for
// max(entropy - penalty, 0).
func (e *Estimator) Bucket(entropy float64, password string) types.CrackTime {
	if entropy == 0 {
		return types.Instantly
	}
	return FromEffective(Effective(entropy, e.patterns.Scan(password)))
}

// Effective subtracts penalty from entropy, flooring at zero.
func Effective(entropy, penalty float64) float64 {
	eff := entropy - penalty
	if eff < 0 {
		return 0
	}
	return eff
}

// FromEffective maps an effective entropy to its bucket. Bounds are
// half-open: exactly 30 bits is Hours, not Minutes.
func FromEffective(effective float64) types.CrackTime {
	for _, t := range thresholds {
		if effective < t.below {
			return t.bucket
		}
	}
	return types.Centuries
}
