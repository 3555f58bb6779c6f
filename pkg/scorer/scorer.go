// Package scorer combines dictionary membership, entropy, pattern penalties
// and crack-time estimation into a single strength report.
package scorer

import (
	"unicode/utf8"

	"github.com/praetorian-inc/pwmeter/pkg/cracktime"
	"github.com/praetorian-inc/pwmeter/pkg/entropy"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Membership tests whether a password is a known common password.
type Membership interface {
	Contains(password string) bool
}

// Composite score weights.
const (
	weightLength    = 20
	weightUppercase = 15
	weightLowercase = 15
	weightNumber    = 15
	weightSpecial   = 20
	weightCommon    = 15
	bonusLong       = 10 // length >= 12
	bonusVeryLong   = 10 // length >= 16
	penaltyCommon   = 20
)

// Scorer evaluates passwords. It holds no per-evaluation state and is safe
// for concurrent use when its Membership is.
type Scorer struct {
	dict      Membership
	patterns  *pattern.Detector
	crackTime *cracktime.Estimator
}

// New creates a Scorer. dict may be nil, in which case nothing is common.
func New(dict Membership, patterns *pattern.Detector) *Scorer {
	if dict == nil {
		dict = emptyMembership{}
	}
	return &Scorer{
		dict:      dict,
		patterns:  patterns,
		crackTime: cracktime.New(patterns),
	}
}

// Patterns returns the detector used for penalties.
func (s *Scorer) Patterns() *pattern.Detector {
	return s.patterns
}

// Evaluate scores password. Empty input yields the reset report, which
// callers must treat as "no password" rather than a zero score.
func (s *Scorer) Evaluate(password string) types.Report {
	if password == "" {
		return types.NewResetReport()
	}

	length := utf8.RuneCountInString(password)
	req := Requirements(password, s.dict)
	ent := entropy.Compute(password)
	penalty := s.patterns.Scan(password)

	report := types.Report{
		Requirements:    req,
		Entropy:         ent,
		Penalty:         penalty,
		RequirementsMet: req.Met(),
		Length:          length,
	}

	if length < types.MinLength {
		report.Tier = types.TierTooShort
		report.Label = types.TierTooShort.Label()
		report.CrackTime = types.Instantly
		return report
	}

	report.Score = CompositeScore(req, length)
	report.CrackTime = s.crackTime.Bucket(ent.Entropy, password)
	report.Tier = TierFor(report.RequirementsMet)
	report.Label = report.Tier.Label()
	return report
}

// Requirements computes the six checks for password.
func Requirements(password string, dict Membership) types.Requirements {
	lower, upper, digit, symbol := entropy.Classes(password)
	return types.Requirements{
		Length:    utf8.RuneCountInString(password) >= types.MinLength,
		Uppercase: upper,
		Lowercase: lower,
		Number:    digit,
		Special:   symbol,
		Common:    dict == nil || !dict.Contains(password),
	}
}

// TierFor picks the tier from the number of requirements met.
func TierFor(met int) types.Tier {
	switch {
	case met < 4:
		return types.TierWeak
	case met == 4:
		return types.TierFair
	case met == 5:
		return types.TierGood
	case met == 6:
		return types.TierStrong
	default:
		return types.TierFair
	}
}

// CompositeScore is the weighted numeric score. It is reported for display
// only; tier selection depends on the requirement count alone.
func CompositeScore(req types.Requirements, length int) int {
	score := 0
	if req.Length {
		score += weightLength
	}
	if req.Uppercase {
		score += weightUppercase
	}
	if req.Lowercase {
		score += weightLowercase
	}
	if req.Number {
		score += weightNumber
	}
	if req.Special {
		score += weightSpecial
	}
	if req.Common {
		score += weightCommon
	}
	if length >= 12 {
		score += bonusLong
	}
	if length >= 16 {
		score += bonusVeryLong
	}
	if !req.Common {
		score -= penaltyCommon
	}
	return score
}

type emptyMembership struct{}

func (emptyMembership) Contains(string) bool { return false }
