// pkg/types/report.go
package types

// Report is the outcome of evaluating one password.
type Report struct {
	Requirements    Requirements  `json:"requirements"`
	Entropy         EntropyResult `json:"entropy"`
	Penalty         float64       `json:"penalty"`
	CrackTime       CrackTime     `json:"crack_time"`
	Tier            Tier          `json:"tier"`
	Label           string        `json:"label"`
	Score           int           `json:"score"`
	RequirementsMet int           `json:"requirements_met"`
	Length          int           `json:"length"`
}

// NewResetReport returns the report for empty input.
func NewResetReport() Report {
	return Report{
		Tier:      TierNone,
		Label:     TierNone.Label(),
		CrackTime: Instantly,
	}
}

// Reset reports whether this is the empty-input state rather than a score.
func (r Report) Reset() bool {
	return r.Tier == TierNone
}

// EffectiveEntropy is the entropy after the pattern penalty, floored at zero.
func (r Report) EffectiveEntropy() float64 {
	eff := r.Entropy.Entropy - r.Penalty
	if eff < 0 {
		return 0
	}
	return eff
}
