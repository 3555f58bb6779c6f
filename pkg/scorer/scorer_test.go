package scorer

import (
	"math"
	"testing"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T, words ...string) *Scorer {
	t.Helper()
	d, err := pattern.NewDetector(nil)
	require.NoError(t, err)
	return New(dictionary.NewStoreFromWords(words...), d)
}

func TestEvaluate_EmptyIsReset(t *testing.T) {
	s := newTestScorer(t)
	r := s.Evaluate("")

	assert.True(t, r.Reset())
	assert.Equal(t, types.TierNone, r.Tier)
	assert.Equal(t, "Enter a password", r.Label)
	assert.Zero(t, r.Entropy.Entropy)
	assert.Zero(t, r.RequirementsMet)
}

func TestEvaluate_TooShortOverridesEverything(t *testing.T) {
	s := newTestScorer(t)

	for _, pw := range []string{"a", "aB3!", "Zz9$Zz9", "ÄÖÜ!1a"} {
		t.Run(pw, func(t *testing.T) {
			r := s.Evaluate(pw)
			assert.Equal(t, types.TierTooShort, r.Tier)
			assert.Equal(t, "Too Short", r.Label)
			assert.Equal(t, types.Instantly, r.CrackTime)
			assert.False(t, r.Requirements.Length)
			assert.Zero(t, r.Score)
		})
	}
}

func TestEvaluate_TooShortStillReportsEntropyAndRequirements(t *testing.T) {
	s := newTestScorer(t)
	r := s.Evaluate("aB3!")

	assert.InDelta(t, 4*math.Log2(94), r.Entropy.Entropy, 1e-9)
	assert.True(t, r.Requirements.Uppercase)
	assert.True(t, r.Requirements.Lowercase)
	assert.True(t, r.Requirements.Number)
	assert.True(t, r.Requirements.Special)
	assert.True(t, r.Requirements.Common)
	assert.Equal(t, 5, r.RequirementsMet)
}

func TestEvaluate_NonBMPLengthInCodePoints(t *testing.T) {
	s := newTestScorer(t)

	r := s.Evaluate("😀😀😀😁")
	assert.Equal(t, 4, r.Length)
	assert.Equal(t, types.TierTooShort, r.Tier)
	assert.False(t, r.Requirements.Length)
	assert.Equal(t, float64(pattern.RunPenalty), r.Penalty)

	r = s.Evaluate("😀x😀x😀x😀x")
	assert.Equal(t, 8, r.Length)
	assert.True(t, r.Requirements.Length)
	assert.NotEqual(t, types.TierTooShort, r.Tier)
}

func TestEvaluate_Password1Bang_NotInDictionary(t *testing.T) {
	s := newTestScorer(t, "letmein")
	r := s.Evaluate("Password1!")

	assert.Equal(t, types.Requirements{
		Length: true, Uppercase: true, Lowercase: true, Number: true, Special: true, Common: true,
	}, r.Requirements)
	assert.Equal(t, 6, r.RequirementsMet)
	assert.Equal(t, types.TierStrong, r.Tier)
	assert.Equal(t, "Strong", r.Label)
	// 20+15+15+15+20+15, no length bonus
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, 10, r.Length)

	// 10*log2(94) = 65.5 bits, no patterns -> Years
	assert.Zero(t, r.Penalty)
	assert.Equal(t, types.Years, r.CrackTime)
}

func TestEvaluate_Password1Bang_InDictionary(t *testing.T) {
	s := newTestScorer(t, "PASSWORD1!")
	r := s.Evaluate("Password1!")

	assert.False(t, r.Requirements.Common)
	assert.Equal(t, 5, r.RequirementsMet)
	assert.Equal(t, types.TierGood, r.Tier)
	assert.Equal(t, "Good", r.Label)
	// 20+15+15+15+20 - 20
	assert.Equal(t, 65, r.Score)
}

func TestEvaluate_CommonPasswordCannotBeStrong(t *testing.T) {
	pw := "Tr0ub4dor&3"
	strong := newTestScorer(t).Evaluate(pw)
	require.Equal(t, types.TierStrong, strong.Tier)

	common := newTestScorer(t, pw).Evaluate(pw)
	assert.Equal(t, strong.RequirementsMet-1, common.RequirementsMet)
	assert.NotEqual(t, types.TierStrong, common.Tier)
}

func TestEvaluate_TierByRequirementCount(t *testing.T) {
	s := newTestScorer(t, "password")

	tests := []struct {
		password string
		met      int
		tier     types.Tier
	}{
		{"password", 2, types.TierWeak},    // length, lowercase; common fails
		{"abcdefgh", 3, types.TierWeak},    // length, lower, common
		{"abcdefg1", 4, types.TierFair},    // + number
		{"Abcdefg1", 5, types.TierGood},    // + upper
		{"Abcdefg1!", 6, types.TierStrong}, // + special
		{"ABCDEFGH", 3, types.TierWeak},    // length, upper, common
		{"12345678!", 4, types.TierFair},   // length, number, special, common
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			r := s.Evaluate(tt.password)
			assert.Equal(t, tt.met, r.RequirementsMet)
			assert.Equal(t, tt.tier, r.Tier)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := newTestScorer(t, "letmein")
	for _, pw := range []string{"letmein1", "Password1!", "aaaaaaaa", "correct horse battery staple"} {
		assert.Equal(t, s.Evaluate(pw), s.Evaluate(pw))
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	s := newTestScorer(t)

	// Each step adds one satisfied requirement without removing any
	steps := []string{"abcdefgh", "abcdefg1", "Abcdefg1", "Abcdefg1!"}
	prev := 0
	prevRank := 0
	for _, pw := range steps {
		r := s.Evaluate(pw)
		assert.GreaterOrEqual(t, r.RequirementsMet, prev, pw)
		assert.GreaterOrEqual(t, r.Tier.Rank(), prevRank, pw)
		prev = r.RequirementsMet
		prevRank = r.Tier.Rank()
	}
}

func TestEvaluate_CrackTimeUsesPenalty(t *testing.T) {
	s := newTestScorer(t)

	// 8 a's: 8*log2(26) = 37.6 bits, penalty 50 -> effective 0 -> Seconds
	r := s.Evaluate("aaaaaaaa")
	assert.Equal(t, float64(50), r.Penalty)
	assert.Equal(t, types.Seconds, r.CrackTime)
	assert.Zero(t, r.EffectiveEntropy())
}

func TestEvaluate_NilDictionary(t *testing.T) {
	d, err := pattern.NewDetector(nil)
	require.NoError(t, err)
	s := New(nil, d)

	r := s.Evaluate("password")
	assert.True(t, r.Requirements.Common)
}

func TestEvaluate_DictionaryLoadedLater(t *testing.T) {
	d, err := pattern.NewDetector(nil)
	require.NoError(t, err)
	store := dictionary.NewStore()
	s := New(store, d)

	before := s.Evaluate("Password1!")
	assert.True(t, before.Requirements.Common)

	store.LoadString("password1!\n")
	after := s.Evaluate("Password1!")
	assert.False(t, after.Requirements.Common)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, types.TierWeak, TierFor(0))
	assert.Equal(t, types.TierWeak, TierFor(3))
	assert.Equal(t, types.TierFair, TierFor(4))
	assert.Equal(t, types.TierGood, TierFor(5))
	assert.Equal(t, types.TierStrong, TierFor(6))
	assert.Equal(t, types.TierFair, TierFor(7))
}

func TestCompositeScore(t *testing.T) {
	all := types.Requirements{Length: true, Uppercase: true, Lowercase: true, Number: true, Special: true, Common: true}

	assert.Equal(t, 100, CompositeScore(all, 8))
	assert.Equal(t, 110, CompositeScore(all, 12))
	assert.Equal(t, 120, CompositeScore(all, 16))

	common := all
	common.Common = false
	assert.Equal(t, 65, CompositeScore(common, 8))

	assert.Equal(t, -20, CompositeScore(types.Requirements{}, 3))
}
