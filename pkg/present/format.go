// Package present renders strength reports for terminals and machines.
package present

import (
	"fmt"
	"math"

	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// FormatNumber formats a combination count with a K/M/B/T suffix, or in
// scientific notation from 10^15 up.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case n == 0:
		return "0"
	case n < 1e3:
		return fmt.Sprintf("%.0f", n)
	case n < 1e6:
		return fmt.Sprintf("%.1fK", n/1e3)
	case n < 1e9:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n < 1e12:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n < 1e15:
		return fmt.Sprintf("%.1fT", n/1e12)
	default:
		return fmt.Sprintf("%.2e", n)
	}
}

// FormatEntropy formats entropy bits to one decimal place.
func FormatEntropy(r types.Report) string {
	if r.Reset() {
		return "0 bits"
	}
	return fmt.Sprintf("%.1f bits", r.Entropy.Entropy)
}

// CrackTimeText is the display string for the crack-time indicator.
func CrackTimeText(r types.Report) string {
	switch r.Tier {
	case types.TierNone:
		return ""
	case types.TierTooShort:
		return "Instantly crackable"
	default:
		return r.CrackTime.String() + " to crack"
	}
}

// BarPercent is the fill of the strength bar for a tier.
func BarPercent(t types.Tier) int {
	switch t {
	case types.TierTooShort, types.TierWeak:
		return 25
	case types.TierFair:
		return 50
	case types.TierGood:
		return 75
	case types.TierStrong:
		return 100
	default:
		return 0
	}
}

// maskRevealMin is the shortest password whose first and last characters
// are shown by Mask.
const maskRevealMin = 6

// Mask hides all but the first and last character of a password. Passwords
// shorter than maskRevealMin are hidden entirely.
func Mask(password string) string {
	runes := []rune(password)
	if len(runes) < maskRevealMin {
		return repeat('*', len(runes))
	}
	return string(runes[0]) + repeat('*', len(runes)-2) + string(runes[len(runes)-1])
}

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
