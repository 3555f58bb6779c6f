package meter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#e63948") // red
	colorWeak    = lipgloss.Color("9")       // red
	colorFair    = lipgloss.Color("#D4AF37") // gold
	colorGood    = lipgloss.Color("#11C3DB") // cyan
	colorStrong  = lipgloss.Color("10")      // green
	colorMuted   = lipgloss.Color("8")       // gray
	colorText    = lipgloss.Color("15")      // white
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorText).
	Background(colorPrimary).
	Padding(0, 1)

var inputBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

var (
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// Requirement indicator styles
var (
	metStyle     = lipgloss.NewStyle().Foreground(colorStrong)
	unmetStyle   = lipgloss.NewStyle().Foreground(colorWeak)
	neutralStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Status line
var (
	statusOKStyle    = lipgloss.NewStyle().Foreground(colorStrong)
	statusAlertStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorWeak).Padding(0, 1)
)

// Help styles
var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorGood)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// tierColor maps a tier to its bar and label color.
func tierColor(t types.Tier) lipgloss.Color {
	switch t {
	case types.TierTooShort, types.TierWeak:
		return colorWeak
	case types.TierFair:
		return colorFair
	case types.TierGood:
		return colorGood
	case types.TierStrong:
		return colorStrong
	default:
		return colorMuted
	}
}
