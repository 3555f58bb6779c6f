package present

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"golang.org/x/term"
)

// Renderer writes a report to an output surface.
type Renderer interface {
	Render(w io.Writer, r types.Report, explain *pattern.Result) error
}

// New returns the renderer for format ("human" or "json").
func New(format string, colorEnabled bool) (Renderer, error) {
	switch format {
	case "", "human":
		return NewHuman(colorEnabled), nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// ColorEnabled resolves a --color mode against the output and NO_COLOR.
func ColorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f, ok := out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// styles holds color formatters per element.
type styles struct {
	tiers   map[types.Tier]*color.Color
	heading *color.Color
	met     *color.Color
	unmet   *color.Color
	muted   *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		tiers: map[types.Tier]*color.Color{
			types.TierTooShort: color.New(color.Bold, color.FgRed),
			types.TierWeak:     color.New(color.Bold, color.FgRed),
			types.TierFair:     color.New(color.Bold, color.FgYellow),
			types.TierGood:     color.New(color.Bold, color.FgHiBlue),
			types.TierStrong:   color.New(color.Bold, color.FgGreen),
			types.TierNone:     color.New(color.Faint),
		},
		heading: color.New(color.Bold),
		met:     color.New(color.FgGreen),
		unmet:   color.New(color.FgRed),
		muted:   color.New(color.Faint),
	}

	if !enabled {
		for _, c := range s.tiers {
			c.DisableColor()
		}
		s.heading.DisableColor()
		s.met.DisableColor()
		s.unmet.DisableColor()
		s.muted.DisableColor()
	} else {
		for _, c := range s.tiers {
			c.EnableColor()
		}
		s.heading.EnableColor()
		s.met.EnableColor()
		s.unmet.EnableColor()
		s.muted.EnableColor()
	}
	return s
}

// Human renders a multi-line colored summary.
type Human struct {
	styles *styles
}

// NewHuman creates a human renderer.
func NewHuman(colorEnabled bool) *Human {
	return &Human{styles: newStyles(colorEnabled)}
}

const barWidth = 20

func (h *Human) Render(w io.Writer, r types.Report, explain *pattern.Result) error {
	s := h.styles
	tierColor := s.tiers[r.Tier]

	fill := BarPercent(r.Tier) * barWidth / 100
	bar := tierColor.Sprint(strings.Repeat("█", fill)) + s.muted.Sprint(strings.Repeat("░", barWidth-fill))

	fmt.Fprintf(w, "%s %s\n", bar, tierColor.Sprint(r.Label))
	if r.Reset() {
		fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Entropy:"), FormatEntropy(r))
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Entropy:"), FormatEntropy(r))
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Combinations:"), FormatNumber(r.Entropy.Combinations))
	fmt.Fprintf(w, "%s %s\n", s.heading.Sprint("Crack time:"), CrackTimeText(r))
	if r.Tier != types.TierTooShort {
		fmt.Fprintf(w, "%s %d\n", s.heading.Sprint("Score:"), r.Score)
	}
	fmt.Fprintf(w, "%s %d/%d\n", s.heading.Sprint("Requirements:"), r.RequirementsMet, r.Requirements.Total())

	r.Requirements.Each(func(name string, met bool) {
		if met {
			fmt.Fprintf(w, "  %s %s\n", s.met.Sprint("✓"), types.Describe(name))
		} else {
			fmt.Fprintf(w, "  %s %s\n", s.unmet.Sprint("✗"), types.Describe(name))
		}
	})

	if explain != nil && len(explain.Hits) > 0 {
		fmt.Fprintf(w, "%s -%.0f bits\n", s.heading.Sprint("Patterns:"), explain.Penalty)
		for _, hit := range explain.Hits {
			fmt.Fprintf(w, "  %s %s (+%.0f)\n", s.muted.Sprint("•"), describeHit(hit), hit.Penalty)
		}
	}
	return nil
}

func describeHit(h pattern.Hit) string {
	switch h.Rule {
	case pattern.RuleRun:
		return "repeated character"
	case pattern.RuleBlock:
		return fmt.Sprintf("repeated block %q", h.Match)
	case pattern.RuleKeyboard:
		return fmt.Sprintf("keyboard pattern %q", h.Match)
	case pattern.RuleAscending:
		return fmt.Sprintf("%s ascending sequence(s)", h.Match)
	default:
		return h.Rule
	}
}

// JSON renders one JSON object per report.
type JSON struct{}

// jsonReport adds display strings to the raw report.
type jsonReport struct {
	types.Report
	EntropyText   string          `json:"entropy_text"`
	CrackTimeText string          `json:"crack_time_text"`
	Combinations  string          `json:"combinations_text"`
	Patterns      *pattern.Result `json:"patterns,omitempty"`
}

func (JSON) Render(w io.Writer, r types.Report, explain *pattern.Result) error {
	return json.NewEncoder(w).Encode(Envelope(r, explain))
}

// Envelope wraps a report with its display strings for machine consumers.
func Envelope(r types.Report, explain *pattern.Result) interface{} {
	return jsonReport{
		Report:        r,
		EntropyText:   FormatEntropy(r),
		CrackTimeText: CrackTimeText(r),
		Combinations:  FormatNumber(r.Entropy.Combinations),
		Patterns:      explain,
	}
}
