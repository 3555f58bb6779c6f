// Package pattern detects predictable structure in passwords and converts it
// into an entropy penalty measured in bits.
package pattern

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/dlclark/regexp2"
)

// Penalty weights in bits.
const (
	RunPenalty        = 20
	BlockPenalty      = 30
	KeyboardPenalty   = 15
	AscendingPenalty  = 10
	MaxPenalty        = 60
	runPatternTimeout = time.Second
)

// Rule identifiers reported in Hit.Rule.
const (
	RuleRun       = "run_repetition"
	RuleBlock     = "block_repetition"
	RuleKeyboard  = "keyboard_substring"
	RuleAscending = "ascending_run"
)

// DefaultKeyboardPatterns are the substrings treated as keyboard walks.
var DefaultKeyboardPatterns = []string{"qwerty", "asdf", "zxcv", "1234", "abcd"}

// runPattern matches any character repeated three or more times in a row.
// Go's RE2 engine has no backreferences, so this needs regexp2.
const runPattern = `(.)\1{2,}`

// Hit describes one contribution to the penalty.
type Hit struct {
	Rule    string  `json:"rule"`
	Match   string  `json:"match,omitempty"`
	Penalty float64 `json:"penalty"`
}

// Result is the breakdown of a scan.
type Result struct {
	// Raw is the uncapped sum of all rules.
	Raw float64 `json:"raw"`
	// Penalty is Raw clamped to [0, MaxPenalty].
	Penalty float64 `json:"penalty"`
	Hits    []Hit   `json:"hits,omitempty"`
}

// Detector runs every pattern rule against a password.
//
// Thread Safety: Detector is safe for concurrent use. The Aho-Corasick
// matcher keeps per-instance match state, so keyboard lookups are serialized.
type Detector struct {
	run *regexp2.Regexp

	mu       sync.Mutex
	keyboard *ahocorasick.Matcher
	keywords []string
}

// NewDetector creates a detector. A nil or empty patterns slice selects
// DefaultKeyboardPatterns.
func NewDetector(keyboardPatterns []string) (*Detector, error) {
	re, err := regexp2.Compile(runPattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling run pattern: %w", err)
	}
	// Set timeout to prevent catastrophic backtracking
	re.MatchTimeout = runPatternTimeout

	if len(keyboardPatterns) == 0 {
		keyboardPatterns = DefaultKeyboardPatterns
	}

	// Deduplicate and lowercase so each pattern contributes at most once
	seen := make(map[string]bool)
	var keywords []string
	for _, p := range keyboardPatterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		keywords = append(keywords, p)
	}

	d := &Detector{
		run:      re,
		keywords: keywords,
	}
	if len(keywords) > 0 {
		d.keyboard = ahocorasick.NewStringMatcher(keywords)
	}
	return d, nil
}

// MustNewDetector is like NewDetector but panics on error.
func MustNewDetector(keyboardPatterns []string) *Detector {
	d, err := NewDetector(keyboardPatterns)
	if err != nil {
		panic(err)
	}
	return d
}

// KeyboardPatterns returns the normalized keyboard substrings in use.
func (d *Detector) KeyboardPatterns() []string {
	out := make([]string, len(d.keywords))
	copy(out, d.keywords)
	return out
}

// Scan returns the capped penalty for password.
func (d *Detector) Scan(password string) float64 {
	return d.Analyze(password).Penalty
}

// Analyze evaluates all four rules. Every rule runs and contributes; there
// is no early exit once one fires.
func (d *Detector) Analyze(password string) Result {
	var res Result

	if hit, ok := d.runRepetition(password); ok {
		res.Hits = append(res.Hits, hit)
	}
	if hit, ok := blockRepetition(password); ok {
		res.Hits = append(res.Hits, hit)
	}
	res.Hits = append(res.Hits, d.keyboardSubstrings(password)...)
	if hit, ok := ascendingRuns(password); ok {
		res.Hits = append(res.Hits, hit)
	}

	for _, h := range res.Hits {
		res.Raw += h.Penalty
	}
	res.Penalty = clamp(res.Raw, 0, MaxPenalty)
	return res
}

func (d *Detector) runRepetition(password string) (Hit, bool) {
	m, err := d.run.FindStringMatch(password)
	if err != nil || m == nil {
		// A timeout is treated as no match
		return Hit{}, false
	}
	return Hit{Rule: RuleRun, Match: m.String(), Penalty: RunPenalty}, true
}

// blockRepetition checks whether password starts with its own first i
// characters tiled floor(n/i) times, for i from 2 to n/2. The first block
// length that matches wins. For i <= n/2 the tiling always covers at least
// half the password, so only the tiled prefix is compared, in place.
func blockRepetition(password string) (Hit, bool) {
	runes := []rune(password)
	n := len(runes)

	for i := 2; i <= n/2; i++ {
		tiledLen := i * (n / i)
		j := i
		for j < tiledLen && runes[j] == runes[j%i] {
			j++
		}
		if j == tiledLen {
			return Hit{Rule: RuleBlock, Match: string(runes[:i]), Penalty: BlockPenalty}, true
		}
	}
	return Hit{}, false
}

func (d *Detector) keyboardSubstrings(password string) []Hit {
	if d.keyboard == nil {
		return nil
	}

	lower := strings.ToLower(password)

	d.mu.Lock()
	idx := d.keyboard.Match([]byte(lower))
	d.mu.Unlock()

	// Report in configured order for stable output
	found := make(map[int]bool, len(idx))
	for _, i := range idx {
		found[i] = true
	}
	var hits []Hit
	for i, kw := range d.keywords {
		if found[i] {
			hits = append(hits, Hit{Rule: RuleKeyboard, Match: kw, Penalty: KeyboardPenalty})
		}
	}
	return hits
}

// ascendingRuns counts every window of three consecutive code points that
// each increase by exactly one. Overlapping windows count separately.
func ascendingRuns(password string) (Hit, bool) {
	runes := []rune(password)
	count := 0
	for i := 0; i+2 < len(runes); i++ {
		if runes[i+1] == runes[i]+1 && runes[i+2] == runes[i+1]+1 {
			count++
		}
	}
	if count == 0 {
		return Hit{}, false
	}
	return Hit{
		Rule:    RuleAscending,
		Match:   fmt.Sprintf("%d", count),
		Penalty: float64(AscendingPenalty * count),
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
