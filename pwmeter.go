// Package pwmeter estimates password strength in real time.
//
// For each candidate password a Meter reports six requirement checks, an
// entropy estimate, a pattern penalty, an approximate crack-time bucket and
// a strength tier (Weak, Fair, Good, Strong, or Too Short).
//
// # Basic Usage
//
//	meter, err := pwmeter.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer meter.Close()
//
//	report := meter.Evaluate("Password1!")
//	fmt.Printf("%s (%.1f bits, %s to crack)\n", report.Label, report.Entropy.Entropy, report.CrackTime)
//
// # Dictionary
//
// By default the embedded list of common passwords is loaded in the
// background. Evaluation never waits for it: until the load finishes, no
// password is treated as common. Use Ready to wait when that matters:
//
//	meter, _ := pwmeter.New(pwmeter.WithDictionarySource(mySource))
//	<-meter.Ready()
package pwmeter

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/scorer"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/pwmeter" without subpackages.
type (
	// Report is the outcome of evaluating one password.
	Report = types.Report

	// Requirements holds the six requirement checks.
	Requirements = types.Requirements

	// Tier is the strength category.
	Tier = types.Tier

	// CrackTime is the approximate time-to-crack bucket.
	CrackTime = types.CrackTime

	// Source provides a newline-delimited list of common passwords.
	Source = dictionary.Source
)

// Re-export tier constants.
const (
	TierNone     = types.TierNone
	TierTooShort = types.TierTooShort
	TierWeak     = types.TierWeak
	TierFair     = types.TierFair
	TierGood     = types.TierGood
	TierStrong   = types.TierStrong
)

// Meter evaluates passwords against a dictionary and pattern rules.
type Meter struct {
	scorer *scorer.Scorer
	dict   *dictionary.Store
	cancel context.CancelFunc
}

// meterConfig holds meter configuration.
type meterConfig struct {
	dict             *dictionary.Store
	sources          []dictionary.Source
	noBuiltin        bool
	keyboardPatterns []string
	logger           types.DebugLogger
}

// Option configures a Meter.
type Option func(*meterConfig)

// WithDictionary uses an already constructed store. No background load is
// started; the caller owns loading it.
func WithDictionary(store *dictionary.Store) Option {
	return func(c *meterConfig) {
		c.dict = store
	}
}

// WithWords uses a fixed, already-loaded list of common passwords.
func WithWords(words ...string) Option {
	return func(c *meterConfig) {
		c.dict = dictionary.NewStoreFromWords(words...)
	}
}

// WithDictionarySource adds a source to load in the background. Sources
// replace the builtin list; combine with WithBuiltinDictionary to keep it.
func WithDictionarySource(src dictionary.Source) Option {
	return func(c *meterConfig) {
		c.sources = append(c.sources, src)
		c.noBuiltin = true
	}
}

// WithBuiltinDictionary keeps the embedded list when custom sources are added.
func WithBuiltinDictionary() Option {
	return func(c *meterConfig) {
		c.noBuiltin = false
	}
}

// WithoutDictionary disables the common-password check entirely.
func WithoutDictionary() Option {
	return func(c *meterConfig) {
		c.dict = dictionary.NewStoreFromWords()
	}
}

// WithKeyboardPatterns replaces the default keyboard substrings.
func WithKeyboardPatterns(patterns ...string) Option {
	return func(c *meterConfig) {
		c.keyboardPatterns = patterns
	}
}

// WithLogger receives dictionary load diagnostics.
func WithLogger(logger types.DebugLogger) Option {
	return func(c *meterConfig) {
		c.logger = logger
	}
}

// New creates a Meter with the given options.
//
// By default the meter:
//   - Loads the embedded common-password list in the background
//   - Uses the default keyboard patterns (qwerty, asdf, zxcv, 1234, abcd)
//   - Discards log output
func New(opts ...Option) (*Meter, error) {
	config := &meterConfig{
		logger: types.NoopLogger{},
	}

	for _, opt := range opts {
		opt(config)
	}

	detector, err := pattern.NewDetector(config.keyboardPatterns)
	if err != nil {
		return nil, fmt.Errorf("creating pattern detector: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	dict := config.dict
	if dict == nil {
		dict = dictionary.NewStore()
		sources := config.sources
		if !config.noBuiltin {
			sources = append([]dictionary.Source{dictionary.Builtin()}, sources...)
		}
		if len(sources) > 0 {
			dict.LoadAsync(ctx, dictionary.Multi(config.logger, sources...), config.logger)
		} else {
			dict.LoadString("")
		}
	}

	return &Meter{
		scorer: scorer.New(dict, detector),
		dict:   dict,
		cancel: cancel,
	}, nil
}

// Evaluate scores password. Empty input returns the reset report.
func (m *Meter) Evaluate(password string) Report {
	return m.scorer.Evaluate(password)
}

// Explain returns the pattern rules that fired for password.
func (m *Meter) Explain(password string) pattern.Result {
	return m.scorer.Patterns().Analyze(password)
}

// Ready is closed once the dictionary load has finished (or failed).
func (m *Meter) Ready() <-chan struct{} {
	return m.dict.Ready()
}

// Dictionary returns the store backing the common-password check.
func (m *Meter) Dictionary() *dictionary.Store {
	return m.dict
}

// Close stops any in-flight dictionary load.
func (m *Meter) Close() error {
	m.cancel()
	return nil
}
