package main

import (
	"context"
	"fmt"
	"time"

	"github.com/praetorian-inc/pwmeter"
	"github.com/praetorian-inc/pwmeter/pkg/source"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"github.com/spf13/cobra"
)

// dictionaryWait bounds how long one-shot commands wait for dictionaries.
const dictionaryWait = 30 * time.Second

// debugLogger writes diagnostics to stderr in verbose mode only.
func debugLogger(cmd *cobra.Command) types.DebugLogger {
	if verbose && !quiet {
		return types.NewWriterLogger(cmd.ErrOrStderr(), "debug: ")
	}
	return types.NoopLogger{}
}

// warnf prints a warning to stderr unless quiet.
func warnf(cmd *cobra.Command, format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}

// newMeter builds a meter from the current config. Dictionary loads start
// in the background.
func newMeter(cmd *cobra.Command) (*pwmeter.Meter, error) {
	c := currentConfig()

	opts := c.SourceOptions()
	opts.Logger = debugLogger(cmd)
	sources, err := source.ParseAll(c.Dictionaries, opts)
	if err != nil {
		return nil, err
	}

	meterOpts := []pwmeter.Option{
		pwmeter.WithLogger(debugLogger(cmd)),
	}
	for _, src := range sources {
		meterOpts = append(meterOpts, pwmeter.WithDictionarySource(src))
	}
	if len(sources) > 0 && !c.NoBuiltin {
		meterOpts = append(meterOpts, pwmeter.WithBuiltinDictionary())
	}
	if len(sources) == 0 && c.NoBuiltin {
		meterOpts = append(meterOpts, pwmeter.WithoutDictionary())
	}
	if len(c.KeyboardPatterns) > 0 {
		meterOpts = append(meterOpts, pwmeter.WithKeyboardPatterns(c.KeyboardPatterns...))
	}

	return pwmeter.New(meterOpts...)
}

// waitForDictionary blocks until the dictionary is loaded or the wait
// expires, warning about either failure. Scoring proceeds regardless.
func waitForDictionary(cmd *cobra.Command, m *pwmeter.Meter) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-m.Ready():
		if err := m.Dictionary().Err(); err != nil {
			warnf(cmd, "dictionary not loaded, skipping dictionary check: %v", err)
		}
	case <-ctx.Done():
	case <-time.After(dictionaryWait):
		warnf(cmd, "dictionary still loading after %s, continuing without it", dictionaryWait)
	}
}

// parseTier parses a --min-tier value. Empty means no threshold.
func parseTier(s string) (types.Tier, error) {
	if s == "" {
		return types.TierNone, nil
	}
	var t types.Tier
	if err := t.UnmarshalText([]byte(s)); err != nil {
		return types.TierNone, fmt.Errorf("invalid --min-tier %q: %w", s, err)
	}
	return t, nil
}

// belowTier reports whether r fails a minimum tier.
func belowTier(r types.Report, min types.Tier) bool {
	if min == types.TierNone {
		return false
	}
	return r.Tier.Rank() < min.Rank()
}
