package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/pwmeter/pkg/config"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"check", "live", "serve", "http", "audit", "dict", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	for _, env := range []string{config.EnvDictionary, config.EnvColor, config.EnvNoColor, config.EnvHTTPAddr} {
		if v, ok := os.LookupEnv(env); ok {
			t.Cleanup(func() { os.Setenv(env, v) })
		}
		os.Unsetenv(env)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dictionaries: [from-file.txt]\ncolor: always\nhttp_addr: 0.0.0.0:9000\n"), 0o644))

	setVar(t, &cfg, nil)
	setVar(t, &configPath, "")
	setVar(t, &envFile, "")
	setVar(t, &dictionaries, nil)
	setVar(t, &colorMode, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "--env-file", filepath.Join(dir, "missing.env"), "--dictionary", "from-flag.txt", "version"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"from-flag.txt"}, cfg.Dictionaries)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
	assert.Contains(t, out.String(), "pwmeter v")
}

func TestCurrentConfig_Default(t *testing.T) {
	setVar(t, &cfg, nil)
	assert.Equal(t, config.DefaultHTTPAddr, currentConfig().HTTPAddr)
}

func TestParseTier(t *testing.T) {
	tier, err := parseTier("")
	require.NoError(t, err)
	assert.Equal(t, types.TierNone, tier)

	tier, err = parseTier("fair")
	require.NoError(t, err)
	assert.Equal(t, types.TierFair, tier)

	_, err = parseTier("excellent")
	assert.Error(t, err)
}

func TestBelowTier(t *testing.T) {
	weak := types.Report{Tier: types.TierWeak}
	tooShort := types.Report{Tier: types.TierTooShort}
	strong := types.Report{Tier: types.TierStrong}

	assert.False(t, belowTier(weak, types.TierNone))
	assert.True(t, belowTier(weak, types.TierFair))
	assert.True(t, belowTier(tooShort, types.TierFair))
	assert.False(t, belowTier(tooShort, types.TierWeak))
	assert.False(t, belowTier(strong, types.TierStrong))
}
