package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, "auto", cfg.Color)
	assert.Empty(t, cfg.Dictionaries)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dictionaries:
  - /srv/lists/rockyou.txt.gz
  - s3://lists/common.txt
no_builtin: true
keyboard_patterns: [qwerty, azerty]
http_addr: ":9000"
color: never
sources:
  s3_region: eu-west-1
  github_token: from-file
`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, []string{"/srv/lists/rockyou.txt.gz", "s3://lists/common.txt"}, cfg.Dictionaries)
	assert.True(t, cfg.NoBuiltin)
	assert.Equal(t, []string{"qwerty", "azerty"}, cfg.KeyboardPatterns)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "eu-west-1", cfg.Sources.S3Region)

	opts := cfg.SourceOptions()
	assert.Equal(t, "from-file", opts.GitHubToken)
	assert.Equal(t, "eu-west-1", opts.S3Region)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfig(t, "dictionaries: [unterminated")
	err := Default().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)

	_, err = Load(missing, true)
	assert.Error(t, err)
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	cfg := Default()
	cfg.Dictionaries = []string{"from-file.txt"}
	cfg.HTTPAddr = ":9000"

	cfg.ApplyEnv(env(map[string]string{
		EnvDictionary:      " a.txt, ,https://x/b.txt ",
		EnvHTTPAddr:        ":7000",
		EnvColor:           "always",
		EnvGitHubToken:     "ghp_env",
		EnvS3Endpoint:      "http://minio:9000",
		EnvS3RoleARN:       "arn:aws:iam::1:role/r",
		EnvAzureConnection: "UseDevelopmentStorage=true",
	}))

	assert.Equal(t, []string{"a.txt", "https://x/b.txt"}, cfg.Dictionaries)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, "ghp_env", cfg.Sources.GitHubToken)
	assert.Equal(t, "http://minio:9000", cfg.Sources.S3Endpoint)
	assert.Equal(t, "arn:aws:iam::1:role/r", cfg.Sources.S3RoleARN)
	assert.Equal(t, "UseDevelopmentStorage=true", cfg.Sources.AzureConnectionString)
}

func TestApplyEnv_NoColor(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(env(map[string]string{EnvColor: "always", EnvNoColor: ""}))
	assert.Equal(t, "never", cfg.Color)
}

func TestApplyEnv_EmptyValuesIgnored(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(env(map[string]string{EnvHTTPAddr: "", EnvDictionary: ""}))
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Empty(t, cfg.Dictionaries)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Color = "sometimes"
	assert.ErrorContains(t, cfg.Validate(), "invalid color mode")

	cfg = Default()
	cfg.HTTPAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.KeyboardPatterns = []string{"qwerty", " "}
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PWMETER_TEST_DOTENV=loaded\n"), 0o600))
	t.Setenv("PWMETER_TEST_DOTENV", "")
	os.Unsetenv("PWMETER_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("PWMETER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PWMETER_TEST_KEEP=file\n"), 0o600))
	t.Setenv("PWMETER_TEST_KEEP", "process")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "process", os.Getenv("PWMETER_TEST_KEEP"))
}
