package main

import (
	"github.com/praetorian-inc/pwmeter/pkg/config"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	configPath   string
	envFile      string
	dictionaries []string
	noBuiltin    bool
	colorMode    string
)

// cfg is populated by loadConfig before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pwmeter",
	Short: "pwmeter - real-time password strength meter",
	Long: `pwmeter estimates password strength the way a sign-up form would:
six requirement checks, an entropy estimate with pattern penalties, an
approximate time to crack, and a tier from Weak to Strong.

Common passwords come from an embedded list plus any dictionaries given
with --dictionary (files, URLs, s3://, azblob://, github://, redis://,
sqlite://; .gz, .zst and .7z are decompressed).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	flags.StringVar(&configPath, "config", "", "Path to YAML config file (default: user config dir)")
	flags.StringVar(&envFile, "env-file", ".env", "Load environment variables from this file if it exists")
	flags.StringArrayVarP(&dictionaries, "dictionary", "d", nil, "Extra common-password source (repeatable)")
	flags.BoolVar(&noBuiltin, "no-builtin", false, "Do not load the embedded common-password list")
	flags.StringVar(&colorMode, "color", "", "Color output: auto, always, never")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves settings with precedence flags > env > file > defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
	}

	path, explicit := configPath, configPath != ""
	if !explicit {
		path = config.DefaultPath()
	}

	loaded, err := config.Load(path, explicit)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dictionary") {
		loaded.Dictionaries = dictionaries
	}
	if flags.Changed("no-builtin") {
		loaded.NoBuiltin = noBuiltin
	}
	if flags.Changed("color") {
		loaded.Color = colorMode
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

// currentConfig returns the loaded config, or defaults when a command runs
// without the root pre-run (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
