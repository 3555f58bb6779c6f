package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	checkFormat  string
	checkExplain bool
	checkShow    bool
	checkMinTier string
)

// errBelowMinTier is returned when a password scores under --min-tier.
var errBelowMinTier = errors.New("password is below the minimum tier")

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Evaluate a single password",
	Long: `Evaluate a single password and print its strength report.

The password is taken from the argument, the first line of stdin when it
is not a terminal, or an interactive prompt that does not echo input.
Passing a password as an argument leaves it in your shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format: human, json")
	checkCmd.Flags().BoolVar(&checkExplain, "explain", false, "List the pattern rules that fired")
	checkCmd.Flags().BoolVar(&checkShow, "show", false, "Echo the password when prompting")
	checkCmd.Flags().StringVar(&checkMinTier, "min-tier", "", "Exit non-zero below this tier (weak, fair, good, strong)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	minTier, err := parseTier(checkMinTier)
	if err != nil {
		return err
	}

	password, err := readPassword(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := present.New(checkFormat, present.ColorEnabled(currentConfig().Color, out))
	if err != nil {
		return err
	}

	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()
	waitForDictionary(cmd, m)

	report := m.Evaluate(password)
	if checkExplain {
		explain := m.Explain(password)
		err = renderer.Render(out, report, &explain)
	} else {
		err = renderer.Render(out, report, nil)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if belowTier(report, minTier) {
		return fmt.Errorf("%w: got %s, want %s", errBelowMinTier, report.Tier, minTier)
	}
	return nil
}

// readPassword resolves the password from args, piped stdin or a prompt.
func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		if checkShow {
			return readLine(in)
		}
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
