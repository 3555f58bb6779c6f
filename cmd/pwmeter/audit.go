package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/praetorian-inc/pwmeter/pkg/sarif"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"github.com/spf13/cobra"
)

var (
	auditFormat  string
	auditMinTier string
)

var auditCmd = &cobra.Command{
	Use:   "audit [file...]",
	Short: "Evaluate a list of passwords, one per line",
	Long: `Evaluate every non-blank line of the given files (or stdin) and print
one row per password plus a tier summary. Passwords are masked in the
output, keeping only the first and last character.

With --format json each row is written as a JSON object on its own line.
With --format sarif a SARIF 2.1.0 report is written for code-scanning
tools, with one result per password below Good or found in a dictionary.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditFormat, "format", "human", "Output format: human, json, sarif")
	auditCmd.Flags().StringVar(&auditMinTier, "min-tier", "", "Exit non-zero if any password is below this tier")
	rootCmd.AddCommand(auditCmd)
}

// auditRow is one JSON output line.
type auditRow struct {
	File     string      `json:"file"`
	Line     int         `json:"line"`
	Password string      `json:"password"`
	Report   interface{} `json:"report"`
}

// auditSummary counts results per tier.
type auditSummary struct {
	total  int
	below  int
	byTier map[types.Tier]int
}

func runAudit(cmd *cobra.Command, args []string) error {
	switch auditFormat {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format: %s", auditFormat)
	}
	minTier, err := parseTier(auditMinTier)
	if err != nil {
		return err
	}

	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()
	waitForDictionary(cmd, m)

	out := cmd.OutOrStdout()
	summary := &auditSummary{byTier: make(map[types.Tier]int)}
	sarifReport := sarif.NewReport(version)

	eval := func(path string, line int, password string) error {
		report := m.Evaluate(password)
		summary.total++
		summary.byTier[report.Tier]++
		if belowTier(report, minTier) {
			summary.below++
		}

		switch auditFormat {
		case "sarif":
			sarifReport.AddResult(report, password, path, line)
			return nil
		case "json":
			return json.NewEncoder(out).Encode(auditRow{
				File:     path,
				Line:     line,
				Password: present.Mask(password),
				Report:   present.Envelope(report, nil),
			})
		}

		_, err := fmt.Fprintf(out, "%-24s %-10s %12s  %s\n",
			present.Mask(password), report.Label, present.FormatEntropy(report), report.CrackTime)
		return err
	}

	if auditFormat == "human" {
		fmt.Fprintf(out, "%-24s %-10s %12s  %s\n", "PASSWORD", "TIER", "ENTROPY", "CRACK TIME")
	}

	if len(args) == 0 {
		if err := auditLines(cmd.InOrStdin(), "stdin", eval); err != nil {
			return err
		}
	}
	for _, path := range args {
		if err := auditFile(path, eval); err != nil {
			return err
		}
	}

	switch auditFormat {
	case "human":
		printAuditSummary(out, summary)
	case "sarif":
		data, err := sarifReport.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding sarif: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	if summary.below > 0 {
		return fmt.Errorf("%w: %d of %d passwords below %s", errBelowMinTier, summary.below, summary.total, minTier)
	}
	return nil
}

func auditFile(path string, eval func(string, int, string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := auditLines(f, path, eval); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// auditLines calls eval for every non-blank line, numbered from 1.
func auditLines(r io.Reader, path string, eval func(string, int, string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if len(text) > 0 && text[len(text)-1] == '\r' {
			text = text[:len(text)-1]
		}
		if text == "" {
			continue
		}
		if err := eval(path, line, text); err != nil {
			return err
		}
	}
	return sc.Err()
}

func printAuditSummary(w io.Writer, s *auditSummary) {
	fmt.Fprintf(w, "\n%d passwords evaluated\n", s.total)
	for _, t := range []types.Tier{types.TierTooShort, types.TierWeak, types.TierFair, types.TierGood, types.TierStrong} {
		if n := s.byTier[t]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", t.Label()+":", n)
		}
	}
}
