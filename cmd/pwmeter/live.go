package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/praetorian-inc/pwmeter/pkg/clipboard"
	"github.com/praetorian-inc/pwmeter/pkg/meter"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Interactive meter that updates on every keystroke",
	Long: `Open a terminal UI with a masked password field. The strength bar,
entropy, crack time and requirement checklist update as you type.

Keys: ctrl+t show/hide, ctrl+y copy, ctrl+u clear, f1 help, esc quit.`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	model := meter.New(m, clipboard.Default(os.Stdout))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running meter: %w", err)
	}
	return nil
}
