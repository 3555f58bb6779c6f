// Package meter is the interactive terminal UI: a masked password field
// that is re-scored on every keystroke.
package meter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/pwmeter/pkg/clipboard"
	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

const (
	barWidth      = 30
	maxInputLen   = 256
	statusTimeout = 2 * time.Second
	shakeFrames   = 6
	shakeInterval = 50 * time.Millisecond
)

// Evaluator scores passwords. *pwmeter.Meter implements it.
type Evaluator interface {
	Evaluate(password string) types.Report
	Ready() <-chan struct{}
}

// Copier places a password on the clipboard.
type Copier interface {
	Copy(password string) error
}

// dictReadyMsg is sent once the dictionary load finishes.
type dictReadyMsg struct{}

// clearStatusMsg clears the status line if it is still the one that
// scheduled it.
type clearStatusMsg struct{ id int }

// shakeMsg advances the "nothing to copy" animation.
type shakeMsg struct{}

// Model is the root Bubble Tea model for the live meter.
type Model struct {
	meter  Evaluator
	copier Copier

	input  textinput.Model
	report types.Report

	visible  bool
	showHelp bool

	status      string
	statusAlert bool
	statusID    int
	shake       int

	width int
}

// New creates a Model. copier may be nil, in which case copying always fails.
func New(meter Evaluator, copier Copier) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Enter a password"
	ti.CharLimit = maxInputLen
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()

	if copier == nil {
		copier = clipboard.New()
	}

	return Model{
		meter:  meter,
		copier: copier,
		input:  ti,
		report: types.NewResetReport(),
	}
}

// Report returns the report for the current input.
func (m Model) Report() types.Report {
	return m.report
}

// Visible reports whether the input is echoed in plain text.
func (m Model) Visible() bool {
	return m.visible
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("pwmeter"),
		waitForDictionary(m.meter),
	)
}

func waitForDictionary(meter Evaluator) tea.Cmd {
	return func() tea.Msg {
		<-meter.Ready()
		return dictReadyMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dictReadyMsg:
		// The common-password check may change now that the list is loaded
		m.evaluate()
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusAlert = false
		}
		return m, nil

	case shakeMsg:
		if m.shake > 0 {
			m.shake--
			if m.shake > 0 {
				return m, shakeTick()
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleVisibility):
			m.toggleVisibility()
			return m, nil
		case keyMatches(msg, defaultKeys.Copy):
			return m, m.copy()
		case keyMatches(msg, defaultKeys.Clear):
			m.input.SetValue("")
			m.evaluate()
			return m, nil
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.evaluate()
	}
	return m, cmd
}

func (m *Model) evaluate() {
	m.report = m.meter.Evaluate(m.input.Value())
}

func (m *Model) toggleVisibility() {
	m.visible = !m.visible
	if m.visible {
		m.input.EchoMode = textinput.EchoNormal
	} else {
		m.input.EchoMode = textinput.EchoPassword
	}
}

func (m *Model) copy() tea.Cmd {
	err := m.copier.Copy(m.input.Value())
	switch {
	case err == nil:
		return m.setStatus("Copied!", false)
	case errors.Is(err, clipboard.ErrNothingToCopy):
		m.shake = shakeFrames
		return shakeTick()
	default:
		return m.setStatus(clipboard.FailureMessage, true)
	}
}

func (m *Model) setStatus(text string, alert bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusAlert = alert
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func shakeTick() tea.Cmd {
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg {
		return shakeMsg{}
	})
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pwmeter"))
	b.WriteString("\n\n")

	field := inputBorderStyle.Render(m.input.View())
	if m.shake > 0 {
		// Alternate a one-column offset to shake the field
		offset := 0
		if m.shake%2 == 0 {
			offset = 1
		}
		field = lipgloss.NewStyle().MarginLeft(offset).Render(field)
	}
	b.WriteString(field)
	b.WriteString("\n")

	b.WriteString(m.renderBar())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n\n")
	b.WriteString(m.renderRequirements())

	if m.status != "" {
		b.WriteString("\n")
		if m.statusAlert {
			b.WriteString(statusAlertStyle.Render(m.status))
		} else {
			b.WriteString(statusOKStyle.Render(m.status))
		}
	}

	b.WriteString("\n\n")
	if m.showHelp {
		b.WriteString(renderHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderBar() string {
	color := tierColor(m.report.Tier)
	fill := present.BarPercent(m.report.Tier) * barWidth / 100

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", fill)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-fill))
	label := labelStyle.Foreground(color).Render(m.report.Label)
	return bar + " " + label
}

func (m Model) renderStats() string {
	parts := []string{present.FormatEntropy(m.report)}
	if ct := present.CrackTimeText(m.report); ct != "" {
		parts = append(parts, ct)
	}
	if !m.report.Reset() {
		parts = append(parts, present.FormatNumber(m.report.Entropy.Combinations)+" combinations")
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderRequirements() string {
	var lines []string
	m.report.Requirements.Each(func(name string, met bool) {
		text := types.Describe(name)
		switch {
		case m.report.Reset():
			lines = append(lines, neutralStyle.Render("○ "+text))
		case met:
			lines = append(lines, metStyle.Render("✓ "+text))
		default:
			lines = append(lines, unmetStyle.Render("✗ "+text))
		}
	})
	return strings.Join(lines, "\n")
}

func (m Model) renderShortHelp() string {
	var parts []string
	for _, k := range defaultKeys.shortHelp() {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func renderHelp() string {
	return fmt.Sprintf(`pwmeter live - Password Strength Meter

Type a password; it is scored on every keystroke and never stored.

KEYS
  Ctrl+t            Show or hide the password
  Ctrl+y            Copy the password to the clipboard
  Ctrl+u            Clear the field
  F1                Toggle this help
  Esc / Ctrl+c      Quit

TIERS
  Too Short         fewer than %d characters
  Weak              fewer than 4 requirements met
  Fair / Good       4 / 5 requirements met
  Strong            all 6 requirements met`, types.MinLength)
}
