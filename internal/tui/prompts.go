package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	instafixerrors "instafix.dev/instafix/internal/errors"
)

// ErrNotInteractive is returned when a prompt is needed but no terminal is attached
var ErrNotInteractive = fmt.Errorf("not running in an interactive terminal")

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	// requireNewline waits for Enter after y/n instead of answering on the key press
	requireNewline bool
	answered       bool
	done           bool
	err            error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = instafixerrors.ErrCanceled
			m.done = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y", "yes":
				m.choice = true
			case "n", "no":
				m.choice = false
			default:
				return m, nil
			}
			m.answered = true
			if !m.requireNewline {
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	hint := "(y/n, Ctrl+C to cancel)"
	if m.requireNewline {
		hint = "(y/n then Enter, Ctrl+C to cancel)"
	}
	answer := ""
	if m.answered {
		answer = " n"
		if m.choice {
			answer = " y"
		}
	}
	return fmt.Sprintf("%s %s%s %s\n", m.prompt, yesNo, answer, ColorDim(hint))
}

// PromptConfirm prompts the user for yes/no confirmation. With requireNewline
// the answer has to be confirmed with Enter.
func PromptConfirm(prompt string, defaultValue, requireNewline bool) (bool, error) {
	if !IsTTY() {
		return false, ErrNotInteractive
	}

	m := confirmModel{
		prompt:         prompt,
		choice:         defaultValue,
		requireNewline: requireNewline,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	if finalModel, ok := model.(confirmModel); ok {
		if finalModel.err != nil {
			return false, finalModel.err
		}
		return finalModel.choice, nil
	}

	return false, fmt.Errorf("unexpected model type")
}

type selectKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k selectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

func (k selectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Confirm, k.Cancel},
	}
}

// Letters are left to the filter, so navigation is arrows and ctrl keys only
var defaultSelectKeys = selectKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	// Filter is the plain text matched against what the user types
	Filter string
}

// SelectModel is a selection prompt with arrow key navigation and type-to-filter
type SelectModel struct {
	Title    string
	Options  []SelectOption
	Filtered []int
	Cursor   int
	// Selected is the index into Options of the chosen option, or -1
	Selected int
	Done     bool
	Err      error

	filter textinput.Model
	keys   selectKeyMap
	help   help.Model
}

// NewSelectModel creates a SelectModel with the cursor on the first option
func NewSelectModel(title string, options []SelectOption) SelectModel {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 200
	ti.Focus()

	m := SelectModel{
		Title:    title,
		Options:  options,
		Selected: -1,
		filter:   ti,
		keys:     defaultSelectKeys,
		help:     help.New(),
	}
	m.applyFilter()
	return m
}

// Init initializes the bubbletea model
func (m SelectModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles message updates for the bubbletea model
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.Err = instafixerrors.ErrCanceled
			m.Done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			if len(m.Filtered) > 0 {
				m.Selected = m.Filtered[m.Cursor]
				m.Done = true
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.Cursor > 0 {
				m.Cursor--
			} else if len(m.Filtered) > 0 {
				m.Cursor = len(m.Filtered) - 1
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.Cursor < len(m.Filtered)-1 {
				m.Cursor++
			} else {
				m.Cursor = 0
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *SelectModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	filtered := make([]int, 0, len(m.Options))
	for i, opt := range m.Options {
		if query == "" || strings.Contains(strings.ToLower(opt.Filter), query) {
			filtered = append(filtered, i)
		}
	}
	m.Filtered = filtered
	if m.Cursor >= len(m.Filtered) {
		m.Cursor = len(m.Filtered) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// View renders the TUI
func (m SelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.Filtered) == 0 {
		b.WriteString("No commits match the filter.\n")
	}
	for i, idx := range m.Filtered {
		if i == m.Cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(">"))
			b.WriteString(" " + m.Options[idx].Label + "\n")
		} else {
			b.WriteString("  " + m.Options[idx].Label + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// PromptSelect prompts the user to select one of options and returns its index
func PromptSelect(title string, options []SelectOption) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options provided")
	}
	if !IsTTY() {
		return -1, ErrNotInteractive
	}

	m := NewSelectModel(title, options)

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return -1, err
	}

	if finalModel, ok := model.(SelectModel); ok {
		if finalModel.Err != nil {
			return -1, finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return -1, fmt.Errorf("unexpected model type")
}
