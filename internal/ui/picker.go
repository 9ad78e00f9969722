// Package ui hosts the interactive terminal frontend for reviewing
// corrections one by one.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ErrAborted is returned when the user quits the picker without finishing.
var ErrAborted = errors.New("interactive session aborted")

// PickOption is one candidate replacement for an item.
type PickOption struct {
	FixID       string
	Replacement string
}

// PickItem is one misspelling presented for review.
type PickItem struct {
	Location string // path:line:col
	Line     string // context line text
	Word     string
	Message  string
	Options  []PickOption
}

type pickerModel struct {
	items   []PickItem
	idx     int
	cursor  int
	choices []string // chosen fix ID per item, "" means skipped
	prog    progress.Model
	width   int
	done    bool
	aborted bool
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	wordStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewPickerModel returns a Bubble Tea model that walks through items and
// records which candidate, if any, the user picked for each.
func NewPickerModel(items []PickItem) tea.Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &pickerModel{
		items:   items,
		choices: make([]string, len(items)),
		prog:    prog,
		width:   80,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	item := m.items[m.idx]

	switch msg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(item.Options)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.record(item.Options[m.cursor].FixID)
	case "s", " ":
		return m.record("")
	}

	// Цифры выбирают кандидата напрямую
	if len(msg.String()) == 1 {
		ch := msg.String()[0]
		if ch >= '1' && ch <= '9' {
			n := int(ch - '1')
			if n < len(item.Options) {
				return m.record(item.Options[n].FixID)
			}
		}
	}
	return m, nil
}

func (m *pickerModel) record(fixID string) (tea.Model, tea.Cmd) {
	m.choices[m.idx] = fixID
	m.idx++
	m.cursor = 0
	if m.idx >= len(m.items) {
		m.done = true
		return m, tea.Quit
	}
	return m, m.prog.SetPercent(float64(m.idx) / float64(len(m.items)))
}

func (m *pickerModel) View() string {
	if len(m.items) == 0 || m.done {
		return ""
	}
	item := m.items[m.idx]

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("typocheck fix %d/%d", m.idx+1, len(m.items))))
	b.WriteString("\n\n")

	b.WriteString(locationStyle.Render(item.Location))
	b.WriteString(": ")
	b.WriteString(item.Message)
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(highlightWord(truncate(item.Line, m.width-4), item.Word))
	b.WriteString("\n\n")

	for i, opt := range item.Options {
		marker := "  "
		label := fmt.Sprintf("%d) %s", i+1, optionStyle.Render(opt.Replacement))
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("  %s%s\n", marker, label))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter/1-9 apply · s skip · q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.prog.ViewAs(float64(m.idx) / float64(len(m.items))))
	b.WriteString("\n")

	return b.String()
}

// RunPicker runs the interactive session and returns the chosen fix ID per
// item; an empty string means the item was skipped.
func RunPicker(items []PickItem) ([]string, error) {
	model := NewPickerModel(items)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	picker, ok := final.(*pickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if picker.aborted {
		return nil, ErrAborted
	}
	return picker.choices, nil
}

func highlightWord(line, word string) string {
	if word == "" {
		return line
	}
	if idx := strings.Index(line, word); idx >= 0 {
		return line[:idx] + wordStyle.Render(word) + line[idx+len(word):]
	}
	return line
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
