// internal/tui/picker.go
//
// Interactive resume picker. Uses bubbletea, which follows The Elm
// Architecture: the model holds state, Update reacts to messages, View
// renders the state to a string.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailorloom/tailorloom/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#5B8DEF"))

	pickerScoreStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFB454"))

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// matchItem adapts a MatchResult to the bubbles list.Item interface.
type matchItem struct {
	match model.MatchResult
}

func (i matchItem) Title() string {
	return fmt.Sprintf("%s  %s", i.match.Metadata.ResumeID, pickerScoreStyle.Render(fmt.Sprintf("%.2f", i.match.Score)))
}

func (i matchItem) Description() string {
	if i.match.Reasoning != "" {
		return i.match.Reasoning
	}
	return "no reasoning recorded"
}

func (i matchItem) FilterValue() string { return i.match.Metadata.ResumeID }

// Picker is the resume selection model.
type Picker struct {
	list     list.Model
	selected *model.MatchResult
	canceled bool
	width    int
	height   int
}

// NewPicker builds a picker over ranked matches, best first.
func NewPicker(matches []model.MatchResult) *Picker {
	items := make([]list.Item, len(matches))
	for i, m := range matches {
		items[i] = matchItem{match: m}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a resume to tailor"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return &Picker{list: l}
}

// Selected returns the chosen match, nil when the picker was canceled.
func (p *Picker) Selected() *model.MatchResult { return p.selected }

// Canceled reports whether the user backed out.
func (p *Picker) Canceled() bool { return p.canceled }

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.list.SetSize(msg.Width, msg.Height-2)
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(matchItem); ok {
				selected := item.match
				p.selected = &selected
			}
			return p, tea.Quit
		case "q", "esc", "ctrl+c":
			p.canceled = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *Picker) View() string {
	return p.list.View() + "\n" + pickerHintStyle.Render("enter: select · q: cancel")
}

// PickMatch runs the picker on the terminal and returns the selection.
// The second return is false when the user canceled.
func PickMatch(matches []model.MatchResult) (model.MatchResult, bool) {
	picker := NewPicker(matches)
	if _, err := tea.NewProgram(picker, tea.WithAltScreen()).Run(); err != nil {
		return model.MatchResult{}, false
	}
	if picker.Canceled() || picker.Selected() == nil {
		return model.MatchResult{}, false
	}
	return *picker.Selected(), true
}
