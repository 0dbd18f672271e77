package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8CC8C"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
)

// SkillSuggestion is one discovered skill offered for confirmation,
// together with the bullet that would carry it onto the resume.
type SkillSuggestion struct {
	Skill  string
	Bullet string
}

// SkillsConfirm lets the user accept or reject discovered skills before
// they touch the resume. Nothing is ever added without confirmation.
type SkillsConfirm struct {
	suggestions []SkillSuggestion
	checked     []bool
	cursor      int
	done        bool
	canceled    bool
}

// NewSkillsConfirm builds the confirmation model. All suggestions start
// unchecked.
func NewSkillsConfirm(suggestions []SkillSuggestion) *SkillsConfirm {
	return &SkillsConfirm{
		suggestions: suggestions,
		checked:     make([]bool, len(suggestions)),
	}
}

// Confirmed returns the accepted suggestions, nil when canceled.
func (s *SkillsConfirm) Confirmed() []SkillSuggestion {
	if s.canceled {
		return nil
	}
	var out []SkillSuggestion
	for i, ok := range s.checked {
		if ok {
			out = append(out, s.suggestions[i])
		}
	}
	return out
}

// Canceled reports whether the user backed out.
func (s *SkillsConfirm) Canceled() bool { return s.canceled }

func (s *SkillsConfirm) Init() tea.Cmd { return nil }

func (s *SkillsConfirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.suggestions)-1 {
			s.cursor++
		}
	case " ", "x":
		if len(s.suggestions) > 0 {
			s.checked[s.cursor] = !s.checked[s.cursor]
		}
	case "a":
		for i := range s.checked {
			s.checked[i] = true
		}
	case "enter":
		s.done = true
		return s, tea.Quit
	case "q", "esc", "ctrl+c":
		s.canceled = true
		return s, tea.Quit
	}
	return s, nil
}

func (s *SkillsConfirm) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Confirm discovered skills"))
	b.WriteString("\n\n")

	if len(s.suggestions) == 0 {
		b.WriteString(pickerHintStyle.Render("No skill suggestions for this run."))
		b.WriteString("\n")
	}

	for i, sug := range s.suggestions {
		cursor := "  "
		if i == s.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		line := fmt.Sprintf("%s %s", box, sug.Skill)
		if s.checked[i] {
			line = checkedStyle.Render(fmt.Sprintf("[x] %s", sug.Skill))
		}
		b.WriteString(cursor + line + "\n")
		if sug.Bullet != "" {
			b.WriteString(pickerHintStyle.Render("      " + sug.Bullet))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(pickerHintStyle.Render("space: toggle · a: all · enter: confirm · q: cancel"))
	return b.String()
}

// ConfirmSkills runs the confirmation screen on the terminal.
func ConfirmSkills(suggestions []SkillSuggestion) ([]SkillSuggestion, bool) {
	m := NewSkillsConfirm(suggestions)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return nil, false
	}
	if m.Canceled() {
		return nil, false
	}
	return m.Confirmed(), true
}
