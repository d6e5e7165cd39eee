package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Launch builds the live view for a chosen preset.
type Launch func(preset string) (Model, error)

// Picker lists the presets and hands over to the live view on enter.
type Picker struct {
	names  []string
	info   map[string]string
	cursor int
	launch Launch
	live   *Model
	err    error
}

func NewPicker(names []string, info map[string]string, launch Launch) Picker {
	return Picker{names: names, info: info, launch: launch}
}

// Live returns the live view, if one was started.
func (p Picker) Live() (Model, bool) {
	if p.live == nil {
		return Model{}, false
	}
	return *p.live, true
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) == 0 {
			return p, nil
		}
		live, err := p.launch(p.names[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	accent := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	sub := mutedStyle()

	var b strings.Builder
	b.WriteString("\n\n    " + accent.Render("BOUNCE") + "\n    " + sub.Render("sphere sandbox") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range p.names {
		desc := p.info[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", accent.Render("▸"), lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-10s", name)), valueStyle().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(desc)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + warnStyle().Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + accent.Render("j/k") + sub.Render(" navigate  ") + accent.Render("enter") + sub.Render(" start  ") + accent.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}
