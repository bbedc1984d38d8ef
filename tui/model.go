package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/scorestream/stream"
)

// visible rows in the list
const pageSize = 12

type row struct {
	label   string
	offset  float64
	endTime float64
	voice   int
}

// Model browses the offset map of a flattened stream.
type Model struct {
	title    string
	rows     []row
	cursor   int
	quitting bool
}

func NewModel(title string, s *stream.Stream) Model {
	m := Model{title: title}
	target := s
	if !s.HasVoices() {
		target = s.Flat()
	}
	for _, om := range target.OffsetMap() {
		if !stream.IsClassOrSubclass(om.Element, "GeneralNote") {
			continue
		}
		m.rows = append(m.rows, row{
			label:   Label(om.Element),
			offset:  om.Offset,
			endTime: om.EndTime,
			voice:   om.VoiceIndex,
		})
	}
	return m
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "pgdown":
		m.cursor = min(m.cursor+pageSize, max(len(m.rows)-1, 0))
	case "pgup":
		m.cursor = max(m.cursor-pageSize, 0)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.rows)-1, 0)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle := lipgloss.NewStyle().Foreground(muted)
	cursorStyle := lipgloss.NewStyle().Foreground(cursor)

	var out strings.Builder
	out.WriteString(headerStyle.Render(fmt.Sprintf("%s  %d notes and rests", m.title, len(m.rows))))
	out.WriteString("\n\n")

	if len(m.rows) == 0 {
		out.WriteString(dimStyle.Render("nothing to show"))
	}
	start := max(0, min(m.cursor-pageSize/2, len(m.rows)-pageSize))
	end := min(start+pageSize, len(m.rows))
	for i := start; i < end; i++ {
		r := m.rows[i]
		line := r.label
		if r.voice != stream.NoVoice {
			line = fmt.Sprintf("%s  v%d", line, r.voice)
		}
		if i == m.cursor {
			out.WriteString(cursorStyle.Render("> " + line))
		} else {
			out.WriteString("  " + line)
		}
		out.WriteString("\n")
	}

	if len(m.rows) > 0 {
		r := m.rows[m.cursor]
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  %v to %v", m.cursor+1, len(m.rows), r.offset, r.endTime)))
	}
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("j/k:move  pgup/pgdown  g/G:ends  q:quit"))
	return out.String()
}
