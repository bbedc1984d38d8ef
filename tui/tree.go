package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/jsphweid/scorestream/stream"
)

var (
	accent = lipgloss.Color("#ff8800")
	muted  = lipgloss.Color("#8a8a8a")
	cursor = lipgloss.Color("#ff6fa8")
)

// Label is a one-line description of an element.
func Label(el stream.Element) string {
	offset := el.Core().Offset()
	switch e := el.(type) {
	case *stream.Note:
		return fmt.Sprintf("%-6v Note %s %v", offset, e.Pitch.NameWithOctave(), e.Duration())
	case *stream.Chord:
		var names []string
		for _, p := range e.Pitches() {
			names = append(names, p.NameWithOctave())
		}
		return fmt.Sprintf("%-6v Chord [%s] %v", offset, strings.Join(names, " "), e.Duration())
	case *stream.Rest:
		return fmt.Sprintf("%-6v Rest %v", offset, e.Duration())
	case *stream.Measure:
		return fmt.Sprintf("%-6v Measure %d", offset, e.Number)
	case *stream.Voice:
		return fmt.Sprintf("%-6v Voice %d", offset, e.ID)
	}
	if s, ok := el.(interface{ Inner() *stream.Stream }); ok {
		return fmt.Sprintf("%-6v %v (%d elements)", offset, el.Kind(), s.Inner().Len())
	}
	return fmt.Sprintf("%-6v %v", offset, el)
}

func subtree(s *stream.Stream, label string) *tree.Tree {
	t := tree.Root(label)
	for _, el := range s.Elements() {
		if c, ok := el.(interface{ Inner() *stream.Stream }); ok {
			t.Child(subtree(c.Inner(), Label(el)))
			continue
		}
		t.Child(Label(el))
	}
	return t
}

// Tree renders the container hierarchy of s with offsets relative to
// each container.
func Tree(s *stream.Stream) string {
	header := fmt.Sprintf("%v  clef %s", s.Self().Kind(), s.Clef().Name)
	if ts := s.TimeSignature(); ts != nil {
		header += "  " + ts.Ratio()
	}
	if ks := s.KeySignature(); ks != nil {
		header += fmt.Sprintf("  %+d", ks.Sharps)
	}
	header += fmt.Sprintf("  %v qpm", s.Tempo())

	t := subtree(s, header).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(muted)).
		RootStyle(lipgloss.NewStyle().Bold(true).Foreground(accent))
	return t.String()
}
