package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/scorestream/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measuredPart(t *testing.T, names ...string) *stream.Part {
	p := stream.NewPart()
	p.SetTimeSignature(stream.MustTimeSignature("2/4"))
	for _, name := range names {
		n, err := stream.ParseNote(name, 1)
		require.NoError(t, err)
		p.Append(n)
	}
	_, err := p.MakeMeasures(stream.MeasureOptions{InPlace: true})
	require.NoError(t, err)
	return p
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestTree(t *testing.T) {
	out := Tree(&measuredPart(t, "C4", "D4", "E4").Stream)
	assert := assert.New(t)
	assert.Contains(out, "Part  clef treble  2/4")
	assert.Contains(out, "Measure 1")
	assert.Contains(out, "Measure 2")
	assert.Contains(out, "Note E4")
	assert.Less(strings.Index(out, "Note D4"), strings.Index(out, "Measure 2"))
}

func TestLabel(t *testing.T) {
	c, err := stream.ParseChord([]string{"C4", "E-4"}, 2)
	require.NoError(t, err)
	assert.Contains(t, Label(c), "Chord [C4 E-4]")
	assert.Contains(t, Label(stream.NewRest(1)), "Rest")
}

func TestModelNavigation(t *testing.T) {
	var m tea.Model = NewModel("scale", &measuredPart(t, "C4", "D4", "E4", "F4").Stream)
	assert := assert.New(t)

	m = press(m, "down", "down")
	assert.Equal(2, m.(Model).Cursor())
	assert.Contains(m.View(), "> 2")
	assert.Contains(m.View(), "Note E4")
	assert.Contains(m.View(), "3/4  2 to 3")

	m = press(m, "G", "down")
	assert.Equal(3, m.(Model).Cursor())
	m = press(m, "g", "up")
	assert.Equal(0, m.(Model).Cursor())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(tea.Quit(), cmd())
}

func TestModelOnEmptyStream(t *testing.T) {
	var m tea.Model = NewModel("empty", stream.New())
	m = press(m, "down", "G")
	assert.Equal(t, 0, m.(Model).Cursor())
	assert.Contains(t, m.View(), "nothing to show")
}
