package stream

import (
	"testing"

	"github.com/jsphweid/scorestream/model"
	"github.com/stretchr/testify/require"
)

func note(t *testing.T, name string, ql float64) *Note {
	t.Helper()
	n, err := ParseNote(name, ql)
	require.NoError(t, err)
	return n
}

func chord(t *testing.T, names []string, ql float64) *Chord {
	t.Helper()
	c, err := ParseChord(names, ql)
	require.NoError(t, err)
	return c
}

func pitchNames(s *Stream) []string {
	var res []string
	for _, el := range s.Elements() {
		if n, ok := el.(*Note); ok {
			res = append(res, n.Pitch.NameWithOctave())
		}
	}
	return res
}

func c4() model.Pitch {
	return model.MustParsePitch("C4")
}
