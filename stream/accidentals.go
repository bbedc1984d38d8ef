package stream

import (
	"github.com/jsphweid/scorestream/debug"
	"github.com/jsphweid/scorestream/model"
)

const numOctaves = 10

type stepAlters map[string]float64

func (sa stepAlters) copy() stepAlters {
	c := make(stepAlters, len(sa))
	for k, v := range sa {
		c[k] = v
	}
	return c
}

// MakeAccidentals decides which accidentals are shown. A pitch shows its
// accidental when its alteration differs from the last one seen on the
// same step, either in its octave or in any octave; the key signature
// seeds both. Chord members are handled one after another.
func (s *Stream) MakeAccidentals() *Stream {
	base := make(stepAlters)
	ks := s.KeySignature()
	for _, step := range model.StepNames {
		alter := 0.0
		if ks != nil {
			alter = ks.AlterationForStep(step)
		}
		base[step] = alter
	}
	byOctave := make([]stepAlters, numOctaves)
	for i := range byOctave {
		byOctave[i] = base.copy()
	}
	octaveless := base.copy()

	for _, el := range s.Elements() {
		switch n := el.(type) {
		case *Note:
			markAccidental(&n.Pitch, byOctave, octaveless)
		case *Chord:
			for _, cn := range n.notes {
				markAccidental(&cn.Pitch, byOctave, octaveless)
			}
		}
	}
	return s
}

func markAccidental(p *model.Pitch, byOctave []stepAlters, octaveless stepAlters) {
	if p.Octave < 0 || p.Octave >= len(byOctave) {
		debug.Log("accidental", "octave %d of %v is out of range", p.Octave, p.NameWithOctave())
		return
	}
	last := byOctave[p.Octave]
	alter := p.Alter()
	if last[p.Step] != alter || octaveless[p.Step] != alter {
		if p.Accidental == nil {
			p.Accidental = &model.Accidental{Name: "natural"}
		}
		p.Accidental.DisplayStatus = model.DisplayShown
		last[p.Step] = alter
		octaveless[p.Step] = alter
		return
	}
	if p.Accidental != nil {
		p.Accidental.DisplayStatus = model.DisplayHidden
	}
}
