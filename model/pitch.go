package model

import (
	"fmt"
	"strconv"
	"strings"
)

var StepNames = []string{"C", "D", "E", "F", "G", "A", "B"}

var stepSemitones = map[string]int{"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11}

type Pitch struct {
	Step       string      `json:"step"`
	Octave     int         `json:"octave"`
	Accidental *Accidental `json:"accidental,omitempty"`
}

// ParsePitch reads names like "C4", "G#3", "E-3", "Bn2" or "F##5".
// A missing octave defaults to 4.
func ParsePitch(name string) (Pitch, error) {
	var p Pitch
	name = strings.TrimSpace(name)
	if name == "" {
		return p, fmt.Errorf("empty pitch name")
	}
	step := strings.ToUpper(name[:1])
	if _, ok := stepSemitones[step]; !ok {
		return p, fmt.Errorf("bad step in pitch name %q", name)
	}
	p.Step = step
	rest := name[1:]
	i := len(rest)
	for i > 0 && (rest[i-1] >= '0' && rest[i-1] <= '9') {
		i--
	}
	modifier, octave := rest[:i], rest[i:]
	p.Octave = 4
	if octave != "" {
		o, err := strconv.Atoi(octave)
		if err != nil {
			return p, fmt.Errorf("bad octave in pitch name %q: %v", name, err)
		}
		p.Octave = o
	}
	if modifier != "" {
		acc, err := NewAccidental(modifier)
		if err != nil {
			return p, fmt.Errorf("bad accidental in pitch name %q: %v", name, err)
		}
		p.Accidental = acc
	}
	return p, nil
}

func MustParsePitch(name string) Pitch {
	p, err := ParsePitch(name)
	if err != nil {
		panic(err)
	}
	return p
}

// PitchFromMIDI spells black keys with sharps.
func PitchFromMIDI(number int) Pitch {
	names := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := number/12 - 1
	p := MustParsePitch(names[number%12])
	p.Octave = octave
	return p
}

func (p Pitch) Alter() float64 {
	if p.Accidental == nil {
		return 0
	}
	return p.Accidental.Alter
}

func (p Pitch) StepIndex() int {
	for i, s := range StepNames {
		if s == p.Step {
			return i
		}
	}
	return 0
}

// DiatonicNoteNum counts white keys from C0 = 1.
func (p Pitch) DiatonicNoteNum() int {
	return p.Octave*7 + p.StepIndex() + 1
}

func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + stepSemitones[p.Step] + int(p.Alter())
}

func (p Pitch) Name() string {
	return p.Step + p.Accidental.Modifier()
}

func (p Pitch) NameWithOctave() string {
	return fmt.Sprintf("%s%d", p.Name(), p.Octave)
}

func (p Pitch) Clone() Pitch {
	c := p
	c.Accidental = p.Accidental.Clone()
	return c
}

func (p Pitch) String() string {
	return p.NameWithOctave()
}
