package stream

import (
	"fmt"

	"github.com/jsphweid/scorestream/key"
	"github.com/jsphweid/scorestream/meter"
	"github.com/jsphweid/scorestream/model"
)

type Clef struct {
	Base
	Name string
	Sign string
	Line int

	// diatonic note number of the bottom staff line
	LowestLine int
}

var clefTable = map[string]Clef{
	"treble":     {Sign: "G", Line: 2, LowestLine: 31},
	"bass":       {Sign: "F", Line: 4, LowestLine: 19},
	"alto":       {Sign: "C", Line: 3, LowestLine: 25},
	"tenor":      {Sign: "C", Line: 4, LowestLine: 23},
	"percussion": {Sign: "percussion", Line: 3, LowestLine: 31},
}

func NewClef(name string) (*Clef, error) {
	proto, ok := clefTable[name]
	if !ok {
		return nil, fmt.Errorf("unknown clef %q", name)
	}
	c := proto
	c.Base = newBase(0)
	c.Name = name
	return &c, nil
}

func TrebleClef() *Clef {
	c, _ := NewClef("treble")
	return c
}

func (c *Clef) Core() *Base { return &c.Base }
func (c *Clef) Kind() Kind  { return KindClef }

func (c *Clef) Clone(deep bool) Element {
	res := *c
	res.Base = c.Base.clone()
	return &res
}

func (c *Clef) String() string {
	return fmt.Sprintf("<Clef %s>", c.Name)
}

// StemDirection points stems down when the pitches sit, on balance, at or
// above the middle staff line.
func (c *Clef) StemDirection(pitches ...model.Pitch) string {
	if len(pitches) == 0 {
		return ""
	}
	middle := c.LowestLine + 4
	total := 0
	for _, p := range pitches {
		total += p.DiatonicNoteNum() - middle
	}
	if total >= 0 {
		return "down"
	}
	return "up"
}

func (c *Clef) setStemDirection(el Element) {
	switch n := el.(type) {
	case *Note:
		if n.StemDirection == "" {
			n.StemDirection = c.StemDirection(n.Pitch)
		}
	case *Chord:
		if n.StemDirection == "" {
			n.StemDirection = c.StemDirection(n.Pitches()...)
		}
	}
}

type KeySignature struct {
	Base
	Sharps int
}

func NewKeySignature(sharps int) *KeySignature {
	return &KeySignature{Base: newBase(0), Sharps: sharps}
}

func (k *KeySignature) Core() *Base { return &k.Base }
func (k *KeySignature) Kind() Kind  { return KindKeySignature }

func (k *KeySignature) Clone(deep bool) Element {
	return &KeySignature{Base: k.Base.clone(), Sharps: k.Sharps}
}

func (k *KeySignature) AlterationForStep(step string) float64 {
	return key.AlterationForStep(k.Sharps, step)
}

func (k *KeySignature) String() string {
	return fmt.Sprintf("<KeySignature %d>", k.Sharps)
}

type TimeSignature struct {
	Base
	Meter meter.Meter
}

func NewTimeSignature(ratio string) (*TimeSignature, error) {
	m, err := meter.Parse(ratio)
	if err != nil {
		return nil, err
	}
	return &TimeSignature{Base: newBase(0), Meter: m}, nil
}

func MustTimeSignature(ratio string) *TimeSignature {
	ts, err := NewTimeSignature(ratio)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t *TimeSignature) Core() *Base { return &t.Base }
func (t *TimeSignature) Kind() Kind  { return KindTimeSignature }

func (t *TimeSignature) Clone(deep bool) Element {
	return &TimeSignature{Base: t.Base.clone(), Meter: t.Meter}
}

func (t *TimeSignature) Ratio() string {
	return t.Meter.String()
}

func (t *TimeSignature) BarDuration() model.Duration {
	return t.Meter.BarDuration()
}

func (t *TimeSignature) String() string {
	return fmt.Sprintf("<TimeSignature %s>", t.Ratio())
}
