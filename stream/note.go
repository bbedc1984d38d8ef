package stream

import (
	"fmt"
	"strings"

	"github.com/jsphweid/scorestream/model"
)

type Note struct {
	Base
	Pitch         model.Pitch
	Beams         model.Beams
	StemDirection string
}

func NewNote(p model.Pitch, quarterLength float64) *Note {
	return &Note{Base: newBase(quarterLength), Pitch: p}
}

// ParseNote builds a note from a pitch name such as "G#3".
func ParseNote(name string, quarterLength float64) (*Note, error) {
	p, err := model.ParsePitch(name)
	if err != nil {
		return nil, err
	}
	return NewNote(p, quarterLength), nil
}

func (n *Note) Core() *Base { return &n.Base }
func (n *Note) Kind() Kind  { return KindNote }

func (n *Note) Clone(deep bool) Element {
	return &Note{
		Base:          n.Base.clone(),
		Pitch:         n.Pitch.Clone(),
		Beams:         n.Beams.Clone(),
		StemDirection: n.StemDirection,
	}
}

func (n *Note) String() string {
	return fmt.Sprintf("<Note %v>", n.Pitch)
}

type Chord struct {
	Base
	notes         []*Note
	Beams         model.Beams
	StemDirection string
}

func NewChord(pitches []model.Pitch, quarterLength float64) *Chord {
	c := &Chord{Base: newBase(quarterLength)}
	for _, p := range pitches {
		c.notes = append(c.notes, NewNote(p, quarterLength))
	}
	return c
}

func ParseChord(names []string, quarterLength float64) (*Chord, error) {
	var pitches []model.Pitch
	for _, name := range names {
		p, err := model.ParsePitch(name)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, p)
	}
	return NewChord(pitches, quarterLength), nil
}

func (c *Chord) Core() *Base { return &c.Base }
func (c *Chord) Kind() Kind  { return KindChord }

// Notes returns the chord members in the order they were added.
func (c *Chord) Notes() []*Note {
	return append([]*Note(nil), c.notes...)
}

func (c *Chord) Add(n *Note) {
	n.SetDuration(c.Duration())
	c.notes = append(c.notes, n)
}

func (c *Chord) Pitches() []model.Pitch {
	var res []model.Pitch
	for _, n := range c.notes {
		res = append(res, n.Pitch)
	}
	return res
}

func (c *Chord) Clone(deep bool) Element {
	res := &Chord{Base: c.Base.clone(), Beams: c.Beams.Clone(), StemDirection: c.StemDirection}
	for _, n := range c.notes {
		res.notes = append(res.notes, n.Clone(true).(*Note))
	}
	return res
}

func (c *Chord) String() string {
	var names []string
	for _, p := range c.Pitches() {
		names = append(names, p.NameWithOctave())
	}
	return fmt.Sprintf("<Chord %s>", strings.Join(names, " "))
}

type Rest struct {
	Base
}

func NewRest(quarterLength float64) *Rest {
	return &Rest{Base: newBase(quarterLength)}
}

func (r *Rest) Core() *Base { return &r.Base }
func (r *Rest) Kind() Kind  { return KindRest }

func (r *Rest) Clone(deep bool) Element {
	return &Rest{Base: r.Base.clone()}
}

func (r *Rest) String() string {
	return fmt.Sprintf("<Rest %v>", r.duration.QuarterLength)
}
