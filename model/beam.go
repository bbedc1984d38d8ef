package model

type Beam struct {
	Type      string `json:"type"` // start, continue, stop, partial
	Direction string `json:"direction,omitempty"`
	Number    int    `json:"number"`
}

type Beams struct {
	Beams []Beam `json:"beams,omitempty"`
}

func (b *Beams) Append(typ string, direction string) {
	b.Beams = append(b.Beams, Beam{Type: typ, Direction: direction, Number: len(b.Beams) + 1})
}

func (b Beams) Len() int {
	return len(b.Beams)
}

// Types lists the beam types from the outermost beam in.
func (b Beams) Types() []string {
	var res []string
	for _, beam := range b.Beams {
		res = append(res, beam.Type)
	}
	return res
}

func (b Beams) Clone() Beams {
	var c Beams
	c.Beams = append(c.Beams, b.Beams...)
	return c
}
