package stream

type Voice struct {
	Stream
	ID int
}

func NewVoice() *Voice {
	v := &Voice{}
	v.init(KindVoice, v)
	v.RenderOptions.DisplayClef = false
	v.RenderOptions.DisplayKeySignature = false
	v.RenderOptions.DisplayTimeSignature = false
	v.RenderOptions.StaffPadding = 0
	return v
}

func (v *Voice) Clone(deep bool) Element {
	c := &Voice{ID: v.ID}
	v.copyInto(&c.Stream, c, deep)
	return c
}

type Measure struct {
	Stream
	Number int

	// amount of the bar before the first note, for pickup measures
	PaddingLeft  float64
	PaddingRight float64
}

func NewMeasure() *Measure {
	m := &Measure{}
	m.init(KindMeasure, m)
	return m
}

func (m *Measure) Clone(deep bool) Element {
	c := &Measure{Number: m.Number, PaddingLeft: m.PaddingLeft, PaddingRight: m.PaddingRight}
	m.copyInto(&c.Stream, c, deep)
	return c
}

type Part struct {
	Stream
}

func NewPart() *Part {
	p := &Part{}
	p.init(KindPart, p)
	return p
}

func (p *Part) Clone(deep bool) Element {
	c := &Part{}
	p.copyInto(&c.Stream, c, deep)
	return c
}

type Score struct {
	Stream
}

func NewScore() *Score {
	s := &Score{}
	s.init(KindScore, s)
	return s
}

func (s *Score) Clone(deep bool) Element {
	c := &Score{}
	s.copyInto(&c.Stream, c, deep)
	return c
}
