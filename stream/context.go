package stream

import "github.com/jsphweid/scorestream/model"

const DefaultTempo = 120.0

// resolve walks the active-site chain from s and returns the first local
// value found, or fallback when the chain runs out.
func resolve[T any](s *Stream, local func(*Stream) (T, bool), fallback func() T) T {
	seen := make(map[*Stream]bool)
	for cur := s; cur != nil && !seen[cur]; cur = cur.activeSite {
		seen[cur] = true
		if v, ok := local(cur); ok {
			return v
		}
	}
	return fallback()
}

// Clef resolves locally, then through active sites, defaulting to treble.
func (s *Stream) Clef() *Clef {
	return resolve(s, func(cur *Stream) (*Clef, bool) {
		return cur.clef, cur.clef != nil
	}, TrebleClef)
}

func (s *Stream) SetClef(c *Clef) {
	s.clef = c
}

// KeySignature is nil when no stream in the chain has one.
func (s *Stream) KeySignature() *KeySignature {
	return resolve(s, func(cur *Stream) (*KeySignature, bool) {
		return cur.keySignature, cur.keySignature != nil
	}, func() *KeySignature { return nil })
}

func (s *Stream) SetKeySignature(ks *KeySignature) {
	s.keySignature = ks
}

// TimeSignature is nil when no stream in the chain has one.
func (s *Stream) TimeSignature() *TimeSignature {
	return resolve(s, func(cur *Stream) (*TimeSignature, bool) {
		return cur.timeSignature, cur.timeSignature != nil
	}, func() *TimeSignature { return nil })
}

func (s *Stream) SetTimeSignature(ts *TimeSignature) {
	s.timeSignature = ts
}

func (s *Stream) Instrument() model.Instrument {
	return resolve(s, func(cur *Stream) (model.Instrument, bool) {
		if cur.instrument == nil {
			return model.Instrument{}, false
		}
		return *cur.instrument, true
	}, model.DefaultInstrument)
}

func (s *Stream) SetInstrument(inst model.Instrument) {
	s.instrument = &inst
}

// Tempo is in quarter notes per minute.
func (s *Stream) Tempo() float64 {
	return resolve(s, func(cur *Stream) (float64, bool) {
		return cur.tempo, cur.tempo > 0
	}, func() float64 { return DefaultTempo })
}

func (s *Stream) SetTempo(qpm float64) {
	s.tempo = qpm
}

func (s *Stream) AutoBeam() bool {
	return resolve(s, func(cur *Stream) (bool, bool) {
		if cur.autoBeam == nil {
			return false, false
		}
		return *cur.autoBeam, true
	}, func() bool { return true })
}

func (s *Stream) SetAutoBeam(on bool) {
	s.autoBeam = &on
}

// Attributes are the contextual values a stream sets itself.
type Attributes struct {
	Clef          *Clef
	KeySignature  *KeySignature
	TimeSignature *TimeSignature
	Instrument    *model.Instrument
	Tempo         float64
	Duration      *model.Duration
}

// LocalAttributes ignores active sites and defaults.
func (s *Stream) LocalAttributes() Attributes {
	return Attributes{
		Clef:          s.clef,
		KeySignature:  s.keySignature,
		TimeSignature: s.timeSignature,
		Instrument:    s.instrument,
		Tempo:         s.tempo,
		Duration:      s.durationOverride,
	}
}
