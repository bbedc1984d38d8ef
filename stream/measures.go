package stream

import "github.com/pkg/errors"

type MeasureOptions struct {
	// InPlace replaces the receiver's children with the measures.
	InPlace bool
}

// timeSignatureAt returns the last signature at or before offset, or the
// first one when all of them start later.
func timeSignatureAt(meters *Stream, offset float64) *TimeSignature {
	var found *TimeSignature
	for _, e := range meters.entries {
		ts := e.el.(*TimeSignature)
		if e.offset <= offset || found == nil {
			found = ts
		}
		if e.offset > offset {
			break
		}
	}
	return found
}

// placement is one element waiting to go into a measure or one of its voices.
type placement struct {
	el     Element
	target *Stream
	offset float64
}

// measurePlan is a finished segmentation that has not touched any element yet.
type measurePlan struct {
	post       *Stream
	clef       *Clef
	placements []placement
}

// leadingClef is a Clef child at offset 0, used when no clef is set locally.
func (s *Stream) leadingClef() *Clef {
	for _, e := range s.entries {
		if e.offset > 0 {
			break
		}
		if c, ok := e.el.(*Clef); ok {
			return c
		}
	}
	return nil
}

// MakeMeasures splits s into bar-length measures under the prevailing time
// signature. The clef element matching the first measure's clef, and time
// signatures at the start of a bar, are not copied into measure bodies.
// On error neither s nor its elements are changed.
func (s *Stream) MakeMeasures(opts MeasureOptions) (*Stream, error) {
	plan, err := s.planMeasures()
	if err != nil {
		return nil, err
	}
	return s.applyMeasures(plan, opts.InPlace), nil
}

func (s *Stream) planMeasures() (*measurePlan, error) {
	voiceCount := len(s.VoiceList())

	meters := s.GetElementsByClass("TimeSignature")
	if meters.Len() == 0 {
		ts := s.TimeSignature()
		if ts == nil {
			return nil, errors.Wrapf(ErrNoTimeSignature, "cannot make measures for %v", s)
		}
		meters.entries = append(meters.entries, entry{el: ts, offset: 0})
	}

	clef := s.clef
	if clef == nil {
		clef = s.leadingClef()
	}
	if clef == nil {
		clef = s.Clef()
	}
	offsetMap := s.OffsetMap()
	oMax := 0.0
	for _, om := range offsetMap {
		if om.EndTime > oMax {
			oMax = om.EndTime
		}
	}

	post := s.deriveEmpty()
	post.clef = clef

	var measures []*Measure
	var starts, bars []float64
	o := 0.0
	for number := 1; ; number++ {
		ts := timeSignatureAt(meters, o)
		bar := ts.BarDuration().QuarterLength
		if bar <= 0 {
			return nil, errors.Wrapf(ErrNoTimeSignature, "time signature %v has no length", ts.Ratio())
		}

		m := NewMeasure()
		m.Number = number
		if number == 1 {
			m.SetClef(clef)
		}
		m.SetTimeSignature(ts.Clone(false).(*TimeSignature))
		for vi := 0; vi < voiceCount; vi++ {
			v := NewVoice()
			v.ID = vi
			m.Insert(0, v)
		}
		post.Insert(o, m)
		measures = append(measures, m)
		starts = append(starts, o)
		bars = append(bars, bar)

		o += bar
		if o >= oMax {
			break
		}
	}

	plan := &measurePlan{post: post, clef: clef}
	for _, om := range offsetMap {
		match := -1
		for j := range measures {
			if om.Offset >= starts[j] && om.Offset < starts[j]+bars[j] {
				match = j
				break
			}
		}
		if match < 0 {
			return nil, errors.Wrapf(ErrCannotPlace, "%v at %v-%v", om.Element, om.Offset, om.EndTime)
		}
		m := measures[match]
		oNew := om.Offset - starts[match]
		if c, ok := om.Element.(*Clef); ok && m.clef == c {
			continue
		}
		if oNew == 0 && IsClassOrSubclass(om.Element, "TimeSignature") {
			continue
		}
		target := &m.Stream
		if om.HasVoice() {
			target = &m.VoiceList()[om.VoiceIndex].Stream
		}
		plan.placements = append(plan.placements, placement{el: om.Element, target: target, offset: oNew})
	}
	return plan, nil
}

func (s *Stream) applyMeasures(plan *measurePlan, inPlace bool) *Stream {
	for _, pl := range plan.placements {
		pl.target.Insert(pl.offset, pl.el)
	}
	post := plan.post
	if !inPlace {
		return post
	}
	s.Clear()
	s.clef = plan.clef
	for _, e := range post.entries {
		e.el.Core().RemoveSite(post)
		s.entries = append(s.entries, e)
		s.register(e.el, e.offset)
	}
	return s
}
