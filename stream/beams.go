package stream

import (
	"github.com/jsphweid/scorestream/meter"
	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/util"
	"github.com/pkg/errors"
)

type BeamOptions struct {
	InPlace bool
}

// MakeBeams assigns beams to the notes of every measure (or of s itself
// when s is a measure). Without InPlace the work is done on a deep clone.
func (s *Stream) MakeBeams(opts BeamOptions) (*Stream, error) {
	target := s
	if !opts.InPlace {
		target, _ = asStream(s.Self().Clone(true))
	}

	var measures []*Measure
	if m, ok := target.Self().(*Measure); ok {
		measures = []*Measure{m}
	} else {
		measures = target.MeasureList()
	}

	var last *TimeSignature
	for _, m := range measures {
		if m.timeSignature != nil {
			last = m.timeSignature
		} else if last == nil {
			last = m.TimeSignature()
		}
		if last == nil {
			return nil, errors.Wrapf(ErrNoTimeSignature, "cannot beam measure %d", m.Number)
		}

		noteStream := m.NotesAndRests()
		if noteStream.Notes().Len() <= 1 {
			continue
		}
		var durs []float64
		var srcs []meter.BeamSource
		for _, e := range noteStream.entries {
			ql := quarterLength(e.el)
			durs = append(durs, ql)
			srcs = append(srcs, meter.BeamSource{QuarterLength: ql, IsRest: e.el.Kind() == KindRest})
		}
		barQL := last.BarDuration().QuarterLength
		if util.Sum(durs) > barQL {
			continue
		}

		offset := 0.0
		if m.PaddingLeft != 0 {
			offset = m.PaddingLeft
		} else if ht := noteStream.HighestTime(); ht < barQL {
			offset = barQL - ht
		}

		beamsList := last.Meter.GetBeams(srcs, offset)
		for i, e := range noteStream.entries {
			var beams model.Beams
			if i < len(beamsList) {
				beams = beamsList[i]
			}
			switch n := e.el.(type) {
			case *Note:
				n.Beams = beams
			case *Chord:
				n.Beams = beams
			}
		}
	}
	return target, nil
}
