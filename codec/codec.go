package codec

import (
	"strings"

	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/stream"
	"github.com/pkg/errors"
)

var ErrBadDocument = errors.New("bad score document")

type container interface {
	stream.Element
	Inner() *stream.Stream
}

// Decode builds the element a document describes. Children without an
// offset are appended, the rest inserted at their offset.
func Decode(doc model.ScoreDoc) (stream.Element, error) {
	kind, err := stream.ParseKind(doc.Kind)
	if err != nil {
		return nil, errors.Wrap(ErrBadDocument, err.Error())
	}
	ql := 0.0
	if doc.QuarterLength != nil {
		ql = *doc.QuarterLength
		if err := model.NewDuration(ql).Validate(); err != nil {
			return nil, errors.Wrapf(ErrBadDocument, "%v: %v", doc.Kind, err)
		}
	}

	var el stream.Element
	switch kind {
	case stream.KindNote:
		p, err := decodePitch(doc.Pitch, doc.Displayed, 0)
		if err != nil {
			return nil, err
		}
		n := stream.NewNote(p, ql)
		n.Beams = decodeBeams(doc.Beams)
		el = n
	case stream.KindChord:
		if len(doc.Pitches) == 0 {
			return nil, errors.Wrap(ErrBadDocument, "chord without pitches")
		}
		var pitches []model.Pitch
		for i, name := range doc.Pitches {
			p, err := decodePitch(name, doc.Displayed, i)
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}
		c := stream.NewChord(pitches, ql)
		c.Beams = decodeBeams(doc.Beams)
		el = c
	case stream.KindRest:
		el = stream.NewRest(ql)
	case stream.KindClef:
		c, err := stream.NewClef(doc.Clef)
		if err != nil {
			return nil, errors.Wrap(ErrBadDocument, err.Error())
		}
		el = c
	case stream.KindKeySignature:
		if doc.Sharps == nil {
			return nil, errors.Wrap(ErrBadDocument, "key signature without sharps")
		}
		el = stream.NewKeySignature(*doc.Sharps)
	case stream.KindTimeSignature:
		ts, err := stream.NewTimeSignature(doc.TimeSignature)
		if err != nil {
			return nil, errors.Wrap(ErrBadDocument, err.Error())
		}
		el = ts
	default:
		c, err := decodeContainer(kind, doc)
		if err != nil {
			return nil, err
		}
		el = c
	}
	if doc.Offset != nil {
		el.Core().SetOffset(*doc.Offset)
	}
	return el, nil
}

// DecodeStream decodes a document that must describe a container.
func DecodeStream(doc model.ScoreDoc) (*stream.Stream, error) {
	el, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	c, ok := el.(container)
	if !ok {
		return nil, errors.Wrapf(ErrBadDocument, "%v is not a stream", doc.Kind)
	}
	return c.Inner(), nil
}

func newContainer(kind stream.Kind, doc model.ScoreDoc) container {
	switch kind {
	case stream.KindVoice:
		v := stream.NewVoice()
		v.ID = doc.Number
		return v
	case stream.KindMeasure:
		m := stream.NewMeasure()
		m.Number = doc.Number
		return m
	case stream.KindPart:
		return stream.NewPart()
	case stream.KindScore:
		return stream.NewScore()
	}
	return stream.New()
}

func decodeContainer(kind stream.Kind, doc model.ScoreDoc) (container, error) {
	c := newContainer(kind, doc)
	s := c.Inner()

	if doc.Clef != "" {
		clef, err := stream.NewClef(doc.Clef)
		if err != nil {
			return nil, errors.Wrap(ErrBadDocument, err.Error())
		}
		s.SetClef(clef)
	}
	if doc.Sharps != nil {
		s.SetKeySignature(stream.NewKeySignature(*doc.Sharps))
	}
	if doc.TimeSignature != "" {
		ts, err := stream.NewTimeSignature(doc.TimeSignature)
		if err != nil {
			return nil, errors.Wrap(ErrBadDocument, err.Error())
		}
		s.SetTimeSignature(ts)
	}
	if doc.Tempo < 0 {
		return nil, errors.Wrapf(ErrBadDocument, "negative tempo %v", doc.Tempo)
	}
	s.SetTempo(doc.Tempo)
	if doc.Instrument != nil {
		s.SetInstrument(*doc.Instrument)
	}
	if doc.QuarterLength != nil {
		s.SetDuration(model.NewDuration(*doc.QuarterLength))
	}

	for _, childDoc := range doc.Elements {
		if childDoc.Offset != nil && *childDoc.Offset < 0 {
			return nil, errors.Wrapf(ErrBadDocument, "negative offset %v", *childDoc.Offset)
		}
		child, err := Decode(childDoc)
		if err != nil {
			return nil, err
		}
		if childDoc.Offset == nil {
			s.Append(child)
		} else {
			s.Insert(*childDoc.Offset, child)
		}
	}
	return c, nil
}

func decodePitch(name string, displayed []bool, i int) (model.Pitch, error) {
	p, err := model.ParsePitch(name)
	if err != nil {
		return p, errors.Wrap(ErrBadDocument, err.Error())
	}
	if p.Accidental != nil && i < len(displayed) {
		p.Accidental.DisplayStatus = model.DisplayHidden
		if displayed[i] {
			p.Accidental.DisplayStatus = model.DisplayShown
		}
	}
	return p, nil
}

// beams are written as "start", "stop", "partial-left" and so on
func decodeBeams(names []string) model.Beams {
	var b model.Beams
	for _, name := range names {
		typ, dir, _ := strings.Cut(name, "-")
		b.Append(typ, dir)
	}
	return b
}

func encodeBeams(b model.Beams) []string {
	var res []string
	for _, beam := range b.Beams {
		name := beam.Type
		if beam.Direction != "" {
			name += "-" + beam.Direction
		}
		res = append(res, name)
	}
	return res
}

func encodeDisplayed(pitches ...model.Pitch) []bool {
	set := false
	res := make([]bool, len(pitches))
	for i, p := range pitches {
		if p.Accidental != nil && p.Accidental.DisplayStatus != model.DisplayUnset {
			set = true
		}
		res[i] = p.Accidental.Displayed()
	}
	if !set {
		return nil
	}
	return res
}

func ptr(v float64) *float64 {
	return &v
}

// Encode writes el and, for containers, its children with their offsets
// in the container.
func Encode(el stream.Element) model.ScoreDoc {
	doc := model.ScoreDoc{Kind: el.Kind().String(), Id: el.Core().Id().String()}
	if el.Core().HasOffset() {
		doc.Offset = ptr(el.Core().Offset())
	}

	switch e := el.(type) {
	case *stream.Note:
		doc.QuarterLength = ptr(e.Duration().QuarterLength)
		doc.Pitch = e.Pitch.NameWithOctave()
		doc.Beams = encodeBeams(e.Beams)
		doc.Displayed = encodeDisplayed(e.Pitch)
	case *stream.Chord:
		doc.QuarterLength = ptr(e.Duration().QuarterLength)
		for _, p := range e.Pitches() {
			doc.Pitches = append(doc.Pitches, p.NameWithOctave())
		}
		doc.Beams = encodeBeams(e.Beams)
		doc.Displayed = encodeDisplayed(e.Pitches()...)
	case *stream.Rest:
		doc.QuarterLength = ptr(e.Duration().QuarterLength)
	case *stream.Clef:
		doc.Clef = e.Name
	case *stream.KeySignature:
		sharps := e.Sharps
		doc.Sharps = &sharps
	case *stream.TimeSignature:
		doc.TimeSignature = e.Ratio()
	case container:
		encodeContainer(e, &doc)
	}
	return doc
}

func encodeContainer(c container, doc *model.ScoreDoc) {
	s := c.Inner()
	switch v := c.(type) {
	case *stream.Voice:
		doc.Number = v.ID
	case *stream.Measure:
		doc.Number = v.Number
	}

	attrs := s.LocalAttributes()
	if attrs.Clef != nil {
		doc.Clef = attrs.Clef.Name
	}
	if attrs.KeySignature != nil {
		sharps := attrs.KeySignature.Sharps
		doc.Sharps = &sharps
	}
	if attrs.TimeSignature != nil {
		doc.TimeSignature = attrs.TimeSignature.Ratio()
	}
	doc.Tempo = attrs.Tempo
	doc.Instrument = attrs.Instrument
	if attrs.Duration != nil {
		doc.QuarterLength = ptr(attrs.Duration.QuarterLength)
	}

	for _, child := range s.Elements() {
		doc.Elements = append(doc.Elements, Encode(child))
	}
}

// EncodeOffsetMap lists every element of s with its time span and voice.
func EncodeOffsetMap(s *stream.Stream) []model.OffsetMapEntry {
	res := make([]model.OffsetMapEntry, 0)
	for _, om := range s.OffsetMap() {
		e := model.OffsetMapEntry{
			Id:      om.Element.Core().Id().String(),
			Kind:    om.Element.Kind().String(),
			Offset:  om.Offset,
			EndTime: om.EndTime,
		}
		if om.HasVoice() {
			vi := om.VoiceIndex
			e.VoiceIndex = &vi
		}
		switch n := om.Element.(type) {
		case *stream.Note:
			e.Pitches = []string{n.Pitch.NameWithOctave()}
		case *stream.Chord:
			for _, p := range n.Pitches() {
				e.Pitches = append(e.Pitches, p.NameWithOctave())
			}
		}
		res = append(res, e)
	}
	return res
}
