package stream

import (
	"fmt"

	"github.com/jsphweid/scorestream/debug"
	"github.com/jsphweid/scorestream/model"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// entry pairs an element with its offset in this stream.
type entry struct {
	el     Element
	offset float64
}

// Stream is an offset-ordered container of elements. Offsets never
// decrease from one entry to the next.
type Stream struct {
	Base

	kind    Kind
	self    Element
	entries []entry

	durationOverride *model.Duration

	clef          *Clef
	keySignature  *KeySignature
	timeSignature *TimeSignature
	instrument    *model.Instrument
	tempo         float64
	autoBeam      *bool

	RenderOptions RenderOptions
}

func New() *Stream {
	s := &Stream{}
	s.init(KindStream, s)
	return s
}

// init prepares the embedded stream of a specialized container. self is
// the outermost value so clones keep their concrete type.
func (s *Stream) init(kind Kind, self Element) {
	s.Base = newBase(0)
	s.kind = kind
	s.self = self
	s.RenderOptions = DefaultRenderOptions()
}

func (s *Stream) Core() *Base { return &s.Base }
func (s *Stream) Kind() Kind  { return s.kind }

// Inner returns the stream itself; specialized containers inherit it.
func (s *Stream) Inner() *Stream { return s }

// Self is the outermost value wrapping this stream (a *Measure for a measure).
func (s *Stream) Self() Element {
	if s.self == nil {
		return s
	}
	return s.self
}

func (s *Stream) String() string {
	return fmt.Sprintf("<%v %d elements>", s.kind, len(s.entries))
}

func asStream(el Element) (*Stream, bool) {
	c, ok := el.(interface{ Inner() *Stream })
	if !ok {
		return nil, false
	}
	return c.Inner(), true
}

func (s *Stream) Len() int {
	return len(s.entries)
}

func (s *Stream) register(el Element, offset float64) {
	core := el.Core()
	core.SetOffset(offset)
	core.AddSite(s)
	core.SetActiveSite(s)
}

// Append places each element right after the current last element.
// Elements that cannot be appended are logged and skipped.
func (s *Stream) Append(els ...Element) *Stream {
	for _, el := range els {
		s.appendOne(el)
	}
	return s
}

func (s *Stream) appendOne(el Element) {
	if err := checkElement(el); err != nil {
		debug.Log("stream", "cannot append element to %v: %v", s, err)
		return
	}
	if inner, ok := asStream(el); ok && inner == s {
		debug.Log("stream", "cannot append %v to itself", s)
		return
	}
	if IsClassOrSubclass(el, "NotRest") {
		s.Clef().setStemDirection(el)
	}
	offset := 0.0
	if n := len(s.entries); n > 0 {
		last := s.entries[n-1]
		offset = last.offset + quarterLength(last.el)
	}
	s.entries = append(s.entries, entry{el: el, offset: offset})
	s.register(el, offset)
}

// insertIndex is the position after every entry at or before offset.
func (s *Stream) insertIndex(offset float64) int {
	for i, e := range s.entries {
		if e.offset > offset {
			return i
		}
	}
	return len(s.entries)
}

func (s *Stream) insertEntry(e entry) {
	s.entries = slices.Insert(s.entries, s.insertIndex(e.offset), e)
}

// Insert places el at offset, after any elements already at that offset.
func (s *Stream) Insert(offset float64, el Element) *Stream {
	if err := checkElement(el); err != nil {
		debug.Log("stream", "cannot insert element into %v: %v", s, err)
		return s
	}
	if offset < 0 {
		debug.Log("stream", "cannot insert %v at negative offset %v", el, offset)
		return s
	}
	s.insertEntry(entry{el: el, offset: offset})
	s.register(el, offset)
	return s
}

// InsertAndShift moves everything at or after offset later by el's length
// and then inserts el at offset.
func (s *Stream) InsertAndShift(offset float64, el Element) *Stream {
	if err := checkElement(el); err != nil {
		debug.Log("stream", "cannot insert element into %v: %v", s, err)
		return s
	}
	if offset < 0 {
		debug.Log("stream", "cannot insert %v at negative offset %v", el, offset)
		return s
	}
	shift := quarterLength(el)
	for i := range s.entries {
		if s.entries[i].offset >= offset {
			s.entries[i].offset += shift
			s.entries[i].el.Core().SetOffset(s.entries[i].offset)
		}
	}
	return s.Insert(offset, el)
}

// InsertAndShiftElement uses the element's own offset as the target.
func (s *Stream) InsertAndShiftElement(el Element) *Stream {
	if err := checkElement(el); err != nil {
		debug.Log("stream", "cannot insert element into %v: %v", s, err)
		return s
	}
	return s.InsertAndShift(el.Core().Offset(), el)
}

// Pop removes the last element; nil when the stream is empty.
func (s *Stream) Pop() Element {
	n := len(s.entries)
	if n == 0 {
		return nil
	}
	e := s.entries[n-1]
	s.entries = s.entries[:n-1]
	e.el.Core().RemoveSite(s)
	return e.el
}

// Remove drops el from the stream and from the element's sites.
func (s *Stream) Remove(el Element) error {
	i := s.Index(el)
	if i < 0 {
		return errors.Wrapf(ErrNotInStream, "cannot remove %v", el)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	el.Core().RemoveSite(s)
	return nil
}

func (s *Stream) Clear() {
	for _, e := range s.entries {
		e.el.Core().RemoveSite(s)
	}
	s.entries = nil
}

func (s *Stream) sync(e entry) Element {
	core := e.el.Core()
	core.SetOffset(e.offset)
	core.SetActiveSite(s)
	return e.el
}

// Get supports negative indices counting from the end. It returns nil when
// the index is out of range.
func (s *Stream) Get(index int) Element {
	n := len(s.entries)
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return nil
	}
	return s.sync(s.entries[index])
}

// Elements returns a fresh snapshot in offset order.
func (s *Stream) Elements() []Element {
	res := make([]Element, 0, len(s.entries))
	for _, e := range s.entries {
		res = append(res, s.sync(e))
	}
	return res
}

// Each visits elements in order until fn returns false.
func (s *Stream) Each(fn func(i int, el Element) bool) {
	for i, e := range append([]entry(nil), s.entries...) {
		if !fn(i, s.sync(e)) {
			return
		}
	}
}

// Offsets returns the offset of every element in order.
func (s *Stream) Offsets() []float64 {
	res := make([]float64, 0, len(s.entries))
	for _, e := range s.entries {
		res = append(res, e.offset)
	}
	return res
}

// SetElements replaces the contents. Elements without an offset, or whose
// offset equals the running end, are appended; the rest are inserted at
// their own offsets afterwards.
func (s *Stream) SetElements(els []Element) {
	s.Clear()
	highest := 0.0
	var pending []Element
	for _, el := range els {
		if err := checkElement(el); err != nil {
			debug.Log("stream", "cannot add element to %v: %v", s, err)
			continue
		}
		core := el.Core()
		if !core.HasOffset() || core.Offset() == highest {
			s.entries = append(s.entries, entry{el: el, offset: highest})
			s.register(el, highest)
			highest += quarterLength(el)
			continue
		}
		pending = append(pending, el)
	}
	for _, el := range pending {
		s.Insert(el.Core().Offset(), el)
	}
}

func (s *Stream) Index(el Element) int {
	return slices.IndexFunc(s.entries, func(e entry) bool {
		return e.el == el
	})
}

// SetElementOffset moves el to value without reordering. An element not in
// the stream is inserted when addIfMissing is set, otherwise it is an error.
func (s *Stream) SetElementOffset(el Element, value float64, addIfMissing bool) error {
	if value < 0 {
		return errors.Wrapf(ErrBadElement, "negative offset %v for %v", value, el)
	}
	i := s.Index(el)
	if i < 0 {
		if !addIfMissing {
			return errors.Wrapf(ErrNotInStream, "cannot set offset of %v", el)
		}
		if err := checkElement(el); err != nil {
			return err
		}
		s.Insert(value, el)
		return nil
	}
	s.entries[i].offset = value
	el.Core().SetOffset(value)
	return nil
}

func (s *Stream) ElementOffset(el Element) (float64, error) {
	i := s.Index(el)
	if i < 0 {
		return 0, errors.Wrapf(ErrNotInStream, "cannot find offset of %v", el)
	}
	return s.entries[i].offset, nil
}

// HighestTime is the latest end time of any element.
func (s *Stream) HighestTime() float64 {
	highest := 0.0
	for _, e := range s.entries {
		end := e.offset + quarterLength(e.el)
		if end > highest {
			highest = end
		}
	}
	return highest
}

// Duration is the explicit override when one is set, otherwise HighestTime.
func (s *Stream) Duration() model.Duration {
	if s.durationOverride != nil {
		return *s.durationOverride
	}
	return model.NewDuration(s.HighestTime())
}

// SetDuration overrides the computed duration until ClearDuration is called.
func (s *Stream) SetDuration(d model.Duration) {
	s.durationOverride = &d
}

func (s *Stream) ClearDuration() {
	s.durationOverride = nil
}

func (s *Stream) HasSubStreams() bool {
	for _, e := range s.entries {
		if IsClassOrSubclass(e.el, "Stream") {
			return true
		}
	}
	return false
}

func (s *Stream) HasVoices() bool {
	for _, e := range s.entries {
		if e.el.Kind() == KindVoice {
			return true
		}
	}
	return false
}

// HasPartLikeStreams reports whether the first sub-stream is a Part or a
// plain Stream, i.e. the children run in parallel rather than in sequence.
func (s *Stream) HasPartLikeStreams() bool {
	for _, e := range s.entries {
		switch e.el.Kind() {
		case KindPart, KindStream:
			return true
		case KindMeasure, KindVoice, KindScore:
			return false
		}
	}
	return false
}

func (s *Stream) copyInto(c *Stream, self Element, deep bool) {
	c.Base = s.Base.clone()
	c.kind = s.kind
	c.self = self
	c.tempo = s.tempo
	c.RenderOptions = s.RenderOptions
	if s.durationOverride != nil {
		d := *s.durationOverride
		c.durationOverride = &d
	}
	if s.instrument != nil {
		inst := *s.instrument
		c.instrument = &inst
	}
	if s.autoBeam != nil {
		b := *s.autoBeam
		c.autoBeam = &b
	}
	c.clef, c.keySignature, c.timeSignature = s.clef, s.keySignature, s.timeSignature
	if !deep {
		c.entries = append([]entry(nil), s.entries...)
		return
	}
	if s.clef != nil {
		c.clef = s.clef.Clone(true).(*Clef)
	}
	if s.keySignature != nil {
		c.keySignature = s.keySignature.Clone(true).(*KeySignature)
	}
	if s.timeSignature != nil {
		c.timeSignature = s.timeSignature.Clone(true).(*TimeSignature)
	}
	for _, e := range s.entries {
		el := e.el.Clone(true)
		c.entries = append(c.entries, entry{el: el, offset: e.offset})
		c.register(el, e.offset)
	}
}

// Clone copies the stream. A shallow clone shares elements with s; a deep
// clone copies every element recursively and becomes their only site.
func (s *Stream) Clone(deep bool) Element {
	c := &Stream{}
	s.copyInto(c, c, deep)
	return c
}

// deriveEmpty is a shallow clone of the receiver's concrete type with no
// elements, used for derived views.
func (s *Stream) deriveEmpty() *Stream {
	c, _ := asStream(s.Self().Clone(false))
	c.entries = nil
	c.durationOverride = nil
	return c
}
