package stream

import (
	"github.com/google/uuid"
	"github.com/jsphweid/scorestream/model"
	"github.com/pkg/errors"
)

// Element is anything a Stream can hold.
type Element interface {
	Core() *Base
	Kind() Kind
	Duration() model.Duration
	Clone(deep bool) Element
}

// Base carries the state every element shares: identity, offset,
// duration and the containers it belongs to.
type Base struct {
	id        uuid.UUID
	offset    float64
	hasOffset bool
	duration  model.Duration

	// keyed by container id; containers do not own their elements
	sites      map[uuid.UUID]struct{}
	activeSite *Stream

	renderedX float64
	rendered  bool
}

func newBase(quarterLength float64) Base {
	return Base{id: uuid.New(), duration: model.NewDuration(quarterLength)}
}

func (b *Base) Id() uuid.UUID {
	return b.id
}

func (b *Base) Offset() float64 {
	return b.offset
}

// HasOffset is false until the element is placed or given an explicit offset.
func (b *Base) HasOffset() bool {
	return b.hasOffset
}

func (b *Base) SetOffset(offset float64) {
	b.offset = offset
	b.hasOffset = true
}

func (b *Base) ClearOffset() {
	b.offset = 0
	b.hasOffset = false
}

func (b *Base) Duration() model.Duration {
	return b.duration
}

func (b *Base) SetDuration(d model.Duration) {
	b.duration = d
}

func (b *Base) AddSite(s *Stream) {
	if b.sites == nil {
		b.sites = make(map[uuid.UUID]struct{})
	}
	b.sites[s.id] = struct{}{}
}

func (b *Base) RemoveSite(s *Stream) {
	delete(b.sites, s.id)
	if b.activeSite == s {
		b.activeSite = nil
	}
}

func (b *Base) HasSite(s *Stream) bool {
	_, ok := b.sites[s.id]
	return ok
}

func (b *Base) NumSites() int {
	return len(b.sites)
}

func (b *Base) ActiveSite() *Stream {
	return b.activeSite
}

func (b *Base) SetActiveSite(s *Stream) {
	b.activeSite = s
}

// RenderedX is the horizontal position assigned by the last layout pass.
func (b *Base) RenderedX() (float64, bool) {
	return b.renderedX, b.rendered
}

func (b *Base) SetRenderedX(x float64) {
	b.renderedX = x
	b.rendered = true
}

func (b *Base) ClearRendered() {
	b.renderedX = 0
	b.rendered = false
}

// clone keeps position and duration; the copy gets a fresh id and no sites.
func (b *Base) clone() Base {
	return Base{
		id:         uuid.New(),
		offset:     b.offset,
		hasOffset:  b.hasOffset,
		duration:   b.duration,
		activeSite: b.activeSite,
	}
}

// checkElement turns a nil, panicking or badly timed element into an error.
func checkElement(el Element) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrBadElement, "%v", r)
		}
	}()
	if el == nil {
		return errors.Wrap(ErrBadElement, "nil element")
	}
	if el.Core() == nil {
		return errors.Wrap(ErrBadElement, "element has no core")
	}
	if verr := el.Duration().Validate(); verr != nil {
		return errors.Wrap(ErrBadElement, verr.Error())
	}
	return nil
}

// quarterLength reads an element's length, treating an unusable duration as zero.
func quarterLength(el Element) float64 {
	d := el.Duration()
	if d.Validate() != nil {
		return 0
	}
	return d.QuarterLength
}
