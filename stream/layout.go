package stream

import (
	"math"

	"github.com/jsphweid/scorestream/constants"
	"github.com/jsphweid/scorestream/util"
)

type RenderOptions struct {
	Left  float64
	Top   float64
	Width float64

	StaffPadding   float64
	NaiveHeight    float64
	SystemPadding  float64
	MaxSystemWidth float64

	// OverriddenWidth replaces the estimated staff length when positive.
	OverriddenWidth float64

	DisplayClef          bool
	DisplayKeySignature  bool
	DisplayTimeSignature bool

	StartNewSystem bool
	SystemIndex    int
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		StaffPadding:         constants.StaffPadding,
		NaiveHeight:          constants.NaiveHeight,
		SystemPadding:        constants.SystemPadding,
		MaxSystemWidth:       constants.MaxSystemWidth,
		DisplayClef:          true,
		DisplayKeySignature:  true,
		DisplayTimeSignature: true,
	}
}

func (s *Stream) headerWidth() float64 {
	ro := s.RenderOptions
	w := 0.0
	if ro.DisplayClef {
		w += constants.ClefWidth
	}
	if ro.DisplayKeySignature {
		if ks := s.KeySignature(); ks != nil {
			w += constants.KeySigAccWidth * float64(util.Abs(ks.Sharps))
		}
	}
	if ro.DisplayTimeSignature {
		w += constants.TimeSigWidth
	}
	return w
}

// EstimateStaffLength guesses the rendered width of s in unscaled pixels.
func (s *Stream) EstimateStaffLength() float64 {
	ro := s.RenderOptions
	if ro.OverriddenWidth > 0 {
		return ro.OverriddenWidth
	}
	if s.HasVoices() {
		longest := 0.0
		for _, v := range s.VoiceList() {
			longest = util.Max(longest, v.EstimateStaffLength())
		}
		return longest + s.headerWidth()
	}
	if s.HasSubStreams() {
		total := 0.0
		for _, e := range s.entries {
			if sub, ok := asStream(e.el); ok {
				total += sub.EstimateStaffLength() + sub.RenderOptions.StaffPadding
			}
		}
		return total
	}
	return constants.NoteSpacing*float64(s.NotesAndRests().Len()) + s.headerWidth()
}

// NumSystems counts the systems assigned by the last layout pass.
func (s *Stream) NumSystems() int {
	highest := 0
	for _, e := range s.entries {
		if sub, ok := asStream(e.el); ok {
			highest = util.Max(highest, sub.RenderOptions.SystemIndex)
		}
	}
	return highest + 1
}

// EstimateStreamHeight: scores stack their parts in every system, parts
// stack their systems, anything else is one staff high.
func (s *Stream) EstimateStreamHeight() float64 {
	ro := s.RenderOptions
	staffHeight := ro.NaiveHeight
	switch s.kind {
	case KindScore:
		parts := s.PartList()
		numSystems := 1
		for _, p := range parts {
			numSystems = p.NumSystems()
		}
		numParts := float64(len(parts))
		return float64(numSystems)*staffHeight*numParts + float64(numSystems-1)*ro.SystemPadding
	case KindPart:
		numSystems := s.NumSystems()
		return float64(numSystems)*staffHeight + float64(numSystems-1)*ro.SystemPadding
	}
	return staffHeight
}

func (m *Measure) setDisplayFlags(newSystem bool, lastRatio string) {
	ro := &m.RenderOptions
	ro.DisplayClef = newSystem
	ro.DisplayKeySignature = newSystem
	ts := m.TimeSignature()
	ro.DisplayTimeSignature = ts != nil && ts.Ratio() != lastRatio
}

// placeElements gives every note and rest an x position, one spacing unit
// apart after the measure header. Voices all start at the same x.
func (m *Measure) placeElements() {
	start := m.RenderOptions.Left + m.headerWidth()
	place := func(s *Stream) {
		for i, e := range s.NotesAndRests().entries {
			e.el.Core().SetRenderedX(start + float64(i)*constants.NoteSpacing)
		}
	}
	if !m.HasVoices() {
		place(&m.Stream)
		return
	}
	for _, v := range m.VoiceList() {
		place(v.Flat())
	}
}

// layoutSystems breaks aligned measures of one or more parts into systems
// no wider than width. Measures sharing an index share a width.
func layoutSystems(parts [][]*Measure, width, staffHeight, systemPadding float64) {
	n := 0
	for _, ms := range parts {
		n = util.Max(n, len(ms))
	}
	systemHeight := float64(len(parts))*staffHeight + systemPadding
	lastRatio := make([]string, len(parts))

	measureWidth := func(i int, newSystem bool) float64 {
		w := 0.0
		for pi, ms := range parts {
			if i >= len(ms) {
				continue
			}
			m := ms[i]
			m.setDisplayFlags(newSystem, lastRatio[pi])
			w = util.Max(w, m.EstimateStaffLength()+m.RenderOptions.StaffPadding)
		}
		return w
	}

	systemIndex := 0
	x := 0.0
	for i := 0; i < n; i++ {
		newSystem := i == 0
		w := measureWidth(i, newSystem)
		if i > 0 && x+w > width {
			systemIndex++
			x = 0
			newSystem = true
			w = measureWidth(i, newSystem)
		}
		for pi, ms := range parts {
			if i >= len(ms) {
				continue
			}
			m := ms[i]
			ro := &m.RenderOptions
			ro.StartNewSystem = newSystem && i > 0
			ro.SystemIndex = systemIndex
			ro.Left = x
			ro.Top = float64(systemIndex)*systemHeight + float64(pi)*staffHeight
			ro.Width = w
			m.placeElements()
			if ts := m.TimeSignature(); ts != nil {
				lastRatio[pi] = ts.Ratio()
			}
		}
		x += w
	}
}

// FixSystemLayout assigns measures to systems and positions their notes.
// A non-positive width uses MaxSystemWidth.
func (p *Part) FixSystemLayout(width float64) {
	ro := p.RenderOptions
	if width <= 0 {
		width = ro.MaxSystemWidth
	}
	layoutSystems([][]*Measure{p.MeasureList()}, width, ro.NaiveHeight, ro.SystemPadding)
}

func (p *Part) SystemIndexFromScaledY(y float64) int {
	ro := p.RenderOptions
	idx := int(math.Floor(y / (ro.NaiveHeight + ro.SystemPadding)))
	return util.Clamp(idx, 0, p.NumSystems()-1)
}

// FixSystemLayout lays out all parts together so bar lines line up.
func (s *Score) FixSystemLayout(width float64) {
	ro := s.RenderOptions
	if width <= 0 {
		width = ro.MaxSystemWidth
	}
	var parts [][]*Measure
	for _, p := range s.PartList() {
		parts = append(parts, p.MeasureList())
	}
	layoutSystems(parts, width, ro.NaiveHeight, ro.SystemPadding)
}

func (s *Stream) clickCandidates(systemIndex int) []Element {
	measures := s.MeasureList()
	if len(measures) == 0 {
		return s.Flat().NotesAndRests().Elements()
	}
	var res []Element
	for _, m := range measures {
		if m.RenderOptions.SystemIndex != systemIndex {
			continue
		}
		res = append(res, m.Flat().NotesAndRests().Elements()...)
	}
	return res
}

// NoteElementFromScaledX finds the note or rest drawn at x in the given
// system: the first within allowablePixels, else the closest one within
// the backup distance. It returns nil, nil when nothing is close enough.
func (s *Stream) NoteElementFromScaledX(x, allowablePixels float64, systemIndex int) (Element, error) {
	var best Element
	bestDiff := constants.BackupMaximum
	rendered := false
	for _, el := range s.clickCandidates(systemIndex) {
		rx, ok := el.Core().RenderedX()
		if !ok {
			continue
		}
		rendered = true
		diff := util.Abs(x - rx)
		if diff <= allowablePixels {
			return el, nil
		}
		if diff < bestDiff {
			best, bestDiff = el, diff
		}
	}
	if !rendered {
		return nil, ErrNoRenderSurface
	}
	return best, nil
}

// FindNoteForClick maps a click on a single-staff stream to a note.
func (s *Stream) FindNoteForClick(x, y float64) (Element, error) {
	ro := s.RenderOptions
	systemIndex := 0
	if s.HasSubStreams() {
		idx := int(math.Floor(y / (ro.NaiveHeight + ro.SystemPadding)))
		systemIndex = util.Clamp(idx, 0, s.NumSystems()-1)
	}
	return s.NoteElementFromScaledX(x, constants.AllowablePixels, systemIndex)
}

// FindNoteForClick picks the system and part under y, then the note at x.
func (s *Score) FindNoteForClick(x, y float64) (Element, error) {
	parts := s.PartList()
	if len(parts) == 0 {
		return s.Stream.FindNoteForClick(x, y)
	}
	ro := s.RenderOptions
	systemHeight := float64(len(parts))*ro.NaiveHeight + ro.SystemPadding
	systemIndex := util.Clamp(int(math.Floor(y/systemHeight)), 0, parts[0].NumSystems()-1)
	within := y - float64(systemIndex)*systemHeight
	partIndex := util.Clamp(int(math.Floor(within/ro.NaiveHeight)), 0, len(parts)-1)
	return parts[partIndex].NoteElementFromScaledX(x, constants.AllowablePixels, systemIndex)
}
