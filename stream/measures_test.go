package stream

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeMeasuresSplitsByBarLength(t *testing.T) {
	s := New()
	s.SetTimeSignature(MustTimeSignature("3/4"))
	for i := 0; i < 7; i++ {
		s.Append(note(t, "C4", 1))
	}

	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)

	assert := assert.New(t)
	measures := post.MeasureList()
	assert.Len(measures, 3)
	assert.Equal([]float64{0, 3, 6}, post.Offsets())
	for i, m := range measures {
		assert.Equal(i+1, m.Number)
		require.NotNil(t, m.timeSignature)
		assert.Equal("3/4", m.timeSignature.Ratio())
		assert.NotSame(s.timeSignature, m.timeSignature)
	}
	assert.Equal(3, measures[0].Len())
	assert.Equal(1, measures[2].Len())
	assert.Equal([]float64{0, 1, 2}, measures[1].Offsets())
	assert.Equal(7, s.Len(), "source is left alone")
	assert.Equal(7.0, post.Flat().HighestTime())
}

func TestMakeMeasuresGivesFirstMeasureTheClef(t *testing.T) {
	s := New()
	bass, err := NewClef("bass")
	require.NoError(t, err)
	s.SetClef(bass)
	s.SetTimeSignature(MustTimeSignature("4/4"))
	s.Append(note(t, "C3", 4), note(t, "D3", 4))

	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)
	measures := post.MeasureList()

	assert := assert.New(t)
	assert.Same(bass, measures[0].clef)
	assert.Nil(measures[1].clef)
	assert.Equal("bass", measures[1].Clef().Name)
}

func TestMakeMeasuresFailsWithoutTimeSignature(t *testing.T) {
	s := New()
	s.Append(note(t, "C4", 1))
	_, err := s.MakeMeasures(MeasureOptions{})
	assert.True(t, errors.Is(err, ErrNoTimeSignature))
}

func TestMakeMeasuresFailsOnZeroLengthBar(t *testing.T) {
	s := New()
	s.SetTimeSignature(MustTimeSignature("0/4"))
	s.Append(note(t, "C4", 1))
	_, err := s.MakeMeasures(MeasureOptions{})
	assert.True(t, errors.Is(err, ErrNoTimeSignature))
}

func TestMakeMeasuresUsesTimeSignatureElements(t *testing.T) {
	s := New()
	s.Append(MustTimeSignature("2/4"))
	for i := 0; i < 4; i++ {
		s.Append(note(t, "C4", 1))
	}
	s.Insert(2, MustTimeSignature("2/4"))

	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(post.MeasureList(), 2)
	for _, m := range post.MeasureList() {
		assert.Equal(0, m.GetElementsByClass("TimeSignature").Len())
		assert.Equal(2, m.Notes().Len())
	}
}

func TestMakeMeasuresSkipsAssignedClefOnly(t *testing.T) {
	s := New()
	clef := TrebleClef()
	s.SetClef(clef)
	s.SetTimeSignature(MustTimeSignature("4/4"))
	s.Append(clef, note(t, "C4", 4))
	other := TrebleClef()
	s.Insert(0, other)

	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)
	m := post.MeasureList()[0]

	clefs := m.GetElementsByClass("Clef")
	assert.Equal(t, 1, clefs.Len())
	assert.Same(t, other, clefs.Get(0))
}

func TestMakeMeasuresTakesLeadingClefElement(t *testing.T) {
	s := New()
	bass, err := NewClef("bass")
	require.NoError(t, err)
	s.SetTimeSignature(MustTimeSignature("4/4"))
	s.Append(bass, note(t, "C3", 4))

	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)
	m := post.MeasureList()[0]

	assert := assert.New(t)
	assert.Same(bass, m.clef)
	assert.Equal(0, m.GetElementsByClass("Clef").Len())
	assert.Equal("bass", post.Clef().Name)
}

func TestMakeMeasuresFailureLeavesElementsAlone(t *testing.T) {
	s := New()
	s.SetTimeSignature(MustTimeSignature("4/4"))
	n1, n2 := note(t, "C4", 2), note(t, "D4", 2)
	s.Append(n1, n2)
	s.Insert(4, NewKeySignature(1))

	for _, inPlace := range []bool{false, true} {
		_, err := s.MakeMeasures(MeasureOptions{InPlace: inPlace})
		assert := assert.New(t)
		assert.True(errors.Is(err, ErrCannotPlace))
		assert.Equal(3, s.Len())
		assert.Equal([]float64{0, 2, 4}, s.Offsets())
		assert.Same(s, n2.ActiveSite())
		assert.Equal(2.0, n2.Offset())
		assert.Equal(1, n2.NumSites())
	}
}

func TestMakeMeasuresDistributesVoices(t *testing.T) {
	m := NewMeasure()
	m.SetTimeSignature(MustTimeSignature("2/4"))
	v1, v2 := NewVoice(), NewVoice()
	v1.Append(note(t, "C5", 1), note(t, "D5", 1), note(t, "E5", 1), note(t, "F5", 1))
	v2.Append(note(t, "C4", 2), note(t, "D4", 2))
	m.Insert(0, v1)
	m.Insert(0, v2)

	post, err := m.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)
	measures := post.MeasureList()

	assert := assert.New(t)
	assert.Len(measures, 2)
	for _, mm := range measures {
		voices := mm.VoiceList()
		require.Len(t, voices, 2)
		assert.Equal(0, voices[0].ID)
		assert.Equal(1, voices[1].ID)
		assert.Equal(2, voices[0].Len())
		assert.Equal(1, voices[1].Len())
	}
	assert.Equal([]float64{0, 1}, measures[1].VoiceList()[0].Offsets())
}

func TestMakeMeasuresInPlace(t *testing.T) {
	p := NewPart()
	p.SetTimeSignature(MustTimeSignature("4/4"))
	for i := 0; i < 8; i++ {
		p.Append(note(t, "C4", 1))
	}
	res, err := p.MakeMeasures(MeasureOptions{InPlace: true})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Same(&p.Stream, res)
	assert.Equal(2, p.Len())
	assert.Equal(2, p.Measures().Len())
	assert.Equal(0, p.Notes().Len())
	assert.Equal(8, p.Flat().Notes().Len())
	m := p.MeasureList()[1]
	assert.True(m.HasSite(&p.Stream))
	assert.Same(&p.Stream, m.ActiveSite())
}

func TestMakeMeasuresOnEmptyStreamMakesOneMeasure(t *testing.T) {
	s := New()
	s.SetTimeSignature(MustTimeSignature("4/4"))
	post, err := s.MakeMeasures(MeasureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, post.Measures().Len())
}
