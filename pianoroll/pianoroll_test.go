package pianoroll

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scorestream/stream"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoParts(t *testing.T) *stream.Score {
	upper := stream.NewPart()
	n, err := stream.ParseNote("C5", 2)
	require.NoError(t, err)
	c, err := stream.ParseChord([]string{"E5", "G5"}, 2)
	require.NoError(t, err)
	upper.Append(n, c)

	lower := stream.NewPart()
	low, err := stream.ParseNote("C4", 4)
	require.NoError(t, err)
	lower.Append(stream.NewRest(1), low)

	score := stream.NewScore()
	score.Insert(0, upper)
	score.Insert(0, lower)
	return score
}

func TestLayout(t *testing.T) {
	opts := DefaultOptions()
	bars, err := Layout(&twoParts(t).Stream, opts)
	require.NoError(t, err)
	require.Len(t, bars, 4)

	assert := assert.New(t)
	// highest note G5 sits on the top row
	assert.Equal(79, bars[2].Midi)
	assert.Equal(opts.Padding, bars[2].Y)
	assert.Equal(opts.Padding+opts.LabelWidth+2*opts.PixelsPerQuarter, bars[1].X)
	assert.Equal(1, bars[3].Track)
	assert.Equal(1.0, bars[3].Offset)
	assert.Equal(4*opts.PixelsPerQuarter, bars[3].W)
	assert.Equal(opts.Padding+float64(79-60)*opts.KeyHeight, bars[3].Y)
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	score := twoParts(t)
	img, err := Render(&score.Stream, opts)
	require.NoError(t, err)

	assert := assert.New(t)
	b := img.Bounds()
	// five quarters wide, C4 through G5 tall
	assert.Equal(int(2*opts.Padding+opts.LabelWidth+5*opts.PixelsPerQuarter), b.Dx())
	assert.Equal(int(2*opts.Padding+20*opts.KeyHeight), b.Dy())

	bars, err := Layout(&score.Stream, opts)
	require.NoError(t, err)
	bar := bars[0]
	inside := img.At(int(bar.X+bar.W/2), int(bar.Y+bar.H/2))
	outside := img.At(b.Dx()-1, b.Dy()-1)
	assert.NotEqual(outside, inside)
}

func TestRenderNeedsNotes(t *testing.T) {
	s := stream.New()
	s.Append(stream.NewRest(4))
	_, err := Render(s, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNothingToDraw))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roll.png")
	require.NoError(t, SavePNG(&twoParts(t).Stream, path, DefaultOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
