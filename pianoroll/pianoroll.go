package pianoroll

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/scorestream/stream"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrNothingToDraw = errors.New("stream has no pitched notes")

type Color struct {
	R float64
	G float64
	B float64
}

var orangeColor = Color{1, 0.5, 0}
var greenColor = Color{0.2, 1, 0.2}
var blueColor = Color{0.5, 0.85, 1}
var pinkColor = Color{1, 0.6, 0.7}

var colors = []Color{orangeColor, greenColor, blueColor, pinkColor}

var background = Color{0.17, 0.17, 0.17}

type Options struct {
	PixelsPerQuarter float64
	KeyHeight        float64
	Padding          float64
	// left band holding the C labels
	LabelWidth float64
}

func DefaultOptions() Options {
	return Options{PixelsPerQuarter: 40, KeyHeight: 8, Padding: 10, LabelWidth: 30}
}

// Bar is one drawn note, in pixels.
type Bar struct {
	Midi   int
	X, Y   float64
	W, H   float64
	Track  int
	Offset float64
}

type roll struct {
	bars          []Bar
	width, height float64
	low, high     int
}

func getColor(i int) Color {
	return colors[i%len(colors)]
}

func getDarkerShade(c Color) Color {
	var d = 0.8
	return Color{c.R * d, c.G * d, c.B * d}
}

func setRGBColor(dc *gg.Context, c Color) {
	dc.SetRGB(c.R, c.G, c.B)
}

// tracks are the parts of s, or s itself
func tracks(s *stream.Stream) []*stream.Stream {
	var res []*stream.Stream
	for _, p := range s.PartList() {
		res = append(res, &p.Stream)
	}
	if len(res) == 0 {
		res = append(res, s)
	}
	return res
}

type sounding struct {
	midi    int
	offset  float64
	quarter float64
	track   int
}

// Layout places every note and chord member of s without drawing.
func Layout(s *stream.Stream, opts Options) ([]Bar, error) {
	r, err := layout(s, opts)
	if err != nil {
		return nil, err
	}
	return r.bars, nil
}

func layout(s *stream.Stream, opts Options) (*roll, error) {
	var notes []sounding
	for ti, t := range tracks(s) {
		for _, el := range t.PlayableNotes().Elements() {
			offset, ql := el.Core().Offset(), el.Duration().QuarterLength
			switch n := el.(type) {
			case *stream.Note:
				notes = append(notes, sounding{n.Pitch.MIDI(), offset, ql, ti})
			case *stream.Chord:
				for _, p := range n.Pitches() {
					notes = append(notes, sounding{p.MIDI(), offset, ql, ti})
				}
			}
		}
	}
	if len(notes) == 0 {
		return nil, ErrNothingToDraw
	}

	r := &roll{low: math.MaxInt, high: math.MinInt}
	end := 0.0
	for _, n := range notes {
		r.low = min(r.low, n.midi)
		r.high = max(r.high, n.midi)
		end = math.Max(end, n.offset+n.quarter)
	}
	left := opts.Padding + opts.LabelWidth
	r.width = left + end*opts.PixelsPerQuarter + opts.Padding
	r.height = 2*opts.Padding + float64(r.high-r.low+1)*opts.KeyHeight

	for _, n := range notes {
		r.bars = append(r.bars, Bar{
			Midi:   n.midi,
			X:      left + n.offset*opts.PixelsPerQuarter,
			Y:      opts.Padding + float64(r.high-n.midi)*opts.KeyHeight,
			W:      n.quarter * opts.PixelsPerQuarter,
			H:      opts.KeyHeight,
			Track:  n.track,
			Offset: n.offset,
		})
	}
	return r, nil
}

func drawLanes(dc *gg.Context, r *roll, opts Options) error {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: opts.KeyHeight * 1.2}))

	for m := r.low; m <= r.high; m++ {
		if m%12 != 0 {
			continue
		}
		y := opts.Padding + float64(r.high-m)*opts.KeyHeight
		dc.SetRGBA(1, 1, 1, 0.3)
		dc.SetLineWidth(0.5)
		dc.DrawLine(opts.Padding+opts.LabelWidth, y+opts.KeyHeight, r.width-opts.Padding, y+opts.KeyHeight)
		dc.Stroke()

		dc.SetRGBA(1, 1, 1, 0.8)
		dc.DrawString(fmt.Sprintf("C%d", m/12-1), opts.Padding, y+opts.KeyHeight)
	}
	return nil
}

func drawBars(dc *gg.Context, bars []Bar) {
	for _, b := range bars {
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, 2)
		c := getColor(b.Track)
		if b.Midi%12 == 1 || b.Midi%12 == 3 || b.Midi%12 == 6 || b.Midi%12 == 8 || b.Midi%12 == 10 {
			c = getDarkerShade(c)
		}
		setRGBColor(dc, c)
		dc.FillPreserve()
		dc.SetRGBA(0, 0, 0, 1)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

// Render draws s as a piano roll: time runs left to right, pitch bottom
// to top, one color per part.
func Render(s *stream.Stream, opts Options) (image.Image, error) {
	r, err := layout(s, opts)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(int(math.Ceil(r.width)), int(math.Ceil(r.height)))
	setRGBColor(dc, background)
	dc.DrawRectangle(0, 0, r.width, r.height)
	dc.Fill()

	if err := drawLanes(dc, r, opts); err != nil {
		return nil, err
	}
	drawBars(dc, r.bars)
	return dc.Image(), nil
}

func SavePNG(s *stream.Stream, path string, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
