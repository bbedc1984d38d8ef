package meter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/scorestream/model"
)

const epsilon = 1e-9

type Meter struct {
	Numerator   int
	Denominator int
}

// Parse reads a ratio string such as "3/4" or "6/8".
func Parse(ratio string) (Meter, error) {
	parts := strings.Split(strings.TrimSpace(ratio), "/")
	if len(parts) != 2 {
		return Meter{}, fmt.Errorf("bad meter %q", ratio)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return Meter{}, fmt.Errorf("bad meter numerator %q: %v", ratio, err)
	}
	den, err := strconv.Atoi(parts[1])
	if err != nil {
		return Meter{}, fmt.Errorf("bad meter denominator %q: %v", ratio, err)
	}
	if num < 0 || den <= 0 {
		return Meter{}, fmt.Errorf("bad meter %q", ratio)
	}
	return Meter{Numerator: num, Denominator: den}, nil
}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Numerator, m.Denominator)
}

func (m Meter) BarDuration() model.Duration {
	if m.Denominator == 0 {
		return model.NewDuration(0)
	}
	return model.NewDuration(float64(m.Numerator) * 4 / float64(m.Denominator))
}

func (m Meter) IsCompound() bool {
	return m.Denominator >= 8 && m.Numerator > 3 && m.Numerator%3 == 0
}

func (m Meter) BeatDuration() model.Duration {
	if m.Denominator == 0 {
		return model.NewDuration(0)
	}
	beat := 4 / float64(m.Denominator)
	if m.IsCompound() {
		beat *= 3
	}
	return model.NewDuration(beat)
}

type BeamSource struct {
	QuarterLength float64
	IsRest        bool
}

func beamCount(ql float64) int {
	switch {
	case ql >= 1-epsilon || ql <= 0:
		return 0
	case ql >= 0.5-epsilon:
		return 1
	case ql >= 0.25-epsilon:
		return 2
	case ql >= 0.125-epsilon:
		return 3
	default:
		return 4
	}
}

// GetBeams groups beamable notes that share a beat. measureStartOffset is
// the amount of the bar that passes before the first source (pickup bars).
// The result has one entry per source; unbeamed sources get an empty Beams.
func (m Meter) GetBeams(srcs []BeamSource, measureStartOffset float64) []model.Beams {
	res := make([]model.Beams, len(srcs))
	beat := m.BeatDuration().QuarterLength
	if beat <= 0 {
		return res
	}

	counts := make([]int, len(srcs))
	groups := make([]int, len(srcs))
	pos := measureStartOffset
	for i, src := range srcs {
		groups[i] = -1
		start := pos
		pos += src.QuarterLength
		if src.IsRest {
			continue
		}
		counts[i] = beamCount(src.QuarterLength)
		if counts[i] == 0 {
			continue
		}
		beatIndex := int(math.Floor(start/beat + epsilon))
		endBeat := int(math.Floor((pos - epsilon) / beat))
		if beatIndex != endBeat {
			counts[i] = 0
			continue
		}
		groups[i] = beatIndex
	}

	same := func(i, j int) bool {
		return i >= 0 && j < len(srcs) && counts[i] > 0 && counts[j] > 0 && groups[i] == groups[j]
	}

	for i := range srcs {
		if counts[i] == 0 {
			continue
		}
		prev := i > 0 && same(i-1, i)
		next := same(i, i+1)
		if !prev && !next {
			continue
		}
		var beams model.Beams
		for level := 1; level <= counts[i]; level++ {
			hasPrev := prev && counts[i-1] >= level
			hasNext := next && counts[i+1] >= level
			switch {
			case hasPrev && hasNext:
				beams.Append("continue", "")
			case hasPrev:
				beams.Append("stop", "")
			case hasNext:
				beams.Append("start", "")
			case prev:
				beams.Append("partial", "left")
			default:
				beams.Append("partial", "right")
			}
		}
		res[i] = beams
	}
	return res
}
