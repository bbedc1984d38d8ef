package midi

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/scorestream/debug"
	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/stream"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnsupportedTimeFormat = errors.New("only metric time formats are supported")

type reducedEvent struct {
	ticks     int64
	isNoteOff bool
	note      uint8
}

// span is one sounding note, in ticks
type span struct {
	start, end int64
	note       uint8
}

// Import turns every track holding notes into a Part. Notes that start
// and stop together become a Chord and gaps become rests.
func Import(s *smf.SMF) (*stream.Score, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || mt == 0 {
		return nil, errors.Wrapf(ErrUnsupportedTimeFormat, "got %v", s.TimeFormat)
	}
	resolution := float64(mt)

	score := stream.NewScore()
	for i, events := range s.Tracks {
		var reduced []reducedEvent
		var program, channel uint8
		hasProgram := false
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var ch, key, velocity, num, denom uint8
			var bpm float64
			switch {
			case event.Message.GetNoteOn(&ch, &key, &velocity):
				channel = ch
				reduced = append(reduced, reducedEvent{ticks: absTicks, isNoteOff: velocity == 0, note: key})
			case event.Message.GetNoteOff(&ch, &key, &velocity):
				reduced = append(reduced, reducedEvent{ticks: absTicks, isNoteOff: true, note: key})
			case event.Message.GetProgramChange(&ch, &program):
				channel = ch
				hasProgram = true
			case event.Message.GetMetaTempo(&bpm):
				if score.LocalAttributes().Tempo == 0 {
					score.SetTempo(bpm)
				}
			case event.Message.GetMetaMeter(&num, &denom):
				if score.LocalAttributes().TimeSignature == nil {
					ts, err := stream.NewTimeSignature(fmt.Sprintf("%d/%d", num, denom))
					if err != nil {
						debug.Log("midi", "track %d: ignoring meter: %v", i, err)
						continue
					}
					score.SetTimeSignature(ts)
				}
			}
		}
		if len(reduced) == 0 {
			continue
		}

		part := buildPart(getSpans(i, reduced), resolution)
		if hasProgram || channel != 0 {
			inst := model.DefaultInstrument()
			inst.MidiProgram = program
			inst.MidiChannel = channel
			if program != 0 {
				inst.Name = fmt.Sprintf("Program %d", program)
			}
			part.SetInstrument(inst)
		}
		score.Insert(0, part)
	}
	return score, nil
}

func getSpans(track int, reduced []reducedEvent) []span {
	// prioritize smaller offset values then note off
	sort.SliceStable(reduced, func(i, j int) bool {
		if reduced[i].ticks != reduced[j].ticks {
			return reduced[i].ticks < reduced[j].ticks
		}
		return reduced[i].isNoteOff && !reduced[j].isNoteOff
	})

	var spans []span
	pressed := make(map[uint8]int64)
	for _, evt := range reduced {
		if !evt.isNoteOff {
			pressed[evt.note] = evt.ticks
			continue
		}
		start, ok := pressed[evt.note]
		if !ok {
			debug.Log("midi", "track %d: note off for %d at %d was never pressed", track, evt.note, evt.ticks)
			continue
		}
		delete(pressed, evt.note)
		if evt.ticks > start {
			spans = append(spans, span{start: start, end: evt.ticks, note: evt.note})
		}
	}
	for note, start := range pressed {
		debug.Log("midi", "track %d: note %d pressed at %d never released", track, note, start)
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		if spans[i].end != spans[j].end {
			return spans[i].end < spans[j].end
		}
		return spans[i].note < spans[j].note
	})
	return spans
}

func buildPart(spans []span, resolution float64) *stream.Part {
	ql := func(ticks int64) float64 {
		return math.Round(float64(ticks)/resolution*4096) / 4096
	}

	part := stream.NewPart()
	var cursor int64
	for i := 0; i < len(spans); {
		j := i + 1
		for j < len(spans) && spans[j].start == spans[i].start && spans[j].end == spans[i].end {
			j++
		}
		sp := spans[i]
		if sp.start > cursor {
			part.Insert(ql(cursor), stream.NewRest(ql(sp.start)-ql(cursor)))
		}

		length := ql(sp.end) - ql(sp.start)
		if j-i == 1 {
			part.Insert(ql(sp.start), stream.NewNote(model.PitchFromMIDI(int(sp.note)), length))
		} else {
			var pitches []model.Pitch
			for _, member := range spans[i:j] {
				pitches = append(pitches, model.PitchFromMIDI(int(member.note)))
			}
			part.Insert(ql(sp.start), stream.NewChord(pitches, length))
		}
		if sp.end > cursor {
			cursor = sp.end
		}
		i = j
	}
	return part
}
