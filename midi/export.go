package midi

import (
	"sort"

	"github.com/jsphweid/scorestream/constants"
	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/stream"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteEvent struct {
	ticks uint32
	off   bool
	key   uint8
}

func ticksFor(ql float64) uint32 {
	return uint32(ql*constants.TicksPerQuarter + 0.5)
}

// Export writes one track per part (or a single track when s has no
// parts). The first track carries tempo and meter.
func Export(s *stream.Stream) (*smf.SMF, error) {
	out := smf.New()
	out.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var sources []*stream.Stream
	for _, p := range s.PartList() {
		sources = append(sources, &p.Stream)
	}
	if len(sources) == 0 {
		sources = append(sources, s)
	}

	for i, src := range sources {
		var tr smf.Track
		if i == 0 {
			tr.Add(0, smf.MetaTempo(src.Tempo()))
			if ts := src.TimeSignature(); ts != nil {
				tr.Add(0, smf.MetaMeter(uint8(ts.Meter.Numerator), uint8(ts.Meter.Denominator)))
			}
		}
		inst := src.Instrument()
		channel := inst.MidiChannel
		tr.Add(0, gomidi.ProgramChange(channel, inst.MidiProgram))

		events := collectNoteEvents(src)
		var last uint32
		for _, ev := range events {
			delta := ev.ticks - last
			last = ev.ticks
			if ev.off {
				tr.Add(delta, gomidi.NoteOff(channel, ev.key))
			} else {
				tr.Add(delta, gomidi.NoteOn(channel, ev.key, constants.DefaultVelocity))
			}
		}
		tr.Close(0)
		if err := out.Add(tr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func collectNoteEvents(s *stream.Stream) []noteEvent {
	var events []noteEvent
	add := func(p model.Pitch, offset, ql float64) {
		key := p.MIDI()
		if key < 0 || key > 127 || ql <= 0 {
			return
		}
		events = append(events,
			noteEvent{ticks: ticksFor(offset), key: uint8(key)},
			noteEvent{ticks: ticksFor(offset + ql), off: true, key: uint8(key)},
		)
	}
	for _, el := range s.PlayableNotes().Elements() {
		offset, ql := el.Core().Offset(), el.Duration().QuarterLength
		switch n := el.(type) {
		case *stream.Note:
			add(n.Pitch, offset, ql)
		case *stream.Chord:
			for _, p := range n.Pitches() {
				add(p, offset, ql)
			}
		}
	}
	// note offs first so repeated notes retrigger
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ticks != events[j].ticks {
			return events[i].ticks < events[j].ticks
		}
		return events[i].off && !events[j].off
	})
	return events
}
