package stream

// NoVoice marks an OffsetMap entry whose element is not inside a Voice.
const NoVoice = -1

type OffsetMap struct {
	Element    Element
	Offset     float64
	EndTime    float64
	VoiceIndex int
}

func (o OffsetMap) HasVoice() bool {
	return o.VoiceIndex != NoVoice
}

// OffsetMap lists every element with its offset and end time. When s has
// voices only their flattened contents are listed, tagged by voice index.
func (s *Stream) OffsetMap() []OffsetMap {
	type group struct {
		s          *Stream
		voiceIndex int
	}
	var groups []group
	if s.HasVoices() {
		for i, v := range s.VoiceList() {
			groups = append(groups, group{v.Flat(), i})
		}
	} else {
		groups = append(groups, group{s, NoVoice})
	}

	var res []OffsetMap
	for _, g := range groups {
		for _, e := range g.s.entries {
			g.s.sync(e)
			res = append(res, OffsetMap{
				Element:    e.el,
				Offset:     e.offset,
				EndTime:    e.offset + quarterLength(e.el),
				VoiceIndex: g.voiceIndex,
			})
		}
	}
	return res
}
