package stream

// Flat merges every nested stream into one offset-ordered stream whose
// offsets are relative to s. A stream without sub-streams is returned as is.
func (s *Stream) Flat() *Stream {
	return s.flatten(false)
}

// SemiFlat is like Flat but keeps the sub-streams alongside their contents.
func (s *Stream) SemiFlat() *Stream {
	return s.flatten(true)
}

func (s *Stream) flatten(retainContainers bool) *Stream {
	if !s.HasSubStreams() {
		return s
	}
	var collected []entry
	s.collect(0, retainContainers, &collected)

	out := s.deriveEmpty()
	for _, e := range collected {
		out.insertEntry(e)
	}
	return out
}

func (s *Stream) collect(shift float64, retainContainers bool, acc *[]entry) {
	for _, e := range s.entries {
		offset := shift + e.offset
		sub, ok := asStream(e.el)
		if !ok {
			*acc = append(*acc, entry{el: e.el, offset: offset})
			continue
		}
		if retainContainers {
			*acc = append(*acc, entry{el: e.el, offset: offset})
		}
		sub.collect(offset, retainContainers, acc)
	}
}

// GetElementsByClass keeps the elements matching any of names, with their
// offsets unchanged.
func (s *Stream) GetElementsByClass(names ...string) *Stream {
	out := s.deriveEmpty()
	for _, e := range s.entries {
		if IsClassOrSubclass(e.el, names...) {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

func (s *Stream) Notes() *Stream {
	return s.GetElementsByClass("Note", "Chord")
}

func (s *Stream) NotesAndRests() *Stream {
	return s.GetElementsByClass("GeneralNote")
}

func (s *Stream) Parts() *Stream {
	return s.GetElementsByClass("Part")
}

func (s *Stream) Measures() *Stream {
	return s.GetElementsByClass("Measure")
}

func (s *Stream) Voices() *Stream {
	return s.GetElementsByClass("Voice")
}

// PlayableNotes are the notes and rests of the flattened stream.
func (s *Stream) PlayableNotes() *Stream {
	return s.Flat().NotesAndRests()
}

func (s *Stream) PartList() []*Part {
	var res []*Part
	for _, e := range s.entries {
		if p, ok := e.el.(*Part); ok {
			res = append(res, p)
		}
	}
	return res
}

func (s *Stream) MeasureList() []*Measure {
	var res []*Measure
	for _, e := range s.entries {
		if m, ok := e.el.(*Measure); ok {
			res = append(res, m)
		}
	}
	return res
}

func (s *Stream) VoiceList() []*Voice {
	var res []*Voice
	for _, e := range s.entries {
		if v, ok := e.el.(*Voice); ok {
			res = append(res, v)
		}
	}
	return res
}
