package stream

// partsOrSelf lists the parts of s, or s alone when it has none.
func (s *Stream) partsOrSelf() []*Stream {
	var res []*Stream
	for _, p := range s.PartList() {
		res = append(res, &p.Stream)
	}
	if len(res) == 0 {
		res = append(res, s)
	}
	return res
}

// MakePartMeasures splits every part that has no measures yet into
// measures in place, beaming them when the part auto-beams. Every part is
// segmented before any is changed, so a part that cannot be measured leaves
// the whole stream as it was.
func (s *Stream) MakePartMeasures() error {
	var todo []*Stream
	var plans []*measurePlan
	for _, p := range s.partsOrSelf() {
		if len(p.MeasureList()) > 0 {
			continue
		}
		plan, err := p.planMeasures()
		if err != nil {
			return err
		}
		todo = append(todo, p)
		plans = append(plans, plan)
	}

	for i, p := range todo {
		p.applyMeasures(plans[i], true)
		if !p.AutoBeam() {
			continue
		}
		if _, err := p.MakeBeams(BeamOptions{InPlace: true}); err != nil {
			return err
		}
	}
	return nil
}

// MakeMeasureAccidentals runs MakeAccidentals on each measure, so the
// accidental state resets at every bar line, or across a whole part that
// has no measures.
func (s *Stream) MakeMeasureAccidentals() {
	for _, p := range s.partsOrSelf() {
		measures := p.MeasureList()
		if len(measures) == 0 {
			p.Flat().MakeAccidentals()
			continue
		}
		for _, m := range measures {
			m.Flat().MakeAccidentals()
		}
	}
}
