package model

type Instrument struct {
	Name        string `json:"name"`
	MidiProgram uint8  `json:"midiProgram"`
	MidiChannel uint8  `json:"midiChannel"`
}

func DefaultInstrument() Instrument {
	return Instrument{Name: "Acoustic Grand Piano"}
}

type Metadata struct {
	ScoreId  string `json:"score_id"`
	Title    string `json:"title,omitempty"`
	Composer string `json:"composer,omitempty"`
	Year     uint   `json:"year,omitempty"`
}
