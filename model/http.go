package model

// ScoreDoc is the JSON form of any stream or element.
type ScoreDoc struct {
	Kind          string      `json:"kind"`
	Id            string      `json:"id,omitempty"`
	Offset        *float64    `json:"offset,omitempty"`
	QuarterLength *float64    `json:"quarterLength,omitempty"`
	Pitch         string      `json:"pitch,omitempty"`
	Pitches       []string    `json:"pitches,omitempty"`
	Clef          string      `json:"clef,omitempty"`
	Sharps        *int        `json:"sharps,omitempty"`
	TimeSignature string      `json:"timeSignature,omitempty"`
	Tempo         float64     `json:"tempo,omitempty"`
	Instrument    *Instrument `json:"instrument,omitempty"`
	Number        int         `json:"number,omitempty"`
	Beams         []string    `json:"beams,omitempty"`
	Displayed     []bool      `json:"displayedAccidentals,omitempty"`
	Elements      []ScoreDoc  `json:"elements,omitempty"`
}

type OffsetMapEntry struct {
	Id         string   `json:"id"`
	Kind       string   `json:"kind"`
	Offset     float64  `json:"offset"`
	EndTime    float64  `json:"endTime"`
	VoiceIndex *int     `json:"voiceIndex,omitempty"`
	Pitches    []string `json:"pitches,omitempty"`
}

type CreateScoreRequest struct {
	Score    ScoreDoc `json:"score"`
	Metadata Metadata `json:"metadata"`
}

type CreateScoreResponse struct {
	ScoreId string `json:"score_id"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ListScoresResponse struct {
	ScoreIds []string `json:"score_ids"`
}
