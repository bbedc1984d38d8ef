package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsphweid/scorestream/db"
	"github.com/jsphweid/scorestream/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ql(v float64) *float64 {
	return &v
}

func scaleDoc() model.ScoreDoc {
	sharps := 2
	doc := model.ScoreDoc{Kind: "Stream", TimeSignature: "4/4", Sharps: &sharps}
	for _, name := range []string{"C4", "D4", "E4", "F4"} {
		doc.Elements = append(doc.Elements, model.ScoreDoc{Kind: "Note", Pitch: name, QuarterLength: ql(1)})
	}
	for _, name := range []string{"G4", "A4", "B4", "C5", "D5", "E5", "F#5", "G5"} {
		doc.Elements = append(doc.Elements, model.ScoreDoc{Kind: "Note", Pitch: name, QuarterLength: ql(0.5)})
	}
	return doc
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createScore(t *testing.T, h http.Handler) string {
	w := do(t, h, http.MethodPost, "/scores", model.CreateScoreRequest{
		Score:    scaleDoc(),
		Metadata: model.Metadata{Title: "Scale", Composer: "Anon", Year: 1900},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.CreateScoreResponse](t, w).ScoreId
}

func TestCreateAndGetScore(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	id := createScore(t, h)

	w := do(t, h, http.MethodGet, "/scores/"+id, nil)
	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	doc := decode[model.ScoreDoc](t, w)
	assert.Equal("Score", doc.Kind)
	require.Len(t, doc.Elements, 1)
	part := doc.Elements[0]
	assert.Equal("Part", part.Kind)
	assert.Equal("4/4", part.TimeSignature)
	assert.Len(part.Elements, 12)
	assert.Equal(7.5, *part.Elements[11].Offset)

	list := decode[model.ListScoresResponse](t, do(t, h, http.MethodGet, "/scores", nil))
	assert.Equal([]string{id}, list.ScoreIds)

	w = do(t, h, http.MethodGet, "/scores/"+id+"/metadata", nil)
	md := decode[model.Metadata](t, w)
	assert.Equal(model.Metadata{ScoreId: id, Title: "Scale", Composer: "Anon", Year: 1900}, md)
}

func TestCreateRejectsBadScores(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	assert := assert.New(t)

	w := do(t, h, http.MethodPost, "/scores", model.CreateScoreRequest{Score: model.ScoreDoc{Kind: "Note", Pitch: "C4"}})
	assert.Equal(http.StatusBadRequest, w.Code)
	assert.NotEmpty(decode[model.ErrorResponse](t, w).Error)

	req := httptest.NewRequest(http.MethodPost, "/scores", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(http.StatusBadRequest, rec.Code)

	w = do(t, h, http.MethodGet, "/scores/nope", nil)
	assert.Equal(http.StatusNotFound, w.Code)
}

func TestFlatAndOffsetMap(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	id := createScore(t, h)
	assert := assert.New(t)

	flat := decode[model.ScoreDoc](t, do(t, h, http.MethodGet, "/scores/"+id+"/flat", nil))
	assert.Len(flat.Elements, 12)
	assert.Equal("Note", flat.Elements[0].Kind)

	entries := decode[[]model.OffsetMapEntry](t, do(t, h, http.MethodGet, "/scores/"+id+"/offsetmap", nil))
	require.Len(t, entries, 12)
	assert.Equal(4.5, entries[5].Offset)
	assert.Equal(5.0, entries[5].EndTime)
	assert.Equal([]string{"A4"}, entries[5].Pitches)
	assert.Nil(entries[5].VoiceIndex)
}

func TestMakeMeasuresBeamsAndAccidentals(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	id := createScore(t, h)
	assert := assert.New(t)

	w := do(t, h, http.MethodPost, "/scores/"+id+"/measures", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	part := decode[model.ScoreDoc](t, w).Elements[0]
	require.Len(t, part.Elements, 2)
	m1, m2 := part.Elements[0], part.Elements[1]
	assert.Equal(1, m1.Number)
	assert.Equal("treble", m1.Clef)
	assert.Equal("4/4", m2.TimeSignature)
	assert.Len(m1.Elements, 4)
	assert.Nil(m1.Elements[0].Beams)
	assert.Equal([]string{"start"}, m2.Elements[0].Beams)
	assert.Equal([]string{"stop"}, m2.Elements[1].Beams)

	// a second call leaves existing measures alone
	w = do(t, h, http.MethodPost, "/scores/"+id+"/measures", nil)
	assert.Len(decode[model.ScoreDoc](t, w).Elements[0].Elements, 2)

	w = do(t, h, http.MethodPost, "/scores/"+id+"/accidentals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	part = decode[model.ScoreDoc](t, w).Elements[0]
	f4 := part.Elements[0].Elements[3]
	assert.Equal("Fn4", f4.Pitch)
	assert.Equal([]bool{true}, f4.Displayed)
	fSharp := part.Elements[1].Elements[6]
	assert.Equal("F#5", fSharp.Pitch)
	assert.Equal([]bool{false}, fSharp.Displayed)
}

func TestMakeMeasuresNeedsTimeSignature(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	doc := model.ScoreDoc{Kind: "Part", Elements: []model.ScoreDoc{{Kind: "Rest", QuarterLength: ql(4)}}}
	w := do(t, h, http.MethodPost, "/scores", model.CreateScoreRequest{Score: doc})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[model.CreateScoreResponse](t, w).ScoreId

	w = do(t, h, http.MethodPost, "/scores/"+id+"/measures", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodGet, "/scores/"+id+"/roll.png", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMidiAndRoll(t *testing.T) {
	h := New(db.NewMemoryStore()).Handler()
	id := createScore(t, h)
	assert := assert.New(t)

	w := do(t, h, http.MethodGet, "/scores/"+id+"/midi", nil)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("audio/midi", w.Header().Get("Content-Type"))
	assert.Equal("MThd", w.Body.String()[:4])

	w = do(t, h, http.MethodGet, "/scores/"+id+"/roll.png", nil)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("image/png", w.Header().Get("Content-Type"))
	assert.Equal("\x89PNG", w.Body.String()[:4])
}

func TestResizeAndClick(t *testing.T) {
	srv := New(db.NewMemoryStore())
	srv.wait = time.Hour
	h := srv.Handler()
	id := createScore(t, h)
	assert := assert.New(t)

	w := do(t, h, http.MethodGet, "/scores/"+id+"/click?x=60&y=10", nil)
	assert.Equal(http.StatusConflict, w.Code)

	do(t, h, http.MethodPost, "/scores/"+id+"/measures", nil)
	w = do(t, h, http.MethodPut, "/scores/"+id+"/width", map[string]float64{"width": 250})
	assert.Equal(http.StatusAccepted, w.Code)

	// the pending resize is applied before the click is mapped
	w = do(t, h, http.MethodGet, "/scores/"+id+"/click?x=121&y=10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal("D4", decode[model.ScoreDoc](t, w).Pitch)

	w = do(t, h, http.MethodGet, "/scores/"+id+"/click?x=61&y=170", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal("A4", decode[model.ScoreDoc](t, w).Pitch)

	w = do(t, h, http.MethodGet, "/scores/"+id+"/click?x=900&y=10", nil)
	assert.Equal(http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/scores/"+id+"/click?x=abc&y=10", nil)
	assert.Equal(http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/scores/"+id+"/width", map[string]float64{"width": -1})
	assert.Equal(http.StatusBadRequest, w.Code)
}
