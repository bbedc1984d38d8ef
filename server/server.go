package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/scorestream/codec"
	"github.com/jsphweid/scorestream/db"
	"github.com/jsphweid/scorestream/debug"
	"github.com/jsphweid/scorestream/layout"
	"github.com/jsphweid/scorestream/midi"
	"github.com/jsphweid/scorestream/model"
	"github.com/jsphweid/scorestream/pianoroll"
	"github.com/jsphweid/scorestream/stream"
	"github.com/jsphweid/scorestream/util"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

// ResizeWait is how long a width must hold before the score is laid out again.
const ResizeWait = 150 * time.Millisecond

type Server struct {
	mu     sync.RWMutex
	scores map[string]*layout.Scheduler
	meta   db.MetadataStore
	wait   time.Duration
}

func New(meta db.MetadataStore) *Server {
	return &Server{
		scores: make(map[string]*layout.Scheduler),
		meta:   meta,
		wait:   ResizeWait,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", s.HandleCreateScore).Methods("POST")
	router.HandleFunc("/scores", s.HandleListScores).Methods("GET")
	router.HandleFunc("/scores/{id}", s.HandleGetScore).Methods("GET")
	router.HandleFunc("/scores/{id}/flat", s.HandleGetFlat).Methods("GET")
	router.HandleFunc("/scores/{id}/offsetmap", s.HandleGetOffsetMap).Methods("GET")
	router.HandleFunc("/scores/{id}/measures", s.HandleMakeMeasures).Methods("POST")
	router.HandleFunc("/scores/{id}/accidentals", s.HandleMakeAccidentals).Methods("POST")
	router.HandleFunc("/scores/{id}/metadata", s.HandleGetMetadata).Methods("GET")
	router.HandleFunc("/scores/{id}/midi", s.HandleGetMidi).Methods("GET")
	router.HandleFunc("/scores/{id}/roll.png", s.HandleGetRoll).Methods("GET")
	router.HandleFunc("/scores/{id}/width", s.HandleResize).Methods("PUT")
	router.HandleFunc("/scores/{id}/click", s.HandleClick).Methods("GET")
	return router
}

func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	})
	return c.Handler(s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	debug.Log("server", "%d: %v", status, err)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*layout.Scheduler, string, bool) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	sched, ok := s.scores[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no score with id %s", id))
	}
	return sched, id, ok
}

// asScore wraps a lone part in a score. A bare stream is read as a part.
func asScore(doc model.ScoreDoc) (*stream.Score, error) {
	if doc.Kind == "Stream" {
		doc.Kind = "Part"
	}
	el, err := codec.Decode(doc)
	if err != nil {
		return nil, err
	}
	switch v := el.(type) {
	case *stream.Score:
		return v, nil
	case *stream.Part:
		score := stream.NewScore()
		score.Insert(0, v)
		return score, nil
	}
	return nil, errors.Wrapf(codec.ErrBadDocument, "cannot store a %v as a score", doc.Kind)
}

func (s *Server) HandleCreateScore(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var input model.CreateScoreRequest
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "Could not unmarshal request body"))
		return
	}
	score, err := asScore(input.Score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	md := input.Metadata
	md.ScoreId = id
	if err := s.meta.PutMetadata(r.Context(), md); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.mu.Lock()
	s.scores[id] = layout.NewScheduler(score, s.wait)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, model.CreateScoreResponse{ScoreId: id})
}

func (s *Server) HandleListScores(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := util.GetKeys(s.scores)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, model.ListScoresResponse{ScoreIds: ids})
}

func (s *Server) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var doc model.ScoreDoc
	sched.View(func(score *stream.Score) {
		doc = codec.Encode(score)
	})
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) HandleGetFlat(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var doc model.ScoreDoc
	sched.View(func(score *stream.Score) {
		doc = codec.Encode(score.Flat().Self())
	})
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) HandleGetOffsetMap(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var entries []model.OffsetMapEntry
	sched.View(func(score *stream.Score) {
		entries = codec.EncodeOffsetMap(score.Flat())
	})
	writeJSON(w, http.StatusOK, entries)
}

// HandleMakeMeasures splits every part into measures and beams them
// when the part auto-beams.
func (s *Server) HandleMakeMeasures(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var err error
	var doc model.ScoreDoc
	sched.Do(func(score *stream.Score) {
		if err = score.MakePartMeasures(); err == nil {
			doc = codec.Encode(score)
		}
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, stream.ErrNoTimeSignature) || errors.Is(err, stream.ErrCannotPlace) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) HandleMakeAccidentals(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var doc model.ScoreDoc
	sched.Do(func(score *stream.Score) {
		score.MakeMeasureAccidentals()
		doc = codec.Encode(score)
	})
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	_, id, ok := s.lookup(w, r)
	if !ok {
		return
	}
	md, err := s.meta.GetMetadata(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}

func (s *Server) HandleGetMidi(w http.ResponseWriter, r *http.Request) {
	sched, id, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	var err error
	sched.View(func(score *stream.Score) {
		out, exportErr := midi.Export(&score.Stream)
		if exportErr != nil {
			err = exportErr
			return
		}
		_, err = out.WriteTo(&buf)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".mid"))
	w.Write(buf.Bytes())
}

func (s *Server) HandleGetRoll(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	var err error
	sched.View(func(score *stream.Score) {
		img, renderErr := pianoroll.Render(&score.Stream, pianoroll.DefaultOptions())
		if renderErr != nil {
			err = renderErr
			return
		}
		err = png.Encode(&buf, img)
	})
	if errors.Is(err, pianoroll.ErrNothingToDraw) {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

type resizeRequest struct {
	Width float64 `json:"width"`
}

// HandleResize records the render width; the layout runs once resizes settle.
func (s *Server) HandleResize(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var input resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "Could not unmarshal request body"))
		return
	}
	if input.Width < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("negative width %v", input.Width))
		return
	}
	sched.Resize(input.Width)
	w.WriteHeader(http.StatusAccepted)
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad %s", name)
	}
	return v, nil
}

func (s *Server) HandleClick(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	x, err := queryFloat(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := queryFloat(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	el, err := sched.FindNoteForClick(x, y)
	if errors.Is(err, stream.ErrNoRenderSurface) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if el == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("nothing near (%v, %v)", x, y))
		return
	}
	var doc model.ScoreDoc
	sched.View(func(*stream.Score) {
		doc = codec.Encode(el)
	})
	writeJSON(w, http.StatusOK, doc)
}
