package layout

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/scorestream/debug"
	"github.com/jsphweid/scorestream/stream"
)

// Scheduler owns a score's system layout. Bursts of resizes collapse into
// one layout pass once the width has been stable for the wait duration.
type Scheduler struct {
	mu        sync.Mutex
	score     *stream.Score
	width     float64
	stale     bool
	passes    int
	onLayout  func(width float64, systems int)
	debounced func(f func())
}

func NewScheduler(score *stream.Score, wait time.Duration) *Scheduler {
	return &Scheduler{
		score:     score,
		stale:     true,
		debounced: debounce.New(wait),
	}
}

// OnLayout registers a callback run after every layout pass.
func (s *Scheduler) OnLayout(fn func(width float64, systems int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLayout = fn
}

func (s *Scheduler) Resize(width float64) {
	s.mu.Lock()
	s.width = width
	s.stale = true
	s.mu.Unlock()
	s.debounced(s.run)
}

func (s *Scheduler) run() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.layoutLocked()
	}
}

// Flush lays out now if anything changed since the last pass.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.layoutLocked()
	}
}

func (s *Scheduler) layoutLocked() {
	s.score.FixSystemLayout(s.width)
	s.stale = false
	s.passes++
	systems := 1
	if parts := s.score.PartList(); len(parts) > 0 {
		systems = parts[0].NumSystems()
	}
	debug.Log("layout", "pass %d at width %v: %d systems", s.passes, s.width, systems)
	if s.onLayout != nil {
		s.onLayout(s.width, systems)
	}
}

// Do runs fn with exclusive access to the score and marks the layout stale.
func (s *Scheduler) Do(fn func(score *stream.Score)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.score)
	s.stale = true
}

// View runs fn with exclusive access to the score, leaving the layout as is.
func (s *Scheduler) View(fn func(score *stream.Score)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.score)
}

func (s *Scheduler) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}

// FindNoteForClick flushes any pending layout before mapping the click.
func (s *Scheduler) FindNoteForClick(x, y float64) (stream.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.layoutLocked()
	}
	return s.score.FindNoteForClick(x, y)
}
