package player

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/airpiano/model"
	"github.com/jsphweid/airpiano/registry"
	"github.com/jsphweid/airpiano/synth"
	"go.uber.org/zap"
)

// Recorder passively captures every note transition the player emits while a
// session is active, and replays a finished take with its original timing.
type Recorder struct {
	log *zap.Logger

	mu     sync.Mutex
	on     bool
	start  time.Time
	id     uuid.UUID
	events []model.RecordedEvent

	playing atomic.Bool
}

func NewRecorder(log *zap.Logger) *Recorder {
	return &Recorder{log: log}
}

// Start begins a fresh session, discarding any previous take.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.on = true
	r.start = time.Now()
	r.id = uuid.New()
	r.events = nil
	r.log.Info("recording started", zap.String("session", r.id.String()))
}

// Stop ends the session and persists it under recordings/<session>.json.
// Persistence is best-effort: a failed write only logs.
func (r *Recorder) Stop(dir string) int {
	r.mu.Lock()
	r.on = false
	count := len(r.events)
	events := make([]model.RecordedEvent, count)
	copy(events, r.events)
	id := r.id
	r.mu.Unlock()

	r.log.Info("recording stopped", zap.Int("events", count))
	if count == 0 {
		return 0
	}
	if err := persist(dir, id, events); err != nil {
		r.log.Warn("could not persist recording", zap.Error(err))
	}
	return count
}

func persist(dir string, id uuid.UUID, events []model.RecordedEvent) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating recordings dir: %w", err)
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recording: %w", err)
	}
	path := filepath.Join(dir, id.String()+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.on
}

// Capture appends one transition, stamped relative to the session start.
// A no-op unless recording.
func (r *Recorder) Capture(note, vel uint8, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.on {
		return
	}
	action := model.ActionOff
	if on {
		action = model.ActionOn
	}
	r.events = append(r.events, model.RecordedEvent{
		Note:     note,
		Velocity: vel,
		Offset:   time.Since(r.start).Seconds(),
		Action:   action,
	})
}

// Events returns a copy of the captured take.
func (r *Recorder) Events() []model.RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Playing() bool {
	return r.playing.Load()
}

// Playback replays the take on a background goroutine against the live
// synthesizer, blocking only itself between events. At most one playback is
// in flight; a second request is rejected. The frame loop stays responsive
// throughout. done (optional) fires after the final flush.
func (r *Recorder) Playback(out synth.Output, reg *registry.Registry, done func()) error {
	events := r.Events()
	if len(events) == 0 {
		return fmt.Errorf("no recording to play back")
	}
	if !r.playing.CompareAndSwap(false, true) {
		return fmt.Errorf("playback already in progress")
	}

	go func() {
		defer r.playing.Store(false)
		if done != nil {
			defer done()
		}

		// silence whatever is currently sounding before the take starts
		flush(out, reg)

		start := time.Now()
		for _, ev := range events {
			target := start.Add(time.Duration(ev.Offset * float64(time.Second)))
			if d := time.Until(target); d > 0 {
				time.Sleep(d)
			}
			if ev.Action == model.ActionOn {
				if err := out.NoteOn(ev.Note, ev.Velocity); err != nil {
					r.log.Warn("playback note-on failed", zap.Uint8("note", ev.Note), zap.Error(err))
					continue
				}
				reg.Add(ev.Note)
			} else {
				if err := out.NoteOff(ev.Note); err != nil {
					r.log.Warn("playback note-off failed", zap.Uint8("note", ev.Note), zap.Error(err))
					continue
				}
				reg.Remove(ev.Note)
			}
		}

		// anything the take left ringing goes silent
		flush(out, reg)
		r.log.Info("playback complete", zap.Int("events", len(events)))
	}()

	return nil
}

func flush(out synth.Output, reg *registry.Registry) {
	for _, note := range reg.Flush() {
		out.NoteOff(note)
	}
}
