// Package registry tracks the set of currently sounding MIDI notes. It is the
// single source of truth for "is this pitch audible right now": notes enter
// only alongside a note-on send and leave only alongside a note-off send.
package registry

import (
	"sync"

	"github.com/jsphweid/airpiano/model"
	"golang.org/x/exp/slices"
)

type Registry struct {
	mu    sync.Mutex
	notes map[uint8]struct{}
}

func New() *Registry {
	return &Registry{notes: make(map[uint8]struct{})}
}

// Add marks a note audible. Returns false if it already was, which is the
// guard that suppresses duplicate note-on sends.
func (r *Registry) Add(note uint8) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note]; ok {
		return false
	}
	r.notes[note] = struct{}{}
	return true
}

// Remove marks a note silent. Returns false if it was already absent, which
// lets stale sustain timers no-op after a panic stop.
func (r *Registry) Remove(note uint8) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note]; !ok {
		return false
	}
	delete(r.notes, note)
	return true
}

func (r *Registry) Has(note uint8) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.notes[note]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

// Notes returns the audible set sorted ascending, for display.
func (r *Registry) Notes() model.Notes {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked()
}

// Flush atomically empties the set and returns what was audible, so the
// caller can send the matching note-offs.
func (r *Registry) Flush() model.Notes {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes := r.sortedLocked()
	r.notes = make(map[uint8]struct{})
	return notes
}

func (r *Registry) sortedLocked() model.Notes {
	notes := make(model.Notes, 0, len(r.notes))
	for n := range r.notes {
		notes = append(notes, n)
	}
	slices.Sort(notes)
	return notes
}
