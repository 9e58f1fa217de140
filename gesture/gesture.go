// Package gesture turns noisy per-frame hand observations into discrete
// musical events: finger up/down edges become chord presses and releases,
// and a thumb+index pinch drives a special chord with pitch bend.
package gesture

import (
	"github.com/jsphweid/airpiano/model"
	"github.com/jsphweid/airpiano/scale"
	"github.com/jsphweid/airpiano/velocity"
)

type Press struct {
	Key      model.FingerKey
	Notes    model.Notes
	Velocity uint8
}

type Release struct {
	Key   model.FingerKey
	Notes model.Notes
}

// Frame is the outcome of one observation tick.
type Frame struct {
	Presses  []Press
	Releases []Release
	// ActiveKeys is every finger currently up, recomputed wholesale — the
	// renderer's highlight set, not edge-based.
	ActiveKeys []model.FingerKey
}

// StateMachine owns the previous-frame finger state and detects edges
// against it. It is driven from the single frame loop, never concurrently.
type StateMachine struct {
	vel  velocity.Model
	prev map[model.FingerKey]bool
}

func NewStateMachine(vel velocity.Model) *StateMachine {
	return &StateMachine{vel: vel, prev: make(map[model.FingerKey]bool)}
}

// Reset forces every previous state to "down". Required on scale changes
// (a stale "up" would misfire onto the new scale's notes) and on hand loss.
func (sm *StateMachine) Reset() {
	sm.prev = make(map[model.FingerKey]bool)
}

// Advance computes this frame's transitions. Hands absent from the
// observation list, and hands on excluded (pinching) sides, count as all
// fingers down. Velocities come from the pressing finger's landmarks.
func (sm *StateMachine) Advance(hands []model.Hand, excluded map[model.Side]bool, sc *scale.Scale, multiplier float64) Frame {
	observed := make(map[model.Side]model.Hand, len(hands))
	curr := make(map[model.FingerKey]bool)

	for _, h := range hands {
		side := h.Side()
		if excluded[side] {
			continue
		}
		observed[side] = h
		for i, finger := range model.Fingers {
			key := model.FingerKey{Side: side, Finger: finger}
			if _, ok := sc.Chord(key); ok {
				curr[key] = h.FingersUp[i]
			}
		}
	}

	var frame Frame
	for _, side := range model.Sides {
		for i, finger := range model.Fingers {
			key := model.FingerKey{Side: side, Finger: finger}
			notes, ok := sc.Chord(key)
			if !ok {
				continue
			}

			up := curr[key]
			was := sm.prev[key]

			switch {
			case up && !was:
				frame.Presses = append(frame.Presses, Press{
					Key:      key,
					Notes:    notes,
					Velocity: sm.vel.ForFinger(observed[side], i, multiplier),
				})
			case !up && was:
				frame.Releases = append(frame.Releases, Release{Key: key, Notes: notes})
			}

			if up {
				frame.ActiveKeys = append(frame.ActiveKeys, key)
			}
		}
	}

	sm.prev = curr
	return frame
}
