// Package scale holds the chord bank: the static mapping from
// (scale, hand, finger) to the MIDI notes that finger triggers.
package scale

import (
	"fmt"

	"github.com/jsphweid/airpiano/model"
)

// HandMap assigns a chord to each of the five fingers of one hand.
type HandMap = map[model.Finger]model.Notes

type Scale struct {
	Name  string
	Left  HandMap
	Right HandMap
}

// Hand picks the mapping for a side.
func (s *Scale) Hand(side model.Side) HandMap {
	if side == model.LeftSide {
		return s.Left
	}
	return s.Right
}

// Chord resolves one finger; ok is false only for malformed keys, which
// validation rules out for bank scales.
func (s *Scale) Chord(key model.FingerKey) (model.Notes, bool) {
	notes, ok := s.Hand(key.Side)[key.Finger]
	return notes, ok
}

// Bank is the ordered set of selectable scales. Exactly one is current.
type Bank struct {
	order  []string
	scales map[string]*Scale
	curr   int
}

// NewBank validates every scale table up front: five fingers per hand, each
// mapped to a nonempty chord of valid MIDI notes. Malformed tables are a
// configuration error and fatal at startup.
func NewBank(scales []*Scale) (*Bank, error) {
	if len(scales) == 0 {
		return nil, fmt.Errorf("scale bank is empty")
	}

	b := &Bank{scales: make(map[string]*Scale)}
	for _, s := range scales {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("scale %q: %w", s.Name, err)
		}
		if _, dup := b.scales[s.Name]; dup {
			return nil, fmt.Errorf("scale %q declared twice", s.Name)
		}
		b.order = append(b.order, s.Name)
		b.scales[s.Name] = s
	}
	return b, nil
}

func validate(s *Scale) error {
	for _, side := range model.Sides {
		hm := s.Hand(side)
		if len(hm) != len(model.Fingers) {
			return fmt.Errorf("%s hand maps %d fingers, want %d", side, len(hm), len(model.Fingers))
		}
		for _, finger := range model.Fingers {
			notes, ok := hm[finger]
			if !ok {
				return fmt.Errorf("%s hand is missing finger %q", side, finger)
			}
			if len(notes) == 0 {
				return fmt.Errorf("%s %s chord is empty", side, finger)
			}
			for _, n := range notes {
				if n > 127 {
					return fmt.Errorf("%s %s chord has out-of-range note %d", side, finger, n)
				}
			}
		}
	}
	return nil
}

// Current returns the selected scale.
func (b *Bank) Current() *Scale {
	return b.scales[b.order[b.curr]]
}

// Names lists the selectable scales in cycle order.
func (b *Bank) Names() []string {
	names := make([]string, len(b.order))
	copy(names, b.order)
	return names
}

// Cycle advances circularly and returns the new scale name. Callers must
// reset previous finger state: a stale "up" finger would map onto different
// notes in the new scale and misfire.
func (b *Bank) Cycle() string {
	b.curr = (b.curr + 1) % len(b.order)
	return b.order[b.curr]
}

// Select jumps to a named scale (used when restoring saved settings).
func (b *Bank) Select(name string) error {
	for i, n := range b.order {
		if n == name {
			b.curr = i
			return nil
		}
	}
	return fmt.Errorf("unknown scale %q", name)
}
