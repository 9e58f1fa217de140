package theory

import (
	"fmt"
	"sort"

	"github.com/jsphweid/airpiano/model"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a MIDI note with its octave, MIDI 60 being C4.
func NoteName(note uint8) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note)/12-1)
}

// PitchClass is the octave-less name used on key labels.
func PitchClass(note uint8) string {
	return noteNames[note%12]
}

// ChordName labels a nonempty set of notes with a small display heuristic:
// the lowest note is the root, and the first intervals pick the quality.
// It never affects playback.
func ChordName(notes model.Notes) string {
	if len(notes) == 0 {
		return "---"
	}

	sorted := make(model.Notes, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	root := PitchClass(sorted[0])

	if len(sorted) == 1 {
		return root
	}

	if len(sorted) == 2 {
		switch sorted[1] - sorted[0] {
		case 3:
			return root + " m3"
		case 4:
			return root + " M3"
		case 7:
			return root + " P5"
		}
		return root + " Pair"
	}

	first := sorted[1] - sorted[0]
	second := sorted[2] - sorted[1]
	switch {
	case first == 4 && second == 3:
		return root + " Maj"
	case first == 3 && second == 4:
		return root + " Min"
	case first == 5 && second == 2:
		return root + " Sus4"
	case first == 2 && second == 5:
		return root + " Sus2"
	}
	return root + " Triad"
}
