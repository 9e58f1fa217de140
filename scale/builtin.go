package scale

import "github.com/jsphweid/airpiano/model"

// Builtin returns the stock bank: each finger of each hand triggers a triad
// of the scale, the right hand an octave (or so) above the left.
func Builtin() []*Scale {
	return []*Scale{
		{
			Name: "D_Major",
			Left: HandMap{
				model.Thumb:  {62, 66, 69}, // D major
				model.Index:  {64, 67, 71}, // E minor
				model.Middle: {66, 69, 73}, // F# minor
				model.Ring:   {67, 71, 74}, // G major
				model.Pinky:  {69, 73, 76}, // A major
			},
			Right: HandMap{
				model.Thumb:  {74, 78, 81},
				model.Index:  {76, 79, 83},
				model.Middle: {78, 81, 85},
				model.Ring:   {79, 83, 86},
				model.Pinky:  {81, 85, 88},
			},
		},
		{
			Name: "C_Major",
			Left: HandMap{
				model.Thumb:  {60, 64, 67}, // C major
				model.Index:  {62, 65, 69}, // D minor
				model.Middle: {64, 67, 71}, // E minor
				model.Ring:   {65, 69, 72}, // F major
				model.Pinky:  {67, 71, 74}, // G major
			},
			Right: HandMap{
				model.Thumb:  {72, 76, 79},
				model.Index:  {74, 77, 81},
				model.Middle: {76, 79, 83},
				model.Ring:   {77, 81, 84},
				model.Pinky:  {79, 83, 86},
			},
		},
		{
			Name: "Pentatonic",
			Left: HandMap{
				model.Thumb:  {60, 64, 67},
				model.Index:  {62, 67, 69},
				model.Middle: {64, 69, 72},
				model.Ring:   {67, 72, 74},
				model.Pinky:  {69, 74, 77},
			},
			Right: HandMap{
				model.Thumb:  {72, 76, 79},
				model.Index:  {74, 79, 81},
				model.Middle: {76, 81, 84},
				model.Ring:   {79, 84, 86},
				model.Pinky:  {81, 86, 89},
			},
		},
	}
}
