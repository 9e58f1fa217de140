package theory

import (
	"fmt"
	"testing"

	"github.com/jsphweid/airpiano/model"
	"github.com/stretchr/testify/assert"
)

func TestNoteName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C4", NoteName(60))
	assert.Equal("A4", NoteName(69))
	assert.Equal("C-1", NoteName(0))
	assert.Equal("G9", NoteName(127))
}

func TestChordNames(t *testing.T) {
	cases := []struct {
		notes    model.Notes
		expected string
	}{
		{model.Notes{60}, "C"},
		{model.Notes{62}, "D"},
		{model.Notes{60, 63}, "C m3"},
		{model.Notes{60, 64}, "C M3"},
		{model.Notes{60, 67}, "C P5"},
		{model.Notes{60, 66}, "C Pair"},
		{model.Notes{60, 64, 67}, "C Maj"},
		{model.Notes{62, 65, 69}, "D Min"},
		{model.Notes{60, 65, 67}, "C Sus4"},
		{model.Notes{60, 62, 67}, "C Sus2"},
		{model.Notes{60, 61, 62}, "C Triad"},
		// unsorted input: root is still the lowest note
		{model.Notes{67, 60, 64}, "C Maj"},
	}

	for _, c := range cases {
		name := fmt.Sprintf("name for %v", c.notes)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.expected, ChordName(c.notes))
		})
	}
}

func TestChordNameDoesNotMutateInput(t *testing.T) {
	notes := model.Notes{67, 60, 64}
	ChordName(notes)
	assert.Equal(t, model.Notes{67, 60, 64}, notes)
}

func TestChordNameTotalOnNonempty(t *testing.T) {
	// every 1..4 note combination over a small range must produce something
	for a := uint8(55); a < 70; a++ {
		for b := a; b < 70; b++ {
			for c := b; c < 70; c++ {
				assert.NotEmpty(t, ChordName(model.Notes{a, b, c}))
			}
		}
	}
	assert.Equal(t, "---", ChordName(nil))
}
