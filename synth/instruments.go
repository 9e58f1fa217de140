package synth

// Instrument pairs a General MIDI program number with its display name.
type Instrument struct {
	Program uint8
	Name    string
}

// Instruments is the selectable palette, in slot order. Keyboard slots 1-9
// map onto the first nine.
var Instruments = []Instrument{
	{0, "Acoustic Grand Piano"},
	{1, "Electric Piano"},
	{4, "Rhodes Piano"},
	{6, "Harpsichord"},
	{8, "Celesta"},
	{11, "Vibraphone"},
	{12, "Marimba"},
	{14, "Tubular Bells"},
	{16, "Hammond Organ"},
	{25, "Acoustic Guitar"},
	{40, "Violin"},
	{48, "String Ensemble"},
	{73, "Flute"},
	{80, "Lead Synth"},
}

// InstrumentName resolves a program number for display.
func InstrumentName(program uint8) string {
	for _, inst := range Instruments {
		if inst.Program == program {
			return inst.Name
		}
	}
	return "Unknown"
}

// InstrumentSlot returns the program for keyboard slot 1..9, ok=false when
// the slot is out of range.
func InstrumentSlot(slot int) (uint8, bool) {
	idx := slot - 1
	if idx < 0 || idx >= len(Instruments) || slot > 9 {
		return 0, false
	}
	return Instruments[idx].Program, true
}
