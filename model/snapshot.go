package model

// PinchStatus is the pinch-visual feedback handed to the renderer.
type PinchStatus struct {
	Active bool   `json:"active"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Bend   uint16 `json:"bend"`
}

// Snapshot is everything the rendering collaborator needs to draw one frame.
type Snapshot struct {
	Scale        string      `json:"scale"`
	Instrument   string      `json:"instrument"`
	VolumePct    int         `json:"volume_pct"`
	ActiveKeys   []string    `json:"active_keys"`
	ActiveChords []string    `json:"active_chords"`
	ActiveNotes  Notes       `json:"active_notes"`
	NoteNames    []string    `json:"note_names"`
	FPS          int         `json:"fps"`
	Recording    bool        `json:"recording"`
	Playing      bool        `json:"playing"`
	Echo         bool        `json:"echo"`
	Fullscreen   bool        `json:"fullscreen"`
	Pinch        PinchStatus `json:"pinch"`
}
