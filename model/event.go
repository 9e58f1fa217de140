package model

// RecordedEvent is one captured note transition, offset-stamped relative to the
// start of the recording session.
type RecordedEvent struct {
	Note     uint8   `json:"note"`
	Velocity uint8   `json:"velocity"` // 0 for off
	Offset   float64 `json:"time"`     // seconds since recording start
	Action   string  `json:"action"`   // "on" or "off"
}

const (
	ActionOn  = "on"
	ActionOff = "off"
)
