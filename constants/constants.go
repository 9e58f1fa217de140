package constants

import (
	"os"
	"time"
)

// GetConfigPath resolves the settings file, allowing an env override.
func GetConfigPath() string {
	path := os.Getenv("AIRPIANO_CONFIG")
	if path != "" {
		return path
	}
	return "airpiano_config.json"
}

// GetRecordingsDir is where stopped recordings are persisted.
func GetRecordingsDir() string {
	path := os.Getenv("AIRPIANO_RECORDINGS")
	if path != "" {
		return path
	}
	return "recordings"
}

// Sustain / echo timing.
const (
	DefaultSustain   = 800 * time.Millisecond
	EchoFirstDelay   = 80 * time.Millisecond
	EchoSecondDelay  = 160 * time.Millisecond
	EchoFirstFactor  = 0.7
	EchoSecondFactor = 0.4
)

// Velocity model calibration (pixel distances from tip to base landmark).
const (
	VelocityMinDist  = 20.0
	VelocityMaxDist  = 150.0
	VelocityExponent = 0.6
	VelocityFloor    = 20
	VelocityCeil     = 127
	DefaultVelocity  = 80
)

// Volume multiplier bounds and keyboard step.
const (
	MinMultiplier  = 0.1
	MaxMultiplier  = 2.0
	MultiplierStep = 0.1
)

// Pinch gesture.
const (
	DefaultPinchThreshold = 30.0
	PinchVelocity         = 120
	PitchBendCenter       = 8192
	PitchBendMax          = 16383
)

// PinchChord is the fixed special chord (high C major).
var PinchChord = []uint8{84, 88, 91}

// FrameRetryDelay paces the loop after a recoverable frame error.
const FrameRetryDelay = 100 * time.Millisecond

// ConfigSaveDebounce coalesces bursts of settings changes into one write.
const ConfigSaveDebounce = 500 * time.Millisecond
