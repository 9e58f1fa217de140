package velocity

import (
	"math"

	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/model"
)

// Model maps a finger's tip-to-base spread onto a MIDI velocity. The response
// curve is sub-linear so small spreads near the low end still move the output.
type Model struct {
	MinDist  float64
	MaxDist  float64
	Exponent float64
	Floor    int
	Ceil     int
}

func Default() Model {
	return Model{
		MinDist:  constants.VelocityMinDist,
		MaxDist:  constants.VelocityMaxDist,
		Exponent: constants.VelocityExponent,
		Floor:    constants.VelocityFloor,
		Ceil:     constants.VelocityCeil,
	}
}

// Fallback is used whenever landmarks are missing or incomplete.
func (m Model) Fallback() uint8 {
	return constants.DefaultVelocity
}

// ForFinger resolves the tip/base landmarks of the given finger index and
// returns Fallback when the observation is incomplete.
func (m Model) ForFinger(hand model.Hand, finger int, multiplier float64) uint8 {
	if !hand.Complete() || finger < 0 || finger >= len(model.FingerLandmarks) {
		return m.Fallback()
	}
	pair := model.FingerLandmarks[finger]
	return m.ForSpread(hand.Landmarks[pair[0]], hand.Landmarks[pair[1]], multiplier)
}

// ForSpread converts the Euclidean tip-to-base distance into velocity.
func (m Model) ForSpread(tip, base [2]float64, multiplier float64) uint8 {
	dx := tip[0] - base[0]
	dy := tip[1] - base[1]
	dist := math.Sqrt(dx*dx + dy*dy)

	normalized := (dist - m.MinDist) / (m.MaxDist - m.MinDist)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	curve := math.Pow(normalized, m.Exponent)
	span := float64(m.Ceil - m.Floor)
	v := int(float64(m.Floor) + curve*span*multiplier)

	if v < m.Floor {
		v = m.Floor
	}
	if v > m.Ceil {
		v = m.Ceil
	}
	return uint8(v)
}
