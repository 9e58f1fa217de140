package gesture

import (
	"math"

	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/model"
)

// PinchResult describes the pinch state for one frame. The caller turns
// Started/Stopped into note on/off against the live synthesizer; Bend is
// re-sent every active frame so the bend tracks the hand.
type PinchResult struct {
	// Sides that are pinching this frame; these hands are excluded from
	// regular per-finger processing.
	Sides   map[model.Side]bool
	Started bool
	Active  bool
	Stopped bool
	Bend    uint16
	// Feedback center of the last pinching hand, for the renderer.
	X int
	Y int
}

// Pinch detects the thumb+index proximity gesture. The playing flag is
// global: one chord sounds no matter how many hands pinch.
type Pinch struct {
	threshold   float64
	screenWidth int
	playing     bool
}

func NewPinch(threshold float64, screenWidth int) *Pinch {
	return &Pinch{threshold: threshold, screenWidth: screenWidth}
}

// SetScreenWidth tracks the live frame width the bend is normalized against.
func (p *Pinch) SetScreenWidth(w int) {
	if w > 0 {
		p.screenWidth = w
	}
}

func (p *Pinch) Playing() bool {
	return p.playing
}

// Reset drops the playing flag, reporting whether it was set. Used by the
// hand-loss panic stop and shutdown; the caller sends the note-offs and
// recenters the bend.
func (p *Pinch) Reset() bool {
	was := p.playing
	p.playing = false
	return was
}

// Update inspects every hand. A hand pinches iff its thumb and index tips
// are closer than the threshold AND both fingers are independently reported
// up; incomplete observations never pinch.
func (p *Pinch) Update(hands []model.Hand) PinchResult {
	res := PinchResult{Sides: make(map[model.Side]bool)}

	for _, h := range hands {
		if !p.isPinching(h) {
			continue
		}
		res.Sides[h.Side()] = true
		res.X, res.Y = h.BBox.Center()
		res.Bend = p.bendFor(h)
	}

	if len(res.Sides) > 0 {
		res.Active = true
		if !p.playing {
			res.Started = true
			p.playing = true
		}
	} else if p.playing {
		res.Stopped = true
		p.playing = false
		res.Bend = constants.PitchBendCenter
	}

	return res
}

func (p *Pinch) isPinching(h model.Hand) bool {
	if !h.Complete() {
		return false
	}
	thumb := h.Landmarks[model.ThumbTip]
	index := h.Landmarks[model.IndexTip]
	dx := thumb[0] - index[0]
	dy := thumb[1] - index[1]
	dist := math.Sqrt(dx*dx + dy*dy)
	return dist < p.threshold && h.FingersUp[0] && h.FingersUp[1]
}

// bendFor maps the hand's horizontal bounding-box center across the screen
// linearly onto the 14-bit bend range.
func (p *Pinch) bendFor(h model.Hand) uint16 {
	cx, _ := h.BBox.Center()
	normalized := float64(cx) / float64(p.screenWidth)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return uint16(normalized * constants.PitchBendMax)
}
