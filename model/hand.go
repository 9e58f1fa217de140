package model

type Notes = []uint8

// Side identifies which hand a finger mapping belongs to.
type Side string

const (
	LeftSide  Side = "left"
	RightSide Side = "right"
)

// Finger names match the order of the tracker's fingers-up vector.
type Finger string

const (
	Thumb  Finger = "thumb"
	Index  Finger = "index"
	Middle Finger = "middle"
	Ring   Finger = "ring"
	Pinky  Finger = "pinky"
)

var Fingers = [5]Finger{Thumb, Index, Middle, Ring, Pinky}

var Sides = [2]Side{LeftSide, RightSide}

// FingerKey addresses one finger of one hand across frames.
type FingerKey struct {
	Side   Side
	Finger Finger
}

func (k FingerKey) String() string {
	return string(k.Side) + "_" + string(k.Finger)
}

// Landmark indices following the MediaPipe hand convention.
const (
	WristLandmark = 0
	ThumbTip      = 4
	IndexTip      = 8
	NumLandmarks  = 21
)

// tip/base landmark pairs per finger, indexed like Fingers.
var FingerLandmarks = [5][2]int{
	{4, 2},   // thumb
	{8, 5},   // index
	{12, 9},  // middle
	{16, 13}, // ring
	{20, 17}, // pinky
}

// BBox is the axis-aligned bounding box of a detected hand, in pixels.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (b BBox) Center() (int, int) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Hand is one per-frame observation from the tracking collaborator.
// Landmarks carry pixel (x, y); trackers that emit z are truncated upstream.
type Hand struct {
	// Handedness is the tracker's label, "Left" or "Right".
	Handedness string       `json:"type"`
	Landmarks  [][2]float64 `json:"lmList"`
	FingersUp  [5]bool      `json:"fingersUp"`
	BBox       BBox         `json:"bbox"`
}

// Side maps the tracker label onto our mapping key.
func (h Hand) Side() Side {
	if h.Handedness == "Left" {
		return LeftSide
	}
	return RightSide
}

// Complete reports whether the observation carries the full landmark set.
func (h Hand) Complete() bool {
	return len(h.Landmarks) >= NumLandmarks
}
