package engine

// Command is the operator surface, symbolic rather than key codes: the
// console goroutine (or any future frontend) translates input into these.
type CommandKind int

const (
	CmdQuit CommandKind = iota
	CmdToggleFullscreen
	CmdCycleScale
	CmdToggleRecording
	CmdPlayback
	CmdVolumeUp
	CmdVolumeDown
	CmdToggleEcho
	CmdInstrument // Slot carries 1..9
)

type Command struct {
	Kind CommandKind
	Slot int
}
