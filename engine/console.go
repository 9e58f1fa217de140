package engine

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ReadCommands turns operator console lines into commands until the reader
// closes. One letter per line, mirroring the documented key surface:
// q quit, f fullscreen, s cycle scale, r toggle recording, p playback,
// e toggle echo, +/- volume, 1-9 instrument slots.
func ReadCommands(r io.Reader, cmds chan<- Command, log *zap.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, ok := parseCommand(line)
		if !ok {
			log.Debug("unknown console input", zap.String("input", line))
			continue
		}
		cmds <- cmd
		if cmd.Kind == CmdQuit {
			return
		}
	}
}

func parseCommand(line string) (Command, bool) {
	switch line {
	case "q":
		return Command{Kind: CmdQuit}, true
	case "f":
		return Command{Kind: CmdToggleFullscreen}, true
	case "s":
		return Command{Kind: CmdCycleScale}, true
	case "r":
		return Command{Kind: CmdToggleRecording}, true
	case "p":
		return Command{Kind: CmdPlayback}, true
	case "e":
		return Command{Kind: CmdToggleEcho}, true
	case "+", "=":
		return Command{Kind: CmdVolumeUp}, true
	case "-":
		return Command{Kind: CmdVolumeDown}, true
	}
	if len(line) == 1 && line[0] >= '1' && line[0] <= '9' {
		return Command{Kind: CmdInstrument, Slot: int(line[0] - '0')}, true
	}
	return Command{}, false
}
