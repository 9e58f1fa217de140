// Package synth is the MIDI output boundary. Everything audible goes through
// Output on channel 0: note on/off pairs and 14-bit pitch-bend messages.
package synth

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/zap"
)

// Output is what the gesture pipeline plays against. Implementations must be
// safe for concurrent use: sustain timers, echo timers and playback all send.
type Output interface {
	NoteOn(note, velocity uint8) error
	NoteOff(note uint8) error
	// PitchBend takes the absolute 14-bit value; 8192 means no bend.
	PitchBend(value uint16) error
	ProgramChange(program uint8) error
	Close() error
}

// preferred software synthesizers, tried in order when no port is named.
var preferredPortPatterns = []string{"FluidSynth", "TiMidity", "Microsoft GS Wavetable", "loopMIDI", "Synth"}

type Synth struct {
	port drivers.Out
	send func(midi.Message) error
	log  *zap.Logger
}

// Ports lists the MIDI output ports visible to the driver.
func Ports() []string {
	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// Open connects to a MIDI output. An empty hint prefers a known software
// synthesizer, then falls back to the first port. A hint selects by number or
// case-insensitive substring. No usable port is fatal: the system cannot run
// without synthesizer output.
func Open(hint string, log *zap.Logger) (*Synth, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output devices available")
	}

	port, err := pickPort(outs, hint)
	if err != nil {
		return nil, err
	}
	if err := port.Open(); err != nil {
		return nil, fmt.Errorf("opening MIDI port %q: %w", port.String(), err)
	}

	send, err := midi.SendTo(port)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("attaching sender to %q: %w", port.String(), err)
	}

	log.Info("MIDI output connected", zap.String("port", port.String()))
	return &Synth{port: port, send: send, log: log}, nil
}

func pickPort(outs midi.OutPorts, hint string) (drivers.Out, error) {
	if hint != "" {
		if n, err := strconv.Atoi(hint); err == nil {
			if n < 0 || n >= len(outs) {
				return nil, fmt.Errorf("MIDI port index %d out of range (%d ports)", n, len(outs))
			}
			return outs[n], nil
		}
		for _, out := range outs {
			if strings.Contains(strings.ToLower(out.String()), strings.ToLower(hint)) {
				return out, nil
			}
		}
		return nil, fmt.Errorf("no MIDI output matching %q", hint)
	}

	for _, pattern := range preferredPortPatterns {
		for _, out := range outs {
			if strings.Contains(strings.ToLower(out.String()), strings.ToLower(pattern)) {
				return out, nil
			}
		}
	}
	return outs[0], nil
}

func (s *Synth) NoteOn(note, velocity uint8) error {
	return s.send(midi.NoteOn(0, note, velocity))
}

func (s *Synth) NoteOff(note uint8) error {
	return s.send(midi.NoteOff(0, note))
}

// PitchBend splits the 14-bit value into 7-bit LSB/MSB and sends the raw
// channel-0 message, keeping the wire format bit-exact.
func (s *Synth) PitchBend(value uint16) error {
	lsb := byte(value & 0x7F)
	msb := byte((value >> 7) & 0x7F)
	return s.send(midi.Message{0xE0, lsb, msb})
}

func (s *Synth) ProgramChange(program uint8) error {
	return s.send(midi.ProgramChange(0, program))
}

func (s *Synth) Close() error {
	defer midi.CloseDriver()
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}
