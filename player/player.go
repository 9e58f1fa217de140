// Package player turns press/release events into MIDI note on/off traffic:
// sustain delays releases, echo re-sounds a chord's attack note, and every
// send is mirrored into the note registry and the recorder.
package player

import (
	"sync"
	"time"

	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/model"
	"github.com/jsphweid/airpiano/registry"
	"github.com/jsphweid/airpiano/synth"
	"go.uber.org/zap"
)

type Player struct {
	out synth.Output
	reg *registry.Registry
	rec *Recorder
	log *zap.Logger

	mu      sync.Mutex
	sustain time.Duration
	echo    bool
}

func New(out synth.Output, reg *registry.Registry, rec *Recorder, log *zap.Logger) *Player {
	return &Player{
		out:     out,
		reg:     reg,
		rec:     rec,
		log:     log,
		sustain: constants.DefaultSustain,
	}
}

func (p *Player) SetSustain(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d > 0 {
		p.sustain = d
	}
}

func (p *Player) SetEcho(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.echo = on
}

func (p *Player) Echo() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.echo
}

// Press sends note-on for every chord note not already sounding. Re-pressing
// an active note is suppressed so sustained holds never double-trigger. With
// echo enabled the chord's first note is re-sounded twice at decaying
// velocity; echoes never cascade.
func (p *Player) Press(notes model.Notes, vel uint8) {
	echo := p.Echo()
	for i, note := range notes {
		if !p.reg.Add(note) {
			continue
		}
		p.noteOn(note, vel)

		if echo && i == 0 {
			p.scheduleEcho(note, scaled(vel, constants.EchoFirstFactor), constants.EchoFirstDelay)
			p.scheduleEcho(note, scaled(vel, constants.EchoSecondFactor), constants.EchoSecondDelay)
		}
	}
}

// scheduleEcho re-sends a note-on later. The note is typically still in the
// registry, so the add is a no-op; it matters only when the sustain window
// already elapsed.
func (p *Player) scheduleEcho(note, vel uint8, delay time.Duration) {
	time.AfterFunc(delay, func() {
		p.reg.Add(note)
		p.noteOn(note, vel)
	})
}

// Release schedules the chord's note-offs after the sustain window, letting
// the notes ring the way an acoustic instrument decays. The timer is never
// cancelled: a note that was re-pressed or panic-stopped in the meantime is
// simply absent from the registry and skipped.
func (p *Player) Release(notes model.Notes) {
	p.mu.Lock()
	sustain := p.sustain
	p.mu.Unlock()

	chord := make(model.Notes, len(notes))
	copy(chord, notes)

	time.AfterFunc(sustain, func() {
		for _, note := range chord {
			if p.reg.Remove(note) {
				p.noteOff(note)
			}
		}
	})
}

// PressDirect plays notes without echo or duplicate-add shortcutting side
// effects beyond the registry gate — the pinch chord path.
func (p *Player) PressDirect(notes model.Notes, vel uint8) {
	for _, note := range notes {
		if p.reg.Add(note) {
			p.noteOn(note, vel)
		}
	}
}

// ReleaseDirect turns notes off immediately (pinch stop), skipping sustain.
func (p *Player) ReleaseDirect(notes model.Notes) {
	for _, note := range notes {
		if p.reg.Remove(note) {
			p.noteOff(note)
		}
	}
}

// PanicStop forces every audible note off right now. Used when hand tracking
// is lost, on scale changes gone wrong, and at shutdown. Pending sustain
// timers find the registry empty and no-op.
func (p *Player) PanicStop() {
	for _, note := range p.reg.Flush() {
		if err := p.out.NoteOff(note); err != nil {
			p.log.Warn("panic note-off failed", zap.Uint8("note", note), zap.Error(err))
		}
	}
}

func (p *Player) noteOn(note, vel uint8) {
	if err := p.out.NoteOn(note, vel); err != nil {
		p.log.Warn("note-on failed", zap.Uint8("note", note), zap.Error(err))
		return
	}
	p.rec.Capture(note, vel, true)
}

func (p *Player) noteOff(note uint8) {
	if err := p.out.NoteOff(note); err != nil {
		p.log.Warn("note-off failed", zap.Uint8("note", note), zap.Error(err))
		return
	}
	p.rec.Capture(note, 0, false)
}

func scaled(vel uint8, factor float64) uint8 {
	return uint8(float64(vel) * factor)
}
