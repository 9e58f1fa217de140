// Package engine drives the cooperative main loop: frames in, gestures
// detected, MIDI out, snapshot published. The loop blocks only on frame
// acquisition; sustain, echo and playback run on their own goroutines.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/jsphweid/airpiano/config"
	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/gesture"
	"github.com/jsphweid/airpiano/model"
	"github.com/jsphweid/airpiano/player"
	"github.com/jsphweid/airpiano/registry"
	"github.com/jsphweid/airpiano/scale"
	"github.com/jsphweid/airpiano/synth"
	"github.com/jsphweid/airpiano/theory"
	"github.com/jsphweid/airpiano/track"
	"github.com/jsphweid/airpiano/util"
	"github.com/jsphweid/airpiano/velocity"
	"go.uber.org/zap"
)

type Options struct {
	Config   config.Config
	Saver    *config.Saver
	Bank     *scale.Bank
	Output   synth.Output
	Source   track.Source
	Monitor  *Monitor
	Commands <-chan Command
	Log      *zap.Logger
}

type Engine struct {
	cfg   config.Config
	saver *config.Saver
	bank  *scale.Bank
	out   synth.Output
	src   track.Source
	mon   *Monitor
	cmds  <-chan Command
	log   *zap.Logger

	reg    *registry.Registry
	rec    *player.Recorder
	player *player.Player
	sm     *gesture.StateMachine
	pinch  *gesture.Pinch

	fullscreen bool
	lastPinch  gesture.PinchResult
	activeKeys []model.FingerKey

	fpsCount int
	fpsSince time.Time
	fps      int
}

func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if err := opts.Bank.Select(cfg.CurrentScale); err != nil {
		// unknown saved scale: keep the bank's default rather than failing
		opts.Log.Warn("saved scale not in bank, keeping default", zap.String("scale", cfg.CurrentScale))
		cfg.CurrentScale = opts.Bank.Current().Name
	}

	reg := registry.New()
	rec := player.NewRecorder(opts.Log)
	pl := player.New(opts.Output, reg, rec, opts.Log)
	pl.SetSustain(time.Duration(cfg.SustainTime * float64(time.Second)))
	pl.SetEcho(cfg.EchoEnabled)

	e := &Engine{
		cfg:      cfg,
		saver:    opts.Saver,
		bank:     opts.Bank,
		out:      opts.Output,
		src:      opts.Source,
		mon:      opts.Monitor,
		cmds:     opts.Commands,
		log:      opts.Log,
		reg:      reg,
		rec:      rec,
		player:   pl,
		sm:       gesture.NewStateMachine(velocity.Default()),
		pinch:    gesture.NewPinch(cfg.PinchThreshold, cfg.ScreenWidth),
		fpsSince: time.Now(),
	}

	if err := opts.Output.ProgramChange(uint8(cfg.CurrentInstrument)); err != nil {
		return nil, fmt.Errorf("selecting instrument %d: %w", cfg.CurrentInstrument, err)
	}
	return e, nil
}

// Run loops until the source ends, a quit command arrives, or the context is
// cancelled. Every exit path — including a recovered panic — goes through
// the same cleanup: all notes off, bend recentered, settings saved.
func (e *Engine) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("unexpected failure in frame loop",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("frame loop panicked: %v", r)
		}
		e.shutdown()
	}()

	e.log.Info("engine running",
		zap.String("scale", e.bank.Current().Name),
		zap.String("instrument", synth.InstrumentName(uint8(e.cfg.CurrentInstrument))))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.cmds:
			if quit := e.handle(cmd); quit {
				return nil
			}
			continue
		default:
		}

		frame, ferr := e.src.Next()
		switch {
		case errors.Is(ferr, io.EOF):
			e.log.Info("tracker stream ended")
			return nil
		case ferr != nil:
			e.log.Warn("frame failed, continuing", zap.Error(ferr))
			time.Sleep(constants.FrameRetryDelay)
			continue
		}

		e.observe(frame)
		e.tickFPS()
		e.publish()
	}
}

// observe is one gesture tick: pinch first (it claims whole hands), then the
// per-finger state machine over whatever is left.
func (e *Engine) observe(frame track.Frame) {
	if frame.Width > 0 {
		e.pinch.SetScreenWidth(frame.Width)
		e.cfg.ScreenWidth = frame.Width
		e.cfg.ScreenHeight = frame.Height
	}

	if len(frame.Hands) == 0 {
		// tracking lost: stop everything immediately so nothing sticks
		e.sm.Reset()
		if e.pinch.Reset() {
			e.bend(constants.PitchBendCenter)
		}
		e.player.PanicStop()
		e.lastPinch = gesture.PinchResult{}
		e.activeKeys = nil
		return
	}

	pinch := e.pinch.Update(frame.Hands)
	if pinch.Started {
		e.player.PressDirect(constants.PinchChord, constants.PinchVelocity)
	}
	if pinch.Active {
		e.bend(pinch.Bend)
	}
	if pinch.Stopped {
		e.player.ReleaseDirect(constants.PinchChord)
		e.bend(constants.PitchBendCenter)
	}
	e.lastPinch = pinch

	res := e.sm.Advance(frame.Hands, pinch.Sides, e.bank.Current(), e.cfg.VelocityMultiplier)
	for _, p := range res.Presses {
		e.player.Press(p.Notes, p.Velocity)
	}
	for _, r := range res.Releases {
		e.player.Release(r.Notes)
	}
	e.activeKeys = res.ActiveKeys
}

func (e *Engine) bend(v uint16) {
	if err := e.out.PitchBend(v); err != nil {
		e.log.Warn("pitch bend failed", zap.Uint16("value", v), zap.Error(err))
	}
}

// handle applies one operator command; returns true on quit.
func (e *Engine) handle(cmd Command) bool {
	switch cmd.Kind {
	case CmdQuit:
		e.log.Info("quit requested")
		return true

	case CmdToggleFullscreen:
		// rendering is a collaborator; we only track the flag it reads back
		e.fullscreen = !e.fullscreen

	case CmdCycleScale:
		name := e.bank.Cycle()
		// stale "up" states would misfire onto the new scale's notes
		e.sm.Reset()
		e.activeKeys = nil
		e.cfg.CurrentScale = name
		e.log.Info("scale changed", zap.String("scale", name))
		e.saver.Schedule(e.cfg)

	case CmdToggleRecording:
		if e.rec.Recording() {
			e.rec.Stop(constants.GetRecordingsDir())
		} else {
			e.rec.Start()
		}

	case CmdPlayback:
		if err := e.rec.Playback(e.out, e.reg, nil); err != nil {
			e.log.Warn("playback rejected", zap.Error(err))
		}

	case CmdVolumeUp:
		e.setMultiplier(e.cfg.VelocityMultiplier + constants.MultiplierStep)

	case CmdVolumeDown:
		e.setMultiplier(e.cfg.VelocityMultiplier - constants.MultiplierStep)

	case CmdToggleEcho:
		e.cfg.EchoEnabled = !e.cfg.EchoEnabled
		e.player.SetEcho(e.cfg.EchoEnabled)
		e.log.Info("echo toggled", zap.Bool("enabled", e.cfg.EchoEnabled))
		e.saver.Schedule(e.cfg)

	case CmdInstrument:
		program, ok := synth.InstrumentSlot(cmd.Slot)
		if !ok {
			e.log.Warn("no instrument in slot", zap.Int("slot", cmd.Slot))
			break
		}
		if err := e.out.ProgramChange(program); err != nil {
			e.log.Warn("program change failed", zap.Error(err))
			break
		}
		e.cfg.CurrentInstrument = int(program)
		e.log.Info("instrument changed", zap.String("name", synth.InstrumentName(program)))
		e.saver.Schedule(e.cfg)
	}
	return false
}

func (e *Engine) setMultiplier(v float64) {
	e.cfg.VelocityMultiplier = util.Clamp(v, constants.MinMultiplier, constants.MaxMultiplier)
	e.log.Info("volume", zap.Int("pct", int(e.cfg.VelocityMultiplier*100)))
	e.saver.Schedule(e.cfg)
}

func (e *Engine) tickFPS() {
	e.fpsCount++
	if since := time.Since(e.fpsSince); since >= time.Second {
		e.fps = e.fpsCount
		e.fpsCount = 0
		e.fpsSince = time.Now()
	}
}

func (e *Engine) publish() {
	if e.mon == nil {
		return
	}

	notes := e.reg.Notes()
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = theory.NoteName(n)
	}

	sc := e.bank.Current()
	keys := make([]string, len(e.activeKeys))
	chords := make([]string, len(e.activeKeys))
	for i, k := range e.activeKeys {
		keys[i] = k.String()
		chord, _ := sc.Chord(k)
		chords[i] = theory.ChordName(chord)
	}

	e.mon.PublishConfig(e.cfg)
	e.mon.Publish(model.Snapshot{
		Scale:        sc.Name,
		Instrument:   synth.InstrumentName(uint8(e.cfg.CurrentInstrument)),
		VolumePct:    int(e.cfg.VelocityMultiplier * 100),
		ActiveKeys:   keys,
		ActiveChords: chords,
		ActiveNotes:  notes,
		NoteNames:    names,
		FPS:          e.fps,
		Recording:    e.rec.Recording(),
		Playing:      e.rec.Playing(),
		Echo:         e.player.Echo(),
		Fullscreen:   e.fullscreen,
		Pinch: model.PinchStatus{
			Active: e.lastPinch.Active,
			X:      e.lastPinch.X,
			Y:      e.lastPinch.Y,
			Bend:   e.lastPinch.Bend,
		},
	})
}

// shutdown is the guaranteed-cleanup path: nothing may be left sounding and
// the synthesizer must be recentered before handles close.
func (e *Engine) shutdown() {
	e.player.PanicStop()
	e.pinch.Reset()
	e.bend(constants.PitchBendCenter)
	e.saver.Flush(e.cfg)
	if err := e.src.Close(); err != nil {
		e.log.Warn("closing tracker source", zap.Error(err))
	}
	if err := e.out.Close(); err != nil {
		e.log.Warn("closing MIDI output", zap.Error(err))
	}
	e.log.Info("engine stopped, all notes off")
}
