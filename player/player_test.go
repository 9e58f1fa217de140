package player

import (
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/airpiano/model"
	"github.com/jsphweid/airpiano/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type midiCall struct {
	kind string // "on", "off", "bend", "program"
	note uint8
	vel  uint8
}

// fakeSynth records every send; safe for the concurrent timer paths.
type fakeSynth struct {
	mu    sync.Mutex
	calls []midiCall
}

func (f *fakeSynth) NoteOn(note, vel uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, midiCall{"on", note, vel})
	return nil
}

func (f *fakeSynth) NoteOff(note uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, midiCall{"off", note, 0})
	return nil
}

func (f *fakeSynth) PitchBend(v uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, midiCall{kind: "bend", vel: uint8(v >> 7)})
	return nil
}

func (f *fakeSynth) ProgramChange(p uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, midiCall{kind: "program", note: p})
	return nil
}

func (f *fakeSynth) Close() error { return nil }

func (f *fakeSynth) snapshot() []midiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]midiCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeSynth) count(kind string, note uint8) int {
	n := 0
	for _, c := range f.snapshot() {
		if c.kind == kind && c.note == note {
			n++
		}
	}
	return n
}

func newTestPlayer() (*Player, *fakeSynth, *registry.Registry, *Recorder) {
	out := &fakeSynth{}
	reg := registry.New()
	rec := NewRecorder(zap.NewNop())
	return New(out, reg, rec, zap.NewNop()), out, reg, rec
}

func TestPressSendsEachNoteOnce(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	chord := model.Notes{60, 64, 67}

	p.Press(chord, 90)
	p.Press(chord, 90) // held / re-pressed: every note already active

	assert := assert.New(t)
	for _, n := range chord {
		assert.Equal(1, out.count("on", n), "no duplicate note-on while audible")
	}
	assert.Equal(model.Notes{60, 64, 67}, reg.Notes())
}

func TestReleaseWaitsForSustain(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	p.SetSustain(60 * time.Millisecond)
	chord := model.Notes{60, 64, 67}

	p.Press(chord, 90)
	released := time.Now()
	p.Release(chord)

	// well inside the sustain window nothing is off yet
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, out.count("off", 60), "note-off must not fire before the sustain window")
	assert.True(t, reg.Has(60))

	// and shortly after the window everything is off
	deadline := released.Add(60*time.Millisecond + 200*time.Millisecond)
	for time.Now().Before(deadline) && reg.Len() > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, reg.Len())
	for _, n := range chord {
		assert.Equal(t, 1, out.count("off", n))
	}
}

func TestDoubleReleaseIsNoop(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	p.SetSustain(10 * time.Millisecond)
	chord := model.Notes{62, 66}

	p.Press(chord, 80)
	p.Release(chord)
	p.Release(chord)
	time.Sleep(80 * time.Millisecond)

	for _, n := range chord {
		assert.Equal(t, 1, out.count("off", n), "second release must not duplicate note-off")
	}
	assert.Equal(t, 0, reg.Len())
}

func TestFastRepressAbsorbedBySustain(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	p.SetSustain(40 * time.Millisecond)

	p.Press(model.Notes{60}, 90)
	p.Release(model.Notes{60})
	// re-press before the sustain timer fires: the note is still active so
	// no second note-on is sent, and the pending timer will turn it off
	p.Press(model.Notes{60}, 90)
	assert.Equal(t, 1, out.count("on", 60))

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, reg.Len())
}

func TestEchoReSoundsOnlyFirstNote(t *testing.T) {
	p, out, _, _ := newTestPlayer()
	p.SetEcho(true)

	p.Press(model.Notes{60, 64, 67}, 100)
	time.Sleep(300 * time.Millisecond)

	assert := assert.New(t)
	assert.Equal(3, out.count("on", 60), "attack note echoes twice")
	assert.Equal(1, out.count("on", 64))
	assert.Equal(1, out.count("on", 67))

	// decaying echo velocities
	var echoVels []uint8
	for _, c := range out.snapshot() {
		if c.kind == "on" && c.note == 60 && c.vel != 100 {
			echoVels = append(echoVels, c.vel)
		}
	}
	require.Len(t, echoVels, 2)
	assert.Equal(uint8(70), echoVels[0])
	assert.Equal(uint8(40), echoVels[1])
}

func TestEchoDisabledByDefault(t *testing.T) {
	p, out, _, _ := newTestPlayer()
	p.Press(model.Notes{60}, 100)
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 1, out.count("on", 60))
}

func TestPanicStopSilencesEverythingNow(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	p.SetSustain(500 * time.Millisecond)
	chord := model.Notes{60, 64, 67}

	p.Press(chord, 90)
	p.Release(chord) // sustain timer pending
	p.PanicStop()

	assert.Equal(t, 0, reg.Len(), "registry empties immediately, no waiting on sustain")
	for _, n := range chord {
		assert.Equal(t, 1, out.count("off", n))
	}

	// the stale sustain timer finds nothing and must not double-off
	time.Sleep(600 * time.Millisecond)
	for _, n := range chord {
		assert.Equal(t, 1, out.count("off", n))
	}
}

func TestDirectPressAndRelease(t *testing.T) {
	p, out, reg, _ := newTestPlayer()
	pinch := model.Notes{84, 88, 91}

	p.PressDirect(pinch, 120)
	p.PressDirect(pinch, 120)
	assert.Equal(t, 1, out.count("on", 84))
	assert.Equal(t, 3, reg.Len())

	p.ReleaseDirect(pinch)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1, out.count("off", 84), "direct release skips sustain entirely")
}
