package timer

import (
	"errors"
	"fmt"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateAlarming
)

// ErrZeroDuration is returned when Start is asked to run a zero-length timer.
var ErrZeroDuration = errors.New("set a time greater than 0")

// Beeper produces the alarm sound. StartAlarm must tear down any prior alarm
// loop so only one audio source is ever active.
type Beeper interface {
	StartAlarm()
	StopAlarm()
}

// Timer is the focus interval timer. It counts down whole seconds and rings
// an alarm loop at zero until acknowledged. All methods are called from a
// single event loop; Timer does no locking of its own.
type Timer struct {
	state     State
	remaining int // seconds
	beeper    Beeper
}

func New(beeper Beeper) *Timer {
	return &Timer{beeper: beeper}
}

func (t *Timer) State() State  { return t.state }
func (t *Timer) Remaining() int { return t.remaining }

// Start begins or resumes the countdown. When paused with time left it
// resumes from the paused value and ignores the requested duration.
func (t *Timer) Start(minutes, seconds int) error {
	if t.state == StateRunning || t.state == StateAlarming {
		return nil
	}

	if t.remaining == 0 {
		if minutes < 0 {
			minutes = 0
		}
		if seconds < 0 {
			seconds = 0
		}
		if seconds > 59 {
			seconds = 59
		}
		t.remaining = minutes*60 + seconds
	}

	if t.remaining <= 0 {
		t.remaining = 0
		return ErrZeroDuration
	}

	t.state = StateRunning
	return nil
}

// Tick advances the countdown by one second. At zero the timer stops and
// enters the alarming state.
func (t *Timer) Tick() {
	if t.state != StateRunning {
		return
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = StateAlarming
		t.beeper.StartAlarm()
	}
}

// Pause suspends a running countdown. A no-op in any other state.
func (t *Timer) Pause() {
	if t.state != StateRunning {
		return
	}
	t.state = StatePaused
}

// Reset returns to idle from any state, silencing the alarm if it is ringing.
func (t *Timer) Reset() {
	if t.state == StateAlarming {
		t.beeper.StopAlarm()
	}
	t.state = StateIdle
	t.remaining = 0
}

// Acknowledge dismisses a ringing alarm.
func (t *Timer) Acknowledge() {
	if t.state != StateAlarming {
		return
	}
	t.beeper.StopAlarm()
	t.state = StateIdle
}

// Display renders the remaining time as MM:SS.
func (t *Timer) Display() string {
	return fmt.Sprintf("%02d:%02d", t.remaining/60, t.remaining%60)
}
