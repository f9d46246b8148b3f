package timer

import (
	"io"
	"sync"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/constants"
)

// BellBeeper rings the terminal bell in the alarm pattern: a cycle of short
// tones with fixed gaps, repeated until stopped.
type BellBeeper struct {
	w io.Writer

	mu   sync.Mutex
	stop chan struct{}
}

func NewBellBeeper(w io.Writer) *BellBeeper {
	return &BellBeeper{w: w}
}

func (b *BellBeeper) StartAlarm() {
	b.StopAlarm()

	b.mu.Lock()
	stop := make(chan struct{})
	b.stop = stop
	b.mu.Unlock()

	go b.loop(stop)
}

func (b *BellBeeper) StopAlarm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

func (b *BellBeeper) loop(stop chan struct{}) {
	step := constants.BeepDuration + constants.BeepGap
	for {
		for i := 0; i < constants.BeepsPerCycle; i++ {
			select {
			case <-stop:
				return
			default:
			}
			io.WriteString(b.w, "\a")
			time.Sleep(step)
		}

		select {
		case <-stop:
			return
		case <-time.After(step):
		}
	}
}

// SilentBeeper discards the alarm. Used where no terminal is attached and in
// tests that only exercise the state machine.
type SilentBeeper struct{}

func (SilentBeeper) StartAlarm() {}
func (SilentBeeper) StopAlarm()  {}
