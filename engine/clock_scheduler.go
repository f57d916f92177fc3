package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/input"
)

// StepListener receives scheduler notifications on the scheduler goroutine
type StepListener interface {
	// OnStep is called after every executed step
	OnStep(res StepResult)
	// OnGameOver is called once per game with the final score
	OnGameOver(score int, outcome Outcome)
}

// ClockScheduler drives Session.Step at a fixed rate
// Pause-aware: the pausable clock freezes while the session is not running, so deadlines
// resume where they stopped; missed deadlines are dropped rather than replayed
type ClockScheduler struct {
	session  *Session
	clock    *PausableClock
	listener StepListener

	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount    atomic.Uint64
	gameOverSent atomic.Bool

	// stepMu orders a step and its game-over bookkeeping against Retry
	stepMu sync.Mutex

	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	running   atomic.Bool
	resetChan chan struct{} // Retry requested, deadline restarts
	wakeChan  chan struct{} // Pause state changed
}

// NewClockScheduler creates a scheduler stepping session at ticksPerSecond
// listener may be nil
func NewClockScheduler(session *Session, clock *PausableClock, ticksPerSecond int, listener StepListener) *ClockScheduler {
	cs := &ClockScheduler{
		session:      session,
		clock:        clock,
		listener:     listener,
		tickInterval: constants.TickInterval(ticksPerSecond),
		stopChan:     make(chan struct{}),
		resetChan:    make(chan struct{}, 1),
		wakeChan:     make(chan struct{}, 1),
	}
	cs.syncClock()
	return cs
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it; no listener call happens after Stop returns
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// Apply forwards a button to the session and syncs the play clock with the new state
func (cs *ClockScheduler) Apply(b input.Button) {
	cs.session.Apply(b)
	if b == input.ButtonTogglePause {
		cs.syncClock()
		cs.signal(cs.wakeChan)
	}
}

// Retry restarts the session and play clock
func (cs *ClockScheduler) Retry() {
	cs.stepMu.Lock()
	defer cs.stepMu.Unlock()

	cs.session.Retry()
	cs.clock.Reset()
	cs.syncClock()
	cs.gameOverSent.Store(false)
	cs.signal(cs.resetChan)
}

// TickCount returns the number of steps executed by this scheduler
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// PlayTime returns the pause-aware elapsed play time
func (cs *ClockScheduler) PlayTime() time.Duration {
	return cs.clock.PlayTime()
}

func (cs *ClockScheduler) signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// syncClock pauses the play clock unless the session is running
func (cs *ClockScheduler) syncClock() {
	if cs.session.State() == StateRunning {
		cs.clock.Resume()
	} else {
		cs.clock.Pause()
	}
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)

	timer := time.NewTimer(0)
	drainTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-cs.resetChan:
			cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused, woken early by Apply
			sleepDuration = cs.tickInterval * 2
		} else {
			gameNow := cs.clock.Now()
			if !gameNow.Before(cs.nextTickDeadline) {
				cs.processTick()

				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
				now := cs.clock.Now()
				if !cs.nextTickDeadline.After(now) {
					// Behind schedule: drop the missed ticks
					cs.nextTickDeadline = now.Add(cs.tickInterval)
				}
			}
			sleepDuration = cs.nextTickDeadline.Sub(cs.clock.Now())
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.wakeChan:
				drainTimer(timer)
			case <-cs.resetChan:
				drainTimer(timer)
				cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
			case <-cs.stopChan:
				return
			}
		}
	}
}

func drainTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

// processTick executes one step and dispatches notifications outside the step lock
func (cs *ClockScheduler) processTick() {
	cs.stepMu.Lock()
	res := cs.session.Step()
	cs.tickCount.Add(1)

	notifyOver := false
	if res.GameOver {
		cs.clock.Pause()
		notifyOver = cs.gameOverSent.CompareAndSwap(false, true)
	}
	cs.stepMu.Unlock()

	if res.Moved && cs.listener != nil {
		cs.listener.OnStep(res)
	}

	if notifyOver {
		log.Printf("scheduler: game over (%s) score %d after %d ticks", res.Outcome, res.Score, cs.tickCount.Load())
		if cs.listener != nil {
			cs.listener.OnGameOver(res.Score, res.Outcome)
		}
	}
}
