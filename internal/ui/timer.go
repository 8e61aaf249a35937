package ui

import (
	"fmt"
	"time"
)

// TimerID identifies a timer created by AddTimer. Zero is never assigned.
type TimerID uint32

type timerEntry struct {
	owner    Widget
	interval time.Duration
	oneShot  bool
	t        *time.Timer
}

// AddTimer starts a timer that posts a Timer event to owner every interval,
// or once when oneShot is set. The event is delivered on the dispatch
// goroutine like any other event.
func (m *Manager) AddTimer(interval time.Duration, oneShot bool, owner Widget) TimerID {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}

	m.timerMu.Lock()
	defer m.timerMu.Unlock()

	m.nextTimer++
	id := m.nextTimer
	e := &timerEntry{owner: owner, interval: interval, oneShot: oneShot}
	e.t = time.AfterFunc(interval, func() { m.fireTimer(id) })
	m.timers[id] = e
	return id
}

// DeleteTimer stops a timer.
func (m *Manager) DeleteTimer(id TimerID) error {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()

	e, ok := m.timers[id]
	if !ok {
		return fmt.Errorf("timer %d: %w", id, ErrUnknownTimer)
	}
	e.t.Stop()
	delete(m.timers, id)
	return nil
}

// TimerCount returns the number of live timers.
func (m *Manager) TimerCount() int {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	return len(m.timers)
}

func (m *Manager) fireTimer(id TimerID) {
	m.timerMu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.timerMu.Unlock()
		return
	}
	if e.oneShot {
		delete(m.timers, id)
	} else {
		e.t.Reset(e.interval)
	}
	owner := e.owner
	m.timerMu.Unlock()

	m.queue.Post(Event{Type: m.timerType, Code: CodeTimerFired, Timer: id, Source: owner})
}

func (m *Manager) stopTimers() {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	for id, e := range m.timers {
		e.t.Stop()
		delete(m.timers, id)
	}
}
