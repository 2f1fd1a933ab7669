// Package timer runs the one-second countdowns behind pomodoro and focus
// sessions and keeps the completed-pomodoro counter.
package timer

import "time"

// Ticker is the subset of *time.Ticker a countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests substitute a manual clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// RealClock returns a Clock backed by time.NewTicker.
func RealClock() Clock { return realClock{} }
