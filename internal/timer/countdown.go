package timer

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Tick is the countdown resolution.
const Tick = time.Second

// ErrRunning is returned when starting a countdown that is already running.
var ErrRunning = errors.New("countdown already running")

// Countdown counts a duration down one Tick at a time on its own goroutine.
// The ticker is owned by that goroutine and released on every exit path.
// Callbacks run on the countdown goroutine and must not call Stop or Pause;
// they may call Start once onDone has fired.
type Countdown struct {
	clock Clock

	mu        sync.Mutex
	remaining time.Duration
	onTick    func(remaining time.Duration)
	onDone    func()
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewCountdown returns an idle countdown. A nil clock selects RealClock.
func NewCountdown(clock Clock) *Countdown {
	if clock == nil {
		clock = RealClock()
	}
	return &Countdown{clock: clock}
}

// Start counts d down, calling onTick after every tick with the time left
// and onDone once it reaches zero. Either callback may be nil. The countdown
// also ends, without calling onDone, when ctx is canceled.
func (c *Countdown) Start(ctx context.Context, d time.Duration, onTick func(time.Duration), onDone func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrRunning
	}
	c.remaining = d
	c.onTick = onTick
	c.onDone = onDone
	c.launch(ctx)
	return nil
}

// launch starts the goroutine; c.mu must be held.
func (c *Countdown) launch(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	go c.run(ctx, done)
}

func (c *Countdown) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer c.release(done)
	ticker := c.clock.NewTicker(Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			return
		}
		c.remaining -= Tick
		if c.remaining < 0 {
			c.remaining = 0
		}
		remaining := c.remaining
		finished := remaining == 0
		onTick, onDone := c.onTick, c.onDone
		if finished {
			c.cancel()
			c.cancel, c.done = nil, nil
		}
		c.mu.Unlock()

		if onTick != nil {
			onTick(remaining)
		}
		if finished {
			if onDone != nil {
				onDone()
			}
			return
		}
	}
}

// release clears the running state when the goroutine that owns done exits
// on its own, so a canceled parent context leaves the countdown startable.
// A newer launch or a halt has already replaced done and is left alone.
func (c *Countdown) release(done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != done {
		return
	}
	c.cancel()
	c.cancel, c.done = nil, nil
}

// halt cancels the goroutine and waits for it to exit.
func (c *Countdown) halt() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Stop ends the countdown and resets it. No callback fires after Stop returns.
func (c *Countdown) Stop() {
	c.halt()
	c.mu.Lock()
	c.remaining = 0
	c.mu.Unlock()
}

// Pause stops ticking but keeps the remaining time for Resume.
func (c *Countdown) Pause() {
	c.halt()
}

// Resume continues a paused countdown with its original callbacks.
// Resuming a countdown with nothing left is a no-op.
func (c *Countdown) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrRunning
	}
	if c.remaining <= 0 {
		return nil
	}
	c.launch(ctx)
	return nil
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}
