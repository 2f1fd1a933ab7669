package timer

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
)

// KeyCompletedPomodoros stores the completed work-session count as a
// stringified integer.
const KeyCompletedPomodoros = "zenta-completed-pomodoros"

// Phase is a pomodoro session type.
type Phase string

// Phases.
const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Durations configures a pomodoro cycle.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	LongEvery  int // work sessions per long break
}

// DefaultDurations is the classic 25/5/15 cycle with a long break every fourth session.
func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
		LongEvery:  4,
	}
}

// Stats reads and updates the completed-pomodoro counter.
type Stats struct {
	kv *kv.Adapter
}

// NewStats returns Stats backed by a.
func NewStats(a *kv.Adapter) *Stats {
	return &Stats{kv: a}
}

// Completed returns the counter. Missing or unparseable values count as zero.
func (s *Stats) Completed(ctx context.Context) int {
	raw, ok := s.kv.ReadString(ctx, KeyCompletedPomodoros)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Increment adds one to the counter and returns the new value.
func (s *Stats) Increment(ctx context.Context) (int, bool) {
	n := s.Completed(ctx) + 1
	return n, s.kv.WriteString(ctx, KeyCompletedPomodoros, strconv.Itoa(n))
}

// Reset zeroes the counter.
func (s *Stats) Reset(ctx context.Context) bool {
	return s.kv.WriteString(ctx, KeyCompletedPomodoros, "0")
}

// Session is one phase of a pomodoro run.
type Session struct {
	Index    int // 1-based work-session number
	Phase    Phase
	Duration time.Duration
}

// Plan lists the sessions of a run of cycles work sessions. Each work
// session is followed by a break; every LongEvery-th break is long. The run
// ends after the last work session.
func (d Durations) Plan(cycles int) []Session {
	sessions := make([]Session, 0, cycles*2) //nolint:mnd // work + break
	for i := 1; i <= cycles; i++ {
		sessions = append(sessions, Session{Index: i, Phase: PhaseWork, Duration: d.Work})
		if i == cycles {
			break
		}
		if d.LongEvery > 0 && i%d.LongEvery == 0 {
			sessions = append(sessions, Session{Index: i, Phase: PhaseLongBreak, Duration: d.LongBreak})
		} else {
			sessions = append(sessions, Session{Index: i, Phase: PhaseShortBreak, Duration: d.ShortBreak})
		}
	}
	return sessions
}

// Runner plays sessions back to back on a Countdown.
type Runner struct {
	Clock Clock
	Stats *Stats
	// OnTick, OnSession and OnWorkDone are optional progress hooks.
	OnTick     func(s Session, remaining time.Duration)
	OnSession  func(s Session)
	OnWorkDone func(s Session, total int)
}

// Run plays the sessions in order and blocks until they finish or ctx is
// canceled. Each finished work session increments the counter.
func (r *Runner) Run(ctx context.Context, sessions []Session) error {
	cd := NewCountdown(r.Clock)
	defer cd.Stop()

	for _, s := range sessions {
		if r.OnSession != nil {
			r.OnSession(s)
		}
		finished := make(chan struct{})
		onTick := func(remaining time.Duration) {
			if r.OnTick != nil {
				r.OnTick(s, remaining)
			}
		}
		if err := cd.Start(ctx, s.Duration, onTick, func() { close(finished) }); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-finished:
		}

		if s.Phase == PhaseWork && r.Stats != nil {
			total, _ := r.Stats.Increment(ctx)
			if r.OnWorkDone != nil {
				r.OnWorkDone(s, total)
			}
		}
	}
	return nil
}
