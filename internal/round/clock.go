package round

import (
	"context"
	"time"
)

// WaitPhase names one of the timed pauses of a round.
type WaitPhase uint8

const (
	WaitSuspense WaitPhase = iota + 1
	WaitReveal
	WaitPause
)

func (p WaitPhase) String() string {
	switch p {
	case WaitSuspense:
		return "suspense"
	case WaitReveal:
		return "reveal"
	case WaitPause:
		return "pause"
	}
	return "unknown"
}

// Clock schedules the pauses of a round. Wait returns nil once d has
// passed, or ctx.Err() if the session ends first.
type Clock interface {
	Wait(ctx context.Context, phase WaitPhase, d time.Duration) error
}

type wallClock struct{}

// WallClock waits in real time.
func WallClock() Clock { return wallClock{} }

func (wallClock) Wait(ctx context.Context, _ WaitPhase, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
