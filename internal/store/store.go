// Package store holds the high-score storage port and its backends.
//
// The game keeps exactly one durable value: the best score ever reached,
// saved as a base-10 string under HighScoreKey.
package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// HighScoreKey is the key the high score is kept under in every backend.
const HighScoreKey = "higherOrLowerHighScore"

// Port is a tiny string key/value store.
type Port interface {
	// Get returns the value for key. ok is false if the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// ReadHighScore loads the persisted high score. A missing key is 0. A value
// that is not a non-negative integer is also reported as 0, together with an
// ErrBadValue error so the caller can log it.
func ReadHighScore(ctx context.Context, port Port) (int, error) {
	raw, ok, err := port.Get(ctx, HighScoreKey)
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	if !ok {
		return 0, nil
	}

	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || score < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, raw)
	}

	return score, nil
}

// WriteHighScore persists score.
func WriteHighScore(ctx context.Context, port Port, score int) error {
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrBadValue, score)
	}
	if err := port.Set(ctx, HighScoreKey, strconv.Itoa(score)); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}

	return nil
}
