package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestReadHighScoreMissingIsZero(t *testing.T) {
	s := NewMemoryStore()

	score, err := ReadHighScore(context.Background(), s)
	if err != nil {
		t.Fatalf("ReadHighScore err: %v", err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

func TestHighScoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := WriteHighScore(ctx, s, 17); err != nil {
		t.Fatalf("WriteHighScore err: %v", err)
	}

	raw, ok, err := s.Get(ctx, HighScoreKey)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if raw != "17" {
		t.Fatalf("stored value = %q, want base-10 string %q", raw, "17")
	}

	score, err := ReadHighScore(ctx, s)
	if err != nil {
		t.Fatalf("ReadHighScore err: %v", err)
	}
	if score != 17 {
		t.Fatalf("score = %d, want 17", score)
	}
}

func TestReadHighScoreBadValue(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"abc", "-4", "1.5"} {
		s := NewMemoryStore()
		if err := s.Set(ctx, HighScoreKey, raw); err != nil {
			t.Fatal(err)
		}

		score, err := ReadHighScore(ctx, s)
		if !errors.Is(err, ErrBadValue) {
			t.Fatalf("%q: err = %v, want ErrBadValue", raw, err)
		}
		if score != 0 {
			t.Fatalf("%q: score = %d, want 0", raw, score)
		}
	}
}

func TestWriteHighScoreRejectsNegative(t *testing.T) {
	if err := WriteHighScore(context.Background(), NewMemoryStore(), -1); !errors.Is(err, ErrBadValue) {
		t.Fatalf("err = %v, want ErrBadValue", err)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Set after Close err = %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Get after Close err = %v", err)
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "hilo.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}

	if _, ok, err := s.Get(ctx, HighScoreKey); err != nil || ok {
		t.Fatalf("fresh db Get: ok=%v err=%v", ok, err)
	}
	if err := WriteHighScore(ctx, s, 4); err != nil {
		t.Fatalf("WriteHighScore err: %v", err)
	}
	if err := WriteHighScore(ctx, s, 9); err != nil {
		t.Fatalf("WriteHighScore overwrite err: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	score, err := ReadHighScore(ctx, reopened)
	if err != nil {
		t.Fatalf("ReadHighScore err: %v", err)
	}
	if score != 9 {
		t.Fatalf("score = %d, want 9", score)
	}
}

func TestSQLiteStoreInMemory(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}
	defer s.Close()

	if err := s.Set(context.Background(), "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("empty key err = %v", err)
	}
}

func TestNormalizeMode(t *testing.T) {
	tests := map[string]string{
		"":           ModeSQLite,
		"SQLite":     ModeSQLite,
		"mem":        ModeMemory,
		"postgresql": ModePostgres,
		"db":         ModePostgres,
		"redis":      "redis",
	}

	for raw, want := range tests {
		if got := NormalizeMode(raw); got != want {
			t.Fatalf("NormalizeMode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestOpen(t *testing.T) {
	s, mode, err := Open("memory", "", "")
	if err != nil || mode != ModeMemory {
		t.Fatalf("Open memory: mode=%s err=%v", mode, err)
	}
	_ = s.Close()

	s, mode, err = Open("", filepath.Join(t.TempDir(), "hs.db"), "")
	if err != nil || mode != ModeSQLite {
		t.Fatalf("Open sqlite: mode=%s err=%v", mode, err)
	}
	_ = s.Close()

	if _, _, err := Open("postgres", "", ""); err == nil {
		t.Fatalf("expected error for postgres without dsn")
	}
	if _, _, err := Open("redis", "", ""); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
