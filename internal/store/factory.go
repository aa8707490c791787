package store

import (
	"fmt"
	"strings"
)

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

// NormalizeMode maps accepted spellings onto the Mode constants. An empty
// mode selects sqlite.
func NormalizeMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ModeSQLite, "sqlite3", "local":
		return ModeSQLite
	case ModeMemory, "mem":
		return ModeMemory
	case ModePostgres, "postgresql", "pg", "db":
		return ModePostgres
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

// Open returns the backend for mode along with the normalized mode name.
// sqlitePath may be empty to use DefaultSQLitePath.
func Open(mode, sqlitePath, dsn string) (Port, string, error) {
	mode = NormalizeMode(mode)

	switch mode {
	case ModeMemory:
		return NewMemoryStore(), mode, nil
	case ModeSQLite:
		if strings.TrimSpace(sqlitePath) == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, mode, err
			}
			sqlitePath = p
		}
		s, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	case ModePostgres:
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid store mode %q (supported: %s, %s, %s)",
			mode, ModeMemory, ModeSQLite, ModePostgres)
	}
}
