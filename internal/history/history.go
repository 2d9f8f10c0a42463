// Package history is a sqlite-backed visit log: every key the user
// navigates to is recorded with a timestamp, so a session can answer
// "what did I look at recently" without re-walking the tree.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/redis-nav/internal/migrations"
)

// Entry is one recorded visit.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Key       string
	Type      string
	Profile   string
}

// Manager owns the visit log database connection.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the sqlite database at dbPath and
// runs migrations against it.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return m, nil
}

// Visit records that key (of the given redis type, under profile) was
// navigated to just now.
func (m *Manager) Visit(profile, key, dataType string) error {
	_, err := m.db.Exec(
		`INSERT INTO visits (timestamp, profile, key, type) VALUES (?, ?, ?, ?)`,
		time.Now().Local().Format("2006-01-02 15:04:05"),
		profile, key, dataType,
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns the last limit visits for profile, most recent first.
func (m *Manager) Recent(profile string, limit int) ([]Entry, error) {
	rows, err := m.db.Query(
		`SELECT id, timestamp, key, type FROM visits WHERE profile = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load visits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Key, &e.Type); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		parsed, err := time.ParseInLocation("2006-01-02 15:04:05", ts, time.Local)
		if err != nil {
			parsed = time.Now()
		}
		e.Timestamp = parsed
		e.Profile = profile
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every recorded visit for profile.
func (m *Manager) Clear(profile string) error {
	_, err := m.db.Exec(`DELETE FROM visits WHERE profile = ?`, profile)
	if err != nil {
		return fmt.Errorf("clear visits: %w", err)
	}
	return nil
}

// Count returns the number of recorded visits for profile.
func (m *Manager) Count(profile string) (int, error) {
	var count int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM visits WHERE profile = ?`, profile).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return count, nil
}

// Close releases the underlying database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
