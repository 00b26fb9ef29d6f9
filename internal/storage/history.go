package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5000

// Cache persists fetched messages per room so a freshly started client can
// show recent history before the first live load returns. The server stays
// the source of truth; the cache only primes the view.
type Cache struct {
	db *sql.DB
}

// CachedMessage is one cached transcript row. Field values are stored
// exactly as the server sent them.
type CachedMessage struct {
	Room      string
	Username  string
	Body      string
	Kind      string
	Timestamp string
}

// NewCache opens (and migrates) the SQLite cache at the provided path. Call
// Close when done.
func NewCache(path string) (*Cache, error) {
	if path == "" {
		path = "classchat-cache.db"
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache := &Cache{db: db}
	if err := cache.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Close releases the underlying DB connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func buildDSN(path string) string {
	switch {
	case strings.HasPrefix(path, "sqlite://"):
		path = path[len("sqlite://"):]
	case strings.HasPrefix(path, "file:"), strings.HasPrefix(path, ":memory:"):
		// already in a form sqlite understands
	default:
		path = "file:" + path
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout=%d", path, separator, defaultBusyTimeout)
}

func (c *Cache) migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room TEXT NOT NULL,
		username TEXT NOT NULL,
		body TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'text',
		timestamp TEXT NOT NULL,
		UNIQUE(room, username, body, timestamp)
	);`)
	return err
}

// Save stores a batch of messages. Rows the cache has already seen are
// ignored, so re-saving a poll window is harmless.
func (c *Cache) Save(ctx context.Context, messages []CachedMessage) error {
	if len(messages) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, msg := range messages {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO messages(room, username, body, kind, timestamp) VALUES(?, ?, ?, ?, ?)`,
			msg.Room, msg.Username, msg.Body, msg.Kind, msg.Timestamp); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns the most recently cached limit messages for a room,
// oldest first, matching the order of a live load.
func (c *Cache) Recent(ctx context.Context, room string, limit int) ([]CachedMessage, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT room, username, body, kind, timestamp
		FROM messages
		WHERE room = ?
		ORDER BY id DESC
		LIMIT ?
	`, room, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []CachedMessage
	for rows.Next() {
		var msg CachedMessage
		if err := rows.Scan(&msg.Room, &msg.Username, &msg.Body, &msg.Kind, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Newest-first from the query; reverse to oldest-first for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Prune trims a room's cache down to the newest keep rows.
func (c *Cache) Prune(ctx context.Context, room string, keep int) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM messages
		WHERE room = ? AND id NOT IN (
			SELECT id FROM messages WHERE room = ? ORDER BY id DESC LIMIT ?
		)
	`, room, room, keep)
	return err
}
