// Package journal persists session-created records (posts, applications,
// chat messages) to SQLite so they survive a restart. It is a write-through
// sink behind the catalog store: the in-memory store remains the source of
// truth and the journal is replayed once at boot.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pawpal/internal/catalog"
	"pawpal/internal/logging"
)

// SQLiteJournal implements catalog.Journal over a local SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

// Open opens or creates the journal database at the given path.
func Open(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logging.Boot("journal open at %s", dbPath)
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id         TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE TABLE IF NOT EXISTS applications (
		id         TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		thread_id  TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// SavePost implements catalog.Journal.
func (j *SQLiteJournal) SavePost(post catalog.FeedPost) error {
	return j.insert("posts", post.ID, post)
}

// SaveApplication implements catalog.Journal.
func (j *SQLiteJournal) SaveApplication(app catalog.AdoptionApplication) error {
	return j.insert("applications", app.ID, app)
}

// SaveMessage implements catalog.Journal.
func (j *SQLiteJournal) SaveMessage(msg catalog.ChatMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.ID, err)
	}
	_, err = j.db.Exec(
		`INSERT OR REPLACE INTO messages (id, thread_id, body) VALUES (?, ?, ?)`,
		msg.ID, msg.ThreadID, string(body))
	if err != nil {
		return fmt.Errorf("save message %s: %w", msg.ID, err)
	}
	return nil
}

func (j *SQLiteJournal) insert(table, id string, record interface{}) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", table, id, err)
	}
	_, err = j.db.Exec(
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, body) VALUES (?, ?)`, table),
		id, string(body))
	if err != nil {
		return fmt.Errorf("save %s %s: %w", table, id, err)
	}
	return nil
}

// LoadPosts returns journaled posts, most recent first.
func (j *SQLiteJournal) LoadPosts() ([]catalog.FeedPost, error) {
	rows, err := j.db.Query(`SELECT body FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	defer rows.Close()

	var posts []catalog.FeedPost
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		var p catalog.FeedPost
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			logging.CatalogWarn("skipping corrupt journaled post: %v", err)
			continue
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// LoadApplications returns journaled applications, most recent first.
func (j *SQLiteJournal) LoadApplications() ([]catalog.AdoptionApplication, error) {
	rows, err := j.db.Query(`SELECT body FROM applications ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	defer rows.Close()

	var apps []catalog.AdoptionApplication
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		var a catalog.AdoptionApplication
		if err := json.Unmarshal([]byte(body), &a); err != nil {
			logging.CatalogWarn("skipping corrupt journaled application: %v", err)
			continue
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// LoadMessages returns all journaled messages, oldest first per thread.
func (j *SQLiteJournal) LoadMessages() ([]catalog.ChatMessage, error) {
	rows, err := j.db.Query(`SELECT body FROM messages ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var msgs []catalog.ChatMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		var m catalog.ChatMessage
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			logging.CatalogWarn("skipping corrupt journaled message: %v", err)
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Restore replays the journal into the store at boot.
func (j *SQLiteJournal) Restore(store *catalog.Store) error {
	posts, err := j.LoadPosts()
	if err != nil {
		return err
	}
	apps, err := j.LoadApplications()
	if err != nil {
		return err
	}
	msgs, err := j.LoadMessages()
	if err != nil {
		return err
	}
	store.RestoreDerived(posts, apps, msgs)
	return nil
}
