// Package index maintains a derived SQLite search index over the topics
// and comments of a BCF archive. The index is a cache keyed by the
// archive's path: it is never authoritative and is safe to delete at any
// time, since a rebuild from the open project restores it in full.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/openbcf/bcf/internal/model"
)

// ErrIndexLocked indicates another process is rebuilding the same index.
var ErrIndexLocked = errors.New("index is locked for rebuild")

// Database is the SQLite index handle for one archive.
type Database struct {
	db   *sql.DB
	path string
}

// CurrentDBVersion is the index schema version. A mismatch on open drops
// and recreates the database.
const CurrentDBVersion = 1

// Open opens or creates the index database for the archive at archivePath.
// Each archive gets its own database file under the user cache dir, named
// by a digest of the archive's absolute path.
func Open(archivePath string) (*Database, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dir, dbName(archivePath))

	if staleSchema(dbPath) {
		if err := removeDatabaseFiles(dbPath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	d := &Database{db: db, path: dbPath}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens an in-memory index (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache dir: %w", err)
	}
	dir := filepath.Join(base, "bcf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create index cache dir: %w", err)
	}
	return dir, nil
}

func dbName(archivePath string) string {
	abs, err := filepath.Abs(archivePath)
	if err != nil {
		abs = archivePath
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:8]) + ".db"
}

// staleSchema reports whether an existing database carries a version other
// than CurrentDBVersion. Derived data, so the answer to "incompatible" is
// always "recreate".
func staleSchema(dbPath string) bool {
	if _, err := os.Stat(dbPath); err != nil {
		return false
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return true
	}
	defer db.Close()

	var version string
	err = db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&version)
	if err != nil {
		return true
	}
	return version != fmt.Sprintf("%d", CurrentDBVersion)
}

func removeDatabaseFiles(dbPath string) error {
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale index file %s: %w", p, err)
		}
	}
	return nil
}

// initialize creates the index schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS topics (
			guid TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			topic_type TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			assignee TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS comments (
			guid TEXT PRIMARY KEY,
			topic_guid TEXT NOT NULL,
			body TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			created TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_topics_status ON topics(status);
		CREATE INDEX IF NOT EXISTS idx_comments_topic ON comments(topic_guid);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize index schema: %w", err)
	}
	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("set index schema version: %w", err)
	}
	return nil
}

// Rebuild replaces the index contents with the given project's topics and
// comments. Concurrent rebuilds of the same index are rejected with
// ErrIndexLocked.
func (d *Database) Rebuild(project *model.Project) error {
	lock, err := d.acquireRebuildLock()
	if err != nil {
		return err
	}
	defer lock.Release()

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"topics", "comments"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range project.Markups() {
		t := m.Topic()
		_, err := tx.Exec(`
			INSERT INTO topics (guid, title, topic_type, status, author, assignee, description, created)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.GUID().String(), t.Title(), t.Type(), t.Status(),
			t.Author(), t.Assignee(), t.Description(),
			t.Date().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("index topic %s: %w", t.GUID(), err)
		}

		for _, c := range m.Comments() {
			_, err := tx.Exec(`
				INSERT INTO comments (guid, topic_guid, body, author, created)
				VALUES (?, ?, ?, ?, ?)`,
				c.GUID().String(), t.GUID().String(), c.Text(), c.Author(),
				c.Date().Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("index comment %s: %w", c.GUID(), err)
			}
		}
	}

	return tx.Commit()
}

type rebuildLock struct {
	file *os.File
}

// acquireRebuildLock takes an exclusive lock file next to the database. An
// in-memory database has no path and needs no lock.
func (d *Database) acquireRebuildLock() (*rebuildLock, error) {
	if d.path == "" {
		return &rebuildLock{}, nil
	}
	file, err := os.OpenFile(d.path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open index lock: %w", err)
	}
	if err := lockFileExclusiveNonBlocking(file); err != nil {
		file.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("acquire index lock: %w", err)
	}
	return &rebuildLock{file: file}, nil
}

func (l *rebuildLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
