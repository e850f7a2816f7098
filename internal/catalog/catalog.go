package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	currentSchemaVersion = 2

	// insertBatchSize is the number of rows written per transaction by the
	// batch operations
	insertBatchSize = 64
)

// Catalog is the embedded audio catalog: audio records, their on-disk
// locations, and playlist membership, backed by a single SQLite file.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates a catalog database at the given path.
// Use ":memory:" for a throwaway in-memory catalog.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStorage, err)
	}

	// SQLite works best with a single writer; a single connection also
	// makes the per-connection pragmas below stick.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	c := &Catalog{db: db}

	if err := c.applyPragmas(); err != nil {
		db.Close()
		return nil, err
	}

	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migration failed: %v", ErrStorage, err)
	}

	return c, nil
}

// applyPragmas configures the connection for durability and enforcement
func (c *Catalog) applyPragmas() error {
	pragmas := []string{
		// WAL lets readers proceed under a snapshot while one writer runs
		"PRAGMA journal_mode = WAL",

		// NORMAL is safe with WAL; fsync at checkpoints only
		"PRAGMA synchronous = NORMAL",

		// Wait instead of failing immediately on a locked database
		"PRAGMA busy_timeout = 5000",

		// Dependent rows (locations, playlist entries) must reference an
		// existing audio and are removed with it
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := c.db.Exec(pragma); err != nil {
			return fmt.Errorf("%w: failed to execute %s: %v", ErrStorage, pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	return c.db.Close()
}

// DB returns the underlying database connection for custom queries
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (c *Catalog) CheckIntegrity() error {
	var result string
	err := c.db.QueryRow("PRAGMA integrity_check").Scan(&result)
	if err != nil {
		return fmt.Errorf("%w: integrity check query failed: %v", ErrStorage, err)
	}

	if result != "ok" {
		return fmt.Errorf("%w: integrity check failed: %s", ErrStorage, result)
	}

	return nil
}

// migrate applies database migrations
func (c *Catalog) migrate() error {
	version, err := c.getSchemaVersion()
	if err != nil {
		return err
	}

	if version >= currentSchemaVersion {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if version < 1 {
		if _, err := tx.Exec(schemaV1); err != nil {
			return fmt.Errorf("failed to apply schema v1: %w", err)
		}
		if err := c.setSchemaVersion(tx, 1); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}

	if version < 2 {
		if _, err := tx.Exec(schemaV2); err != nil {
			return fmt.Errorf("failed to apply schema v2: %w", err)
		}
		if err := c.setSchemaVersion(tx, 2); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}

	// Future migrations would go here:
	// if version < 3 { ... }

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}

// getSchemaVersion returns the current schema version
func (c *Catalog) getSchemaVersion() (int, error) {
	var exists int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&exists)
	if err != nil {
		return 0, err
	}

	if exists == 0 {
		// No schema yet
		return 0, nil
	}

	var version int
	err = c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion records a schema version in a transaction
func (c *Catalog) setSchemaVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// Transaction executes a function within a transaction
func (c *Catalog) Transaction(fn func(*sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return classify("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify("commit transaction", err)
	}

	return nil
}

// SQLiteVersion returns the SQLite version string
func SQLiteVersion() string {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	err = db.QueryRow("SELECT sqlite_version()").Scan(&version)
	if err != nil {
		return ""
	}
	return version
}

// Audio is the catalog's record of a distinct audio asset, identified by
// the SHA-256 hex digest of its content.
type Audio struct {
	FileHash      string
	Title         string
	Album         string
	Artist        string
	TrackNum      int
	ReleaseYear   int
	LengthSeconds int
}

// Location is an on-disk copy of an audio asset, optionally paired with
// cover art found next to it. An empty ImgPath means no cover art.
type Location struct {
	FileHash  string
	AudioPath string
	ImgPath   string
}

// Track is the joined view of an audio record and one of its locations,
// the shape all lookup operations return.
type Track struct {
	Audio
	AudioPath string
	ImgPath   string
}

// PlaylistInfo summarizes one playlist
type PlaylistInfo struct {
	Name   string
	Tracks int
}

// Counts holds per-relation row totals
type Counts struct {
	Audios          int
	Locations       int
	Playlists       int
	PlaylistEntries int
	MediaFolders    int
}

// Counts returns row totals for every relation
func (c *Catalog) Counts() (*Counts, error) {
	counts := &Counts{}
	err := c.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM audios),
			(SELECT COUNT(*) FROM audio_files),
			(SELECT COUNT(DISTINCT playlist_name) FROM playlists),
			(SELECT COUNT(*) FROM playlists),
			(SELECT COUNT(*) FROM media_folders)
	`).Scan(&counts.Audios, &counts.Locations, &counts.Playlists,
		&counts.PlaylistEntries, &counts.MediaFolders)

	if err != nil {
		return nil, classify("count rows", err)
	}

	return counts, nil
}
