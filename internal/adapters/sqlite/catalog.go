// Package sqlite backs the catalog and the playlist/queue sinks with a
// local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Adapter implements the Catalog, PlaylistSink and QueueSink ports.
type Adapter struct {
	db *sql.DB
}

var (
	_ ports.Catalog      = (*Adapter)(nil)
	_ ports.PlaylistSink = (*Adapter)(nil)
	_ ports.QueueSink    = (*Adapter)(nil)
)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Single writer; also keeps an in-memory database on one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// ArtistTracks returns every library record filed under the artist,
// matched case-insensitively.
func (a *Adapter) ArtistTracks(ctx context.Context, artist string) ([]domain.MatchedTrack, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, title, artist, album, path, IFNULL(rating, 0), IFNULL(bitrate, 0)
		FROM library_tracks
		WHERE artist = ? COLLATE NOCASE
		ORDER BY id ASC
	`, artist)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.MatchedTrack
	for rows.Next() {
		var t domain.MatchedTrack
		var album sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &album, &t.Path, &t.Rating, &t.Bitrate); err != nil {
			return nil, fmt.Errorf("failed to scan library track: %w", err)
		}
		if album.Valid {
			t.Album = album.String
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate library tracks: %w", err)
	}

	return tracks, nil
}

// AddLibraryTrack inserts or updates one library record. Used by host sync
// and by tests to seed a catalog.
func (a *Adapter) AddLibraryTrack(ctx context.Context, t domain.MatchedTrack) (int64, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO library_tracks (title, artist, album, path, rating, bitrate)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title=excluded.title,
			artist=excluded.artist,
			album=excluded.album,
			rating=excluded.rating,
			bitrate=excluded.bitrate
	`, t.Title, t.Artist, t.Album, t.Path, t.Rating, t.Bitrate)
	if err != nil {
		return 0, fmt.Errorf("failed to save library track: %w", err)
	}
	return res.LastInsertId()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS library_tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		path TEXT NOT NULL UNIQUE,
		rating INTEGER,
		bitrate INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_library_tracks_artist ON library_tracks(artist COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		parent TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS playlist_tracks (
		playlist_id TEXT NOT NULL,
		track_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (playlist_id, position),
		FOREIGN KEY(playlist_id) REFERENCES playlists(id) ON DELETE CASCADE,
		FOREIGN KEY(track_id) REFERENCES library_tracks(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS play_queue (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		track_id INTEGER NOT NULL,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(track_id) REFERENCES library_tracks(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS queue_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		track_id INTEGER NOT NULL,
		cleared_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
