package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// FindPlaylist returns the ID of a playlist by name.
func (a *Adapter) FindPlaylist(ctx context.Context, name string) (string, error) {
	row := a.db.QueryRowContext(ctx, "SELECT id FROM playlists WHERE name = ?", name)
	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", ports.NotFoundError{Entity: name}
		}
		return "", fmt.Errorf("failed to load playlist: %w", err)
	}
	return id, nil
}

// CreatePlaylist makes a new playlist, optionally under a parent.
func (a *Adapter) CreatePlaylist(ctx context.Context, name, parent string) (string, error) {
	id := uuid.NewString()
	var parentVal any
	if parent != "" {
		parentVal = parent
	}
	if _, err := a.db.ExecContext(ctx,
		"INSERT INTO playlists (id, name, parent) VALUES (?, ?, ?)",
		id, name, parentVal,
	); err != nil {
		return "", fmt.Errorf("failed to create playlist: %w", err)
	}
	return id, nil
}

// AddTracks appends tracks to the playlist and commits in one transaction.
func (a *Adapter) AddTracks(ctx context.Context, playlistID string, tracks []domain.MatchedTrack, opts ports.AddOptions) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net: auto-rollback if we error before commit

	row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM playlists WHERE id = ?", playlistID)
	var exists int
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("failed to check playlist: %w", err)
	}
	if exists == 0 {
		return ports.NotFoundError{Entity: playlistID}
	}

	if opts.ClearFirst {
		if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_tracks WHERE playlist_id = ?", playlistID); err != nil {
			return fmt.Errorf("failed to clear playlist: %w", err)
		}
	}

	present := make(map[int64]bool)
	if opts.IgnoreDupes {
		rows, err := tx.QueryContext(ctx, "SELECT track_id FROM playlist_tracks WHERE playlist_id = ?", playlistID)
		if err != nil {
			return fmt.Errorf("failed to load existing tracks: %w", err)
		}
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan existing track: %w", err)
			}
			present[id] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate existing tracks: %w", err)
		}
	}

	var next int
	row = tx.QueryRowContext(ctx, "SELECT IFNULL(MAX(position), 0) FROM playlist_tracks WHERE playlist_id = ?", playlistID)
	if err := row.Scan(&next); err != nil {
		return fmt.Errorf("failed to read playlist length: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tracks {
		if opts.IgnoreDupes && present[t.ID] {
			continue
		}
		next++
		if _, err := stmt.ExecContext(ctx, playlistID, t.ID, next); err != nil {
			return fmt.Errorf("failed to add track %d: %w", t.ID, err)
		}
		present[t.ID] = true
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// PlaylistTrackIDs returns the playlist's track IDs in position order.
func (a *Adapter) PlaylistTrackIDs(ctx context.Context, playlistID string) ([]int64, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT track_id FROM playlist_tracks WHERE playlist_id = ? ORDER BY position ASC", playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist track: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Enqueue appends tracks to the play queue. Clear empties the queue first,
// moving the cleared entries into history when SaveHistory is set.
func (a *Adapter) Enqueue(ctx context.Context, tracks []domain.MatchedTrack, opts ports.EnqueueOptions) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if opts.Clear {
		if opts.SaveHistory {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO queue_history (track_id) SELECT track_id FROM play_queue ORDER BY position ASC",
			); err != nil {
				return fmt.Errorf("failed to save queue history: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM play_queue"); err != nil {
			return fmt.Errorf("failed to clear queue: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO play_queue (track_id) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tracks {
		if _, err := stmt.ExecContext(ctx, t.ID); err != nil {
			return fmt.Errorf("failed to enqueue track %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// QueueTrackIDs returns the queued track IDs in play order.
func (a *Adapter) QueueTrackIDs(ctx context.Context) ([]int64, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT track_id FROM play_queue ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query queue: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
