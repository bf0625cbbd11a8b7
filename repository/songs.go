package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"groovy/errs"
	"groovy/models"
)

// SongRepo provides access to the songs table. It does not verify ownership;
// the handler layer checks the acting identity before any mutation.
type SongRepo struct{ db *DB }

// NewSongRepo constructs a song repository.
func NewSongRepo(db *DB) *SongRepo { return &SongRepo{db: db} }

// Create inserts a new song row. A foreign key violation on owner_id maps to
// errs.ErrUnknownOwner.
func (r *SongRepo) Create(ctx context.Context, s *models.Song) error {
	const q = `
INSERT INTO songs (id, songname, artist, genre, album, file_name, owner_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, s.ID, s.SongName, s.Artist, s.Genre, s.Album, s.FileName, s.OwnerID)
	if isForeignKeyViolation(err) {
		return errs.ErrUnknownOwner
	}
	if err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// Get selects a song by ID.
func (r *SongRepo) Get(ctx context.Context, id uuid.UUID) (*models.Song, error) {
	const q = `
SELECT id, songname, artist, genre, album, file_name, owner_id, created_at
FROM songs WHERE id = $1`
	var s models.Song
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&s.ID, &s.SongName, &s.Artist, &s.Genre, &s.Album, &s.FileName, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("scan song: %w", err)
	}
	return &s, nil
}

// ListByOwner returns the catalog of a single user.
func (r *SongRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Song, error) {
	const q = `
SELECT id, songname, artist, genre, album, file_name, owner_id, created_at
FROM songs WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.querySongs(ctx, q, ownerID)
}

// ListRecent returns the newest songs across all users, for the dashboard feed.
func (r *SongRepo) ListRecent(ctx context.Context, limit int) ([]models.Song, error) {
	const q = `
SELECT id, songname, artist, genre, album, file_name, owner_id, created_at
FROM songs ORDER BY created_at DESC LIMIT $1`
	return r.querySongs(ctx, q, limit)
}

// Update overwrites the four metadata fields of a song.
func (r *SongRepo) Update(ctx context.Context, id uuid.UUID, songname, artist, genre, album string) error {
	const q = `
UPDATE songs SET songname = $1, artist = $2, genre = $3, album = $4
WHERE id = $5`
	tag, err := r.db.Pool.Exec(ctx, q, songname, artist, genre, album, id)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a song row.
func (r *SongRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *SongRepo) querySongs(ctx context.Context, q string, args ...any) ([]models.Song, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var s models.Song
		if err := rows.Scan(&s.ID, &s.SongName, &s.Artist, &s.Genre, &s.Album, &s.FileName, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}
