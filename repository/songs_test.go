package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"groovy/errs"
	"groovy/models"
)

var songCols = []string{"id", "songname", "artist", "genre", "album", "file_name", "owner_id", "created_at"}

func TestSongRepo_Create_OKAndUnknownOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)
	ctx := context.Background()
	s := &models.Song{
		ID:       uuid.New(),
		SongName: "Song1",
		Artist:   "ArtistA",
		Genre:    "Rock",
		Album:    "AlbumA",
		FileName: "file.mp3",
		OwnerID:  uuid.New(),
	}

	mock.ExpectExec(`INSERT INTO songs \(id, songname, artist, genre, album, file_name, owner_id\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WithArgs(s.ID, s.SongName, s.Artist, s.Genre, s.Album, s.FileName, s.OwnerID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, s))

	mock.ExpectExec(`INSERT INTO songs`).
		WithArgs(s.ID, s.SongName, s.Artist, s.Genre, s.Album, s.FileName, s.OwnerID).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Create(ctx, s), errs.ErrUnknownOwner)
}

func TestSongRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)
	id := uuid.New()
	owner := uuid.New()

	mock.ExpectQuery(`SELECT id, songname, artist, genre, album, file_name, owner_id, created_at FROM songs WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(songCols).
			AddRow(id, "Song1", "ArtistA", "Rock", "AlbumA", id.String()+".mp3", owner, time.Now()))
	s, err := r.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, owner, s.OwnerID)
	require.Equal(t, "Song1", s.SongName)

	mock.ExpectQuery(`SELECT id, songname, artist, genre, album, file_name, owner_id, created_at FROM songs WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSongRepo_ListByOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)
	owner := uuid.New()

	mock.ExpectQuery(`SELECT id, songname, artist, genre, album, file_name, owner_id, created_at FROM songs WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows(songCols).
			AddRow(uuid.New(), "Song2", "ArtistA", "Rock", "AlbumA", "a.mp3", owner, time.Now()).
			AddRow(uuid.New(), "Song1", "ArtistA", "Rock", "AlbumA", "b.mp3", owner, time.Now()))
	songs, err := r.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	for _, s := range songs {
		require.Equal(t, owner, s.OwnerID)
	}
}

func TestSongRepo_ListRecent(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)

	mock.ExpectQuery(`SELECT id, songname, artist, genre, album, file_name, owner_id, created_at FROM songs ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(songCols).
			AddRow(uuid.New(), "Newest", "ArtistB", "Jazz", "AlbumB", "c.mp3", uuid.New(), time.Now()))
	songs, err := r.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	require.Equal(t, "Newest", songs[0].SongName)
}

func TestSongRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE songs SET songname = \$1, artist = \$2, genre = \$3, album = \$4 WHERE id = \$5`).
		WithArgs("New", "ArtistA", "Rock", "AlbumA", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(context.Background(), id, "New", "ArtistA", "Rock", "AlbumA"))

	mock.ExpectExec(`UPDATE songs SET`).
		WithArgs("New", "ArtistA", "Rock", "AlbumA", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := r.Update(context.Background(), id, "New", "ArtistA", "Rock", "AlbumA")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSongRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSongRepo(db)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(context.Background(), id), errs.ErrNotFound)
}
