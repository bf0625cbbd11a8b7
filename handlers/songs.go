package handlers

import (
	"errors"
	"path"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"groovy/errs"
	"groovy/models"
	"groovy/uploads"
)

const dashboardLimit = 10

type songMetadata struct {
	SongName string `json:"songname" form:"songname"`
	Artist   string `json:"artist" form:"artist"`
	Genre    string `json:"genre" form:"genre"`
	Album    string `json:"album" form:"album"`
}

func (m songMetadata) complete() bool {
	return m.SongName != "" && m.Artist != "" && m.Genre != "" && m.Album != ""
}

// Dashboard returns the most recent songs across all users.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	songs, err := h.Songs.ListRecent(c.Context(), dashboardLimit)
	if err != nil {
		h.Log.Error("dashboard: feed query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load dashboard."})
	}
	return c.JSON(fiber.Map{"songs": songs})
}

// Profile returns the session user's own catalog.
func (h *Handler) Profile(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.identityError(c, err)
	}

	songs, err := h.Songs.ListByOwner(c.Context(), user.ID)
	if err != nil {
		h.Log.Error("profile: catalog query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile."})
	}
	return c.JSON(fiber.Map{"user": user, "songs": songs})
}

// Upload accepts song metadata plus a media payload. The payload is staged
// first, the row committed second, and the file promoted last, so a failure
// at any step leaves neither an orphaned row nor a stray file under the
// final name.
func (h *Handler) Upload(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.identityError(c, err)
	}

	meta := songMetadata{
		SongName: c.FormValue("songname"),
		Artist:   c.FormValue("artist"),
		Genre:    c.FormValue("genre"),
		Album:    c.FormValue("album"),
	}
	if !meta.complete() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Songname, artist, genre and album are required."})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A media file is required."})
	}
	sanitized, err := uploads.Sanitize(fileHeader.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unusable file name."})
	}

	song := &models.Song{
		ID:       uuid.New(),
		SongName: meta.SongName,
		Artist:   meta.Artist,
		Genre:    meta.Genre,
		Album:    meta.Album,
		OwnerID:  user.ID,
	}
	// The stored name is namespaced by the song id; only the client's
	// extension survives, so concurrent uploads cannot collide.
	song.FileName = song.ID.String() + path.Ext(sanitized)

	payload, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the uploaded file."})
	}
	defer payload.Close()

	if err := h.Files.Stage(song.FileName, payload); err != nil {
		h.Log.Error("upload: staging failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store the uploaded file."})
	}

	if err := h.Songs.Create(c.Context(), song); err != nil {
		h.Files.Discard(song.FileName)
		if errors.Is(err, errs.ErrUnknownOwner) {
			// Account deleted between session check and insert.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in first.", "redirect": "/login"})
		}
		h.Log.Error("upload: insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save the song."})
	}

	if err := h.Files.Promote(song.FileName); err != nil {
		// Roll the row back rather than leave it pointing at nothing.
		h.Log.Error("upload: promote failed", zap.Error(err))
		if derr := h.Songs.Delete(c.Context(), song.ID); derr != nil {
			h.Log.Error("upload: rollback failed", zap.Error(derr), zap.String("song_id", song.ID.String()))
		}
		h.Files.Discard(song.FileName)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store the uploaded file."})
	}

	h.Log.Info("song uploaded", zap.String("song_id", song.ID.String()), zap.String("owner_id", user.ID.String()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Successfully uploaded.", "song_id": song.ID})
}

// EditSong overwrites the four metadata fields of a song the session user
// owns. The ownership check happens here, before any mutation reaches the
// repository.
func (h *Handler) EditSong(c *fiber.Ctx) error {
	user, song, err := h.ownedSong(c)
	if err != nil {
		return h.mutationError(c, err)
	}

	var meta songMetadata
	if err := c.BodyParser(&meta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body."})
	}
	if !meta.complete() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Songname, artist, genre and album are required."})
	}

	if err := h.Songs.Update(c.Context(), song.ID, meta.SongName, meta.Artist, meta.Genre, meta.Album); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found."})
		}
		h.Log.Error("edit: update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update the song."})
	}

	h.Log.Info("song updated", zap.String("song_id", song.ID.String()), zap.String("owner_id", user.ID.String()))
	return c.JSON(fiber.Map{"message": "Song updated successfully."})
}

// DeleteSong removes a song the session user owns, row first, then the media
// file. File removal failures are logged, never surfaced: the row is gone and
// the catalog is consistent.
func (h *Handler) DeleteSong(c *fiber.Ctx) error {
	user, song, err := h.ownedSong(c)
	if err != nil {
		return h.mutationError(c, err)
	}

	if err := h.Songs.Delete(c.Context(), song.ID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found."})
		}
		h.Log.Error("delete: row delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete the song."})
	}

	if err := h.Files.Remove(song.FileName); err != nil {
		h.Log.Warn("delete: media file removal failed", zap.Error(err), zap.String("file", song.FileName))
	}

	h.Log.Info("song deleted", zap.String("song_id", song.ID.String()), zap.String("owner_id", user.ID.String()))
	return c.JSON(fiber.Map{"message": "Song deleted successfully."})
}

// ownedSong resolves the :songID path parameter and verifies the session
// user owns it.
func (h *Handler) ownedSong(c *fiber.Ctx) (*models.User, *models.Song, error) {
	user, err := h.currentUser(c)
	if err != nil {
		return nil, nil, err
	}

	songID, err := uuid.Parse(c.Params("songID"))
	if err != nil {
		return nil, nil, errs.ErrNotFound
	}
	song, err := h.Songs.Get(c.Context(), songID)
	if err != nil {
		return nil, nil, err
	}
	if song.OwnerID != user.ID {
		return nil, nil, errs.ErrForbidden
	}
	return user, song, nil
}

func (h *Handler) mutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this song."})
	case errors.Is(err, errs.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found."})
	default:
		return h.identityError(c, err)
	}
}

func (h *Handler) identityError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errs.ErrUnauthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in first.", "redirect": "/login"})
	}
	h.Log.Error("resolving session user failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not resolve the current user."})
}
