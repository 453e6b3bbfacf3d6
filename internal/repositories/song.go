package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

const songColumns = `id, sequence, title, artist, song_key, content, content_hash, transpose, created_at, updated_at, deleted_at`

// SongRepository implements models.Repository[*models.Song].
//
// Handles song CRUD with soft delete support, duplicate lookups by content hash and set-list filtering.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song with a generated sequence. An ID is generated unless the song already has one.
func (r *SongRepository) Create(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	song.SetSequence(sequence)

	if song.ID() == "" {
		song.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO songs (id, sequence, title, artist, song_key, content, content_hash, transpose, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		song.ID(),
		sequence,
		song.Title(),
		song.Artist(),
		song.Key(),
		song.Content(),
		song.ContentHash(),
		song.Transpose(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, err
}

// GetByHash retrieves the live song whose content hashes to hash.
func (r *SongRepository) GetByHash(hash string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE content_hash = ? AND deleted_at IS NULL ORDER BY sequence ASC LIMIT 1`

	song, err := scanSong(r.db.QueryRow(query, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no song with hash %s", shared.ErrSongNotFound, hash)
	}
	return song, err
}

// GetBySequence retrieves a live song by its sequence number.
func (r *SongRepository) GetBySequence(sequence int) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE sequence = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRow(query, sequence))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", shared.ErrSongNotFound, sequence)
	}
	return song, err
}

// Resolve finds a song from a user-supplied reference: a sequence number
// ("12" or "#12") or an ID.
func (r *SongRepository) Resolve(ref string) (*models.Song, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty song reference", shared.ErrMissingArgument)
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		return r.GetBySequence(n)
	}
	return r.Get(ref)
}

// Update writes the song's content, derived fields and transpose offset.
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET title = ?, artist = ?, song_key = ?, content = ?, content_hash = ?, transpose = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		song.Title(),
		song.Artist(),
		song.Key(),
		song.Content(),
		song.ContentHash(),
		song.Transpose(),
		now,
		song.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return expectAffected(result, shared.ErrSongNotFound, song.ID())
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	return expectAffected(result, shared.ErrSongNotFound, id)
}

// List retrieves live songs matching criteria.
//
// Supported keys: "library_id" (set-list order), "artist" (exact, case-insensitive),
// "query" (substring of title or artist) and "limit".
// Without a library the songs are ordered by title.
func (r *SongRepository) List(criteria map[string]any) ([]*models.Song, error) {
	var (
		query strings.Builder
		args  []any
	)

	libraryID, byLibrary := criteria["library_id"].(string)
	byLibrary = byLibrary && libraryID != ""

	if byLibrary {
		query.WriteString(`SELECT s.id, s.sequence, s.title, s.artist, s.song_key, s.content, s.content_hash, s.transpose, s.created_at, s.updated_at, s.deleted_at
			FROM songs s JOIN library_songs ls ON ls.song_id = s.id
			WHERE s.deleted_at IS NULL AND ls.library_id = ?`)
		args = append(args, libraryID)
	} else {
		query.WriteString(`SELECT ` + songColumns + ` FROM songs s WHERE s.deleted_at IS NULL`)
	}

	if artist, ok := criteria["artist"].(string); ok && artist != "" {
		query.WriteString(" AND s.artist = ? COLLATE NOCASE")
		args = append(args, artist)
	}

	if q, ok := criteria["query"].(string); ok && q != "" {
		query.WriteString(" AND (s.title LIKE ? OR s.artist LIKE ?)")
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	if byLibrary {
		query.WriteString(" ORDER BY ls.position ASC")
	} else {
		query.WriteString(" ORDER BY s.title COLLATE NOCASE ASC, s.sequence ASC")
	}

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := r.db.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scanner is satisfied by [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (*models.Song, error) {
	var (
		id          string
		sequence    int
		title       string
		artist      string
		key         string
		content     string
		contentHash string
		transpose   int
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &title, &artist, &key, &content, &contentHash, &transpose, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	song := models.NewSong(sequence, content)
	song.SetID(id)
	song.SetTranspose(transpose)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}

// expectAffected maps an UPDATE that touched no rows to notFound.
func expectAffected(result sql.Result, notFound error, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
