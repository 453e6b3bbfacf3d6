package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// LibraryRepository implements models.Repository[*models.Library] and manages set-list membership.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a new LibraryRepository with the given database connection
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// Create inserts a new library. Names are unique among live libraries.
func (r *LibraryRepository) Create(library *models.Library) error {
	if err := library.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.GetByName(library.Name()); err == nil {
		return fmt.Errorf("%w: library %q already exists", shared.ErrInvalidInput, library.Name())
	} else if !errors.Is(err, shared.ErrLibraryNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "libraries")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	library.SetSequence(sequence)

	if library.ID() == "" {
		library.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO libraries (id, sequence, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, library.ID(), sequence, library.Name(), library.Description(), library.CreatedAt(), library.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert library: %w", err)
	}

	return nil
}

// Get retrieves a library and its song order by ID, excluding soft-deleted libraries
func (r *LibraryRepository) Get(id string) (*models.Library, error) {
	return r.getWhere("id = ?", id)
}

// GetByName retrieves a live library by name (case-insensitive).
func (r *LibraryRepository) GetByName(name string) (*models.Library, error) {
	return r.getWhere("name = ? COLLATE NOCASE", name)
}

// Resolve finds a library by ID or, failing that, by name.
func (r *LibraryRepository) Resolve(ref string) (*models.Library, error) {
	if library, err := r.Get(ref); err == nil {
		return library, nil
	} else if !errors.Is(err, shared.ErrLibraryNotFound) {
		return nil, err
	}
	return r.GetByName(ref)
}

func (r *LibraryRepository) getWhere(cond string, arg string) (*models.Library, error) {
	query := `
		SELECT id, sequence, name, description, created_at, updated_at, deleted_at
		FROM libraries
		WHERE ` + cond + ` AND deleted_at IS NULL
	`

	library, err := scanLibrary(r.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrLibraryNotFound, arg)
	}
	if err != nil {
		return nil, err
	}

	ids, err := r.SongIDs(library.ID())
	if err != nil {
		return nil, err
	}
	library.SetSongIDs(ids)

	return library, nil
}

// Update modifies the library's name and description
func (r *LibraryRepository) Update(library *models.Library) error {
	if err := library.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	library.SetUpdatedAt(now)

	result, err := r.db.Exec(`
		UPDATE libraries
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, library.Name(), library.Description(), now, library.ID())
	if err != nil {
		return fmt.Errorf("failed to update library: %w", err)
	}

	return expectAffected(result, shared.ErrLibraryNotFound, library.ID())
}

// Delete soft-deletes a library by ID
func (r *LibraryRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE libraries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}

	return expectAffected(result, shared.ErrLibraryNotFound, id)
}

// List retrieves all live libraries ordered by name, each with its song order.
// criteria is accepted for interface compatibility; no keys are currently supported.
func (r *LibraryRepository) List(criteria map[string]any) ([]*models.Library, error) {
	rows, err := r.db.Query(`
		SELECT id, sequence, name, description, created_at, updated_at, deleted_at
		FROM libraries
		WHERE deleted_at IS NULL
		ORDER BY name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query libraries: %w", err)
	}

	var libraries []*models.Library
	for rows.Next() {
		library, err := scanLibrary(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		libraries = append(libraries, library)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	// Membership is loaded after the cursor is closed; in-memory databases run on a single connection.
	for _, library := range libraries {
		ids, err := r.SongIDs(library.ID())
		if err != nil {
			return nil, err
		}
		library.SetSongIDs(ids)
	}

	return libraries, nil
}

// AddSong appends a live song to the end of a live library's set list.
func (r *LibraryRepository) AddSong(libraryID, songID string) error {
	if err := r.requireLive("libraries", libraryID, shared.ErrLibraryNotFound); err != nil {
		return err
	}
	if err := r.requireLive("songs", songID, shared.ErrSongNotFound); err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM library_songs WHERE library_id = ? AND song_id = ?)", libraryID, songID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: song %s is already in library %s", shared.ErrDuplicateSong, songID, libraryID)
	}

	_, err := r.db.Exec(`
		INSERT INTO library_songs (library_id, song_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM library_songs WHERE library_id = ?))
	`, libraryID, songID, libraryID)
	if err != nil {
		return fmt.Errorf("failed to add song to library: %w", err)
	}
	return nil
}

// RemoveSong removes a song from a library's set list.
func (r *LibraryRepository) RemoveSong(libraryID, songID string) error {
	result, err := r.db.Exec("DELETE FROM library_songs WHERE library_id = ? AND song_id = ?", libraryID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song from library: %w", err)
	}
	return expectAffected(result, shared.ErrSongNotFound, songID)
}

// SongIDs returns the IDs of live songs in a library, in set-list order.
func (r *LibraryRepository) SongIDs(libraryID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT ls.song_id
		FROM library_songs ls JOIN songs s ON s.id = ls.song_id
		WHERE ls.library_id = ? AND s.deleted_at IS NULL
		ORDER BY ls.position ASC
	`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library songs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan song id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

func (r *LibraryRepository) requireLive(table, id string, notFound error) error {
	var exists bool
	err := r.db.QueryRow(
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ? AND deleted_at IS NULL)", table), id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", table, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}

func scanLibrary(row scanner) (*models.Library, error) {
	var (
		id          string
		sequence    int
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &description, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}

	library := models.NewLibrary(sequence, name, description)
	library.SetID(id)
	library.SetCreatedAt(createdAt)
	library.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		library.SetDeletedAt(&deletedAt.Time)
	}
	return library, nil
}
