package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// BackupVersion is the current backup file layout.
const BackupVersion = 1

// xzMagic opens every xz stream.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Backup is a full dump of the song book.
type Backup struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Songs      []BackupSong    `json:"songs"`
	Libraries  []BackupLibrary `json:"libraries,omitempty"`
}

// BackupSong holds the source of a song; title, artist and key are derived from it on restore.
type BackupSong struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"content_hash"`
	Transpose   int       `json:"transpose,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BackupLibrary holds a set list by song ID.
type BackupLibrary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SongIDs     []string `json:"song_ids"`
}

// NewBackup snapshots songs and libraries.
func NewBackup(songs []*models.Song, libraries []*models.Library) *Backup {
	b := &Backup{Version: BackupVersion, ExportedAt: time.Now().UTC(), Songs: []BackupSong{}}
	for _, s := range songs {
		b.Songs = append(b.Songs, BackupSong{
			ID:          s.ID(),
			Title:       s.Title(),
			Content:     s.Content(),
			ContentHash: s.ContentHash(),
			Transpose:   s.Transpose(),
			CreatedAt:   s.CreatedAt(),
		})
	}
	for _, l := range libraries {
		b.Libraries = append(b.Libraries, BackupLibrary{
			ID:          l.ID(),
			Name:        l.Name(),
			Description: l.Description(),
			SongIDs:     l.SongIDs(),
		})
	}
	return b
}

// ToSong rebuilds a song from its backup entry, keeping the original ID.
func (b BackupSong) ToSong() *models.Song {
	song := models.NewSong(0, b.Content)
	song.SetID(b.ID)
	song.SetTranspose(b.Transpose)
	if !b.CreatedAt.IsZero() {
		song.SetCreatedAt(b.CreatedAt)
	}
	return song
}

// Compressed reports whether path selects the xz container.
func Compressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xz")
}

// EncodeBackup writes b as indented JSON, xz-compressed when compress is set.
func EncodeBackup(w io.Writer, b *Backup, compress bool) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if !compress {
		_, err := w.Write(data)
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := xw.Write(data); err != nil {
		xw.Close()
		return fmt.Errorf("failed to compress backup: %w", err)
	}
	return xw.Close()
}

// DecodeBackup reads a backup, detecting the xz container from its magic bytes.
func DecodeBackup(r io.Reader) (*Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	if bytes.HasPrefix(data, xzMagic) {
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		if data, err = io.ReadAll(xr); err != nil {
			return nil, fmt.Errorf("failed to decompress backup: %w", err)
		}
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: backup is not valid JSON: %w", shared.ErrInvalidInput, err)
	}
	if b.Version < 1 || b.Version > BackupVersion {
		return nil, fmt.Errorf("%w: %d", shared.ErrUnsupportedVersion, b.Version)
	}
	return &b, nil
}

// WriteBackup writes a backup file, compressed with xz when path ends in ".xz".
func WriteBackup(path string, b *Backup) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := EncodeBackup(f, b, Compressed(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadBackup reads a backup file written by [WriteBackup].
func ReadBackup(path string) (*Backup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	return DecodeBackup(f)
}
