package formatter

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	th "github.com/Guillaumelf26/Harmony-sub000/internal/testing"
)

func sampleBackup() *Backup {
	grace := models.NewSong(1, th.AmazingGrace)
	grace.SetID("grace")
	grace.SetTranspose(2)
	fair := models.NewSong(2, th.Scarborough)
	fair.SetID("fair")

	library := models.NewLibrary(1, "Folk", "")
	library.SetID("folk")
	library.SetSongIDs([]string{"fair", "grace"})

	return NewBackup([]*models.Song{grace, fair}, []*models.Library{library})
}

func TestBackup(t *testing.T) {
	tc := []struct {
		name string
		file string
	}{
		{name: "plain JSON", file: "songs.json"},
		{name: "xz compressed", file: "songs.json.xz"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := WriteBackup(path, sampleBackup()); err != nil {
				t.Fatalf("WriteBackup failed: %v", err)
			}

			raw := th.MustReadFile(t, path)
			if Compressed(path) == strings.HasPrefix(raw, "{") {
				t.Errorf("compression mismatch for %s", tt.file)
			}

			b, err := ReadBackup(path)
			if err != nil {
				t.Fatalf("ReadBackup failed: %v", err)
			}

			if b.Version != BackupVersion {
				t.Errorf("expected version %d, got %d", BackupVersion, b.Version)
			}
			if len(b.Songs) != 2 || len(b.Libraries) != 1 {
				t.Fatalf("expected 2 songs and 1 library, got %d and %d", len(b.Songs), len(b.Libraries))
			}

			song := b.Songs[0].ToSong()
			if song.ID() != "grace" || song.Title() != "Amazing Grace" || song.Transpose() != 2 {
				t.Errorf("song did not round-trip: %s %s %d", song.ID(), song.Title(), song.Transpose())
			}
			if song.ContentHash() != b.Songs[0].ContentHash {
				t.Error("content hash should survive the round trip")
			}
			if got := b.Libraries[0].SongIDs; len(got) != 2 || got[0] != "fair" {
				t.Errorf("library order did not round-trip: %v", got)
			}
		})
	}
}

func TestDecodeBackupErrors(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		_, err := DecodeBackup(strings.NewReader("not json"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("future version", func(t *testing.T) {
		_, err := DecodeBackup(strings.NewReader(`{"version": 99, "songs": []}`))
		if !errors.Is(err, shared.ErrUnsupportedVersion) {
			t.Errorf("expected ErrUnsupportedVersion, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		if err := EncodeBackup(&th.FWriter{}, sampleBackup(), false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("xz detected without extension", func(t *testing.T) {
		var buf bytes.Buffer
		if err := EncodeBackup(&buf, sampleBackup(), true); err != nil {
			t.Fatalf("EncodeBackup failed: %v", err)
		}
		if _, err := DecodeBackup(&buf); err != nil {
			t.Errorf("expected compressed stream to be detected: %v", err)
		}
	})
}
