package tasks

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/repositories"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	th "github.com/Guillaumelf26/Harmony-sub000/internal/testing"
)

type fixture struct {
	db        *sql.DB
	engine    *Engine
	songs     *repositories.SongRepository
	libraries *repositories.LibraryRepository
	logs      *bytes.Buffer
}

func setupEngine(t *testing.T) fixture {
	t.Helper()
	db := th.NewTestDB(t)

	var logs bytes.Buffer
	songs := repositories.NewSongRepository(db)
	libraries := repositories.NewLibraryRepository(db)
	return fixture{
		db:        db,
		engine:    NewEngine(songs, libraries, shared.NewLogger(&logs)),
		songs:     songs,
		libraries: libraries,
		logs:      &logs,
	}
}

func TestPhaseString(t *testing.T) {
	tc := []struct {
		phase Phase
		want  string
	}{
		{ScanFiles, "scan_files"},
		{ImportSongs, "import_songs"},
		{ExportSongs, "export_songs"},
		{TransposeSongs, "transpose_songs"},
		{RestoreBackup, "restore_backup"},
		{WatchFile, "watch_file"},
		{Phase(99), ""},
	}

	for _, tt := range tc {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestSendProgressNeverBlocks(t *testing.T) {
	e := NewEngine(nil, nil, nil)

	e.sendProgress(nil, ProgressUpdate{})

	full := make(chan ProgressUpdate)
	done := make(chan struct{})
	go func() {
		e.sendProgress(full, ProgressUpdate{Message: "dropped"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sendProgress blocked on an unread channel")
	}
}

func TestExpandImportPatterns(t *testing.T) {
	dir := t.TempDir()
	th.MustWriteFile(t, dir, "a.cho", "{title: A}")
	th.MustWriteFile(t, dir, "nested/deep/b.chordpro", "{title: B}")
	th.MustWriteFile(t, dir, "nested/c.txt", "not a song")
	th.MustWriteFile(t, dir, "other/d.pro", "{title: D}")

	t.Run("directory", func(t *testing.T) {
		files, err := ExpandImportPatterns([]string{dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("expected 3 ChordPro files, got %v", files)
		}
		for _, f := range files {
			if strings.HasSuffix(f, ".txt") {
				t.Errorf("non-ChordPro file included: %s", f)
			}
		}
	})

	t.Run("glob and explicit file de-duplicated", func(t *testing.T) {
		files, err := ExpandImportPatterns([]string{
			filepath.Join(dir, "nested", "**", "*.chordpro"),
			filepath.Join(dir, "nested", "deep", "b.chordpro"),
			filepath.Join(dir, "nested", "c.txt"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %v", files)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		files, err := ExpandImportPatterns([]string{filepath.Join(dir, "*.crd")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 0 {
			t.Errorf("expected no files, got %v", files)
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := ExpandImportPatterns([]string{filepath.Join(dir, "[")}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestImport(t *testing.T) {
	t.Run("imports and skips duplicates", func(t *testing.T) {
		f := setupEngine(t)
		dir := t.TempDir()

		paths := []string{
			th.MustWriteFile(t, dir, "grace.cho", th.AmazingGrace),
			th.MustWriteFile(t, dir, "grace-copy.cho", strings.ReplaceAll(th.AmazingGrace, "\n", "\r\n")),
			th.MustWriteFile(t, dir, "fair.cho", th.Scarborough),
			th.MustWriteFile(t, dir, "empty.cho", "  \n"),
			filepath.Join(dir, "missing.cho"),
		}

		prog := make(chan ProgressUpdate, 32)
		result, err := f.engine.Import(context.Background(), prog, paths, ImportOpts{})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		if len(result.Imported) != 2 {
			t.Errorf("expected 2 imported, got %d", len(result.Imported))
		}
		if len(result.Skipped) != 1 || result.Skipped[0].ExistingID != result.Imported[0].SongID {
			t.Errorf("expected CRLF copy to be skipped as duplicate, got %+v", result.Skipped)
		}
		if len(result.Failed) != 2 {
			t.Errorf("expected empty and missing files to fail, got %+v", result.Failed)
		}
		if len(prog) == 0 {
			t.Error("expected progress updates")
		}

		again, err := f.engine.Import(context.Background(), nil, paths[:1], ImportOpts{})
		if err != nil {
			t.Fatalf("second Import failed: %v", err)
		}
		if len(again.Skipped) != 1 {
			t.Errorf("re-importing should skip stored content, got %+v", again)
		}
	})

	t.Run("untitled file takes its name", func(t *testing.T) {
		f := setupEngine(t)
		path := th.MustWriteFile(t, t.TempDir(), "house_of_the-rising_sun.cho", "[Am]There is a [C]house")

		result, err := f.engine.Import(context.Background(), nil, []string{path}, ImportOpts{})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(result.Imported) != 1 || result.Imported[0].Title != "house of the rising sun" {
			t.Errorf("expected title from file name, got %+v", result.Imported)
		}
	})

	t.Run("into library", func(t *testing.T) {
		f := setupEngine(t)
		library := models.NewLibrary(0, "Folk", "")
		if err := f.libraries.Create(library); err != nil {
			t.Fatalf("failed to create library: %v", err)
		}

		existing := th.SeedSongs(t, f.db, th.AmazingGrace)[0]
		dir := t.TempDir()
		paths := []string{
			th.MustWriteFile(t, dir, "fair.cho", th.Scarborough),
			th.MustWriteFile(t, dir, "grace.cho", th.AmazingGrace),
		}

		if _, err := f.engine.Import(context.Background(), nil, paths, ImportOpts{LibraryID: "folk"}); err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		ids, err := f.libraries.SongIDs(library.ID())
		if err != nil {
			t.Fatalf("failed to read library: %v", err)
		}
		if len(ids) != 2 || ids[1] != existing.ID() {
			t.Errorf("expected new and duplicate songs in the set list, got %v", ids)
		}
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		f := setupEngine(t)
		path := th.MustWriteFile(t, t.TempDir(), "fair.cho", th.Scarborough)

		result, err := f.engine.Import(context.Background(), nil, []string{path}, ImportOpts{DryRun: true})
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(result.Imported) != 1 {
			t.Errorf("dry run should still report the song")
		}

		songs, _ := f.songs.List(map[string]any{})
		if len(songs) != 0 {
			t.Errorf("dry run stored %d songs", len(songs))
		}
	})

	t.Run("unknown library", func(t *testing.T) {
		f := setupEngine(t)
		_, err := f.engine.Import(context.Background(), nil, nil, ImportOpts{LibraryID: "nope"})
		if !errors.Is(err, shared.ErrLibraryNotFound) {
			t.Errorf("expected ErrLibraryNotFound, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		f := setupEngine(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := th.MustWriteFile(t, t.TempDir(), "fair.cho", th.Scarborough)
		if _, err := f.engine.Import(ctx, nil, []string{path}, ImportOpts{}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestBulkTranspose(t *testing.T) {
	f := setupEngine(t)
	songs := th.SeedSongs(t, f.db, th.AmazingGrace, th.Scarborough)

	refs := []string{songs[0].ID(), "#2", "#42"}
	results, err := f.engine.BulkTranspose(context.Background(), nil, refs, 2)
	if err != nil {
		t.Fatalf("BulkTranspose failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Key != "A" || results[1].Key != "Bm" {
		t.Errorf("expected keys A and Bm, got %s and %s", results[0].Key, results[1].Key)
	}
	if !errors.Is(results[2].Error, shared.ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound for #42, got %v", results[2].Error)
	}

	stored, err := f.songs.Get(songs[0].ID())
	if err != nil {
		t.Fatalf("failed to reload song: %v", err)
	}
	if !strings.Contains(stored.Content(), "[A]Amazing [A7]grace") {
		t.Errorf("stored content not transposed: %q", stored.Content())
	}

	if _, err := f.engine.BulkTranspose(context.Background(), nil, refs, 12); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for an octave, got %v", err)
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	source := setupEngine(t)
	songs := th.SeedSongs(t, source.db, th.AmazingGrace, th.Scarborough)

	library := models.NewLibrary(0, "Folk", "trad")
	if err := source.libraries.Create(library); err != nil {
		t.Fatalf("failed to create library: %v", err)
	}
	if err := source.libraries.AddSong(library.ID(), songs[1].ID()); err != nil {
		t.Fatalf("failed to add song: %v", err)
	}

	backup, err := source.engine.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(backup.Songs) != 2 || len(backup.Libraries) != 1 {
		t.Fatalf("expected 2 songs and 1 library, got %d and %d", len(backup.Songs), len(backup.Libraries))
	}

	target := setupEngine(t)
	th.SeedSongs(t, target.db, th.AmazingGrace)

	result, err := target.engine.Restore(context.Background(), nil, backup)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.SongsRestored != 1 || result.SongsSkipped != 1 {
		t.Errorf("expected 1 restored and 1 skipped, got %+v", result)
	}
	if result.LibrariesRestored != 1 || len(result.Errors) != 0 {
		t.Errorf("expected library restored without errors, got %+v", result)
	}

	restored, err := target.songs.Get(songs[1].ID())
	if err != nil {
		t.Fatalf("restored song should keep its ID: %v", err)
	}

	folk, err := target.libraries.Resolve("Folk")
	if err != nil {
		t.Fatalf("failed to resolve restored library: %v", err)
	}
	if len(folk.SongIDs()) != 1 || folk.SongIDs()[0] != restored.ID() {
		t.Errorf("expected restored set list, got %v", folk.SongIDs())
	}

	again, err := target.engine.Restore(context.Background(), nil, backup)
	if err != nil {
		t.Fatalf("second Restore failed: %v", err)
	}
	if again.SongsRestored != 0 || again.LibrariesSkipped != 1 {
		t.Errorf("restoring twice should change nothing, got %+v", again)
	}
}

func TestRestoreOverDeletedSong(t *testing.T) {
	f := setupEngine(t)
	song := th.SeedSongs(t, f.db, th.Scarborough)[0]

	backup := formatter.NewBackup([]*models.Song{song}, nil)
	if err := f.songs.Delete(song.ID()); err != nil {
		t.Fatalf("failed to delete song: %v", err)
	}

	result, err := f.engine.Restore(context.Background(), nil, backup)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.SongsRestored != 1 || len(result.Errors) != 0 {
		t.Errorf("expected the deleted song to come back under a new ID, got %+v", result)
	}
}

func TestWatch(t *testing.T) {
	f := setupEngine(t)
	path := th.MustWriteFile(t, t.TempDir(), "song.cho", "[C]one")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		seen []string
	)
	changed := make(chan struct{}, 8)

	done := make(chan error, 1)
	go func() {
		done <- f.engine.Watch(ctx, nil, path, 20*time.Millisecond, func(content string) {
			mu.Lock()
			seen = append(seen, content)
			mu.Unlock()
			changed <- struct{}{}
		})
	}()

	waitFor := func(what string) {
		t.Helper()
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}

	waitFor("initial render")

	if err := os.WriteFile(path, []byte("[D]two"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	waitFor("change")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if seen[0] != "[C]one" || seen[len(seen)-1] != "[D]two" {
		t.Errorf("unexpected contents %q", seen)
	}
}

func TestWatchMissingFile(t *testing.T) {
	f := setupEngine(t)
	err := f.engine.Watch(context.Background(), nil, filepath.Join(t.TempDir(), "nope.cho"), 0, func(string) {})
	if err == nil {
		t.Error("expected error for a missing file")
	}
}
