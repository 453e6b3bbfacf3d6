package models

import (
	"errors"
	"testing"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

func TestSong(t *testing.T) {
	t.Run("NewSong derives header fields", func(t *testing.T) {
		song := NewSong(1, "{title: Amazing Grace}\n{artist: John Newton}\n{key: G}\n[G]Amazing [C]grace")

		if song.Title() != "Amazing Grace" {
			t.Errorf("expected title Amazing Grace, got %s", song.Title())
		}
		if song.Artist() != "John Newton" {
			t.Errorf("expected artist John Newton, got %s", song.Artist())
		}
		if song.Key() != "G" {
			t.Errorf("expected key G, got %s", song.Key())
		}
		if song.ContentHash() != shared.ContentHash(song.Content()) {
			t.Error("content hash should match the content")
		}
		if song.String() != "Amazing Grace - John Newton" {
			t.Errorf("unexpected String(): %s", song.String())
		}
	})

	t.Run("missing title falls back", func(t *testing.T) {
		song := NewSong(1, "[C]la la")
		if song.Title() != UntitledSong {
			t.Errorf("expected %s, got %s", UntitledSong, song.Title())
		}
		if song.String() != UntitledSong {
			t.Errorf("expected String() without artist, got %s", song.String())
		}
	})

	t.Run("SetContent re-derives", func(t *testing.T) {
		song := NewSong(1, "{title: One}")
		before := song.ContentHash()

		song.SetContent("{title: Two}\n{key: D}")
		if song.Title() != "Two" || song.Key() != "D" {
			t.Errorf("expected Two in D, got %s in %s", song.Title(), song.Key())
		}
		if song.ContentHash() == before {
			t.Error("hash should change with content")
		}
	})

	t.Run("Transposed and ApplyTranspose", func(t *testing.T) {
		song := NewSong(1, "{key: C}\n[C]la [G]la")
		song.SetTranspose(2)

		if got := song.Transposed(0); got != "{key: D}\n[D]la [A]la" {
			t.Errorf("unexpected transposed text %q", got)
		}
		if got := song.Transposed(-2); got != song.Content() {
			t.Errorf("offsets should cancel, got %q", got)
		}

		song.ApplyTranspose(2)
		if song.Key() != "D" {
			t.Errorf("expected key D after apply, got %s", song.Key())
		}
		if song.Transpose() != 0 {
			t.Errorf("display offset should reset, got %d", song.Transpose())
		}
	})

	t.Run("SetTranspose normalizes", func(t *testing.T) {
		song := NewSong(1, "[C]x")
		song.SetTranspose(14)
		if song.Transpose() != 2 {
			t.Errorf("expected 2, got %d", song.Transpose())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewSong(1, "   \n").Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for blank content, got %v", err)
		}
		if err := NewSong(1, "[C]x").Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}
	})
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(1, "Sunday", "morning set")
	if err := lib.Validate(); err != nil {
		t.Errorf("expected valid library, got %v", err)
	}

	lib.SetName("  ")
	if err := lib.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
