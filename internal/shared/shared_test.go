package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestContentHash(t *testing.T) {
	base := "{title: Song}\n[C]la la\n"

	tc := []struct {
		name    string
		content string
		same    bool
	}{
		{name: "identical", content: base, same: true},
		{name: "CRLF line endings", content: "{title: Song}\r\n[C]la la\r\n", same: true},
		{name: "trailing spaces", content: "{title: Song}  \n[C]la la\t\n", same: true},
		{name: "extra trailing newlines", content: base + "\n\n", same: true},
		{name: "different chord", content: "{title: Song}\n[D]la la\n", same: false},
		{name: "leading space matters", content: " {title: Song}\n[C]la la\n", same: false},
	}

	want := ContentHash(base)
	if len(want) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(want))
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentHash(tt.content)
			if (got == want) != tt.same {
				t.Errorf("ContentHash(%q) same = %v, want %v", tt.content, got == want, tt.same)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d", len(a))
	}
}

func TestLogger(t *testing.T) {
	t.Run("ApplyLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		if err := ApplyLogLevel(logger, "warn"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("hidden")
		logger.Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Error("info message should be filtered at warn level")
		}
		if !strings.Contains(out, "shown") {
			t.Error("warn message should be written")
		}

		if err := ApplyLogLevel(logger, "bogus"); err == nil {
			t.Error("expected error for unknown level")
		}
		if logger.GetLevel() != log.WarnLevel {
			t.Errorf("level should be unchanged after a bad name, got %v", logger.GetLevel())
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "song", "abc")
		logger.Info("saved")

		if !strings.Contains(buf.String(), "song=abc") {
			t.Errorf("expected key/value context in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "harmony.log")
		logger, f, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		defer f.Close()

		logger.Info("to file")
		if err := f.Sync(); err != nil {
			t.Fatalf("failed to sync: %v", err)
		}
	})
}
