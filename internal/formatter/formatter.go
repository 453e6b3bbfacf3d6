// package formatter exports songs to chord sheets, Markdown, ChordPro and CSV, and reads and writes backups
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// Format names an export format by its file extension.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatChordPro Format = "cho"
	FormatCSV      Format = "csv"
)

// Formats lists the per-song formats in the order they are offered.
var Formats = []Format{FormatText, FormatMarkdown, FormatChordPro}

// ParseFormat accepts an extension or a common alias ("text", "markdown", "chordpro").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "cho", "chordpro", "crd", "pro":
		return FormatChordPro, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, s)
}

// Export renders a single song in format, moved by the song's saved offset plus semitones.
func Export(song *models.Song, format Format, semitones int) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(song, semitones)
	case FormatMarkdown:
		return ExportToMarkdown(song, semitones)
	case FormatChordPro:
		return ExportToChordPro(song, semitones)
	case FormatCSV:
		return ExportToCSV([]*models.Song{song})
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
}

// ExportToText renders a plain monospace chord sheet with a title/artist/key header.
func ExportToText(song *models.Song, semitones int) ([]byte, error) {
	doc := chordpro.Parse(song.Transposed(semitones))
	return []byte(chordpro.RenderSheet(doc).String()), nil
}

// frontMatter is the YAML header of a Markdown export.
type frontMatter struct {
	Title     string   `yaml:"title"`
	Artist    string   `yaml:"artist,omitempty"`
	Key       string   `yaml:"key,omitempty"`
	Transpose int      `yaml:"transpose,omitempty"`
	Chords    []string `yaml:"chords,omitempty,flow"`
	ID        string   `yaml:"id,omitempty"`
}

// ExportToMarkdown renders YAML front matter followed by the chord sheet in a fenced block.
func ExportToMarkdown(song *models.Song, semitones int) ([]byte, error) {
	doc := chordpro.Parse(song.Transposed(semitones))

	meta := frontMatter{
		Title:     song.Title(),
		Artist:    doc.ArtistOr(""),
		Key:       doc.KeyOr(""),
		Transpose: (song.Transpose() + semitones) % 12,
		Chords:    doc.Chords(),
		ID:        song.ID(),
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(fmt.Sprintf("# %s\n\n", meta.Title))
	if meta.Artist != "" {
		buf.WriteString(fmt.Sprintf("**Artist**: %s\n", meta.Artist))
	}
	if meta.Key != "" {
		buf.WriteString(fmt.Sprintf("**Key**: %s\n", meta.Key))
	}
	if meta.Artist != "" || meta.Key != "" {
		buf.WriteString("\n")
	}

	body := chordpro.RenderSheet(chordpro.Document{Lines: doc.Lines}).String()
	buf.WriteString("```\n")
	buf.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("```\n")

	return buf.Bytes(), nil
}

// ExportToChordPro returns the transposed ChordPro source.
func ExportToChordPro(song *models.Song, semitones int) ([]byte, error) {
	out := song.Transposed(semitones)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}

// ExportToCSV converts songs to CSV with columns: ID, Number, Title, Artist, Key, Transpose, Chords
func ExportToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Number", "Title", "Artist", "Key", "Transpose", "Chords"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID(),
			strconv.Itoa(song.Sequence()),
			song.Title(),
			song.Artist(),
			song.Key(),
			strconv.Itoa(song.Transpose()),
			strings.Join(song.Document().Chords(), " "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename builds "<number>-<slug>.<ext>" for a song, e.g. "7-amazing-grace.txt".
func Filename(song *models.Song, format Format) string {
	slug := Slugify(song.Title())
	if slug == "" {
		slug = "song"
	}
	return fmt.Sprintf("%d-%s.%s", song.Sequence(), slug, format)
}

// Slugify lowercases s and collapses every run of non-alphanumerics into one '-'.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WriteExport renders song in format into dir and returns the written path.
func WriteExport(song *models.Song, format Format, dir string, semitones int) (string, error) {
	data, err := Export(song, format, semitones)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, Filename(song, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}
