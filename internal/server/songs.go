package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// SongReader is the read side of the song store.
type SongReader interface {
	List(criteria map[string]any) ([]*models.Song, error)
	Resolve(ref string) (*models.Song, error)
}

// SongsHandler serves the stored song book read-only.
type SongsHandler struct {
	songs SongReader
}

var _ Handler = (*SongsHandler)(nil)

func NewSongsHandler(songs SongReader) *SongsHandler {
	return &SongsHandler{songs: songs}
}

func (h *SongsHandler) Routes() []string {
	return []string{
		"GET /api/songs",
		"GET /api/songs/{id}",
	}
}

func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("id"); id != "" {
		h.show(w, r, id)
		return
	}
	h.list(w, r)
}

// SongSummary is one entry of the song listing.
type SongSummary struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	Key       string    `json:"key,omitempty"`
	Transpose int       `json:"transpose,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func summarize(song *models.Song) SongSummary {
	return SongSummary{
		ID:        song.ID(),
		Number:    song.Sequence(),
		Title:     song.Title(),
		Artist:    song.Artist(),
		Key:       song.Key(),
		Transpose: song.Transpose(),
		UpdatedAt: song.UpdatedAt(),
	}
}

// SongDetail is a song rendered at its saved offset plus any requested extra semitones.
type SongDetail struct {
	SongSummary
	Content  string         `json:"content"`
	Rendered RenderResponse `json:"rendered"`
}

func (h *SongsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := map[string]any{}
	for param, key := range map[string]string{"q": "query", "artist": "artist", "library": "library_id"} {
		if v := q.Get(param); v != "" {
			criteria[key] = v
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			writeErr(w, fmt.Errorf("%w: limit must be a positive integer", shared.ErrInvalidArgument))
			return
		}
		criteria["limit"] = limit
	}

	songs, err := h.songs.List(criteria)
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]SongSummary, 0, len(songs))
	for _, song := range songs {
		out = append(out, summarize(song))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SongsHandler) show(w http.ResponseWriter, r *http.Request, ref string) {
	extra := 0
	if v := r.URL.Query().Get("transpose"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, fmt.Errorf("%w: transpose must be an integer", shared.ErrInvalidArgument))
			return
		}
		extra = n
	}

	song, err := h.songs.Resolve(ref)
	if err != nil {
		writeErr(w, err)
		return
	}

	text := song.Transposed(extra)
	writeJSON(w, http.StatusOK, SongDetail{
		SongSummary: summarize(song),
		Content:     text,
		Rendered:    renderText(text, 0),
	})
}
