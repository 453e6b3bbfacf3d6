package server

import (
	"fmt"
	"net/http"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// ChordProHandler exposes the stateless chord tools: render, transpose, locate and extension toggling.
type ChordProHandler struct{}

var _ Handler = (*ChordProHandler)(nil)

func NewChordProHandler() *ChordProHandler { return &ChordProHandler{} }

func (h *ChordProHandler) Routes() []string {
	return []string{
		"POST /api/render",
		"POST /api/transpose",
		"POST /api/locate",
		"POST /api/extension",
	}
}

func (h *ChordProHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/render":
		h.render(w, r)
	case "/api/transpose":
		h.transpose(w, r)
	case "/api/locate":
		h.locate(w, r)
	case "/api/extension":
		h.extension(w, r)
	default:
		http.NotFound(w, r)
	}
}

type renderRequest struct {
	Text      string `json:"text"`
	Transpose int    `json:"transpose"`
}

// RenderResponse is a rendered sheet plus the distinct chords it uses.
type RenderResponse struct {
	chordpro.Sheet
	Chords []string `json:"chords"`
}

func (h *ChordProHandler) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderText(req.Text, req.Transpose))
}

func renderText(text string, semitones int) RenderResponse {
	doc := chordpro.Parse(chordpro.TransposeText(text, semitones))
	chords := doc.Chords()
	if chords == nil {
		chords = []string{}
	}
	return RenderResponse{Sheet: chordpro.RenderSheet(doc), Chords: chords}
}

type transposeRequest struct {
	Text      string `json:"text"`
	Semitones int    `json:"semitones"`
}

type transposeResponse struct {
	Text string `json:"text"`
}

func (h *ChordProHandler) transpose(w http.ResponseWriter, r *http.Request) {
	var req transposeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transposeResponse{Text: chordpro.TransposeText(req.Text, req.Semitones)})
}

type locateRequest struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

type locateResponse struct {
	Found bool `json:"found"`
	chordpro.ChordLocation
}

func (h *ChordProHandler) locate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, err)
		return
	}
	loc, ok := chordpro.LocateChordAt(req.Offset, req.Text)
	writeJSON(w, http.StatusOK, locateResponse{Found: ok, ChordLocation: loc})
}

type extensionRequest struct {
	Chord     string `json:"chord"`
	Extension string `json:"extension"`
}

type extensionResponse struct {
	Chord string `json:"chord"`
}

func (h *ChordProHandler) extension(w http.ResponseWriter, r *http.Request) {
	var req extensionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, err)
		return
	}
	ext, ok := chordpro.ParseExtension(req.Extension)
	if !ok {
		writeErr(w, fmt.Errorf("%w: extension must be 7, 9 or 11", shared.ErrInvalidArgument))
		return
	}
	if req.Chord == "" {
		writeErr(w, fmt.Errorf("%w: chord", shared.ErrMissingArgument))
		return
	}
	writeJSON(w, http.StatusOK, extensionResponse{Chord: chordpro.ToggleExtension(req.Chord, ext)})
}
