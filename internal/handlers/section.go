package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
)

// sectionNumberParam validates the {number} path parameter.
var sectionNumberParam = regexp.MustCompile(`^\d{1,2}\.\d{1,3}(\.\d{1,3})?$`)

// SectionHandler serves individual code sections by section number.
type SectionHandler struct {
	sections storage.SectionStore
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sections storage.SectionStore) *SectionHandler {
	return &SectionHandler{sections: sections}
}

// SectionResponse is the HTTP representation of a code section.
type SectionResponse struct {
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	// BodyHTML carries the body rendered to HTML when the client asked for
	// format=html.
	BodyHTML    string `json:"body_html,omitempty"`
	TitleNumber string `json:"title_number"`
	Chapter     string `json:"chapter"`
}

// ServeHTTP handles GET /api/v1/sections/{number}.
func (h *SectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	number := chi.URLParam(r, "number")
	if !sectionNumberParam.MatchString(number) {
		logger.WarnContext(ctx, "invalid section number", "number", number)
		writeError(w, http.StatusBadRequest, "Invalid section number")
		return
	}

	section, err := h.sections.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Section not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load section", "number", number, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load section")
		return
	}

	resp := SectionResponse{
		SectionNumber: section.SectionNumber,
		Title:         section.Title,
		Body:          section.Body,
		TitleNumber:   section.TitleNumber,
		Chapter:       section.Chapter,
	}

	if wantsHTML(r) {
		html, err := renderMarkdown(section.Body)
		if err != nil {
			logger.WarnContext(ctx, "failed to render section as HTML", "number", number, "error", err)
		} else {
			resp.BodyHTML = html
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
