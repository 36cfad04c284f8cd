package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TruLie13/El-Paso-AI/internal/assistant"
	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
)

// AskHandler handles question-answering requests against the municipal code.
type AskHandler struct {
	engine assistant.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine assistant.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskRequest is the HTTP request payload. Mirrors assistant.AskRequest but is
// defined here for HTTP layer separation.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the HTTP response payload.
type AskResponse struct {
	Answer string `json:"answer"`
	// AnswerHTML carries the answer rendered to HTML when the client asked
	// for format=html.
	AnswerHTML string `json:"answer_html,omitempty"`
	// Citations are the section numbers of the evidence backing the answer.
	Citations []string `json:"citations"`
	// Evidence lists the sections given to the generator, in rank order.
	Evidence []EvidenceResponse `json:"evidence"`
	// EvidenceRounds is 1 when the first answer sufficed, 2 when a targeted
	// second retrieval pass ran.
	EvidenceRounds int `json:"evidence_rounds"`
}

// EvidenceResponse describes one evidence section in the HTTP response.
type EvidenceResponse struct {
	SectionNumber string  `json:"section_number"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/v1/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	result, err := h.engine.Ask(ctx, assistant.AskRequest{Question: req.Question})
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	evidence := make([]EvidenceResponse, len(result.Evidence))
	for i, ref := range result.Evidence {
		evidence[i] = EvidenceResponse{
			SectionNumber: ref.SectionNumber,
			Title:         ref.Title,
			Score:         ref.Score,
		}
	}

	resp := AskResponse{
		Answer:         result.Answer,
		Citations:      result.Citations,
		Evidence:       evidence,
		EvidenceRounds: result.EvidenceRounds,
	}

	if wantsHTML(r) {
		html, err := renderMarkdown(result.Answer)
		if err != nil {
			logger.WarnContext(ctx, "failed to render answer as HTML", "error", err)
		} else {
			resp.AnswerHTML = html
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleEngineError maps engine errors to HTTP status codes.
func (h *AskHandler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "engine error", "error", err)

	switch {
	case errors.Is(err, assistant.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid question")
	case errors.Is(err, assistant.ErrGenerationUnavailable):
		writeError(w, http.StatusBadGateway, "Generation backend unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to process question")
	}
}

// wantsHTML reports whether the client requested HTML rendering.
func wantsHTML(r *http.Request) bool {
	return r.URL.Query().Get("format") == "html"
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
