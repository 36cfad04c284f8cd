package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TruLie13/El-Paso-AI/internal/assistant"
	"github.com/TruLie13/El-Paso-AI/internal/handlers"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine         assistant.Engine
	Sections       storage.SectionStore
	VectorChecker  handlers.CollectionChecker
	CollectionName string
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	askHandler := handlers.NewAskHandler(deps.Engine)
	sectionHandler := handlers.NewSectionHandler(deps.Sections)
	healthHandler := handlers.NewHealthHandler(deps.VectorChecker, deps.Sections, deps.CollectionName)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/sections/{number}", sectionHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
