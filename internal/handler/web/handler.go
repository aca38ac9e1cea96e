package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var assets embed.FS

// Handler serves the interview page and its assets.
type Handler struct {
	static http.Handler
	index  []byte
}

// New loads the embedded page.
func New() (*Handler, error) {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		static: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		index:  index,
	}, nil
}

// RegisterRoutes mounts "/" and "/static/*".
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/static/*", h.static.ServeHTTP)
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.index)
}
