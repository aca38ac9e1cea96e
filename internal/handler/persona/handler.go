package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voicebot/interview/backend/internal/model/persona"
	"github.com/voicebot/interview/backend/pkg/utils"
)

// Handler serves the persona catalogue.
type Handler struct {
	personas persona.Store
	activeID string
}

// New creates the persona handler; activeID marks the persona the chat endpoint speaks as.
func New(personas persona.Store, activeID string) *Handler {
	return &Handler{
		personas: personas,
		activeID: activeID,
	}
}

// RegisterRoutes mounts the persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

type personaView struct {
	persona.Persona
	Active bool `json:"active"`
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	items := h.personas.List()
	views := make([]personaView, 0, len(items))
	for _, p := range items {
		views = append(views, personaView{Persona: p, Active: p.ID == h.activeID})
	}
	utils.RespondJSON(w, http.StatusOK, views)
}
