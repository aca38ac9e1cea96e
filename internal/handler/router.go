package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/config"
	"github.com/voicebot/interview/backend/internal/handler/chat"
	"github.com/voicebot/interview/backend/internal/handler/persona"
	"github.com/voicebot/interview/backend/internal/handler/web"
	middlewarePkg "github.com/voicebot/interview/backend/internal/middleware"
	personaModel "github.com/voicebot/interview/backend/internal/model/persona"
	"github.com/voicebot/interview/backend/pkg/utils"
)

// Dependencies groups what the router needs from main.
type Dependencies struct {
	Server   config.ServerConfig
	Session  config.SessionConfig
	Personas personaModel.Store
	ActiveID string
	Chat     chat.TurnService
	Logger   *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := web.New()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.Server.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondStatus(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Everything below carries the session cookie.
	r.Group(func(r chi.Router) {
		r.Use(middlewarePkg.Session(middlewarePkg.SessionOptions{
			CookieName: deps.Session.CookieName,
			TTL:        deps.Session.TTL,
			Secure:     deps.Session.CookieSecure,
		}))

		page.RegisterRoutes(r)

		r.Route("/api", func(api chi.Router) {
			persona.New(deps.Personas, deps.ActiveID).RegisterRoutes(api)
			chat.New(deps.Chat, logger).RegisterRoutes(api)
			chat.NewWebSocketHandler(deps.Chat, deps.Server.AllowedOrigins, logger).RegisterWebSocketRoutes(api)
		})
	})

	return r, nil
}
