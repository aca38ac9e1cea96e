package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/config"
	"github.com/voicebot/interview/backend/internal/handler"
	"github.com/voicebot/interview/backend/internal/model/chat"
	"github.com/voicebot/interview/backend/internal/model/persona"
	"github.com/voicebot/interview/backend/internal/pkg/logger"
	"github.com/voicebot/interview/backend/internal/service/ai"
	chatService "github.com/voicebot/interview/backend/internal/service/chat"
	"github.com/voicebot/interview/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{FilePath: cfg.Log.FilePath, Production: cfg.Log.Production})
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("no .env file loaded, using process environment", zap.Error(envErr))
	}

	personaStore, active, err := loadPersonas(cfg.Chat)
	if err != nil {
		log.Fatal("failed to load personas", zap.Error(err))
	}

	store, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		log.Fatal("failed to initialize session store", zap.Error(err))
	}
	log.Info("session store ready", zap.String("backend", string(cfg.Session.Backend)))

	generator, err := ai.NewFromConfig(ctx, cfg.AI, log)
	if err != nil {
		log.Fatal("AI 服务初始化失败，请检查模型相关环境变量", zap.String("provider", string(cfg.AI.Provider)), zap.Error(err))
	}
	log.Info("AI provider initialized",
		zap.String("provider", string(cfg.AI.Provider)),
		zap.String("primary", cfg.AI.PrimaryModel),
		zap.String("fallback", cfg.AI.FallbackModel),
	)

	prompts := ai.NewPromptBuilder(active)
	if missing := prompts.MissingTopics(); len(missing) > 0 {
		log.Warn("persona has no question for some topics", zap.String("persona", active.ID), zap.Any("topics", missing))
	}

	chatSvc := chatService.NewService(
		session.NewHistory(store, chat.HistoryLimit),
		prompts,
		generator,
		chatService.Config{IntentEnabled: cfg.Chat.IntentEnabled},
		log,
	)

	router, err := handler.NewRouter(handler.Dependencies{
		Server:   cfg.Server,
		Session:  cfg.Session,
		Personas: personaStore,
		ActiveID: active.ID,
		Chat:     chatSvc,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	startServer(ctx, log, cfg.Server, router)
}

func loadPersonas(cfg config.ChatConfig) (*persona.MemoryStore, persona.Persona, error) {
	items := persona.Seed()
	if cfg.PersonaFile != "" {
		loaded, err := persona.LoadFile(cfg.PersonaFile)
		if err != nil {
			return nil, persona.Persona{}, err
		}
		items = loaded
	}

	store := persona.NewMemoryStore(items)
	active, ok := store.Resolve(cfg.PersonaID)
	if !ok {
		return nil, persona.Persona{}, fmt.Errorf("persona %q not found", cfg.PersonaID)
	}
	return store, active, nil
}

func newSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, error) {
	if cfg.Backend != config.SessionRedis {
		return session.NewMemoryStore(cfg.TTL), nil
	}
	client, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, cfg.TTL), nil
}

func startServer(ctx context.Context, log *zap.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("voice interview backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
