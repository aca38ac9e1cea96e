package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/analysis/intent"
	"github.com/voicebot/interview/backend/internal/metrics"
	"github.com/voicebot/interview/backend/internal/model/chat"
	"github.com/voicebot/interview/backend/internal/service/ai"
	"github.com/voicebot/interview/backend/internal/service/session"
)

var ErrEmptyMessage = errors.New("empty message")

// Replier produces a reply for a flattened prompt, absorbing model failures.
type Replier interface {
	Reply(ctx context.Context, prompt string) ai.Result
}

// Config controls optional steps of the turn pipeline.
type Config struct {
	IntentEnabled bool
}

// Turn is the outcome of one user message. Degraded marks a canned apology
// in place of model output.
type Turn struct {
	Reply     string
	Intent    intent.Tag
	Outcome   string
	Truncated bool
	Degraded  bool
	History   []chat.Message
}

// Outcome labels beyond the generation outcomes in package ai.
const OutcomeClarified = "clarified"

// Service runs chat turns against a session's history.
type Service struct {
	history *session.History
	prompts *ai.PromptBuilder
	replier Replier
	cfg     Config
	logger  *zap.Logger
}

// NewService wires the turn pipeline.
func NewService(history *session.History, prompts *ai.PromptBuilder, replier Replier, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		history: history,
		prompts: prompts,
		replier: replier,
		cfg:     cfg,
		logger:  logger,
	}
}

// Reply runs one turn for sessionID. The only errors returned are
// ErrEmptyMessage and session store failures; model failures become canned replies.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Turn{}, ErrEmptyMessage
	}

	tag := intent.None
	if s.cfg.IntentEnabled {
		tag = intent.Detect(message)
		metrics.ObserveIntent(string(tag))
	}

	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		return Turn{}, fmt.Errorf("load history: %w", err)
	}
	history = chat.Append(history, chat.UserMessage(message), s.history.Limit())

	if needsClarification(history, message) {
		stored, err := s.history.Save(ctx, sessionID, append(history, chat.AssistantMessage(ClarificationReply)))
		if err != nil {
			return Turn{}, fmt.Errorf("save history: %w", err)
		}
		metrics.ObserveTurn(OutcomeClarified)
		return Turn{Reply: ClarificationReply, Intent: tag, Outcome: OutcomeClarified, History: stored}, nil
	}

	prompt := s.prompts.Build(history, tag)
	result := s.replier.Reply(ctx, prompt)

	reply, truncated := limitReply(result.Text)
	if truncated {
		metrics.ObserveTruncation()
		s.logger.Debug("reply truncated", zap.String("session", sessionID), zap.String("model", result.Model))
	}

	stored, err := s.history.Save(ctx, sessionID, append(history, chat.AssistantMessage(reply)))
	if err != nil {
		return Turn{}, fmt.Errorf("save history: %w", err)
	}

	metrics.ObserveTurn(string(result.Outcome))
	fields := []zap.Field{
		zap.String("session", sessionID),
		zap.String("intent", string(tag)),
		zap.String("outcome", string(result.Outcome)),
		zap.String("model", result.Model),
		zap.Int("history", len(stored)),
	}
	if result.Degraded() {
		s.logger.Warn("chat turn answered with apology", fields...)
	} else {
		s.logger.Info("chat turn completed", fields...)
	}

	return Turn{
		Reply:     reply,
		Intent:    tag,
		Outcome:   string(result.Outcome),
		Truncated: truncated,
		Degraded:  result.Degraded(),
		History:   stored,
	}, nil
}

// Reset clears the session's history.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.history.Reset(ctx, sessionID); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
