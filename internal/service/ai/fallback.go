package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/metrics"
)

// Canned replies used when generation cannot produce text.
const (
	QuotaReply         = "I’m temporarily unavailable due to API limits. Please try again shortly."
	InternalErrorReply = "I ran into an internal issue. Please try again."
)

// Outcome describes how a reply was produced.
type Outcome string

const (
	OutcomePrimary  Outcome = "primary"
	OutcomeFallback Outcome = "fallback"
	OutcomeQuota    Outcome = "quota"
	OutcomeError    Outcome = "error"
)

// Result is the text to send back plus how it was obtained.
type Result struct {
	Text    string
	Model   string
	Outcome Outcome
}

// Degraded reports whether Text is a canned apology rather than model output.
func (r Result) Degraded() bool {
	return r.Outcome == OutcomeQuota || r.Outcome == OutcomeError
}

// FallbackGenerator tries the primary model and, only on quota exhaustion,
// retries once against the fallback model. It never returns an error: every
// failure becomes one of the canned replies.
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   *zap.Logger
}

// NewFallbackGenerator wires the two tiers. fallback may be the same model as primary.
func NewFallbackGenerator(primary, fallback Generator, logger *zap.Logger) *FallbackGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackGenerator{primary: primary, fallback: fallback, logger: logger}
}

// Reply runs the primary→fallback policy for prompt.
func (f *FallbackGenerator) Reply(ctx context.Context, prompt string) Result {
	text, err := f.call(ctx, f.primary, prompt)
	if err == nil {
		return Result{Text: text, Model: f.primary.Model(), Outcome: OutcomePrimary}
	}
	if !IsQuotaExhausted(err) {
		f.logger.Error("generation failed", zap.String("model", f.primary.Model()), zap.Error(err))
		return Result{Text: InternalErrorReply, Model: f.primary.Model(), Outcome: OutcomeError}
	}

	f.logger.Warn("primary model quota exhausted, falling back",
		zap.String("primary", f.primary.Model()),
		zap.String("fallback", f.fallback.Model()),
	)

	text, err = f.call(ctx, f.fallback, prompt)
	switch {
	case err == nil:
		return Result{Text: text, Model: f.fallback.Model(), Outcome: OutcomeFallback}
	case IsQuotaExhausted(err):
		f.logger.Warn("fallback model quota exhausted", zap.String("model", f.fallback.Model()), zap.Error(err))
		return Result{Text: QuotaReply, Model: f.fallback.Model(), Outcome: OutcomeQuota}
	default:
		f.logger.Error("fallback generation failed", zap.String("model", f.fallback.Model()), zap.Error(err))
		return Result{Text: InternalErrorReply, Model: f.fallback.Model(), Outcome: OutcomeError}
	}
}

func (f *FallbackGenerator) call(ctx context.Context, g Generator, prompt string) (string, error) {
	start := time.Now()
	text, err := g.Generate(ctx, prompt)

	result := "ok"
	switch {
	case IsQuotaExhausted(err):
		result = "quota"
	case err != nil:
		result = "error"
	}
	metrics.ObserveModelCall(g.Model(), result, time.Since(start))
	return text, err
}
