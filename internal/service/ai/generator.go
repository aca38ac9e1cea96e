package ai

import (
	"context"
	"errors"
)

// ErrQuotaExhausted marks a generation failure caused by the provider's
// usage or rate limit. Generators wrap it alongside the provider error.
var ErrQuotaExhausted = errors.New("model quota exhausted")

var errEmptyResponse = errors.New("empty response")

// Generator turns a flattened prompt into reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Model names the model behind the generator, for logs and metrics.
	Model() string
}

// IsQuotaExhausted reports whether err came from a usage or rate limit.
func IsQuotaExhausted(err error) bool {
	return errors.Is(err, ErrQuotaExhausted)
}
