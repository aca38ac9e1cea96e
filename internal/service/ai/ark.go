package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkGenerator sends the flattened prompt as a single user turn to an eino chat model.
type ArkGenerator struct {
	chatModel model.ChatModel
	model     string
}

// NewArkGenerator wraps chatModel; name is the endpoint or model id it serves.
func NewArkGenerator(chatModel model.ChatModel, name string) *ArkGenerator {
	return &ArkGenerator{chatModel: chatModel, model: name}
}

// Model implements Generator.
func (g *ArkGenerator) Model() string {
	return g.model
}

// Generate implements Generator.
func (g *ArkGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		if isArkQuotaError(err) {
			return "", fmt.Errorf("ark %s: %w: %w", g.model, ErrQuotaExhausted, err)
		}
		return "", fmt.Errorf("ark %s: generate: %w", g.model, err)
	}
	text := ""
	if msg != nil {
		text = strings.TrimSpace(msg.Content)
	}
	if text == "" {
		return "", fmt.Errorf("ark %s: %w", g.model, errEmptyResponse)
	}
	return text, nil
}

var arkQuotaMarkers = []string{
	"429",
	"toomanyrequests",
	"ratelimitexceeded",
	"quotaexceeded",
	"accountoverdue",
}

// Ark surfaces limits as API error codes inside the message text.
func isArkQuotaError(err error) bool {
	text := strings.ToLower(err.Error())
	for _, marker := range arkQuotaMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
