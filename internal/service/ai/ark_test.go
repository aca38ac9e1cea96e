package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	reply *schema.Message
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func (f *fakeChatModel) BindTools([]*schema.ToolInfo) error { return nil }

func TestArkGenerateSendsPromptAsUserTurn(t *testing.T) {
	cm := &fakeChatModel{reply: schema.AssistantMessage(" fine, thanks \n", nil)}
	g := NewArkGenerator(cm, "ep-primary")

	text, err := g.Generate(context.Background(), "System: x\nUser: hi\nAssistant:")
	require.NoError(t, err)
	assert.Equal(t, "fine, thanks", text)
	require.Len(t, cm.input, 1)
	assert.Equal(t, schema.User, cm.input[0].Role)
	assert.Equal(t, "System: x\nUser: hi\nAssistant:", cm.input[0].Content)
}

func TestArkGenerateClassifiesErrors(t *testing.T) {
	cases := map[string]bool{
		"Error code: 429 - rate limited":                  true,
		"RateLimitExceeded.EndpointRPMExceeded: too fast": true,
		"QuotaExceeded: token quota":                      true,
		"InternalServiceError: try later":                 false,
	}

	for msg, quota := range cases {
		g := NewArkGenerator(&fakeChatModel{err: errors.New(msg)}, "ep")
		_, err := g.Generate(context.Background(), "x")
		require.Error(t, err)
		assert.Equal(t, quota, IsQuotaExhausted(err), msg)
	}
}

func TestArkGenerateEmptyReplyIsError(t *testing.T) {
	for name, reply := range map[string]*schema.Message{
		"nil":   nil,
		"blank": schema.AssistantMessage(" \n ", nil),
	} {
		g := NewArkGenerator(&fakeChatModel{reply: reply}, "ep")
		text, err := g.Generate(context.Background(), "x")
		require.Error(t, err, name)
		assert.Empty(t, text, name)
		assert.False(t, IsQuotaExhausted(err), name)

		res := NewFallbackGenerator(g, g, nil).Reply(context.Background(), "x")
		assert.Equal(t, Result{Text: InternalErrorReply, Model: "ep", Outcome: OutcomeError}, res, name)
	}
}
