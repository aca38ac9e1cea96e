package ai

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicebot/interview/backend/internal/analysis/intent"
	"github.com/voicebot/interview/backend/internal/model/chat"
	"github.com/voicebot/interview/backend/internal/model/persona"
)

func testPersona() persona.Persona {
	return persona.Persona{
		ID:          "tester",
		Instruction: "You are Tester.",
		Questions: map[string]string{
			"life": "What should we know about your life story in a few sentences?",
		},
	}
}

func TestBuildFlattensHistoryWithCue(t *testing.T) {
	b := NewPromptBuilder(testPersona())
	history := []chat.Message{
		chat.UserMessage("Hi"),
		chat.AssistantMessage("Hello!"),
		chat.UserMessage("How are you?"),
	}

	got := b.Build(history, intent.None)

	want := "System: You are Tester.\nUser: Hi\nAssistant: Hello!\nUser: How are you?\nAssistant:"
	assert.Equal(t, want, got)
}

func TestBuildAddsIntentDirective(t *testing.T) {
	b := NewPromptBuilder(testPersona())

	got := b.Build([]chat.Message{chat.UserMessage("Tell me about your life story")}, intent.Life)

	assert.True(t, strings.HasPrefix(got, "System: You are Tester.\n\nThe interviewer is asking: 'What should we know about your life story in a few sentences?'."))
	assert.Contains(t, got, "Answer THIS question directly and naturally. Avoid repeating previous answers.")
	assert.True(t, strings.HasSuffix(got, "User: Tell me about your life story\nAssistant:"))
}

func TestSystemInstructionSkipsUnknownTopic(t *testing.T) {
	b := NewPromptBuilder(testPersona())

	assert.Equal(t, "You are Tester.", b.SystemInstruction(intent.Growth))
	assert.Equal(t, "You are Tester.", b.SystemInstruction(intent.None))
}

func TestMessagesKeepsOrderAndRoles(t *testing.T) {
	b := NewPromptBuilder(testPersona())
	msgs := b.Messages([]chat.Message{chat.UserMessage("a"), chat.AssistantMessage("b")}, intent.None)

	require.Len(t, msgs, 3)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Equal(t, "\nAssistant:", Flatten(nil))
}

func TestMissingTopics(t *testing.T) {
	missing := NewPromptBuilder(testPersona()).MissingTopics()
	assert.NotContains(t, missing, intent.Life)
	assert.ElementsMatch(t, []intent.Tag{intent.Superpower, intent.Growth, intent.Misconception, intent.Boundaries}, missing)

	assert.Empty(t, NewPromptBuilder(persona.Seed()[0]).MissingTopics())
}
