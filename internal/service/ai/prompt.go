package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/voicebot/interview/backend/internal/analysis/intent"
	"github.com/voicebot/interview/backend/internal/model/chat"
	"github.com/voicebot/interview/backend/internal/model/persona"
)

const intentDirective = "The interviewer is asking: '%s'. Answer THIS question directly and naturally. Avoid repeating previous answers."

// assistantCue ends every prompt so the model continues as the assistant.
const assistantCue = "\nAssistant:"

// PromptBuilder assembles model prompts for one persona.
type PromptBuilder struct {
	persona persona.Persona
}

// NewPromptBuilder creates a builder for p.
func NewPromptBuilder(p persona.Persona) *PromptBuilder {
	return &PromptBuilder{persona: p}
}

// MissingTopics lists the detectable topics the persona has no canonical
// question for. Turns on those topics get the bare instruction.
func (b *PromptBuilder) MissingTopics() []intent.Tag {
	var missing []intent.Tag
	for _, tag := range intent.Tags() {
		if _, ok := b.persona.Question(string(tag)); !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}

// SystemInstruction returns the persona instruction, suffixed with the
// canonical question directive when tag names a known topic.
func (b *PromptBuilder) SystemInstruction(tag intent.Tag) string {
	instruction := b.persona.Instruction
	if tag == "" || tag == intent.None {
		return instruction
	}

	question, ok := b.persona.Question(string(tag))
	if !ok {
		return instruction
	}
	return instruction + "\n\n" + fmt.Sprintf(intentDirective, question)
}

// Messages returns the role-tagged prompt entries: the system instruction
// followed by history in order.
func (b *PromptBuilder) Messages(history []chat.Message, tag intent.Tag) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history)+1)
	msgs = append(msgs, schema.SystemMessage(b.SystemInstruction(tag)))

	for _, msg := range history {
		switch msg.Role {
		case chat.RoleUser:
			msgs = append(msgs, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return msgs
}

// Build returns the flattened prompt for history.
func (b *PromptBuilder) Build(history []chat.Message, tag intent.Tag) string {
	return Flatten(b.Messages(history, tag))
}

// Flatten renders entries as "<Role>: <content>" lines followed by the assistant cue.
func Flatten(msgs []*schema.Message) string {
	var builder strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chat.Role(msg.Role).Label())
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
	}
	builder.WriteString(assistantCue)
	return builder.String()
}
