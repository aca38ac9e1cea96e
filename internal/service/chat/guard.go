package chat

import (
	"strings"

	"github.com/voicebot/interview/backend/internal/model/chat"
)

// ClarificationReply answers a first question that asks for "an example" of
// something the conversation has not established yet.
const ClarificationReply = "Could you clarify what you'd like an example of?"

const (
	maxReplyWords  = 90
	keptReplyWords = 70
	simplerPrefix  = "Let me answer that more simply.\n\n"
)

// needsClarification reports whether history holds exactly one user message
// and message asks for an example.
func needsClarification(history []chat.Message, message string) bool {
	if chat.CountRole(history, chat.RoleUser) != 1 {
		return false
	}
	return strings.Contains(strings.ToLower(message), "example")
}

// limitReply hard-truncates replies longer than maxReplyWords tokens.
func limitReply(reply string) (string, bool) {
	words := strings.Fields(reply)
	if len(words) <= maxReplyWords {
		return reply, false
	}
	return simplerPrefix + strings.Join(words[:keptReplyWords], " "), true
}
