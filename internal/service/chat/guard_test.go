package chat

import (
	"strings"
	"testing"

	"github.com/voicebot/interview/backend/internal/model/chat"
)

func TestLimitReplyBoundary(t *testing.T) {
	ninetyOne := strings.TrimSpace(strings.Repeat("x ", 91))

	got, truncated := limitReply(ninetyOne)
	if !truncated {
		t.Fatal("expected 91 words to be truncated")
	}
	if n := len(strings.Fields(strings.TrimPrefix(got, simplerPrefix))); n != keptReplyWords {
		t.Fatalf("expected %d words kept, got %d", keptReplyWords, n)
	}

	if _, truncated := limitReply(""); truncated {
		t.Fatal("empty reply must not be truncated")
	}
}

func TestNeedsClarification(t *testing.T) {
	first := []chat.Message{chat.UserMessage("for example?")}
	if !needsClarification(first, "for Example?") {
		t.Fatal("expected guard to fire on first user message")
	}

	second := []chat.Message{
		chat.UserMessage("hi"),
		chat.AssistantMessage("hello"),
		chat.UserMessage("an example please"),
	}
	if needsClarification(second, "an example please") {
		t.Fatal("guard must not fire on later user messages")
	}

	if needsClarification(first, "no keyword here") {
		t.Fatal("guard requires the example keyword")
	}
}
