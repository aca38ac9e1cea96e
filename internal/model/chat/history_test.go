package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimDropsOldestEntries(t *testing.T) {
	history := make([]Message, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, UserMessage(fmt.Sprintf("m%d", i)))
	}

	got := Trim(history, HistoryLimit)

	require.Len(t, got, HistoryLimit)
	assert.Equal(t, "m3", got[0].Content)
	assert.Equal(t, "m14", got[len(got)-1].Content)
}

func TestTrimDoesNotAlias(t *testing.T) {
	history := []Message{UserMessage("a"), AssistantMessage("b")}

	got := Trim(history, HistoryLimit)
	got[0].Content = "changed"

	assert.Equal(t, "a", history[0].Content)
}

func TestAppendAppliesCap(t *testing.T) {
	var history []Message
	for i := 0; i < 20; i++ {
		history = Append(history, UserMessage(fmt.Sprintf("m%d", i)), 4)
		require.LessOrEqual(t, len(history), 4)
	}
	assert.Equal(t, "m16", history[0].Content)
}

func TestCountRole(t *testing.T) {
	history := []Message{UserMessage("a"), AssistantMessage("b"), UserMessage("c")}

	assert.Equal(t, 2, CountRole(history, RoleUser))
	assert.Equal(t, 1, CountRole(history, RoleAssistant))
}

func TestRoleLabelAndValid(t *testing.T) {
	assert.Equal(t, "User", RoleUser.Label())
	assert.Equal(t, "Assistant", RoleAssistant.Label())
	assert.Equal(t, "System", Role("system").Label())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("system").Valid())
}
