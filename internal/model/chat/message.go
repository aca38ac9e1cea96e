package chat

import "strings"

// Role identifies the author of a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the roles allowed in history.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one conversational turn half. Entries are never mutated once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user entry.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant entry.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Label renders the role as it appears in a flattened prompt ("User", "Assistant").
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
