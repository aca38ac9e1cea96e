package chat

// HistoryLimit is the number of entries a session keeps.
const HistoryLimit = 12

// Trim keeps the most recent limit entries, dropping from the front.
// The returned slice never aliases history.
func Trim(history []Message, limit int) []Message {
	if limit <= 0 {
		limit = HistoryLimit
	}

	start := 0
	if len(history) > limit {
		start = len(history) - limit
	}

	trimmed := make([]Message, len(history)-start)
	copy(trimmed, history[start:])
	return trimmed
}

// Append returns a copy of history with msg appended and the cap applied.
func Append(history []Message, msg Message, limit int) []Message {
	next := make([]Message, 0, len(history)+1)
	next = append(next, history...)
	next = append(next, msg)
	return Trim(next, limit)
}

// CountRole counts entries authored by role.
func CountRole(history []Message, role Role) int {
	count := 0
	for _, msg := range history {
		if msg.Role == role {
			count++
		}
	}
	return count
}
