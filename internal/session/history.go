package session

import "github.com/iprilbot/ipril/domain"

// MaxHistoryTurns caps the rolling history at 5 user/assistant pairs.
const MaxHistoryTurns = 10

// History is a bounded FIFO log of conversation turns, kept verbatim and
// sent as-is as the conversation context of correction requests. Not safe
// for concurrent use on its own; callers hold the owning session's lock.
type History struct {
	turns []domain.Turn
}

// AppendUser appends a user turn, evicting the oldest turns past the cap.
func (h *History) AppendUser(text string) {
	h.append(domain.RoleUser, text)
}

// AppendAssistant appends an assistant turn, evicting the oldest turns
// past the cap.
func (h *History) AppendAssistant(text string) {
	h.append(domain.RoleAssistant, text)
}

func (h *History) append(role domain.Role, text string) {
	h.turns = append(h.turns, domain.Turn{Role: role, Content: text})
	if len(h.turns) > MaxHistoryTurns {
		h.turns = append(h.turns[:0], h.turns[len(h.turns)-MaxHistoryTurns:]...)
	}
}

// Turns returns a copy of the history, oldest first.
func (h *History) Turns() []domain.Turn {
	turns := make([]domain.Turn, len(h.turns))
	copy(turns, h.turns)
	return turns
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	return len(h.turns)
}
