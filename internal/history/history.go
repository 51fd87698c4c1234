// Package history holds the ordered, append-only record of one conversation.
// A History is owned by exactly one session for the lifetime of a run; there
// is no persistence and no concurrent mutation.
package history

// History is an ordered, append-only sequence of messages. Messages are never
// removed, reordered, or edited in place.
type History struct {
	messages []Message
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Append adds a message to the end of the history.
func (h *History) Append(m Message) {
	h.messages = append(h.messages, m)
}

// All returns the messages in order. The returned slice is a copy; mutating
// it does not affect the history.
func (h *History) All() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len reports the number of messages recorded so far.
func (h *History) Len() int {
	return len(h.messages)
}
