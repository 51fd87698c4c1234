package llm

import (
	"context"
	"errors"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
)

// Reply is the result of one completion call.
type Reply struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// ModelDescriptor describes one remote model available to the credential.
type ModelDescriptor struct {
	Name        string
	DisplayName string
	Description string
}

// ModelIterator yields model descriptors lazily. The sequence is finite and
// cannot be restarted once Done has been returned.
type ModelIterator interface {
	Next() (ModelDescriptor, error)
}

// Done is returned by ModelIterator.Next when the listing is exhausted.
var Done = errors.New("no more models")

// Provider is the remote chat-completion service binding. Complete must be
// given the entire accumulated history on every call; the remote side holds
// no conversation state between turns. Implementations never retry.
type Provider interface {
	Complete(ctx context.Context, msgs []history.Message) (Reply, error)
	Models(ctx context.Context) ModelIterator
	Close() error
}
