package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/llm"
)

// mockProvider echoes the last user message, or fails with a fixed error.
// Every payload it receives is recorded for full-context assertions.
type mockProvider struct {
	err      error
	payloads [][]history.Message
	models   []llm.ModelDescriptor
}

func (m *mockProvider) Complete(ctx context.Context, msgs []history.Message) (llm.Reply, error) {
	cp := make([]history.Message, len(msgs))
	copy(cp, msgs)
	m.payloads = append(m.payloads, cp)
	if m.err != nil {
		return llm.Reply{}, m.err
	}
	if len(msgs) == 0 {
		panic("mockProvider: called with empty history")
	}
	return llm.Reply{Text: "echo:" + msgs[len(msgs)-1].Content, PromptTokens: 3, CompletionTokens: 5}, nil
}

func (m *mockProvider) Models(ctx context.Context) llm.ModelIterator {
	models := make([]llm.ModelDescriptor, len(m.models))
	copy(models, m.models)
	return &sliceIterator{models: models}
}

func (m *mockProvider) Close() error { return nil }

type sliceIterator struct {
	models []llm.ModelDescriptor
}

func (it *sliceIterator) Next() (llm.ModelDescriptor, error) {
	if len(it.models) == 0 {
		return llm.ModelDescriptor{}, llm.Done
	}
	d := it.models[0]
	it.models = it.models[1:]
	return d, nil
}

func run(t *testing.T, provider llm.Provider, input string) (*Session, *strings.Builder, error) {
	t.Helper()
	var out strings.Builder
	s := New(provider, strings.NewReader(input), &out, nil, nil)
	err := s.Run(context.Background())
	return s, &out, err
}

// TestRun_EchoScenario is the reference scenario: ["hi", "quit"] against an
// echoing provider ends with exactly one completed turn.
func TestRun_EchoScenario(t *testing.T) {
	p := &mockProvider{}
	s, out, err := run(t, p, "hi\nquit\n")
	require.NoError(t, err)

	msgs := s.History()
	require.Len(t, msgs, 2)
	require.Equal(t, history.Message{Role: history.RoleUser, Content: "hi"}, msgs[0])
	require.Equal(t, history.Message{Role: history.RoleAssistant, Content: "echo:hi"}, msgs[1])
	require.Len(t, p.payloads, 1)
	require.Contains(t, out.String(), "Assistant: echo:hi")
	require.Contains(t, out.String(), "Goodbye!")
}

// TestRun_AppendOnlyAlternation: after N clean turns the history holds 2N
// messages in strict user/assistant alternation.
func TestRun_AppendOnlyAlternation(t *testing.T) {
	p := &mockProvider{}
	s, _, err := run(t, p, "one\ntwo\nthree\nquit\n")
	require.NoError(t, err)

	msgs := s.History()
	require.Len(t, msgs, 6)
	for i, m := range msgs {
		if i%2 == 0 {
			require.Equal(t, history.RoleUser, m.Role, "message %d", i)
		} else {
			require.Equal(t, history.RoleAssistant, m.Role, "message %d", i)
		}
	}
}

// TestRun_FullContextSent: the payload of turn K contains all prior messages
// plus the new user message, never a subset.
func TestRun_FullContextSent(t *testing.T) {
	p := &mockProvider{}
	_, _, err := run(t, p, "a\nb\nc\nquit\n")
	require.NoError(t, err)

	require.Len(t, p.payloads, 3)
	for k, payload := range p.payloads {
		require.Len(t, payload, 2*k+1, "turn %d", k+1)
		require.Equal(t, history.RoleUser, payload[len(payload)-1].Role)
	}
	// Turn 3 carries both completed turns verbatim.
	require.Equal(t, "a", p.payloads[2][0].Content)
	require.Equal(t, "echo:a", p.payloads[2][1].Content)
	require.Equal(t, "b", p.payloads[2][2].Content)
	require.Equal(t, "echo:b", p.payloads[2][3].Content)
	require.Equal(t, "c", p.payloads[2][4].Content)
}

// TestRun_SentinelTermination: the sentinel matches the whole trimmed line,
// case-insensitively, and triggers neither an append nor a service call.
func TestRun_SentinelTermination(t *testing.T) {
	for _, input := range []string{"quit\n", "QUIT\n", "  QuIt  \n"} {
		p := &mockProvider{}
		s, _, err := run(t, p, input)
		require.NoError(t, err, "input %q", input)
		require.Empty(t, s.History(), "input %q", input)
		require.Empty(t, p.payloads, "input %q", input)
	}
}

// TestRun_SentinelNotSubstring: lines merely containing the sentinel are
// ordinary input.
func TestRun_SentinelNotSubstring(t *testing.T) {
	p := &mockProvider{}
	s, _, err := run(t, p, "please quit it\nquit\n")
	require.NoError(t, err)
	require.Len(t, s.History(), 2)
	require.Equal(t, "please quit it", s.History()[0].Content)
}

// TestRun_EmptyInputStillSent: an empty line is forwarded as a user message,
// matching the reference behavior.
func TestRun_EmptyInputStillSent(t *testing.T) {
	p := &mockProvider{}
	s, _, err := run(t, p, "\nquit\n")
	require.NoError(t, err)
	require.Len(t, p.payloads, 1)
	require.Len(t, s.History(), 2)
	require.Equal(t, "", s.History()[0].Content)
}

// TestRun_ProviderErrorIsFatal: a failing turn ends the loop; the user-side
// message of that turn stays in history, no assistant message is appended,
// and remaining input is never read.
func TestRun_ProviderErrorIsFatal(t *testing.T) {
	wantErr := &llm.TransportError{Err: errors.New("connection refused")}
	p := &mockProvider{err: wantErr}
	s, out, err := run(t, p, "hi\nnever read\nquit\n")
	require.ErrorIs(t, err, wantErr)

	msgs := s.History()
	require.Len(t, msgs, 1)
	require.Equal(t, history.RoleUser, msgs[0].Role)
	require.Equal(t, "hi", msgs[0].Content)
	require.Len(t, p.payloads, 1)
	require.Contains(t, out.String(), "Error:")
}

// TestRun_EOFTerminates: exhausting the input ends the loop cleanly after the
// completed turns.
func TestRun_EOFTerminates(t *testing.T) {
	p := &mockProvider{}
	s, _, err := run(t, p, "hi\n")
	require.NoError(t, err)
	require.Len(t, s.History(), 2)
}

// TestProbeIndependence: listing models around a conversation neither reads
// nor mutates the history, and yields the same output each time.
func TestProbeIndependence(t *testing.T) {
	p := &mockProvider{models: []llm.ModelDescriptor{{Name: "models/a"}, {Name: "models/b"}}}

	drain := func() []string {
		var names []string
		it := p.Models(context.Background())
		for {
			d, err := it.Next()
			if errors.Is(err, llm.Done) {
				return names
			}
			require.NoError(t, err)
			names = append(names, d.Name)
		}
	}

	before := drain()
	s, _, err := run(t, p, "hi\nquit\n")
	require.NoError(t, err)
	after := drain()

	require.Equal(t, before, after)
	require.Len(t, s.History(), 2)
}
