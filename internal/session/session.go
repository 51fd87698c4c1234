// Package session drives the interactive conversation loop. The session owns
// the append-only history and sends the entire accumulated conversation to
// the provider on every turn; the remote side keeps no state between calls.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/llm"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/logger"
)

// Sentinel ends the loop when a line equals it after trimming surrounding
// whitespace, compared case-insensitively. Substring matches do not count.
const Sentinel = "quit"

// FSM states
type State stateless.State

var (
	StateAwaitingInput   State = "AwaitingInput"
	StateAwaitingService State = "AwaitingService"
	StateTerminated      State = "Terminated"
)

// FSM triggers
type Trigger stateless.Trigger

var (
	TriggerInputReceived    Trigger = "InputReceived"
	TriggerSentinelReceived Trigger = "SentinelReceived"
	TriggerInputClosed      Trigger = "InputClosed"
	TriggerReplyReceived    Trigger = "ReplyReceived"
	TriggerServiceFailed    Trigger = "ServiceFailed"
)

// Session is one interactive conversation run.
type Session struct {
	id       string
	provider llm.Provider
	history  *history.History
	in       *bufio.Scanner
	out      io.Writer
	tracer   trace.Tracer
	meter    metric.Meter

	turns        metric.Int64Counter
	promptTokens metric.Int64Counter
	replyTokens  metric.Int64Counter
}

// New creates a session reading lines from in and printing to out. Passing a
// nil tracer or meter selects the no-op implementations, which keeps tests
// free of telemetry setup.
func New(provider llm.Provider, in io.Reader, out io.Writer, tracer trace.Tracer, meter metric.Meter) *Session {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("")
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("")
	}
	s := &Session{
		id:       uuid.NewString(),
		provider: provider,
		history:  history.New(),
		in:       bufio.NewScanner(in),
		out:      out,
		tracer:   tracer,
		meter:    meter,
	}
	s.turns, _ = meter.Int64Counter("chat.turns",
		metric.WithDescription("Completed conversation turns"))
	s.promptTokens, _ = meter.Int64Counter("chat.tokens.prompt",
		metric.WithDescription("Prompt tokens reported by the provider"))
	s.replyTokens, _ = meter.Int64Counter("chat.tokens.completion",
		metric.WithDescription("Completion tokens reported by the provider"))
	return s
}

// ID returns the run identifier used in logs and trace attributes.
func (s *Session) ID() string { return s.id }

// History returns a copy of the conversation so far.
func (s *Session) History() []history.Message { return s.history.All() }

// Run executes the read-eval-print loop until the sentinel, end of input, or
// a provider failure. Provider failures are fatal: the error is printed,
// the loop stops, and the error is returned. There is no retry.
func (s *Session) Run(ctx context.Context) error {
	fsm := stateless.NewStateMachine(StateAwaitingInput)
	fsm.Configure(StateAwaitingInput).
		Permit(TriggerInputReceived, StateAwaitingService).
		Permit(TriggerSentinelReceived, StateTerminated).
		Permit(TriggerInputClosed, StateTerminated)
	fsm.Configure(StateAwaitingService).
		Permit(TriggerReplyReceived, StateAwaitingInput).
		Permit(TriggerServiceFailed, StateTerminated)

	var runErr error
	for fsm.MustState() != StateTerminated {
		switch fsm.MustState() {
		case StateAwaitingInput:
			fmt.Fprint(s.out, "You: ")
			if !s.in.Scan() {
				if err := s.in.Err(); err != nil {
					runErr = err
				}
				fmt.Fprintln(s.out)
				s.fire(fsm, TriggerInputClosed)
				continue
			}
			line := s.in.Text()
			if strings.EqualFold(strings.TrimSpace(line), Sentinel) {
				fmt.Fprintln(s.out, "Goodbye!")
				s.fire(fsm, TriggerSentinelReceived)
				continue
			}
			// Empty lines are sent like any other input.
			s.history.Append(history.Message{Role: history.RoleUser, Content: line})
			s.fire(fsm, TriggerInputReceived)

		case StateAwaitingService:
			reply, err := s.complete(ctx)
			if err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
				logger.L.Error("completion failed", "session_id", s.id, "error", err)
				runErr = err
				s.fire(fsm, TriggerServiceFailed)
				continue
			}
			s.history.Append(history.Message{Role: history.RoleAssistant, Content: reply.Text})
			fmt.Fprintf(s.out, "Assistant: %s\n\n", reply.Text)
			s.fire(fsm, TriggerReplyReceived)
		}
	}

	logger.L.Info("session ended", "session_id", s.id, "messages", s.history.Len())
	return runErr
}

// complete sends the entire history to the provider inside a span and records
// usage metrics on success.
func (s *Session) complete(ctx context.Context) (llm.Reply, error) {
	ctx, span := s.tracer.Start(ctx, "chat.completion",
		trace.WithAttributes(attribute.String("session.id", s.id)))
	defer span.End()

	reply, err := s.provider.Complete(ctx, s.history.All())
	if err != nil {
		span.RecordError(err)
		return llm.Reply{}, err
	}
	s.turns.Add(ctx, 1)
	s.promptTokens.Add(ctx, int64(reply.PromptTokens))
	s.replyTokens.Add(ctx, int64(reply.CompletionTokens))
	return reply, nil
}

func (s *Session) fire(fsm *stateless.StateMachine, t Trigger) {
	if err := fsm.Fire(t); err != nil {
		logger.L.Warn("state machine fire failed", "trigger", t, "error", err)
	}
}
