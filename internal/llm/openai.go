package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/config"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
)

// openaiProvider binds an OpenAI-compatible chat-completion endpoint. A
// custom base URL lets it talk to compatible gateways.
type openaiProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

func newOpenAI(cfg config.LLMConfig) *openaiProvider {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &openaiProvider{
		client:      openai.NewClientWithConfig(c),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}
}

func (p *openaiProvider) Complete(ctx context.Context, msgs []history.Message) (Reply, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		Messages:    chatMessages(msgs),
	})
	if err != nil {
		return Reply{}, classify(err)
	}
	if len(resp.Choices) == 0 {
		return Reply{}, &TransportError{Err: errors.New("response contained no choices")}
	}
	return Reply{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (p *openaiProvider) Models(ctx context.Context) ModelIterator {
	return &listModelIterator{fetch: func() ([]ModelDescriptor, error) {
		list, err := p.client.ListModels(ctx)
		if err != nil {
			return nil, classify(err)
		}
		out := make([]ModelDescriptor, len(list.Models))
		for i, m := range list.Models {
			out[i] = ModelDescriptor{Name: m.ID}
		}
		return out, nil
	}}
}

func (p *openaiProvider) Close() error { return nil }

func chatMessages(msgs []history.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == history.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

// listModelIterator adapts a one-shot listing call to the lazy iterator
// contract: the fetch runs on the first Next, and the iterator cannot be
// restarted once drained.
type listModelIterator struct {
	fetch   func() ([]ModelDescriptor, error)
	fetched bool
	models  []ModelDescriptor
	err     error
}

func (it *listModelIterator) Next() (ModelDescriptor, error) {
	if !it.fetched {
		it.fetched = true
		it.models, it.err = it.fetch()
	}
	if it.err != nil {
		return ModelDescriptor{}, it.err
	}
	if len(it.models) == 0 {
		return ModelDescriptor{}, Done
	}
	m := it.models[0]
	it.models = it.models[1:]
	return m, nil
}
