package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/config"
	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
)

// geminiProvider binds the Google generative AI SDK.
type geminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func newGemini(ctx context.Context, cfg config.LLMConfig) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, classify(err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	return &geminiProvider{client: client, model: model}, nil
}

// Complete sends the whole conversation as a chat turn: everything before the
// last message becomes the chat history, the last message is the new turn.
func (p *geminiProvider) Complete(ctx context.Context, msgs []history.Message) (Reply, error) {
	if len(msgs) == 0 {
		return Reply{}, &TransportError{Err: errors.New("empty conversation")}
	}
	cs := p.model.StartChat()
	cs.History = geminiContents(msgs[:len(msgs)-1])
	resp, err := cs.SendMessage(ctx, genai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return Reply{}, classify(err)
	}
	text := geminiText(resp)
	if text == "" {
		return Reply{}, &TransportError{Err: errors.New("model returned no text candidates")}
	}
	reply := Reply{Text: text}
	if u := resp.UsageMetadata; u != nil {
		reply.PromptTokens = int(u.PromptTokenCount)
		reply.CompletionTokens = int(u.CandidatesTokenCount)
	}
	return reply, nil
}

func (p *geminiProvider) Models(ctx context.Context) ModelIterator {
	return &geminiModelIterator{it: p.client.ListModels(ctx)}
}

func (p *geminiProvider) Close() error {
	return p.client.Close()
}

// geminiContents converts prior turns to the SDK's content format. The
// assistant role is called "model" on the Gemini side.
func geminiContents(msgs []history.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == history.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return out
}

func geminiText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

type geminiModelIterator struct {
	it *genai.ModelInfoIterator
}

func (g *geminiModelIterator) Next() (ModelDescriptor, error) {
	info, err := g.it.Next()
	if errors.Is(err, iterator.Done) {
		return ModelDescriptor{}, Done
	}
	if err != nil {
		return ModelDescriptor{}, classify(err)
	}
	return ModelDescriptor{
		Name:        info.Name,
		DisplayName: info.DisplayName,
		Description: info.Description,
	}, nil
}
