package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"

	"github.com/Shahidshaik999/gemini-chatbot-go/internal/history"
)

func TestGeminiContentsRoleMapping(t *testing.T) {
	msgs := []history.Message{
		{Role: history.RoleUser, Content: "hi"},
		{Role: history.RoleAssistant, Content: "hello"},
	}

	got := geminiContents(msgs)
	require.Len(t, got, 2)
	require.Equal(t, "user", got[0].Role)
	require.Equal(t, "model", got[1].Role)
	require.Equal(t, genai.Text("hi"), got[0].Parts[0])
	require.Equal(t, genai.Text("hello"), got[1].Parts[0])
}

func TestGeminiTextConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}}},
		},
	}
	require.Equal(t, "Hello, world", geminiText(resp))
}

func TestGeminiTextEmptyResponse(t *testing.T) {
	require.Empty(t, geminiText(&genai.GenerateContentResponse{}))
	require.Empty(t, geminiText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}))
}
