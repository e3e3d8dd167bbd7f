package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpilot/cli/internal/config"
)

const modelJSON = `{"reply":"On it.","command":"git status","explanation":"Shows the working tree status.","is_destructive":false,"confidence":0.92}`

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-pro:generateContent")
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": modelJSON}}}},
			},
		})
	}))
	defer srv.Close()

	p := NewGeminiProvider(&config.Config{GoogleAPIKey: "secret", GeminiModel: "gemini-pro"})
	p.baseURL = srv.URL

	resp, err := p.Generate(context.Background(), "what changed?")
	require.NoError(t, err)
	assert.Equal(t, "git status", resp.Command)
	assert.Equal(t, "gemini-pro", resp.ModelUsed)
}

func TestGeminiUnavailableWithoutKey(t *testing.T) {
	p := NewGeminiProvider(&config.Config{GeminiModel: "gemini-pro"})
	assert.False(t, p.Available())

	_, err := p.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGeminiHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider(&config.Config{GoogleAPIKey: "secret", GeminiModel: "gemini-pro"})
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "```json\n" + modelJSON + "\n```"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(&config.Config{
		OpenAIAPIKey:  "sk-test",
		OpenAIModel:   "gpt-4",
		OpenAIBaseURL: srv.URL,
	})

	resp, err := p.Generate(context.Background(), "what changed?")
	require.NoError(t, err)
	assert.Equal(t, "git status", resp.Command)
	assert.Equal(t, 0.92, resp.Confidence)
}

func TestOpenAINoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewOpenAIProvider(&config.Config{
		OpenAIAPIKey:  "sk-test",
		OpenAIModel:   "gpt-4",
		OpenAIBaseURL: srv.URL,
	})

	_, err := p.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}
