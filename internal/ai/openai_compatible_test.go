package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"univoice/internal/config"
)

func TestOpenAICompatibleGenerate(t *testing.T) {
	var got struct {
		Model    string        `json:"model"`
		Messages []ChatMessage `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"丁寧な文章"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient(ChatConfig{BaseURL: server.URL + "/v1/", APIKey: "test-key", Model: "m"}, "system rules")
	out, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "丁寧な文章", out)
	assert.Equal(t, "m", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "prompt", got.Messages[1].Content)
}

func TestOpenAICompatibleErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`quota`))
		}))
		defer server.Close()

		client := NewOpenAICompatibleClient(ChatConfig{BaseURL: server.URL, APIKey: "k", Model: "m"}, "")
		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := NewOpenAICompatibleClient(ChatConfig{BaseURL: server.URL, APIKey: "k", Model: "m"}, "")
		_, err := client.Generate(context.Background(), "prompt")
		assert.Error(t, err)
	})
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.LLMConfig{
		Provider: config.ProviderOpenAI, BaseURL: "http://localhost", APIKey: "k", Model: "m",
	}, "")
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompatibleClient{}, gen)

	_, err = NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}, "")
	assert.Error(t, err)

	_, err = NewGenerator(context.Background(), config.LLMConfig{Provider: "other"}, "")
	assert.Error(t, err)

	_, err = NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderGemini}, "")
	assert.Error(t, err)
}

func TestTruncateKeepsRunes(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	// each kana is three bytes; cutting at 4 would split the second one
	out := truncate("あいう", 4)
	assert.Equal(t, "あ...", out)
	assert.True(t, utf8.ValidString(out))

	body := strings.Repeat("エラー", 200)
	out = truncate(body, 512)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), 512+len("..."))
}
