package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/pkg/llm"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.False(t, req.Stream)
		require.NotNil(t, req.Options)
		assert.Equal(t, 0.3, req.Options.Temperature)
		assert.Equal(t, 200, req.Options.NumPredict)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)
		assert.Equal(t, "hello", req.Messages[2].Content)

		w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"tags: go"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "")

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	}, llm.WithMaxTokens(200))
	require.NoError(t, err)
	assert.Equal(t, "tags: go", out)
}

func TestGenerateUsesModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "summarize", req.Messages[0].Content)

		w.Write([]byte(`{"message":{"role":"assistant","content":"done"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")

	out, err := p.Generate(context.Background(), "summarize", llm.WithModel("mistral"))
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestChatErrors(t *testing.T) {
	status := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model \"llama3\" not found"}`))
	}))
	defer status.Close()

	_, err := NewOllamaProvider(status.URL, "").Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	inBody := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"out of memory"}`))
	}))
	defer inBody.Close()

	_, err = NewOllamaProvider(inBody.URL, "").Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")

	garbled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer garbled.Close()

	_, err = NewOllamaProvider(garbled.URL, "").Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}
