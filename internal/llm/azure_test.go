package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAzureProvider verifies that the Azure OpenAI client builds requests the
// way the data plane expects and parses its responses.
//
// TECHNIQUE: an httptest server stands in for the Azure endpoint, so the
// tests make no real network calls.
func TestAzureProvider(t *testing.T) {
	var (
		mu            sync.Mutex
		capturedPath  string
		capturedQuery string
		capturedKey   string
		capturedBody  map[string]any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		capturedPath = r.URL.Path
		capturedQuery = r.URL.RawQuery
		capturedKey = r.Header.Get("api-key")
		capturedBody = nil
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				assert.NoError(t, json.Unmarshal(raw, &capturedBody))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/openai/deployments/gpt-test/chat/completions":
			_, err := w.Write([]byte(`{
				"id": "cmpl-1",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Hello there.  "}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
			}`))
			assert.NoError(t, err)
		case "/openai/deployments":
			_, err := w.Write([]byte(`{"data": [{"id": "gpt-test"}, {"id": "x", "name": "embed"}]}`))
			assert.NoError(t, err)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"code": "DeploymentNotFound", "message": "The API deployment for this resource does not exist."}}`))
		}
	}))
	defer server.Close()

	provider := NewAzureProvider(AzureConfig{
		Endpoint:   server.URL,
		Key:        "secret-key",
		Deployment: "gpt-test",
		APIVersion: "2024-08-01-preview",
	})
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		resp, err := provider.Complete(ctx, &CompletionRequest{
			Messages:    []Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "hi"}},
			Temperature: 1,
			MaxTokens:   384,
		})
		require.NoError(t, err)

		assert.Equal(t, "Hello there.", resp.Text())
		assert.Equal(t, "stop", resp.FinishReason())
		require.NotNil(t, resp.Usage)
		assert.Equal(t, 13, resp.Usage.TotalTokens)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "/openai/deployments/gpt-test/chat/completions", capturedPath)
		assert.Equal(t, "api-version=2024-08-01-preview", capturedQuery)
		assert.Equal(t, "secret-key", capturedKey)
		assert.EqualValues(t, 384, capturedBody["max_completion_tokens"])
		assert.NotContains(t, capturedBody, "max_tokens")
		assert.NotContains(t, capturedBody, "data_sources")
	})

	t.Run("Complete uses the remembered token parameter", func(t *testing.T) {
		provider.RememberTokenParam(TokenParamMax)
		defer provider.RememberTokenParam(TokenParamMaxCompletion)

		_, err := provider.Complete(ctx, &CompletionRequest{Messages: []Message{{Role: "user", Content: "hi"}}, MaxTokens: 100})
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.EqualValues(t, 100, capturedBody["max_tokens"])
		assert.NotContains(t, capturedBody, "max_completion_tokens")
	})

	t.Run("Complete request override wins", func(t *testing.T) {
		req := &CompletionRequest{Messages: []Message{{Role: "user", Content: "hi"}}, MaxTokens: 50}
		_, err := provider.Complete(ctx, req.WithTokenParam(TokenParamMax))
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.EqualValues(t, 50, capturedBody["max_tokens"])
		assert.Equal(t, TokenParamMaxCompletion, provider.TokenParam())
		assert.Empty(t, req.TokenParam, "WithTokenParam must not modify the original request")
	})

	t.Run("ListDeployments", func(t *testing.T) {
		list, err := provider.ListDeployments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"gpt-test", "embed"}, list.Names())

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "/openai/deployments", capturedPath)
	})

	t.Run("Non-2xx becomes APIError", func(t *testing.T) {
		missing := NewAzureProvider(AzureConfig{Endpoint: server.URL, Key: "secret-key", Deployment: "missing", APIVersion: "v"})
		_, err := missing.Complete(ctx, &CompletionRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "DeploymentNotFound", apiErr.Code)
		assert.Contains(t, apiErr.Message, "does not exist")
	})
}

func TestAzureProvider_ErrorClasses(t *testing.T) {
	ctx := context.Background()
	req := &CompletionRequest{Messages: []Message{{Role: "user", Content: "hi"}}}

	t.Run("Unreachable endpoint is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		endpoint := server.URL
		server.Close()

		p := NewAzureProvider(AzureConfig{Endpoint: endpoint, Key: "k", Deployment: "d", APIVersion: "v"})
		_, err := p.Complete(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("Undecodable 2xx body is not a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>gateway</html>"))
		}))
		defer server.Close()

		p := NewAzureProvider(AzureConfig{Endpoint: server.URL, Key: "k", Deployment: "d", APIVersion: "v"})
		_, err := p.Complete(ctx, req)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTransport)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
		assert.Contains(t, err.Error(), "could not decode completion response")
	})
}

func TestAzureProvider_Configured(t *testing.T) {
	assert.True(t, NewAzureProvider(AzureConfig{Endpoint: "https://x", Key: "k", Deployment: "d"}).Configured())
	assert.False(t, NewAzureProvider(AzureConfig{Endpoint: "https://x", Key: "k"}).Configured())
	assert.False(t, NewAzureProvider(AzureConfig{Key: "k", Deployment: "d"}).Configured())
}

func TestAzureProvider_RememberTokenParamIgnoresUnknown(t *testing.T) {
	p := NewAzureProvider(AzureConfig{TokenParam: TokenParamMax})
	assert.Equal(t, TokenParamMax, p.TokenParam())

	p.RememberTokenParam("max_output_tokens")
	assert.Equal(t, TokenParamMax, p.TokenParam())

	p.RememberTokenParam(TokenParamMaxCompletion)
	assert.Equal(t, TokenParamMaxCompletion, p.TokenParam())
}

func TestAzureEmbedder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/embed/embeddings", r.URL.Path)
		var req embeddingsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "therapy near me", req.Input)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"embedding": [0.1, 0.2, 0.3]}]}`))
	}))
	defer server.Close()

	assert.Nil(t, NewAzureEmbedder(AzureConfig{Endpoint: server.URL}))

	embedder := NewAzureEmbedder(AzureConfig{Endpoint: server.URL, Key: "k", Deployment: "embed", APIVersion: "v"})
	require.NotNil(t, embedder)

	vec, err := embedder.Embed(context.Background(), "therapy near me")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}
