package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Embedder turns text into a vector for the vector half of hybrid search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type embeddingsRequest struct {
	Input string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// NewAzureEmbedder returns an Embedder for the embeddings deployment in cfg,
// or nil when cfg is incomplete. TokenParam is ignored.
func NewAzureEmbedder(cfg AzureConfig) Embedder {
	if cfg.Endpoint == "" || cfg.Key == "" || cfg.Deployment == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	p := &azureProvider{client: &http.Client{Timeout: cfg.Timeout}, cfg: cfg}
	p.tokenParam.Store(TokenParamMaxCompletion)
	return p
}

func (p *azureProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingsRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("could not marshal embeddings request: %w", err)
	}
	u := fmt.Sprintf("%s/openai/deployments/%s/embeddings?api-version=%s",
		p.cfg.Endpoint, url.PathEscape(p.cfg.Deployment), url.QueryEscape(p.cfg.APIVersion))
	respBody, err := p.do(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, fmt.Errorf("azure embeddings: %w", err)
	}
	var out embeddingsResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("could not decode embeddings response: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("azure embeddings: empty embedding")
	}
	return out.Data[0].Embedding, nil
}
