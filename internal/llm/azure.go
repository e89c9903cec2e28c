// Package llm is the HTTP adapter for the Azure OpenAI data plane.
// Endpoints used:
//   - POST /openai/deployments/{deployment}/chat/completions
//   - POST /openai/deployments/{deployment}/embeddings
//   - GET  /openai/deployments (diagnostics)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	headerAPIKey      = "api-key"

	// maxResponseBytes bounds how much of a provider response is read.
	maxResponseBytes = 4 << 20
)

// LLMProvider defines the interface for interacting with the completion provider.
type LLMProvider interface {
	// Configured reports whether endpoint, key and deployment are all set.
	Configured() bool
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	ListDeployments(ctx context.Context) (*DeploymentList, error)
	// TokenParam is the token-limit spelling currently used for requests
	// that do not override it.
	TokenParam() string
	RememberTokenParam(param string)
}

// AzureConfig holds the connection settings of a deployment.
type AzureConfig struct {
	Endpoint   string
	Key        string
	Deployment string
	APIVersion string
	TokenParam string
	Timeout    time.Duration
}

type azureProvider struct {
	client *http.Client
	cfg    AzureConfig
	// tokenParam is written only after a successful probe and read by every
	// request; atomic keeps concurrent requests consistent.
	tokenParam atomic.Value
}

func NewAzureProvider(cfg AzureConfig) LLMProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TokenParam != TokenParamMax {
		cfg.TokenParam = TokenParamMaxCompletion
	}
	p := &azureProvider{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
	p.tokenParam.Store(cfg.TokenParam)
	return p
}

func (p *azureProvider) Configured() bool {
	return p.cfg.Endpoint != "" && p.cfg.Key != "" && p.cfg.Deployment != ""
}

func (p *azureProvider) TokenParam() string {
	return p.tokenParam.Load().(string)
}

func (p *azureProvider) RememberTokenParam(param string) {
	if param != TokenParamMax && param != TokenParamMaxCompletion {
		return
	}
	p.tokenParam.Store(param)
}

func (p *azureProvider) completionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		p.cfg.Endpoint, url.PathEscape(p.cfg.Deployment), url.QueryEscape(p.cfg.APIVersion))
}

// Complete performs a single, non-streaming chat completion. Non-2xx
// responses are returned as *APIError; retries are the caller's business.
func (p *azureProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	param := req.TokenParam
	if param == "" {
		param = p.TokenParam()
	}
	body, err := json.Marshal(req.body(param))
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	respBody, err := p.do(ctx, http.MethodPost, p.completionsURL(), body)
	if err != nil {
		return nil, err
	}

	var out CompletionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("could not decode completion response: %w", err)
	}
	return &out, nil
}

// ListDeployments lists the deployments visible to the configured key.
func (p *azureProvider) ListDeployments(ctx context.Context) (*DeploymentList, error) {
	u := fmt.Sprintf("%s/openai/deployments?api-version=%s", p.cfg.Endpoint, url.QueryEscape(p.cfg.APIVersion))
	respBody, err := p.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out DeploymentList
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("could not decode deployment list: %w", err)
	}
	return &out, nil
}

// do sends one request and returns the body of a 2xx response.
func (p *azureProvider) do(ctx context.Context, method, u string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set(headerContentType, mimeJSON)
	}
	httpReq.Header.Set(headerAPIKey, p.cfg.Key)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response body: %w", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}
