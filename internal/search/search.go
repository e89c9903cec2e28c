// Package search queries an Azure AI Search index and extracts short text
// snippets suitable for grounding a chat reply.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	app_errors "intake-assistant/backend/internal/errors"
	"intake-assistant/backend/internal/llm"
)

const (
	// maxSnippetChars bounds a single snippet when no caption is available.
	maxSnippetChars = 400
	maxRespBytes    = 2 << 20
)

// contentFields are tried in order when a hit has no semantic caption.
var contentFields = []string{"content", "chunk", "page_content", "text"}

// Searcher returns up to n snippets relevant to query. Snippets fails with
// app_errors.ErrNotConfigured when the index is not set up.
type Searcher interface {
	Snippets(ctx context.Context, query string, n int) ([]string, error)
}

type Config struct {
	Endpoint       string
	Key            string
	Index          string
	APIVersion     string
	QueryType      string
	SemanticConfig string
	VectorField    string
	Top            int
	Timeout        time.Duration
}

// Client is the Azure AI Search REST client.
type Client struct {
	cfg      Config
	http     *http.Client
	embedder llm.Embedder
}

// NewClient builds a search client. embedder may be nil, in which case
// vector query types fall back to keyword/semantic search.
func NewClient(cfg Config, embedder llm.Embedder) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Top <= 0 {
		cfg.Top = 5
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-11-01"
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, embedder: embedder}
}

func (c *Client) Configured() bool {
	return c.cfg.Endpoint != "" && c.cfg.Key != "" && c.cfg.Index != ""
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

type searchRequest struct {
	Search                string        `json:"search"`
	Top                   int           `json:"top"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	Captions              string        `json:"captions,omitempty"`
	VectorQueries         []vectorQuery `json:"vectorQueries,omitempty"`
}

type caption struct {
	Text string `json:"text"`
}

type searchResponse struct {
	Value []map[string]json.RawMessage `json:"value"`
}

// buildRequest maps the configured query mode onto the search REST API:
// "semantic" anywhere in the mode enables the semantic ranker, "vector"
// adds a vector query when an embedder is available.
func (c *Client) buildRequest(ctx context.Context, query string) searchRequest {
	req := searchRequest{Search: query, Top: c.cfg.Top}
	mode := strings.ToLower(c.cfg.QueryType)

	if strings.Contains(mode, "semantic") && c.cfg.SemanticConfig != "" {
		req.QueryType = "semantic"
		req.SemanticConfiguration = c.cfg.SemanticConfig
		req.Captions = "extractive"
	}

	if strings.Contains(mode, "vector") && c.embedder != nil && c.cfg.VectorField != "" {
		vec, err := c.embedder.Embed(ctx, query)
		if err != nil {
			slog.Warn("Embedding failed, searching without a vector query", "error", err)
		} else {
			req.VectorQueries = []vectorQuery{{Kind: "vector", Vector: vec, Fields: c.cfg.VectorField, K: c.cfg.Top}}
			if mode == "vector" {
				req.Search = ""
			}
		}
	}
	return req
}

// Snippets runs one query against the index and returns at most n non-empty
// snippets, preferring semantic captions over raw content.
func (c *Client) Snippets(ctx context.Context, query string, n int) ([]string, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: search endpoint, key or index missing", app_errors.ErrNotConfigured)
	}
	query = strings.TrimSpace(query)
	if query == "" || n <= 0 {
		return nil, nil
	}

	body, err := json.Marshal(c.buildRequest(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("could not marshal search request: %w", err)
	}

	u := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.cfg.Endpoint, url.PathEscape(c.cfg.Index), url.QueryEscape(c.cfg.APIVersion))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.Key)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxRespBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s",
			resp.StatusCode, llm.RedactString(string(respBody), []string{c.cfg.Key}, 300))
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}
	return extractSnippets(parsed.Value, n), nil
}

func extractSnippets(hits []map[string]json.RawMessage, n int) []string {
	out := make([]string, 0, n)
	for _, hit := range hits {
		if len(out) == n {
			break
		}
		if s := snippetOf(hit); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func snippetOf(hit map[string]json.RawMessage) string {
	if raw, ok := hit["@search.captions"]; ok {
		var caps []caption
		if err := json.Unmarshal(raw, &caps); err == nil && len(caps) > 0 {
			if t := strings.TrimSpace(caps[0].Text); t != "" {
				return clip(t, maxSnippetChars)
			}
		}
	}
	for _, field := range contentFields {
		raw, ok := hit[field]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			continue
		}
		if text = strings.Join(strings.Fields(text), " "); text != "" {
			return clip(text, maxSnippetChars)
		}
	}
	return ""
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
