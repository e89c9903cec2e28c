package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTransport wraps failures to reach the provider or to read its response.
// A 2xx body that does not decode is not a transport failure.
var ErrTransport = errors.New("http request failed")

// Accepted spellings of the token-limit request parameter. Newer deployments
// reject max_tokens; older API versions reject max_completion_tokens.
const (
	TokenParamMaxCompletion = "max_completion_tokens"
	TokenParamMax           = "max_tokens"
)

// OtherTokenParam returns the alternative spelling of p.
func OtherTokenParam(p string) string {
	if p == TokenParamMax {
		return TokenParamMaxCompletion
	}
	return TokenParamMax
}

// FinishReasonContentFilter is reported when the provider's safety classifier
// truncated or emptied the reply.
const FinishReasonContentFilter = "content_filter"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is built fresh for every call and not modified after it
// has been sent.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// TokenParam overrides the client's remembered spelling when set.
	TokenParam  string
	DataSources []DataSource
}

// WithTokenParam returns a copy of r that sends the limit under param.
func (r *CompletionRequest) WithTokenParam(param string) *CompletionRequest {
	c := *r
	c.TokenParam = param
	return &c
}

// body renders the request as the JSON object the chat completions endpoint
// expects. The token limit key depends on param.
func (r *CompletionRequest) body(param string) map[string]any {
	b := map[string]any{
		"messages":    r.Messages,
		"temperature": r.Temperature,
	}
	if r.MaxTokens > 0 {
		b[param] = r.MaxTokens
	}
	if len(r.DataSources) > 0 {
		b["data_sources"] = r.DataSources
	}
	return b
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FilterResults maps a category (hate, self_harm, jailbreak, ...) to its
// verdict. Values are kept raw because their shape varies by category and API
// version.
type FilterResults map[string]json.RawMessage

// Filtered reports whether any category was marked as filtered.
func (f FilterResults) Filtered() bool {
	for _, raw := range f {
		var v struct {
			Filtered bool `json:"filtered"`
		}
		if err := json.Unmarshal(raw, &v); err == nil && v.Filtered {
			return true
		}
	}
	return false
}

type PromptFilterResult struct {
	PromptIndex          int           `json:"prompt_index"`
	ContentFilterResults FilterResults `json:"content_filter_results"`
}

type Choice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason         string        `json:"finish_reason"`
	ContentFilterResults FilterResults `json:"content_filter_results,omitempty"`
}

type CompletionResponse struct {
	ID                  string               `json:"id"`
	Model               string               `json:"model"`
	Choices             []Choice             `json:"choices"`
	Usage               *Usage               `json:"usage,omitempty"`
	PromptFilterResults []PromptFilterResult `json:"prompt_filter_results,omitempty"`
}

// Text returns the trimmed content of the first choice.
func (r *CompletionResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Choices[0].Message.Content)
}

// FinishReason returns the finish reason of the first choice.
func (r *CompletionResponse) FinishReason() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].FinishReason
}

// ContentFiltered reports whether the provider signalled that the prompt or
// the reply was filtered.
func (r *CompletionResponse) ContentFiltered() bool {
	if r == nil {
		return false
	}
	if r.FinishReason() == FinishReasonContentFilter {
		return true
	}
	for _, p := range r.PromptFilterResults {
		if p.ContentFilterResults.Filtered() {
			return true
		}
	}
	if len(r.Choices) > 0 && r.Choices[0].ContentFilterResults.Filtered() {
		return true
	}
	return false
}

// APIError is returned for any non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("azure openai: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("azure openai: status %d", e.StatusCode)
}

// newAPIError parses the standard {"error": {"code", "message"}} envelope
// when present.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}
	var envelope struct {
		Error struct {
			Code    any    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
		if envelope.Error.Code != nil {
			apiErr.Code = fmt.Sprint(envelope.Error.Code)
		}
	}
	return apiErr
}

// IsTokenParamRejection reports whether e is a 400 complaining that the given
// token-limit parameter is unsupported, unrecognized or extra.
func (e *APIError) IsTokenParamRejection(param string) bool {
	if e == nil || e.StatusCode != 400 {
		return false
	}
	msg := strings.ToLower(e.Message)
	if msg == "" {
		msg = strings.ToLower(string(e.Body))
	}
	if !strings.Contains(msg, param) {
		return false
	}
	for _, hint := range []string{"unsupported", "not supported", "unrecognized", "extra", "unknown", "not permitted"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// Deployment is one entry of the deployment list endpoint.
type Deployment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// DisplayName prefers the name and falls back to the id.
func (d Deployment) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// DeploymentList is the result of ListDeployments. Older API versions return
// the list under "data", some proxies under "deployments".
type DeploymentList struct {
	Data        []Deployment `json:"data"`
	Deployments []Deployment `json:"deployments"`
}

// Names returns the display names of all deployments.
func (l *DeploymentList) Names() []string {
	names := make([]string, 0, len(l.Data)+len(l.Deployments))
	for _, d := range l.Data {
		names = append(names, d.DisplayName())
	}
	for _, d := range l.Deployments {
		names = append(names, d.DisplayName())
	}
	return names
}
