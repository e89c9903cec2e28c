package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"intake-assistant/backend/internal/llm"
)

const errorPreviewBytes = 500

// DiagConfig is the subset of configuration the diagnostics report inspects.
type DiagConfig struct {
	OpenAIEndpoint   string
	OpenAIKey        string
	OpenAIDeployment string

	SearchEndpoint string
	SearchKey      string
	SearchIndex    string

	Secrets []string
}

// DiagnosticsReport tells an operator whether the service is wired up. It
// never contains a credential.
type DiagnosticsReport struct {
	AzureOpenAI OpenAIDiagnostics `json:"azureOpenAI"`
	AzureSearch SearchDiagnostics `json:"azureSearch"`
}

type OpenAIDiagnostics struct {
	EndpointPresent   bool     `json:"endpointPresent"`
	APIKeyPresent     bool     `json:"apiKeyPresent"`
	DeploymentPresent bool     `json:"deploymentPresent"`
	EndpointHost      string   `json:"endpointHost"`
	ListStatus        int      `json:"listStatus,omitempty"`
	DeploymentsFound  []string `json:"deploymentsFound,omitempty"`
	DeploymentMatches *bool    `json:"deploymentMatches,omitempty"`
	ErrorPreview      string   `json:"errorPreview,omitempty"`
	ListError         string   `json:"listError,omitempty"`
}

type SearchDiagnostics struct {
	EndpointPresent bool `json:"endpointPresent"`
	KeyPresent      bool `json:"keyPresent"`
	IndexPresent    bool `json:"indexPresent"`
}

type DiagService struct {
	llm llm.LLMProvider
	cfg DiagConfig
}

func NewDiagService(provider llm.LLMProvider, cfg DiagConfig) *DiagService {
	return &DiagService{llm: provider, cfg: cfg}
}

// Report checks configuration presence and, when an endpoint and key are
// set, probes the deployment list. Probe failures are reported, not returned.
func (s *DiagService) Report(ctx context.Context) (*DiagnosticsReport, error) {
	report := &DiagnosticsReport{
		AzureOpenAI: OpenAIDiagnostics{
			EndpointPresent:   s.cfg.OpenAIEndpoint != "",
			APIKeyPresent:     s.cfg.OpenAIKey != "",
			DeploymentPresent: s.cfg.OpenAIDeployment != "",
			EndpointHost:      endpointHost(s.cfg.OpenAIEndpoint),
		},
		AzureSearch: SearchDiagnostics{
			EndpointPresent: s.cfg.SearchEndpoint != "",
			KeyPresent:      s.cfg.SearchKey != "",
			IndexPresent:    s.cfg.SearchIndex != "",
		},
	}

	if s.cfg.OpenAIEndpoint == "" || s.cfg.OpenAIKey == "" {
		return report, nil
	}

	out := &report.AzureOpenAI
	list, err := s.llm.ListDeployments(ctx)
	var apiErr *llm.APIError
	switch {
	case errors.As(err, &apiErr):
		out.ListStatus = apiErr.StatusCode
		out.ErrorPreview = llm.RedactString(string(apiErr.Body), s.cfg.Secrets, errorPreviewBytes)
	case err != nil:
		slog.Warn("Deployment list probe failed", "error", llm.RedactString(err.Error(), s.cfg.Secrets, 0))
		out.ListError = llm.RedactString(err.Error(), s.cfg.Secrets, errorPreviewBytes)
	default:
		names := list.Names()
		matches := s.cfg.OpenAIDeployment != "" && slices.Contains(names, s.cfg.OpenAIDeployment)
		out.ListStatus = 200
		out.DeploymentsFound = names
		out.DeploymentMatches = &matches
	}
	return report, nil
}

func endpointHost(endpoint string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return strings.TrimRight(host, "/")
}
