package llm

import "strings"

// RetrievalConfig describes how the provider should ground a completion in an
// Azure AI Search index ("on your data").
type RetrievalConfig struct {
	Endpoint              string
	Index                 string
	Key                   string
	QueryType             string
	SemanticConfiguration string
	TopNDocuments         int
	Strictness            int
	EmbeddingDeployment   string
	Fields                FieldMapping
}

// FieldMapping maps index fields to the fields the provider cites.
type FieldMapping struct {
	ContentFields []string `json:"content_fields,omitempty"`
	TitleField    string   `json:"title_field,omitempty"`
	FilepathField string   `json:"filepath_field,omitempty"`
	URLField      string   `json:"url_field,omitempty"`
}

// DefaultFieldMapping matches the index layout produced by the portal's
// "import and vectorize data" wizard.
var DefaultFieldMapping = FieldMapping{
	ContentFields: []string{"content", "chunk", "page_content"},
	TitleField:    "title",
	FilepathField: "source",
	URLField:      "url",
}

// Valid reports whether the endpoint, credentials and index are all present.
func (c RetrievalConfig) Valid() bool {
	return c.Endpoint != "" && c.Key != "" && c.Index != ""
}

type DataSource struct {
	Type       string               `json:"type"`
	Parameters DataSourceParameters `json:"parameters"`
}

type DataSourceParameters struct {
	Endpoint              string               `json:"endpoint"`
	IndexName             string               `json:"index_name"`
	Authentication        DataSourceAuth       `json:"authentication"`
	QueryType             string               `json:"query_type,omitempty"`
	SemanticConfiguration string               `json:"semantic_configuration,omitempty"`
	TopNDocuments         int                  `json:"top_n_documents,omitempty"`
	Strictness            int                  `json:"strictness,omitempty"`
	FieldsMapping         FieldMapping         `json:"fields_mapping"`
	EmbeddingDependency   *EmbeddingDependency `json:"embedding_dependency,omitempty"`
	IncludeContexts       []string             `json:"include_contexts,omitempty"`
}

type DataSourceAuth struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type EmbeddingDependency struct {
	Type           string `json:"type"`
	DeploymentName string `json:"deployment_name"`
}

// DataSources returns the azure_search block for c, or nil when c is not
// valid. Callers attach the result unconditionally.
func (c RetrievalConfig) DataSources() []DataSource {
	if !c.Valid() {
		return nil
	}
	fields := c.Fields
	if len(fields.ContentFields) == 0 {
		fields = DefaultFieldMapping
	}
	params := DataSourceParameters{
		Endpoint:              c.Endpoint,
		IndexName:             c.Index,
		Authentication:        DataSourceAuth{Type: "api_key", Key: c.Key},
		QueryType:             c.QueryType,
		SemanticConfiguration: c.SemanticConfiguration,
		TopNDocuments:         c.TopNDocuments,
		Strictness:            c.Strictness,
		FieldsMapping:         fields,
		IncludeContexts:       []string{"citations", "intent"},
	}
	if c.EmbeddingDeployment != "" {
		params.EmbeddingDependency = &EmbeddingDependency{Type: "deployment_name", DeploymentName: c.EmbeddingDeployment}
	} else if strings.Contains(params.QueryType, "vector") {
		// Vector query types are rejected without an embedding dependency.
		params.QueryType = "simple"
		if params.SemanticConfiguration != "" {
			params.QueryType = "semantic"
		}
	}
	return []DataSource{{Type: "azure_search", Parameters: params}}
}
