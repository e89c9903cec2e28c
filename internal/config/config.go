package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration. It is loaded once at startup and
// passed by reference to everything that needs it.
type Config struct {
	AppPort            int    `mapstructure:"APP_PORT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	ResourcesDir       string `mapstructure:"RESOURCES_DIR"`
	FrontendDir        string `mapstructure:"FRONTEND_DIR"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Azure OpenAI chat completions.
	OpenAIEndpoint   string        `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	OpenAIKey        string        `mapstructure:"AZURE_OPENAI_API_KEY"`
	OpenAIDeployment string        `mapstructure:"AZURE_OPENAI_DEPLOYMENT"`
	OpenAIAPIVersion string        `mapstructure:"AZURE_OPENAI_API_VERSION"`
	OpenAITokenParam string        `mapstructure:"AZURE_OPENAI_TOKEN_PARAM"`
	OpenAITimeout    time.Duration `mapstructure:"AZURE_OPENAI_TIMEOUT"`

	// Embeddings, used for the vector half of hybrid search queries.
	EmbeddingsEndpoint   string `mapstructure:"AZURE_OPENAI_EMBEDDINGS_ENDPOINT"`
	EmbeddingsKey        string `mapstructure:"AZURE_OPENAI_EMBEDDINGS_KEY"`
	EmbeddingsDeployment string `mapstructure:"AZURE_OPENAI_EMBEDDINGS_DEPLOYMENT"`

	// Azure AI Search.
	SearchEndpoint      string        `mapstructure:"AZURE_SEARCH_ENDPOINT"`
	SearchKey           string        `mapstructure:"AZURE_SEARCH_KEY"`
	SearchIndex         string        `mapstructure:"AZURE_SEARCH_INDEX"`
	SearchQueryType     string        `mapstructure:"AZURE_SEARCH_QUERY_TYPE"`
	SearchSemantic      string        `mapstructure:"AZURE_SEARCH_SEMANTIC_CONFIG"`
	SearchAPIVersion    string        `mapstructure:"AZURE_SEARCH_API_VERSION"`
	SearchVectorField   string        `mapstructure:"AZURE_SEARCH_VECTOR_FIELD"`
	SearchTop           int           `mapstructure:"AZURE_SEARCH_TOP"`
	SearchStrictness    int           `mapstructure:"AZURE_SEARCH_STRICTNESS"`
	SearchTimeout       time.Duration `mapstructure:"AZURE_SEARCH_TIMEOUT"`
	AlwaysSearch        bool          `mapstructure:"ALWAYS_SEARCH"`
	RetrievalSafeMode   bool          `mapstructure:"RETRIEVAL_SAFE_MODE"`
	RetrievalSnippets   int           `mapstructure:"RETRIEVAL_SNIPPETS"`
	RetrievalQueryChars int           `mapstructure:"RETRIEVAL_QUERY_CHARS"`

	// Chat orchestration defaults.
	ChatTemperature    float64       `mapstructure:"CHAT_TEMPERATURE"`
	ChatMaxTokens      int           `mapstructure:"CHAT_MAX_TOKENS"`
	ChatNudgeMaxTokens int           `mapstructure:"CHAT_NUDGE_MAX_TOKENS"`
	ChatHistoryLimit   int           `mapstructure:"CHAT_HISTORY_LIMIT"`
	ChatRetryDelay     time.Duration `mapstructure:"CHAT_RETRY_DELAY"`

	// Lookup caps.
	ProvidersLimit int `mapstructure:"PROVIDERS_LIMIT"`
	ScheduleLimit  int `mapstructure:"SCHEDULE_LIMIT"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("RESOURCES_DIR", "")
	viper.SetDefault("FRONTEND_DIR", "./frontend/dist")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("AZURE_OPENAI_ENDPOINT", "")
	viper.SetDefault("AZURE_OPENAI_API_KEY", "")
	viper.SetDefault("AZURE_OPENAI_DEPLOYMENT", "")
	viper.SetDefault("AZURE_OPENAI_API_VERSION", "2024-08-01-preview")
	viper.SetDefault("AZURE_OPENAI_TOKEN_PARAM", "max_completion_tokens")
	viper.SetDefault("AZURE_OPENAI_TIMEOUT", 30*time.Second)

	viper.SetDefault("AZURE_OPENAI_EMBEDDINGS_ENDPOINT", "")
	viper.SetDefault("AZURE_OPENAI_EMBEDDINGS_KEY", "")
	viper.SetDefault("AZURE_OPENAI_EMBEDDINGS_DEPLOYMENT", "")

	viper.SetDefault("AZURE_SEARCH_ENDPOINT", "")
	viper.SetDefault("AZURE_SEARCH_KEY", "")
	viper.SetDefault("AZURE_SEARCH_INDEX", "")
	viper.SetDefault("AZURE_SEARCH_QUERY_TYPE", "vector_semantic_hybrid")
	viper.SetDefault("AZURE_SEARCH_SEMANTIC_CONFIG", "default")
	viper.SetDefault("AZURE_SEARCH_API_VERSION", "2023-11-01")
	viper.SetDefault("AZURE_SEARCH_VECTOR_FIELD", "contentVector")
	viper.SetDefault("AZURE_SEARCH_TOP", 6)
	viper.SetDefault("AZURE_SEARCH_STRICTNESS", 3)
	viper.SetDefault("AZURE_SEARCH_TIMEOUT", 10*time.Second)
	viper.SetDefault("ALWAYS_SEARCH", false)
	viper.SetDefault("RETRIEVAL_SAFE_MODE", true)
	viper.SetDefault("RETRIEVAL_SNIPPETS", 3)
	viper.SetDefault("RETRIEVAL_QUERY_CHARS", 300)

	viper.SetDefault("CHAT_TEMPERATURE", 1.0)
	viper.SetDefault("CHAT_MAX_TOKENS", 384)
	viper.SetDefault("CHAT_NUDGE_MAX_TOKENS", 256)
	viper.SetDefault("CHAT_HISTORY_LIMIT", 8)
	viper.SetDefault("CHAT_RETRY_DELAY", 800*time.Millisecond)

	viper.SetDefault("PROVIDERS_LIMIT", 50)
	viper.SetDefault("SCHEDULE_LIMIT", 100)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {

			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()

	return &cfg, nil
}

// normalize trims values that are commonly pasted with stray whitespace or a
// trailing slash, so that URL building downstream stays simple.
func (c *Config) normalize() {
	c.OpenAIEndpoint = strings.TrimRight(strings.TrimSpace(c.OpenAIEndpoint), "/")
	c.OpenAIKey = strings.TrimSpace(c.OpenAIKey)
	c.OpenAIDeployment = strings.TrimSpace(c.OpenAIDeployment)
	c.OpenAIAPIVersion = strings.TrimSpace(c.OpenAIAPIVersion)
	c.OpenAITokenParam = strings.TrimSpace(c.OpenAITokenParam)
	c.EmbeddingsEndpoint = strings.TrimRight(strings.TrimSpace(c.EmbeddingsEndpoint), "/")
	c.EmbeddingsKey = strings.TrimSpace(c.EmbeddingsKey)
	c.EmbeddingsDeployment = strings.TrimSpace(c.EmbeddingsDeployment)
	c.SearchEndpoint = strings.TrimRight(strings.TrimSpace(c.SearchEndpoint), "/")
	c.SearchKey = strings.TrimSpace(c.SearchKey)
	c.SearchIndex = strings.TrimSpace(c.SearchIndex)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Secrets lists every configured credential, for redaction of upstream payloads.
func (c *Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.OpenAIKey, c.EmbeddingsKey, c.SearchKey} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
