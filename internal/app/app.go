package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"intake-assistant/backend/internal/api"
	"intake-assistant/backend/internal/config"
	"intake-assistant/backend/internal/llm"
	"intake-assistant/backend/internal/metrics"
	"intake-assistant/backend/internal/repository"
	"intake-assistant/backend/internal/resources"
	"intake-assistant/backend/internal/search"
	"intake-assistant/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired server and the pieces tests want to inspect.
type App struct {
	Server  *http.Server
	Metrics *metrics.Recorder
	LLM     llm.LLMProvider
	Search  *search.Client
}

// NewApp builds every dependency from cfg. It performs no network calls.
func NewApp(cfg *config.Config) (*App, error) {
	fsys, err := resources.Open(cfg.ResourcesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open resources: %w", err)
	}
	systemPrompt, err := resources.BuildSystemPrompt(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to build system prompt: %w", err)
	}
	repo, err := repository.NewFileRepository(fsys, resources.ProvidersFile, resources.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider directory: %w", err)
	}

	azure := llm.NewAzureProvider(llm.AzureConfig{
		Endpoint:   cfg.OpenAIEndpoint,
		Key:        cfg.OpenAIKey,
		Deployment: cfg.OpenAIDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		TokenParam: cfg.OpenAITokenParam,
		Timeout:    cfg.OpenAITimeout,
	})
	embedder := llm.NewAzureEmbedder(llm.AzureConfig{
		Endpoint:   firstNonEmpty(cfg.EmbeddingsEndpoint, cfg.OpenAIEndpoint),
		Key:        firstNonEmpty(cfg.EmbeddingsKey, cfg.OpenAIKey),
		Deployment: cfg.EmbeddingsDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.SearchTimeout,
	})
	searchClient := search.NewClient(search.Config{
		Endpoint:       cfg.SearchEndpoint,
		Key:            cfg.SearchKey,
		Index:          cfg.SearchIndex,
		APIVersion:     cfg.SearchAPIVersion,
		QueryType:      cfg.SearchQueryType,
		SemanticConfig: cfg.SearchSemantic,
		VectorField:    cfg.SearchVectorField,
		Top:            cfg.RetrievalSnippets,
		Timeout:        cfg.SearchTimeout,
	}, embedder)

	recorder := metrics.New()

	chatService := service.NewChatService(azure, searchClient, service.ChatOptions{
		SystemPrompt:        systemPrompt,
		Temperature:         cfg.ChatTemperature,
		MaxTokens:           cfg.ChatMaxTokens,
		NudgeMaxTokens:      cfg.ChatNudgeMaxTokens,
		HistoryLimit:        cfg.ChatHistoryLimit,
		RetryDelay:          cfg.ChatRetryDelay,
		AlwaysSearch:        cfg.AlwaysSearch,
		RetrievalSafeMode:   cfg.RetrievalSafeMode,
		RetrievalSnippets:   cfg.RetrievalSnippets,
		RetrievalQueryChars: cfg.RetrievalQueryChars,
		Retrieval: llm.RetrievalConfig{
			Endpoint:              cfg.SearchEndpoint,
			Index:                 cfg.SearchIndex,
			Key:                   cfg.SearchKey,
			QueryType:             cfg.SearchQueryType,
			SemanticConfiguration: cfg.SearchSemantic,
			TopNDocuments:         cfg.SearchTop,
			Strictness:            cfg.SearchStrictness,
			EmbeddingDeployment:   cfg.EmbeddingsDeployment,
			Fields:                llm.DefaultFieldMapping,
		},
		Secrets: cfg.Secrets(),
		Metrics: recorder,
	})
	directoryService := service.NewDirectoryService(repo, cfg.ProvidersLimit, cfg.ScheduleLimit)
	diagService := service.NewDiagService(azure, service.DiagConfig{
		OpenAIEndpoint:   cfg.OpenAIEndpoint,
		OpenAIKey:        cfg.OpenAIKey,
		OpenAIDeployment: cfg.OpenAIDeployment,
		SearchEndpoint:   cfg.SearchEndpoint,
		SearchKey:        cfg.SearchKey,
		SearchIndex:      cfg.SearchIndex,
		Secrets:          cfg.Secrets(),
	})

	// The search step (embedding plus query) and the completion call budget
	// with its retry delay must fit in one request.
	requestTimeout := 2*cfg.SearchTimeout + time.Duration(service.MaxCompletionCalls)*cfg.OpenAITimeout + cfg.ChatRetryDelay

	router := api.NewRouter(api.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins(),
		FrontendDir:    cfg.FrontendDir,
		RequestTimeout: requestTimeout,
		Metrics:        recorder.Handler(),
	},
		api.NewChatHandler(chatService),
		api.NewDirectoryHandler(directoryService),
		api.NewDiagHandler(diagService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	providers, err := repo.ListProviders(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	slog.Info("Application wired",
		"chat_configured", azure.Configured(),
		"search_configured", searchClient.Configured(),
		"embeddings_configured", embedder != nil,
		"providers_loaded", len(providers),
	)

	return &App{Server: server, Metrics: recorder, LLM: azure, Search: searchClient}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", app.Server.Addr)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		return 1
	}
	slog.Info("Server stopped")
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
