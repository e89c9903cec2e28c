package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"

	app_errors "intake-assistant/backend/internal/errors"
	"intake-assistant/backend/internal/llm"
	"intake-assistant/backend/internal/metrics"
	"intake-assistant/backend/internal/model"
	"intake-assistant/backend/internal/resources"
	"intake-assistant/backend/internal/search"
)

const (
	// NotConfiguredReply is returned with a success status when the completion
	// provider has no endpoint, key or deployment.
	NotConfiguredReply = "Hello! (Model not configured yet.)"

	// FallbackReply guarantees a non-empty answer when the provider returns
	// nothing usable.
	FallbackReply = "I can help you decide between therapy, psychiatry, or both and match you with a provider. " +
		"Could you share a bit about your goals, any symptoms, and your insurance? " +
		"(If you're in immediate danger, please call 988.)"

	nudgeInstruction = "Instruction: Respond in plain text (1–2 sentences). Do not call tools."

	contextBlockStart = "--- Retrieved context (reference only; may be incomplete) ---"
	contextBlockEnd   = "--- End retrieved context ---"

	// maxDetailBytes bounds the provider body echoed back in an upstream error.
	maxDetailBytes = 2048

	// MaxCompletionCalls bounds the completion calls made for one chat
	// request, retries and the nudge included.
	MaxCompletionCalls = 2
)

// Retrieval modes reported in debug output.
const (
	RetrievalNone        = "none"
	RetrievalSnippets    = "snippets"
	RetrievalDataSources = "data_sources"
)

// ChatOptions holds everything the orchestrator needs besides its clients.
// It is built once at startup.
type ChatOptions struct {
	SystemPrompt   string
	Temperature    float64
	MaxTokens      int
	NudgeMaxTokens int
	HistoryLimit   int
	RetryDelay     time.Duration

	AlwaysSearch        bool
	RetrievalSafeMode   bool
	RetrievalSnippets   int
	RetrievalQueryChars int
	Retrieval           llm.RetrievalConfig

	// Secrets are scrubbed from anything returned to clients.
	Secrets []string

	// Metrics may be nil.
	Metrics *metrics.Recorder
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message string           `json:"message" validate:"required" example:"Do you take Aetna?"`
	History []model.ChatTurn `json:"history,omitempty"`
	Debug   bool             `json:"-"`
}

// ChatReply is the outbound chat payload. Debug fields are only set when
// the request asked for them.
type ChatReply struct {
	Reply string `json:"reply"`
	*ChatDebug
}

// ChatDebug carries non-secret details about how a reply was produced.
type ChatDebug struct {
	FinishReason        string                   `json:"finish_reason"`
	Usage               *llm.Usage               `json:"usage,omitempty"`
	PromptFilterResults []llm.PromptFilterResult `json:"prompt_filter_results,omitempty"`
	RetrievalUsed       bool                     `json:"retrieval_used"`
	RetrievalMode       string                   `json:"retrieval_mode"`
	TokenParam          string                   `json:"token_param"`
	Attempts            int                      `json:"attempts"`
	Nudged              bool                     `json:"nudged"`
	Fallback            bool                     `json:"fallback"`
}

// ChatService turns a message and recent history into a plain-text reply.
// It is safe for concurrent use.
type ChatService struct {
	llm    llm.LLMProvider
	search search.Searcher
	opts   ChatOptions
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewChatService creates the orchestrator. searcher may be nil when search
// is not configured.
func NewChatService(provider llm.LLMProvider, searcher search.Searcher, opts ChatOptions) *ChatService {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = resources.DefaultSystemPrompt
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 8
	}
	if opts.RetrievalSnippets <= 0 {
		opts.RetrievalSnippets = 3
	}
	if opts.RetrievalQueryChars <= 0 {
		opts.RetrievalQueryChars = 300
	}
	return &ChatService{llm: provider, search: searcher, opts: opts, sleep: sleepContext}
}

// Reply produces a non-empty plain-text answer to req.Message.
func (s *ChatService) Reply(ctx context.Context, req *ChatRequest) (*ChatReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.opts.Metrics.Reply("invalid")
		return nil, fmt.Errorf("%w: message is required", app_errors.ErrValidation)
	}
	if !s.llm.Configured() {
		s.opts.Metrics.Reply("not_configured")
		slog.Warn("Completion provider is not configured, returning placeholder reply",
			"request_id", middleware.GetReqID(ctx))
		return &ChatReply{Reply: NotConfiguredReply}, nil
	}

	dbg := &ChatDebug{RetrievalMode: RetrievalNone}
	system, dataSources := s.augment(ctx, message, dbg)

	messages := make([]llm.Message, 0, s.opts.HistoryLimit+2)
	messages = append(messages, llm.Message{Role: model.RoleSystem, Content: system})
	messages = append(messages, NormalizeHistory(req.History, s.opts.HistoryLimit)...)
	messages = append(messages, llm.Message{Role: model.RoleUser, Content: message})

	base := &llm.CompletionRequest{
		Messages:    messages,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
		DataSources: dataSources,
	}

	resp, err := s.complete(ctx, base, dbg)
	if err != nil {
		s.opts.Metrics.Reply("upstream_error")
		return nil, s.upstreamError(ctx, err)
	}

	reply := resp.Text()
	if reply == "" || resp.ContentFiltered() {
		if dbg.Attempts < MaxCompletionCalls {
			dbg.Nudged = true
			if nudged := s.nudge(ctx, base, dbg); nudged != nil && nudged.Text() != "" {
				resp = nudged
				reply = nudged.Text()
			}
		} else {
			slog.Info("Call budget spent, skipping follow-up completion",
				"request_id", middleware.GetReqID(ctx), "attempts", dbg.Attempts)
		}
	}
	outcome := "ok"
	if reply == "" {
		dbg.Fallback = true
		reply = FallbackReply
		outcome = "fallback"
	}
	s.opts.Metrics.Reply(outcome)

	slog.Info("Chat reply produced",
		"request_id", middleware.GetReqID(ctx),
		"attempts", dbg.Attempts,
		"nudged", dbg.Nudged,
		"fallback", dbg.Fallback,
		"retrieval_mode", dbg.RetrievalMode,
		"finish_reason", resp.FinishReason(),
	)

	out := &ChatReply{Reply: reply}
	if req.Debug {
		dbg.FinishReason = resp.FinishReason()
		dbg.Usage = resp.Usage
		dbg.PromptFilterResults = resp.PromptFilterResults
		out.ChatDebug = dbg
	}
	return out, nil
}

// NormalizeHistory drops empty turns, coerces roles to user or assistant and
// keeps only the most recent limit entries.
func NormalizeHistory(history []model.ChatTurn, limit int) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		role := model.RoleUser
		if strings.EqualFold(strings.TrimSpace(turn.Role), model.RoleAssistant) {
			role = model.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// augment returns the system turn and, in provider-side mode, the data
// sources block. Retrieval failures only log.
func (s *ChatService) augment(ctx context.Context, message string, dbg *ChatDebug) (string, []llm.DataSource) {
	system := s.opts.SystemPrompt
	if !s.opts.AlwaysSearch && !IsInformationSeeking(message) {
		return system, nil
	}

	if !s.opts.RetrievalSafeMode {
		ds := s.opts.Retrieval.DataSources()
		if ds == nil {
			s.opts.Metrics.Retrieval(RetrievalDataSources, "not_configured")
			return system, nil
		}
		dbg.RetrievalUsed = true
		dbg.RetrievalMode = RetrievalDataSources
		s.opts.Metrics.Retrieval(RetrievalDataSources, "attached")
		return system, ds
	}

	if s.search == nil {
		return system, nil
	}
	snippets, err := s.search.Snippets(ctx, truncateRunes(message, s.opts.RetrievalQueryChars), s.opts.RetrievalSnippets)
	if errors.Is(err, app_errors.ErrNotConfigured) {
		s.opts.Metrics.Retrieval(RetrievalSnippets, "not_configured")
		return system, nil
	}
	if err != nil {
		slog.Warn("Search failed, replying without retrieved context",
			"request_id", middleware.GetReqID(ctx), "error", err)
		s.opts.Metrics.Retrieval(RetrievalSnippets, "error")
		return system, nil
	}
	if len(snippets) == 0 {
		s.opts.Metrics.Retrieval(RetrievalSnippets, "empty")
		return system, nil
	}
	s.opts.Metrics.Retrieval(RetrievalSnippets, "hit")
	if len(snippets) > s.opts.RetrievalSnippets {
		snippets = snippets[:s.opts.RetrievalSnippets]
	}

	dbg.RetrievalUsed = true
	dbg.RetrievalMode = RetrievalSnippets

	var b strings.Builder
	b.WriteString(system)
	b.WriteString("\n\n")
	b.WriteString(contextBlockStart)
	for _, snippet := range snippets {
		b.WriteString("\n- ")
		b.WriteString(snippet)
	}
	b.WriteString("\n")
	b.WriteString(contextBlockEnd)
	return b.String(), nil
}

// complete sends req and retries at most once: after a delay for a
// transient failure, or with the other spelling for a rejected token-limit
// parameter. A spelling that succeeds after a rejection is remembered on the
// provider.
func (s *ChatService) complete(ctx context.Context, req *llm.CompletionRequest, dbg *ChatDebug) (*llm.CompletionResponse, error) {
	req = req.WithTokenParam(s.llm.TokenParam())
	switched := false

	for {
		dbg.Attempts++
		dbg.TokenParam = req.TokenParam
		resp, err := s.call(ctx, req)
		if err == nil {
			if switched {
				s.llm.RememberTokenParam(req.TokenParam)
				slog.Info("Switched token limit parameter", "token_param", req.TokenParam)
			}
			return resp, nil
		}
		if ctx.Err() != nil || dbg.Attempts >= MaxCompletionCalls {
			return nil, err
		}

		var apiErr *llm.APIError
		switch {
		case isTransient(err):
			s.opts.Metrics.Retry("transient")
			slog.Warn("Transient provider failure, retrying once",
				"request_id", middleware.GetReqID(ctx), "error", err, "delay", s.opts.RetryDelay)
			if serr := s.sleep(ctx, s.opts.RetryDelay); serr != nil {
				return nil, err
			}
		case errors.As(err, &apiErr) && apiErr.IsTokenParamRejection(req.TokenParam):
			switched = true
			s.opts.Metrics.Retry("token_param")
			req = req.WithTokenParam(llm.OtherTokenParam(req.TokenParam))
			slog.Warn("Provider rejected token limit parameter, retrying with the other spelling",
				"request_id", middleware.GetReqID(ctx), "token_param", req.TokenParam)
		default:
			return nil, err
		}
	}
}

// nudge makes the single follow-up call for an empty or filtered reply. Any
// failure is logged and reported as nil.
func (s *ChatService) nudge(ctx context.Context, base *llm.CompletionRequest, dbg *ChatDebug) *llm.CompletionResponse {
	last := len(base.Messages) - 1
	messages := make([]llm.Message, 0, len(base.Messages)+1)
	messages = append(messages, base.Messages[:last]...)
	messages = append(messages, llm.Message{Role: model.RoleUser, Content: nudgeInstruction}, base.Messages[last])

	req := &llm.CompletionRequest{
		Messages:    messages,
		Temperature: base.Temperature,
		MaxTokens:   s.opts.NudgeMaxTokens,
		TokenParam:  s.llm.TokenParam(),
		DataSources: base.DataSources,
	}

	dbg.Attempts++
	s.opts.Metrics.Retry("nudge")
	resp, err := s.call(ctx, req)
	if err != nil {
		slog.Warn("Follow-up completion failed, keeping original reply",
			"request_id", middleware.GetReqID(ctx), "error", err)
		return nil
	}
	return resp
}

// call makes one provider call and records its status and latency.
func (s *ChatService) call(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	start := time.Now()
	resp, err := s.llm.Complete(ctx, req)

	status := http.StatusOK
	var apiErr *llm.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
	case err != nil:
		status = 0
	}
	s.opts.Metrics.Completion(status, time.Since(start))
	return resp, err
}

// upstreamError converts a provider failure into an UpstreamError with a
// redacted detail.
func (s *ChatService) upstreamError(ctx context.Context, err error) error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		slog.Error("Completion provider returned an error",
			"request_id", middleware.GetReqID(ctx), "status", apiErr.StatusCode, "code", apiErr.Code)
		return &app_errors.UpstreamError{
			Status: apiErr.StatusCode,
			Detail: llm.RedactBody(apiErr.Body, s.opts.Secrets, maxDetailBytes),
		}
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("chat request cancelled: %w", err)
	}

	status := http.StatusBadGateway
	if isTimeout(err) {
		status = http.StatusGatewayTimeout
	}
	msg := "Completion provider returned an unreadable response"
	if isTransient(err) {
		msg = "Completion provider unreachable"
	}
	slog.Error(msg,
		"request_id", middleware.GetReqID(ctx), "status", status, "error", llm.RedactString(err.Error(), s.opts.Secrets, 0))
	return &app_errors.UpstreamError{
		Status: status,
		Detail: llm.RedactString(err.Error(), s.opts.Secrets, maxDetailBytes),
	}
}

// isTransient reports overload statuses, transport failures and timeouts.
// An unreadable 2xx body is not transient.
func isTransient(err error) bool {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode == http.StatusServiceUnavailable
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, llm.ErrTransport) || isTimeout(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
