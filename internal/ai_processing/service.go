package ai_processing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Request carries a topic-suggestion job from the frontend. The API key is
// the caller's own; it is used for the single upstream call and never stored.
type Request struct {
	Model  string
	APIKey string
	Prompt string
	Topics []string
}

// ErrRateLimited is returned when the hourly request budget is exhausted.
var ErrRateLimited = fmt.Errorf("ai request rate limit exceeded")

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

type Service struct {
	llm     Completer
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewService wraps an LLM client with validation and an hourly rate cap.
// requestsPerHour <= 0 disables limiting.
func NewService(llm Completer, requestsPerHour int, log *zap.Logger) *Service {
	var limiter *rate.Limiter
	if requestsPerHour > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600.0), requestsPerHour)
	}
	return &Service{llm: llm, limiter: limiter, log: log}
}

// ProcessTopics validates the request, builds the suggestion prompt and
// returns the model's output as cleaned one-per-line suggestions.
func (s *Service) ProcessTopics(ctx context.Context, req Request) ([]string, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	prompt := buildPrompt(req.Prompt, req.Topics)
	s.log.Debug("dispatching ai topic request",
		zap.String("model", req.Model),
		zap.Int("topics", len(req.Topics)),
	)

	raw, err := s.llm.Complete(ctx, req.Model, req.APIKey, prompt)
	if err != nil {
		return nil, err
	}
	return cleanSuggestions(raw), nil
}

func validate(req Request) error {
	var problems []string
	if strings.TrimSpace(req.Model) == "" {
		problems = append(problems, "Invalid or missing model")
	}
	if strings.TrimSpace(req.APIKey) == "" {
		problems = append(problems, "Invalid or missing API key")
	}
	if len(req.Topics) == 0 {
		problems = append(problems, "Topics list cannot be empty")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		problems = append(problems, "Invalid or missing prompt")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func buildPrompt(custom string, topics []string) string {
	return fmt.Sprintf(`Current topics: %s

%s

Please provide suggestions as a simple list, one per line. Keep each suggestion concise.`,
		strings.Join(topics, ", "), custom)
}

// cleanSuggestions splits the raw completion into lines, stripping bullet
// and number prefixes and dropping blanks.
func cleanSuggestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
