package ai_processing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompleter struct {
	reply     string
	err       error
	gotModel  string
	gotKey    string
	gotPrompt string
	callCount int
}

func (s *stubCompleter) Complete(_ context.Context, model, apiKey, prompt string) (string, error) {
	s.callCount++
	s.gotModel = model
	s.gotKey = apiKey
	s.gotPrompt = prompt
	return s.reply, s.err
}

func validRequest() Request {
	return Request{
		Model:  "gpt-4o-mini",
		APIKey: "sk-test",
		Prompt: "Suggest related topics.",
		Topics: []string{"go", "graph"},
	}
}

func TestProcessTopicsCleansSuggestions(t *testing.T) {
	stub := &stubCompleter{reply: "- kubernetes\n* docker\n1. terraform\n\n  observability  "}
	svc := NewService(stub, 0, zap.NewNop())

	got, err := svc.ProcessTopics(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes", "docker", "terraform", "observability"}, got)

	assert.Equal(t, "gpt-4o-mini", stub.gotModel)
	assert.Equal(t, "sk-test", stub.gotKey)
	assert.Contains(t, stub.gotPrompt, "Current topics: go, graph")
	assert.Contains(t, stub.gotPrompt, "Suggest related topics.")
	assert.Contains(t, stub.gotPrompt, "one per line")
}

func TestProcessTopicsValidation(t *testing.T) {
	stub := &stubCompleter{reply: "x"}
	svc := NewService(stub, 0, zap.NewNop())

	_, err := svc.ProcessTopics(context.Background(), Request{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Problems, 4)
	assert.Zero(t, stub.callCount, "invalid requests must not reach the LLM")

	req := validRequest()
	req.Topics = nil
	_, err = svc.ProcessTopics(context.Background(), req)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Topics list cannot be empty"}, vErr.Problems)
}

func TestProcessTopicsRateLimit(t *testing.T) {
	stub := &stubCompleter{reply: "a"}
	svc := NewService(stub, 2, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := svc.ProcessTopics(context.Background(), validRequest())
		require.NoError(t, err)
	}
	_, err := svc.ProcessTopics(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestProcessTopicsUpstreamError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("upstream unavailable")}
	svc := NewService(stub, 0, zap.NewNop())

	_, err := svc.ProcessTopics(context.Background(), validRequest())
	assert.ErrorContains(t, err, "upstream unavailable")
}
