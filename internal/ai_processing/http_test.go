package ai_processing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(stub *stubCompleter, perHour int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(stub, perHour, zap.NewNop()), zap.NewNop())
	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r
}

func postProcess(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessEndpoint(t *testing.T) {
	r := newTestRouter(&stubCompleter{reply: "- alpha\n- beta"}, 0)

	w := postProcess(r, `{
		"selectedModel": "gpt-4o-mini",
		"apiKey": "sk-test",
		"customPrompt": "Suggest related topics.",
		"selectedTopics": ["go", "graph"]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "result": ["alpha", "beta"]}`, w.Body.String())
}

func TestProcessEndpointValidation(t *testing.T) {
	r := newTestRouter(&stubCompleter{reply: "x"}, 0)

	w := postProcess(r, `{"selectedModel": "gpt-4o-mini"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "API key")
}

func TestProcessEndpointMalformedBody(t *testing.T) {
	r := newTestRouter(&stubCompleter{reply: "x"}, 0)

	w := postProcess(r, `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessEndpointRateLimited(t *testing.T) {
	r := newTestRouter(&stubCompleter{reply: "x"}, 1)
	body := `{
		"selectedModel": "gpt-4o-mini",
		"apiKey": "sk-test",
		"customPrompt": "p",
		"selectedTopics": ["go"]
	}`

	require.Equal(t, http.StatusOK, postProcess(r, body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postProcess(r, body).Code)
}
