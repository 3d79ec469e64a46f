package topic_discovery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, mock, _ := setup(t)
	h := NewHandler(svc, zap.NewNop())

	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r, mock
}

func TestProcessEndpointPost(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT topics FROM repo_topics`).
		WithArgs("go").
		WillReturnRows(topicRows("go|graph", "go|graph", "go|graph"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/topics/process",
		strings.NewReader(`{"searchTerm": "go"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success": true, "data": [{"name": "graph", "count": 3}], "total": 1, "cached": false}`,
		w.Body.String())
}

func TestProcessEndpointQueryString(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT topics FROM repo_topics`).
		WithArgs("cli").
		WillReturnRows(topicRows())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/topics/process?searchTerm=cli", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestProcessEndpointMissingTerm(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/topics/process", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
