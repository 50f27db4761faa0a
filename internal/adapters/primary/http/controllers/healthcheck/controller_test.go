package healthcheckController

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func serve(deps map[string]Pinger, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(deps, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := serve(nil, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReady(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return assert.AnError })

	// без внешних зависимостей сервис сразу готов
	w := serve(map[string]Pinger{}, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(map[string]Pinger{"postgres": ok, "redis": ok}, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(map[string]Pinger{"postgres": ok, "redis": down}, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status      string   `json:"status"`
		Unavailable []string `json:"unavailable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body.Status)
	assert.Equal(t, []string{"redis"}, body.Unavailable)
}
