package broadcast

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

	"github.com/QuilGrafit/astroX/internal/domain"
)

type fakeBroadcaster struct {
	calls  int
	result domain.BroadcastResult
	err    error
}

func (b *fakeBroadcaster) RunBroadcast(context.Context) (domain.BroadcastResult, error) {
	b.calls++
	return b.result, b.err
}

func setupRouter(b Broadcaster, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(b, secret, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)
	return router
}

func post(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/cron/broadcast", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBroadcast_ReturnsResult(t *testing.T) {
	b := &fakeBroadcaster{result: domain.BroadcastResult{Sent: 2, Failed: 1}}
	router := setupRouter(b, "cron-secret")

	w := post(router, "Bearer cron-secret")
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.BroadcastResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, b.result, got)
	assert.Equal(t, 1, b.calls)
}

func TestBroadcast_Unauthorized(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		authorization string
	}{
		{name: "no header", secret: "cron-secret"},
		{name: "wrong token", secret: "cron-secret", authorization: "Bearer nope"},
		{name: "no bearer prefix", secret: "cron-secret", authorization: "cron-secret"},
		{name: "empty secret configured", secret: "", authorization: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBroadcaster{}
			w := post(setupRouter(b, tt.secret), tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Zero(t, b.calls)
		})
	}
}

func TestBroadcast_Failure(t *testing.T) {
	b := &fakeBroadcaster{
		result: domain.BroadcastResult{Sent: 3},
		err:    assert.AnError,
	}
	w := post(setupRouter(b, "cron-secret"), "Bearer cron-secret")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "`+assert.AnError.Error()+`", "sent": 3, "failed": 0}`, w.Body.String())
}
