package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inotebook/handler"
	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("no reachable servers") })

	t.Run("All Up", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", handler.NewHealthHandler(map[string]handler.Pinger{"mongodb": up}, zap.NewNop()).Health)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp handler.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "up", resp.Components["mongodb"])
	})

	t.Run("Component Down", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", handler.NewHealthHandler(map[string]handler.Pinger{"mongodb": up, "redis": down}, zap.NewNop()).Health)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp utils.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, utils.MsgServiceUnready, resp.Error)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "degraded", data["status"])
	})
}
