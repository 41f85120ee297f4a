package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHealthServer(addr string) *HealthServer {
	return NewHealthServer(addr, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func probeStatus(t *testing.T, h *HealthServer, handler http.HandlerFunc, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body.Status
}

func TestNewHealthServer_StartsNotReady(t *testing.T) {
	h := testHealthServer(":9091")

	assert.Equal(t, ":9091", h.addr)
	assert.False(t, h.ready.Load())
}

func TestHealthServer_Liveness(t *testing.T) {
	h := testHealthServer(":0")

	// Liveness ignores readiness state entirely.
	code, status := probeStatus(t, h, h.handleLiveness, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", status)

	h.SetReady(false)
	code, _ = probeStatus(t, h, h.handleLiveness, "/health")
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthServer_Readiness(t *testing.T) {
	h := testHealthServer(":0")

	code, status := probeStatus(t, h, h.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", status)

	h.SetReady(true)
	code, status = probeStatus(t, h, h.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", status)

	// First refresh failing again flips it back.
	h.SetReady(false)
	code, _ = probeStatus(t, h, h.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthServer_GracefulShutdown(t *testing.T) {
	h := testHealthServer("localhost:19095")
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- h.Start(ctx) }()

	// Wait for the listener to come up.
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://localhost:19095/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(10 * time.Second):
		t.Fatal("health server did not shut down")
	}

	_, err := http.Get("http://localhost:19095/health")
	assert.Error(t, err, "listener should be closed after shutdown")
}
