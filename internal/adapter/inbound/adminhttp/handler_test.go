package adminhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jirabridge/jirabridge/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, health usecase.Handler) *httptest.Server {
	t.Helper()
	gw := usecase.NewGateway(testLogger())
	require.NoError(t, gw.Register(mcp.NewTool("health"), health))

	mux := http.NewServeMux()
	NewHandlers(gw, testLogger()).RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthzAlwaysOK(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context, args map[string]any) (any, error) {
		return nil, fmt.Errorf("never called by healthz")
	})

	status, body := getJSON(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		health     usecase.Handler
		wantStatus int
	}{
		{
			name: "ready when connectivity ok",
			health: func(ctx context.Context, args map[string]any) (any, error) {
				return map[string]any{
					"connectivity": map[string]any{"status": "ok"},
				}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unavailable when connectivity errors",
			health: func(ctx context.Context, args map[string]any) (any, error) {
				return map[string]any{
					"connectivity": map[string]any{"status": "error", "error": "connection refused"},
				}, nil
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "unavailable when the tool fails outright",
			health: func(ctx context.Context, args map[string]any) (any, error) {
				return nil, fmt.Errorf("configuration missing")
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.health)
			status, body := getJSON(t, server.URL+"/readyz")
			assert.Equal(t, tt.wantStatus, status)

			// The response body is the tool's envelope.
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, body["success"])
			}
		})
	}
}

func TestReadyzRequestsConnectivityCheck(t *testing.T) {
	var gotArgs map[string]any
	server := newTestServer(t, func(ctx context.Context, args map[string]any) (any, error) {
		gotArgs = args
		return map[string]any{"connectivity": map[string]any{"status": "ok"}}, nil
	})

	status, _ := getJSON(t, server.URL+"/readyz")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, gotArgs["check_connectivity"])
}
