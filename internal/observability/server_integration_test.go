//go:build integration

package observability_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaeljc/huginn/internal/config"
	"github.com/rafaeljc/huginn/internal/logger"
	"github.com/rafaeljc/huginn/internal/observability"
	"github.com/rafaeljc/huginn/internal/testsupport"
	"github.com/rafaeljc/huginn/linkcache"
)

func TestObservabilityServer_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, err := testsupport.StartRedisContainer(ctx)
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	// The Redis cache store doubles as the readiness checker for its backend.
	store := linkcache.NewRedis(redisContainer.Client, time.Hour)

	freePort, err := getFreePort()
	require.NoError(t, err)

	// Non-standard paths prove the server respects its configuration
	// instead of hardcoded defaults.
	livenessPath := "/alive"
	readinessPath := "/check-deps"
	metricsPath := "/telemetry"

	appCfg := &config.AppConfig{
		Name:        "huginn-test",
		Version:     "v0.0.0-test",
		Environment: "development",
		LogLevel:    "debug",
		LogFormat:   "text",
	}

	obsCfg := &config.ObservabilityConfig{
		Port:          fmt.Sprintf("%d", freePort),
		Timeout:       1 * time.Second,
		LivenessPath:  livenessPath,
		ReadinessPath: readinessPath,
		MetricsPath:   metricsPath,
	}

	log := logger.New(appCfg)

	server := observability.NewServer(log, obsCfg, store)
	server.Start()
	defer func() { _ = server.Shutdown(ctx) }()

	baseURL := fmt.Sprintf("http://localhost:%d", freePort)

	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + livenessPath)
		if err == nil {
			resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}
		return false
	}, 5*time.Second, 100*time.Millisecond, "server failed to start")

	t.Run("Liveness should return 200 OK on custom path", func(t *testing.T) {
		resp, err := http.Get(baseURL + livenessPath)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "ok", string(body))
	})

	t.Run("Metrics should be exposed on custom path", func(t *testing.T) {
		resp, err := http.Get(baseURL + metricsPath)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)

		bodyStr := string(body)
		assert.Contains(t, bodyStr, "go_goroutines")
		assert.Contains(t, bodyStr, "huginn_")
	})

	t.Run("Readiness should return 200 OK when the cache backend is healthy", func(t *testing.T) {
		resp, err := http.Get(baseURL + readinessPath)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)

		statusMap := body["status"].(map[string]any)
		assert.Equal(t, "up", statusMap["redis"])
	})

	t.Run("Readiness should fail with 503 when the cache backend is down", func(t *testing.T) {
		_ = redisContainer.Container.Stop(ctx, nil)

		// Allow the client a moment to notice the dropped connection.
		time.Sleep(200 * time.Millisecond)

		resp, err := http.Get(baseURL + readinessPath)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		statusMap := body["status"].(map[string]any)

		redisStatus := statusMap["redis"].(string)
		assert.Contains(t, redisStatus, "down")
	})
}

// getFreePort asks the kernel for a free TCP port.
func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
