//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-store/internal/adapters/clients"
	httpadapter "github.com/jsamuelsen/quote-store/internal/adapters/http"
	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
	"github.com/jsamuelsen/quote-store/internal/platform/config"
)

// writeConfigs creates configs/<name>.yaml files under a fresh working
// directory and switches into it.
func writeConfigs(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))

	for name, body := range files {
		path := filepath.Join(dir, "configs", name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}

	t.Chdir(dir)
}

func TestConfig_DefaultsWithoutFiles(t *testing.T) {
	writeConfigs(t, nil)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "http://localhost:3412", cfg.Services.Quote.BaseURL)
}

func TestConfig_ProfileOverridesBase(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base": "server:\n  port: 4000\nlog:\n  level: warn\n",
		"test": "server:\n  port: 4001\n",
	})

	cfg, err := config.Load("test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestConfig_PortEnvOverridesFiles(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base": "server:\n  port: 4000\n",
	})
	t.Setenv("PORT", "5123")

	cfg, err := config.Load("")
	require.NoError(t, err)

	srv := httpadapter.New(&cfg.Server, discardLogger())
	assert.Equal(t, fmt.Sprintf("%s:5123", cfg.Server.Host), srv.Addr())
}

func TestConfig_AppEnvOverridesPort(t *testing.T) {
	writeConfigs(t, nil)
	t.Setenv("PORT", "5123")
	t.Setenv("APP_SERVER_PORT", "6123")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 6123, cfg.Server.Port)
}

func TestConfig_InvalidFileFailsLoad(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base": "server: [not, a, map\n",
	})

	_, err := config.Load("")
	require.Error(t, err)
}

func TestConfig_ValidationRejectsBadPort(t *testing.T) {
	writeConfigs(t, map[string]string{
		"base": "server:\n  port: 70000\n",
	})

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}

// TestConfig_ClientSettingsDriveQuoteClient loads the client section from a
// file and uses it against a live store.
func TestConfig_ClientSettingsDriveQuoteClient(t *testing.T) {
	server := startServer(memory.NewSeededQuoteStore())
	defer server.Close()

	writeConfigs(t, map[string]string{
		"base": fmt.Sprintf(`services:
  quote:
    base_url: %s
    name: configured-store
client:
  timeout: 2s
  retry:
    max_attempts: 2
    initial_interval: 10ms
    max_interval: 100ms
`, server.URL),
	})

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	quotes, err := newQuoteClient(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, "configured-store", quotes.Name())
	require.NoError(t, quotes.Check(context.Background()))

	list, err := quotes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

// TestConfig_ClientTimeoutApplies checks that a configured timeout bounds a
// slow upstream.
func TestConfig_ClientTimeoutApplies(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	cfg := testClientConfig(slow.URL)
	cfg.Timeout = 50 * time.Millisecond
	cfg.Retry.MaxAttempts = 1

	quotes, err := newQuoteClient(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = quotes.List(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
