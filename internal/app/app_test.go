package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single application is built for the whole test; the OpenTelemetry
// Prometheus exporter registers with the default registerer and cannot be
// initialized twice in one process.
func TestApplicationRoutes(t *testing.T) {
	t.Setenv("HPRCALC_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("HPRCALC_PATHS_DATA_DIR", t.TempDir())
	t.Setenv("HPRCALC_LOGGING_OUTPUT", "console")

	app, err := NewApplication()
	require.NoError(t, err)
	require.NotNil(t, app.Router)
	require.NotNil(t, app.Server)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/health/version", http.StatusOK},
		{http.MethodGet, "/api/dataset", http.StatusOK},
		{http.MethodGet, "/api/results", http.StatusOK},
		{http.MethodGet, "/api/settings", http.StatusOK},
		{http.MethodGet, "/api/divisors", http.StatusOK},
		{http.MethodGet, "/api/legacy-prices", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/nonexistent", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}
