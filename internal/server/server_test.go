package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/player"
	"github.com/osse101/brandish-progression/internal/profile"
	"github.com/osse101/brandish-progression/internal/utils"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	engines, err := player.NewEngines(c, utils.NewSeededSource(7))
	require.NoError(t, err)
	codec, err := profile.NewCodec(false)
	require.NoError(t, err)
	t.Cleanup(codec.Close)

	profiles := profile.NewService(profile.NewMemoryStore(codec), c, engines.Ledger, profile.Config{})
	svc := player.NewService(profiles, engines, nil)

	return NewRouter(Options{APIKey: testAPIKey, Version: "test", CatalogVersion: c.Version()}, Deps{Players: svc})
}

func serve(h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	h := newTestRouter(t)
	auth := http.Header{HeaderAPIKey: {testAPIKey}}

	t.Run("health is public", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
		assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	})

	t.Run("readiness without store", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/readyz", nil).Code)
	})

	t.Run("metrics are public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics", nil).Code)
	})

	t.Run("api requires key", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/v1/guilds/g1/players/p1", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile is created by the first action", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/v1/guilds/g1/players/p1", auth).Code)

		rec := serve(h, http.MethodPost, "/v1/guilds/g1/players/p1/mine", auth)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/v1/guilds/g1/players/p1", auth).Code)
	})

	t.Run("second mine hits the cooldown", func(t *testing.T) {
		rec := serve(h, http.MethodPost, "/v1/guilds/g1/players/p1/mine", auth)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("request id is echoed", func(t *testing.T) {
		header := http.Header{HeaderAPIKey: {testAPIKey}, HeaderRequestID: {"trace-123"}}
		rec := serve(h, http.MethodGet, "/version", header)
		assert.Equal(t, "trace-123", rec.Header().Get(HeaderRequestID))
		assert.Contains(t, rec.Body.String(), `"version":"test"`)
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/v1/nope", auth).Code)
	})
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	header := http.Header{
		HeaderAPIKey:        {"secret-key-123"},
		HeaderAuthorization: {"Bearer mytoken"},
		"User-Agent":        {"TestAgent"},
	}
	serve(loggingMiddleware(okHandler), http.MethodGet, "/v1/test", header)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "TestAgent")
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotEmpty(t, requestID(req))

	req.Header.Set(HeaderRequestID, "abc")
	assert.Equal(t, "abc", requestID(req))

	req.Header.Set(HeaderRequestID, string(bytes.Repeat([]byte("x"), MaxRequestIDLength+1)))
	assert.NotEqual(t, "abc", requestID(req))
	assert.Len(t, requestID(req), 36, "oversized ids are replaced by a uuid")
}
