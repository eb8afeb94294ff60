package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/prefhub/pkg/domain"
	"github.com/umputun/prefhub/pkg/errs"
	"github.com/umputun/prefhub/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration, time.Duration) {
			return ":8080", 30 * time.Second, time.Second
		},
	}
}

func allowAll() *mocks.RateLimiterMock {
	return &mocks.RateLimiterMock{
		AllowFunc: func(identifier string) (bool, int) { return true, 0 },
	}
}

func testSnapshot() *domain.SettingsSnapshot {
	lang := "pt-BR"
	public := true
	return &domain.SettingsSnapshot{
		Feed:          domain.FeedPreferences{AllowMentions: true, FeedViewPreference: "COMPACT"},
		Profile:       domain.ProfilePreferences{ProfilePublic: &public},
		ThemeLanguage: domain.ThemeLanguagePreferences{PreferredLanguage: &lang},
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(), &mocks.SettingsMock{}, allowAll(), errs.NewClassifier(false), "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	err = listener.Close()
	require.NoError(t, err)

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second, time.Second
		},
	}

	srv := New(cfg, &mocks.SettingsMock{}, allowAll(), errs.NewClassifier(false), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = srv.Run(ctx)
	}()

	// wait for server to start
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	cancel()
	time.Sleep(100 * time.Millisecond)
}

func TestServer_settingsHandler(t *testing.T) {
	settings := &mocks.SettingsMock{
		GetSettingsFunc: func(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
			return testSnapshot(), nil
		},
	}

	srv := New(testConfig(), settings, allowAll(), errs.NewClassifier(false), "test", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/settings", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Access-Token", "tok.valid.sig")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap domain.SettingsSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, *testSnapshot(), snap)

	require.Len(t, settings.GetSettingsCalls(), 1)
	assert.Equal(t, "tok.valid.sig", settings.GetSettingsCalls()[0].Credential)
}

func TestServer_settingsHandlerNoToken(t *testing.T) {
	settings := &mocks.SettingsMock{
		GetSettingsFunc: func(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
			return testSnapshot(), nil
		},
	}

	srv := New(testConfig(), settings, allowAll(), errs.NewClassifier(false), "test", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/settings")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var errResp errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, errs.CodeUnauthorized, errResp.Code)

	assert.Empty(t, settings.GetSettingsCalls(), "rejected before the aggregator runs")
}

func TestServer_settingsHandlerBadTokenShape(t *testing.T) {
	settings := &mocks.SettingsMock{
		GetSettingsFunc: func(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
			return testSnapshot(), nil
		},
	}

	srv := New(testConfig(), settings, allowAll(), errs.NewClassifier(false), "test", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/settings", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Access-Token", "not-a-jwt")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, errs.CodeValidation, errResp.Code)
	assert.Equal(t, "token", errResp.Extensions["field"])

	assert.Empty(t, settings.GetSettingsCalls())
}

func TestServer_settingsHandlerRateLimited(t *testing.T) {
	settings := &mocks.SettingsMock{
		GetSettingsFunc: func(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
			return testSnapshot(), nil
		},
	}
	limiter := &mocks.RateLimiterMock{
		AllowFunc: func(identifier string) (bool, int) { return false, 42 },
	}

	srv := New(testConfig(), settings, limiter, errs.NewClassifier(false), "test", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/settings", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Access-Token", "tok.valid.sig")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "42", resp.Header.Get("Retry-After"))

	var errResp errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, errs.CodeRateLimitExceeded, errResp.Code)
	assert.InDelta(t, 42, errResp.Extensions["retryAfter"], 0.01)

	assert.Empty(t, settings.GetSettingsCalls(), "denied before execution")
}

func TestServer_settingsHandlerUpstreamError(t *testing.T) {
	settings := &mocks.SettingsMock{
		GetSettingsFunc: func(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
			return nil, fmt.Errorf("fetch user settings: upstream profile returned status 500")
		},
	}

	srv := New(testConfig(), settings, allowAll(), errs.NewClassifier(false), "test", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/settings", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Access-Token", "tok.valid.sig")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var errResp errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, errs.CodeBadGateway, errResp.Code)
	assert.Equal(t, http.StatusBadGateway, errResp.HTTPStatus)
	assert.Equal(t, "bad gateway", errResp.Message, "raw upstream details never reach callers")
}

func TestServer_statusHandler(t *testing.T) {
	srv := New(testConfig(), &mocks.SettingsMock{}, allowAll(), errs.NewClassifier(false), "1.2.3", false)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
}

func TestOperationName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", http.NoBody)
	assert.Equal(t, "getUserSettings", operationName(req))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/other/settings", http.NoBody)
	assert.Equal(t, "GET /api/v1/other/settings", operationName(req))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	assert.Equal(t, "GET /api/v1/status", operationName(req))
}

func TestValidateCredential(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		code       errs.Code
	}{
		{"valid shape", "tok.valid.sig", ""},
		{"empty", "", errs.CodeUnauthorized},
		{"blank", "   ", errs.CodeUnauthorized},
		{"no dots", "abcdef", errs.CodeValidation},
		{"two segments", "head.payload", errs.CodeValidation},
		{"four segments", "a.b.c.d", errs.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCredential(tt.credential)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, err.(*errs.Error).Code)
		})
	}
}
