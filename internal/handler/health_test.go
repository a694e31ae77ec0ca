package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPool struct {
	err error
}

func (p stubPool) Ping(context.Context) error { return p.err }
func (p stubPool) Close()                     {}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReadyz(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleReadyz(stubPool{}, Integrations{Payments: true}).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, CheckUp, resp.Checks["database"])
		assert.Equal(t, CheckEnabled, resp.Checks["payments"])
		assert.Equal(t, CheckDisabled, resp.Checks["mail"], "a disabled integration does not fail readiness")
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleReadyz(stubPool{err: errors.New("connection refused")}, Integrations{}).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgDatabaseConnFailed)
		assert.NotContains(t, rec.Body.String(), "refused")
		var resp HealthResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, CheckDown, resp.Checks["database"])
	})
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleVersion("1.4.2").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var info VersionInfo
	decodeBody(t, rec, &info)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
