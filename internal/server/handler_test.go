package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/testutil"
)

func TestNewHandler_RoutesAPIAndPages(t *testing.T) {
	app, err := factory.New(t.Context(), factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)
	handler := NewHandler(app, testutil.NopLogger(), "")

	tests := []struct {
		path        string
		wantStatus  int
		contentType string
	}{
		{"/api/v1/health", http.StatusOK, "application/json"},
		{"/api/v1/presets", http.StatusOK, "application/json"},
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/login", http.StatusOK, "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), tt.contentType)
		})
	}
}

func TestNewHandler_APIUnauthorizedStaysJSON(t *testing.T) {
	app, err := factory.New(t.Context(), factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)
	handler := NewHandler(app, testutil.NopLogger(), "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}
