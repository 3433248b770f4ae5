package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

func TestClient_SendsBearerOnlyWithToken(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := NewFactory(srv.URL, time.Second, nil)

	require.NoError(t, f.New("tok-123").Get(context.Background(), "/api/admin/owners", &map[string]any{}))
	assert.Equal(t, "Bearer tok-123", got.Load())

	require.NoError(t, f.New("").Get(context.Background(), "/api/admin/owners", &map[string]any{}))
	assert.Equal(t, "", got.Load())
	assert.False(t, f.New("").Authenticated())
}

func TestClient_PostEncodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/owners/7/documents/3/verdict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "APPROVED", body["verdict"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := NewFactory(srv.URL+"/", time.Second, nil).New("t").
		Post(context.Background(), "/api/admin/owners/7/documents/3/verdict", map[string]string{"verdict": "APPROVED"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Document already reviewed"}`))
	}))
	defer srv.Close()

	err := NewFactory(srv.URL, time.Second, nil).New("t").Post(context.Background(), "/x", map[string]string{}, nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Document already reviewed", apiErr.Message)
	assert.Equal(t, "Document already reviewed", MessageOf(err, "fallback"))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(err))
}

func TestClient_APIErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewFactory(srv.URL, time.Second, nil).New("expired").Get(context.Background(), "/x", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized", apiErr.Message)
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
	assert.True(t, IsUnauthorized(err))
}

func TestClient_DoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewFactory(srv.URL, time.Second, nil).New("t").Post(context.Background(), "/x", map[string]string{}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewFactory(url, time.Second, nil).New("t").Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestClient_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFactory(srv.URL, time.Second, nil).New("t").Get(ctx, "/x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind apperror.Kind
		msg  string
	}{
		{"unauthorized", &APIError{Status: 401, Message: "jwt expired"}, 401, apperror.KindAuth, "your session has expired, log in again"},
		{"not found", &APIError{Status: 404, Message: "Owner not found"}, 404, apperror.KindFetch, "Owner not found"},
		{"server error", &APIError{Status: 500, Message: "db down"}, 502, apperror.KindFetch, "db down"},
		{"server error without message", &APIError{Status: 503, Message: "Service Unavailable"}, 502, apperror.KindFetch, "failed to load owners"},
		{"transport", errors.New("dial tcp: refused"), 502, apperror.KindFetch, "failed to load owners"},
		{"timeout", context.DeadlineExceeded, 504, apperror.KindFetch, "timed out loading owners"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *apperror.AppError
			require.ErrorAs(t, FetchFailure(tt.err, "owners"), &appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}
