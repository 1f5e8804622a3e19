package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(endpoint string) *googleVerifier {
	return &googleVerifier{
		endpoint: endpoint,
		secret:   "test-secret",
		client:   &http.Client{Timeout: time.Second},
		logger:   zerolog.Nop(),
	}
}

func TestNewVerifier_NoSecretAlwaysPasses(t *testing.T) {
	v := NewVerifier("", zerolog.Nop())

	ok, err := v.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGoogleVerifier_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok-1", r.PostForm.Get("response"))
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	ok, err := newTestVerifier(server.URL).Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGoogleVerifier_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	ok, err := newTestVerifier(server.URL).Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoogleVerifier_EmptyTokenSkipsCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	ok, err := newTestVerifier(server.URL).Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestGoogleVerifier_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestVerifier(server.URL).Verify(context.Background(), "tok-1")
	assert.Error(t, err)
}
