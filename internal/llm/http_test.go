package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPInvoker(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generation":"ok"}`))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, "secret", 5*time.Second, nil)
	raw, err := inv.Invoke(context.Background(), "meta.llama3-8b-instruct-v1:0", []byte(`{"prompt":"p"}`))
	require.NoError(t, err)

	assert.Equal(t, "/model/meta.llama3-8b-instruct-v1:0/invoke", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.JSONEq(t, `{"prompt":"p"}`, string(gotBody))
	assert.JSONEq(t, `{"generation":"ok"}`, string(raw))
}

func TestHTTPInvokerNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":"ThrottlingException","message":"slow down"}`))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, "", 5*time.Second, nil)
	_, err := inv.Invoke(context.Background(), "amazon.titan-text-express-v1", []byte(`{}`))
	require.Error(t, err)

	var invokeErr *InvokeError
	require.True(t, errors.As(err, &invokeErr))
	assert.Equal(t, "ThrottlingException", invokeErr.Code)
	assert.Contains(t, invokeErr.Message, "429")
}

func TestHTTPInvokerNon2xxWithoutCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(srv.URL, "", 5*time.Second, nil)
	_, err := inv.Invoke(context.Background(), "m", []byte(`{}`))

	var invokeErr *InvokeError
	require.True(t, errors.As(err, &invokeErr))
	assert.Equal(t, "HTTP_500", invokeErr.Code)
}
