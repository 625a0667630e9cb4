package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testURL(t *testing.T, srv *httptest.Server, path string) *url.URL {
	t.Helper()
	u, err := url.Parse(srv.URL + path)
	require.NoError(t, err)
	return u
}

func TestGet(t *testing.T) {
	t.Run("Should return the response body on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte("hello"))
		}))
		t.Cleanup(srv.Close)

		resp, err := Get(context.Background(), srv.Client(), testURL(t, srv, "/page"), nil)

		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("Should return a StatusError on client and server errors", func(t *testing.T) {
		for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))

			_, err := Get(context.Background(), srv.Client(), testURL(t, srv, "/page"), nil)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr, "status %d", code)
			assert.Equal(t, code, statusErr.Code)
			srv.Close()
		}
	})

	t.Run("Should accept redirect-resolved responses below 400", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/old" {
				http.Redirect(w, r, "/new", http.StatusMovedPermanently)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		resp, err := Get(context.Background(), srv.Client(), testURL(t, srv, "/old"), nil)

		require.NoError(t, err)
		resp.Body.Close()
	})

	t.Run("Should merge extra headers into the request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			assert.Equal(t, "huginn-test", r.Header.Get("User-Agent"))
		}))
		t.Cleanup(srv.Close)

		extra := http.Header{}
		extra.Set("Authorization", "Bearer token-123")
		extra.Set("User-Agent", "huginn-test")

		resp, err := Get(context.Background(), srv.Client(), testURL(t, srv, "/page"), extra)

		require.NoError(t, err)
		resp.Body.Close()
	})

	t.Run("Should surface transport errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		target := testURL(t, srv, "/page")
		srv.Close()

		_, err := Get(context.Background(), http.DefaultClient, target, nil)

		require.Error(t, err)
		var statusErr *StatusError
		assert.False(t, errors.As(err, &statusErr), "transport errors are not status errors")
	})
}

func TestHead(t *testing.T) {
	t.Run("Should succeed without fetching a body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
		}))
		t.Cleanup(srv.Close)

		err := Head(context.Background(), srv.Client(), testURL(t, srv, "/page"), nil)

		require.NoError(t, err)
	})

	t.Run("Should return a StatusError on 404", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		err := Head(context.Background(), srv.Client(), testURL(t, srv, "/gone"), nil)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
	})

	t.Run("Should honor context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Head(ctx, srv.Client(), testURL(t, srv, "/page"), nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	err := &StatusError{Code: http.StatusServiceUnavailable}
	assert.Equal(t, "unexpected status 503 Service Unavailable", err.Error())
}
