package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scanhook/pkg/controller/server"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/usecase"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

func newTestMux(t *testing.T) *chi.Mux {
	t.Helper()
	return server.New(usecase.New(infra.New())).Mux()
}

func TestMiddleware(t *testing.T) {
	t.Run("request scoped logger and request ID", func(t *testing.T) {
		var capturedCtx context.Context
		mux := newTestMux(t)
		mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
			capturedCtx = r.Context()
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		gt.False(t, logging.From(capturedCtx) == logging.From(context.Background()))
		reqID, ok := logging.RequestIDFrom(capturedCtx)
		gt.True(t, ok)
		gt.V(t, w.Header().Get("X-Request-ID")).Equal(string(reqID))
	})

	t.Run("caller request ID is kept", func(t *testing.T) {
		var capturedCtx context.Context
		mux := newTestMux(t)
		mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
			capturedCtx = r.Context()
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "delivery-123")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		reqID, _ := logging.RequestIDFrom(capturedCtx)
		gt.V(t, string(reqID)).Equal("delivery-123")
		gt.V(t, w.Header().Get("X-Request-ID")).Equal("delivery-123")
	})

	t.Run("oversized request ID is replaced", func(t *testing.T) {
		mux := newTestMux(t)
		mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {})

		long := strings.Repeat("x", 65)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", long)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		gt.False(t, w.Header().Get("X-Request-ID") == long)
		gt.False(t, w.Header().Get("X-Request-ID") == "")
	})

	t.Run("status code passes through", func(t *testing.T) {
		for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
			mux := newTestMux(t)
			mux.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			})

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
			gt.V(t, w.Code).Equal(code)
		}
	})

	t.Run("defaults to 200 when WriteHeader is not called", func(t *testing.T) {
		mux := newTestMux(t)
		mux.HandleFunc("/noheader", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/noheader", nil))
		gt.V(t, w.Code).Equal(http.StatusOK)
	})
}
