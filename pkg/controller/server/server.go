package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/secmon-lab/scanhook/pkg/domain/interfaces"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/utils/async"
	"github.com/secmon-lab/scanhook/pkg/utils/errutil"
	"github.com/secmon-lab/scanhook/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

// writeError maps use case errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrValidationFailed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	case errors.Is(err, types.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, types.ErrUnsupportedChannel):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown channel"})
	default:
		errutil.HandleError(r.Context(), "fail to handle request", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

type config struct {
	ghSecret types.GitHubWebhookSecret
	runner   *async.Runner
}

type Option func(*config)

// WithGitHubSecret enables webhook signature validation.
func WithGitHubSecret(secret types.GitHubWebhookSecret) Option {
	return func(cfg *config) {
		cfg.ghSecret = secret
	}
}

// WithRunner sets the runner of test runs triggered by webhooks. The caller
// owns it and waits for it on shutdown.
func WithRunner(runner *async.Runner) Option {
	return func(cfg *config) {
		cfg.runner = runner
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.runner == nil {
		cfg.runner = async.New()
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/{channel}", handleWebhook(uc, cfg))

		r.With(knownChannel).Post("/subscription/{channel}/{environment}", handleSubscribe(uc))
		r.With(knownChannel).Delete("/subscription/{channel}/{environment}", handleUnsubscribe(uc))
		r.With(knownChannel).Get("/subscriptions/{channel}/{environment}", handleListSubscriptions(uc))
		r.With(knownChannel).Get("/scan/{channel}/{scan}", handleGetScan(uc))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// Handler is the mux instrumented with OpenTelemetry.
func (x *Server) Handler() http.Handler {
	return otelhttp.NewHandler(x.mux, "scanhook")
}

func channelOf(r *http.Request) types.Channel {
	return types.Channel(chi.URLParam(r, "channel"))
}

func knownChannel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if channelOf(r) != types.ChannelGitHub {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown channel"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
