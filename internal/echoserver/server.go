// Package echoserver is a minimal local implementation of the chat endpoint
// wire contract. It answers every message with a fixed prefix plus the text,
// which is enough to drive the client end to end without a real backend.
package echoserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Responder turns a user message into the reply text.
type Responder func(message string) string

// PrefixResponder echoes the message behind prefix.
func PrefixResponder(prefix string) Responder {
	return func(message string) string {
		return prefix + message
	}
}

// Handler serves POST /api/chat.
type Handler struct {
	respond Responder
	logger  *zap.Logger
}

// New creates the chat handler. A nil responder echoes with "Echo: ".
func New(respond Responder, logger *zap.Logger) *Handler {
	if respond == nil {
		respond = PrefixResponder("Echo: ")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{respond: respond, logger: logger}
}

// RegisterRoutes registers the chat route on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message *string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == nil || strings.TrimSpace(*payload.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"response": h.respond(*payload.Message)})
}

// NewRouter wires the echo backend routes and middleware.
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(api chi.Router) {
		h.RegisterRoutes(api)
	})
	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("echo backend listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("echo backend shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
