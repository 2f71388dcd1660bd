// Package server exposes the operation registry over HTTP.
//
//	POST /invoke             run one operation
//	POST /batch              run many operations concurrently
//	GET  /operations         list descriptors
//	GET  /operations/{id}    one descriptor
//	GET  /schema             machine-readable schema
//	GET  /health             liveness check
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/internal/config"
	"github.com/njchilds90/geographer/registry"
)

const requestIDHeader = "X-Request-ID"

// maxBatch bounds the number of requests accepted by /batch.
const maxBatch = 256

type Server struct {
	reg *registry.Registry
	cfg config.Server
	log *zap.Logger
}

func New(reg *registry.Registry, cfg config.Server, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{reg: reg, cfg: cfg, log: log}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID, s.accessLog, middleware.Recoverer)
	r.Post("/invoke", s.invoke)
	r.Post("/batch", s.batch)
	r.Route("/operations", func(r chi.Router) {
		r.Get("/", s.operations)
		r.Get("/{id}", s.operation)
	})
	r.Get("/schema", s.schema)
	r.Get("/health", s.health)
	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		BaseContext:       func(net.Listener) context.Context { return egCtx },
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	eg.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.Int("operations", s.reg.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// ============================================================
// Middleware
// ============================================================

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// ============================================================
// Handlers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind diag.Kind, msg string) {
	writeJSON(w, status, geographer.Response{Error: &geographer.Failure{Kind: kind, Message: msg}})
}

// decode reads exactly one JSON value, rejecting unknown fields and
// trailing data.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, diag.InvalidArgument, "invalid JSON: "+err.Error())
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, diag.InvalidArgument, "invalid JSON: trailing data")
		return false
	}
	return true
}

func statusFor(resp geographer.Response) int {
	if resp.Error == nil {
		return http.StatusOK
	}
	switch resp.Error.Kind {
	case diag.NotFound:
		return http.StatusNotFound
	case diag.InvalidArgument:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	var req registry.Request
	if !s.decode(w, r, &req) {
		return
	}
	resp := geographer.Handle(s.reg, req)
	if resp.Error != nil {
		s.log.Debug("invoke failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("operation", req.ID),
			zap.String("kind", string(resp.Error.Kind)))
	}
	writeJSON(w, statusFor(resp), resp)
}

type batchRequest struct {
	Requests []registry.Request `json:"requests"`
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Requests) > maxBatch {
		writeError(w, http.StatusBadRequest, diag.InvalidArgument, fmt.Sprintf("batch of %d exceeds the limit of %d", len(req.Requests), maxBatch))
		return
	}
	out, err := s.reg.Batch(r.Context(), req.Requests, s.cfg.BatchLimit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, diag.Internal, err.Error())
		return
	}
	resps := make([]geographer.Response, len(out))
	for i, o := range out {
		resps[i] = geographer.Envelope(o.Result, o.Err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": resps})
}

func (s *Server) operations(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	ds := []registry.Descriptor{}
	for _, d := range s.reg.Descriptors() {
		if domain == "" || d.Domain == domain {
			ds = append(ds, d)
		}
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) operation(w http.ResponseWriter, r *http.Request) {
	d, err := s.reg.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, diag.KindOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) schema(w http.ResponseWriter, r *http.Request) {
	b, err := s.reg.SchemaJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, diag.Internal, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"operations": s.reg.Len(),
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
