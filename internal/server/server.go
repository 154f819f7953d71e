package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"xactscope/internal"
	"xactscope/internal/scope"
)

// maxRequestBodySize limits POST body sizes.
const maxRequestBodySize = 1 << 20

// Recorder persists lookup audit entries. storage.DB satisfies it.
type Recorder interface {
	RecordLookup(entry internal.LookupLog) error
}

type Server struct {
	svc      *scope.Service
	recorder Recorder
}

// New builds the HTTP front for svc. recorder may be nil.
func New(svc *scope.Service, recorder Recorder) *Server {
	return &Server{svc: svc, recorder: recorder}
}

// Handler registers:
//
//	POST /scope
//	GET  /healthz
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scope", s.handleScope)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) handleScope(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req := decodeScopeRequest(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).WithDefaults()
	res := s.svc.Lookup(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	log.WithFields(log.Fields{
		"input":       req.Input,
		"status":      res.Status,
		"matches":     res.Matches,
		"related":     len(res.RelatedItems),
		"duration_ms": elapsed,
	}).Info("scope lookup")

	if s.recorder != nil {
		entry := internal.LookupLog{
			TraceID:    traceID(),
			Input:      req.Input,
			Quantity:   req.Quantity,
			Action:     req.Action,
			Status:     res.Status,
			Matches:    res.Matches,
			Related:    len(res.RelatedItems),
			DurationMs: elapsed,
		}
		if err := s.recorder.RecordLookup(entry); err != nil {
			log.WithError(err).Warn("failed to record lookup")
		}
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "items": s.svc.CatalogSize()})
}

// decodeScopeRequest never fails: an unreadable body or a field of the wrong
// type leaves that field empty and the lookup defaults take over.
func decodeScopeRequest(body io.Reader) scope.Request {
	var raw map[string]any
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return scope.Request{}
	}
	return scope.Request{
		Input:    asString(raw["input"]),
		Quantity: asString(raw["quantity"]),
		Action:   asString(raw["action"]),
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("lookup-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
