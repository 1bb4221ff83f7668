// Package randsrv serves generator output over HTTP: JSON word draws,
// raw byte blocks, a stats endpoint, and an endless websocket stream.
// One seeded generator backs the request/response endpoints behind a
// lock; every websocket connection gets its own stream selector, so
// parallel consumers draw pairwise independent sequences.
package randsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/tutils/krull"
)

// APIResponse is the envelope of all JSON endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DrawResponse is the payload of /api/draw.
type DrawResponse struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

// StatsResponse is the payload of /api/stats.
type StatsResponse struct {
	BytesServed int64  `json:"bytesServed"`
	RatePerSec  int64  `json:"ratePerSec"`
	Streams     uint64 `json:"streams"`
}

const (
	maxDrawWords    = 1 << 12
	maxBlockBytes   = 1 << 24
	streamChunkSize = 32 << 10
)

// Server is the random service.
type Server struct {
	opts   ServerOptions
	srv    *http.Server
	shared *krull.Rand

	// next stream selector handed to a websocket connection;
	// stream 0 belongs to the shared request generator
	nextStream uint64
}

// NewServer create a new Server
func NewServer(opts ...ServerOption) *Server {
	opt := newServerOptions(opts...)

	s := &Server{
		opts:   *opt,
		shared: krull.NewRand(krull.NewSyncSource(opt.sourceNewer(opt.seedMaterial, 0))),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/draw", s.handleDraw)
	mux.HandleFunc("/api/bytes", s.handleBytes)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/stream", s.handleStream)
	s.srv = &http.Server{
		Addr:    opt.addr,
		Handler: mux,
	}

	return s
}

// ListenAndServe serves until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] random service listening on %s", s.opts.addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, resp *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "encode response failed", http.StatusInternalServerError)
	}
}

// countQuery parses the n query parameter within [1, max], with a
// default of def.
func countQuery(r *http.Request, def, max int) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	if n > max {
		return 0, fmt.Errorf("count %d exceeds limit %d", n, max)
	}
	return n, nil
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	n, err := countQuery(r, 1, maxDrawWords)
	if err != nil {
		writeJSON(w, &APIResponse{Success: false, Error: err.Error()})
		return
	}

	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%016x", s.shared.Uint64())
	}
	if c := s.opts.bytesCounter; c != nil {
		c.Add(int64(n) * 8)
	}
	writeJSON(w, &APIResponse{Success: true, Data: &DrawResponse{Count: n, Words: words}})
}

func (s *Server) handleBytes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	n, err := countQuery(r, 64, maxBlockBytes)
	if err != nil {
		writeJSON(w, &APIResponse{Success: false, Error: err.Error()})
		return
	}

	buf := make([]byte, n)
	s.shared.Read(buf)
	if c := s.opts.bytesCounter; c != nil {
		c.Add(int64(n))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(n))
	w.Write(buf)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := &StatsResponse{
		Streams: s.streamCount(),
	}
	if c := s.opts.bytesCounter; c != nil {
		stats.BytesServed = c.Value()
		stats.RatePerSec = c.RatePerSec()
	}
	writeJSON(w, &APIResponse{Success: true, Data: stats})
}
