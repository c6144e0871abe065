// Package httpapi is the HTTP surface outside the core (§6.1): it exposes
// GET_CHUNK over HTTP, gzips responses, stamps each request with an id for
// log correlation, and enforces the coordinate bound the original service
// imposed on clients.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/przecze/rooms-of-roaming/internal/dungeon"
	"github.com/przecze/rooms-of-roaming/internal/httpapi/wsdebug"
)

// Server serves the chunk query endpoint over a Facade.
type Server struct {
	facade        *dungeon.Facade
	log           *log.Logger
	maxCoordinate int64
	debugHub      *wsdebug.Hub // nil disables the debug stream
}

// NewServer constructs a Server. maxCoordinate bounds the |cx|,|cy| a
// client may request; 0 disables the bound. debugHub may be nil to
// disable the websocket debug-timing stream entirely.
func NewServer(facade *dungeon.Facade, logger *log.Logger, maxCoordinate int64, debugHub *wsdebug.Hub) *Server {
	return &Server{facade: facade, log: logger, maxCoordinate: maxCoordinate, debugHub: debugHub}
}

// Routes registers the server's handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/chunk", s.withRequestID(s.handleChunk))
	if s.debugHub != nil {
		mux.HandleFunc("/api/chunk/debug-stream", s.debugHub.Handler())
	}
}

// withRequestID stamps every response with an X-Request-Id header and logs
// the request's method, path, and duration using a plain log.Logger — no
// structured logging in this codebase.
func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next(w, r)
		s.log.Printf("request_id=%s method=%s path=%s duration_ms=%d",
			id, r.Method, r.URL.Path, time.Since(start).Milliseconds())
	}
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cx, cy, err := parseCoordinates(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.checkCoordinateBound(cx, cy); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	debug := r.URL.Query().Get("debug") == "true" || r.URL.Query().Get("debug") == "1"

	start := time.Now()
	chunk, err := s.facade.GetChunk(cx, cy)
	overheadMS := time.Since(start).Milliseconds()
	if err != nil {
		s.log.Printf("chunk generation failed for (%d,%d): %v", cx, cy, err)
		http.Error(w, "chunk generation failed", http.StatusInternalServerError)
		return
	}

	var body any
	if debug {
		body = newChunkDebugResponse(chunk, overheadMS)
		if s.debugHub != nil {
			s.debugHub.Broadcast(wsdebug.Event{
				CX:             cx,
				CY:             cy,
				GenerationTime: chunk.GenerationMS,
				Alpha:          chunk.Wavelengths.Alpha,
				Beta:           chunk.Wavelengths.Beta,
			})
		}
	} else {
		body = newChunkResponse(chunk)
	}
	writeJSON(w, r, http.StatusOK, body)
}

func parseCoordinates(r *http.Request) (cx, cy int, err error) {
	q := r.URL.Query()
	cx64, err := strconv.ParseInt(q.Get("cx"), 10, 64)
	if err != nil {
		return 0, 0, &parseError{field: "cx"}
	}
	cy64, err := strconv.ParseInt(q.Get("cy"), 10, 64)
	if err != nil {
		return 0, 0, &parseError{field: "cy"}
	}
	return int(cx64), int(cy64), nil
}

type parseError struct{ field string }

func (e *parseError) Error() string { return "httpapi: missing or invalid query parameter: " + e.field }

func (s *Server) checkCoordinateBound(cx, cy int) error {
	if s.maxCoordinate <= 0 {
		return nil
	}
	if abs64(int64(cx)) > s.maxCoordinate || abs64(int64(cy)) > s.maxCoordinate {
		return &ErrCoordinateOutOfRange{CX: cx, CY: cy, Max: s.maxCoordinate}
	}
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// writeJSON marshals body as the response, gzip-compressing it when the
// client advertises support via Accept-Encoding.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")

	if !acceptsGzip(r) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(status)
	gz := gzip.NewWriter(w)
	defer gz.Close()
	_ = json.NewEncoder(gz).Encode(body)
}

func acceptsGzip(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(enc) == "gzip" {
			return true
		}
	}
	return false
}
