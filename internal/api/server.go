// Package api exposes the transcoder and the dataset store over HTTP JSON.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/db"
	"github.com/tactile-data/braillegen/internal/httputil"
	"github.com/tactile-data/braillegen/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db *db.DB
}

// NewServer creates an API server. db may be nil, in which case the store
// endpoints report 404 and the transcoder endpoints still work.
func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/encode", s.handleEncode)
	mux.HandleFunc("/api/decode", s.handleDecode)
	mux.HandleFunc("/api/compress", s.handleCompress)
	mux.HandleFunc("/api/explain", s.handleExplain)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

type encodeRequest struct {
	Text  string `json:"text"`
	Grade int    `json:"grade"`
}

type encodeResponse struct {
	Cells     string `json:"cells"`
	Grade     int    `json:"grade"`
	CellCount int    `json:"cell_count"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	var cells string
	switch req.Grade {
	case 0, 1:
		req.Grade = 1
		cells = braille.EncodeGrade1(req.Text)
	case 2:
		cells = braille.EncodeGrade2(req.Text)
	default:
		httputil.BadRequest(w, "grade must be 1 or 2")
		return
	}

	httputil.WriteJSONOK(w, encodeResponse{
		Cells:     cells,
		Grade:     req.Grade,
		CellCount: braille.CountCells(cells),
	})
}

type decodeRequest struct {
	Cells string `json:"cells"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"text": braille.DecodeGrade1(req.Cells),
	})
}

type compressRequest struct {
	Phrase string `json:"phrase"`
	Cells  int    `json:"cells"`
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req compressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Cells < 1 {
		httputil.BadRequest(w, "cells must be at least 1")
		return
	}

	cells, rationale := braille.CompressToCells(req.Phrase, req.Cells)
	httputil.WriteJSONOK(w, map[string]any{
		"cells":      cells,
		"rationale":  rationale,
		"cell_count": braille.CountCells(cells),
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	cellParam := r.URL.Query().Get("cell")
	cell, size := utf8.DecodeRuneInString(cellParam)
	if cellParam == "" || size != len(cellParam) || !braille.IsCell(cell) {
		httputil.BadRequest(w, "cell must be a single braille character")
		return
	}

	resp := map[string]string{"cell": string(cell)}
	if word, ok := braille.LookupContraction(string(cell)); ok {
		resp["word"] = word
	}
	if explanation, ok := braille.ExplainCell(cell); ok {
		resp["explanation"] = explanation
	}
	if len(resp) == 1 {
		httputil.NotFound(w, "no contraction known for that cell")
		return
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.NotFound(w, "no dataset store configured")
		return
	}

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 || v > 10000 {
			httputil.BadRequest(w, "limit must be an integer in [1,10000]")
			return
		}
		limit = v
	}

	recs, err := s.db.RecentRecords(limit)
	if err != nil {
		log.Printf("failed to list records: %v", err)
		httputil.InternalServerError(w, "failed to list records")
		return
	}
	httputil.WriteJSONOK(w, recs)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.NotFound(w, "no dataset store configured")
		return
	}

	stats, err := s.db.TaskStats()
	if err != nil {
		log.Printf("failed to compute stats: %v", err)
		httputil.InternalServerError(w, "failed to compute stats")
		return
	}
	total, err := s.db.CountRecords()
	if err != nil {
		log.Printf("failed to count records: %v", err)
		httputil.InternalServerError(w, "failed to compute stats")
		return
	}
	httputil.WriteJSONOK(w, map[string]any{
		"total": total,
		"tasks": stats,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}
