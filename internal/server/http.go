// Package server exposes the scanner and the parser over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/karupanerura/lox-frontend/internal/config"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/frontend"
	"github.com/karupanerura/lox-frontend/internal/scanner"
	"github.com/karupanerura/lox-frontend/internal/token"
)

type request struct {
	Source string      `json:"source"`
	Mode   config.Mode `json:"mode"`
}

type scanResponse struct {
	Tokens      []token.Token    `json:"tokens"`
	Diagnostics diagnostics.List `json:"diagnostics,omitempty"`
}

func (r *scanResponse) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics
}

type stats struct {
	Requests    uint64 `json:"requests"`
	ScanErrors  uint64 `json:"scanErrors"`
	ParseErrors uint64 `json:"parseErrors"`
}

type httpHandler struct {
	// accessed atomically; keep 64-bit aligned
	requests    uint64
	scanErrors  uint64
	parseErrors uint64

	cfg config.Config
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/scan":
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.scan(w, r)

	case "/v1/parse":
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.parse(w, r)

	case "/v1/stats":
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stats(w, r)

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *httpHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*request, bool) {
	defer r.Body.Close()
	atomic.AddUint64(&h.requests, 1)

	// JSON escaping may grow the source, so leave room for it
	body := io.LimitReader(r.Body, int64(h.cfg.MaxSourceBytes)*6+1024)
	var req request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}
	if len(req.Source) > h.cfg.MaxSourceBytes {
		http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return &req, true
}

func (h *httpHandler) scan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	var collector diagnostics.Collector
	tokens := scanner.New(req.Source, scanner.WithReporter(&collector), scanner.WithDebug(h.cfg.Debug)).ScanTokens()
	res := &scanResponse{Tokens: tokens, Diagnostics: collector.Errors()}

	if res.Err() != nil {
		atomic.AddUint64(&h.scanErrors, 1)
	}
	if err := resJSON(w, res); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) parse(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	cfg := h.cfg
	if req.Mode != "" {
		cfg.Mode = req.Mode
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
		return
	}

	result := frontend.Run(req.Source, cfg, nil)
	if result.Err() != nil {
		if result.Parsed {
			atomic.AddUint64(&h.parseErrors, 1)
		} else {
			atomic.AddUint64(&h.scanErrors, 1)
		}
	}
	if err := resJSON(w, result); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) stats(w http.ResponseWriter, r *http.Request) {
	s := stats{
		Requests:    atomic.LoadUint64(&h.requests),
		ScanErrors:  atomic.LoadUint64(&h.scanErrors),
		ParseErrors: atomic.LoadUint64(&h.parseErrors),
	}
	if err := resJSON(w, s); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func NewHTTPHandler(cfg config.Config) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &httpHandler{cfg: cfg}, nil
}

type diagnosed interface {
	Err() error
}

// resJSON writes v with a status derived from its diagnostics: 422 when v carries any,
// 200 otherwise.
func resJSON(w http.ResponseWriter, v any) error {
	status := http.StatusOK
	if d, ok := v.(diagnosed); ok {
		var errs diagnostics.List
		if err := d.Err(); errors.As(err, &errs) && len(errs) != 0 {
			status = http.StatusUnprocessableEntity
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "  ", json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	return nil
}
