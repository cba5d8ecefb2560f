// Package web serves a small read-only dashboard over the calculator state:
// current prices, wage catalog, history and a live event stream replayed
// from the audit journal.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/services/journal"
)

const eventPollInterval = 2 * time.Second

type stateReader interface {
	ActivePrices() domain.PriceSet
	ListWages() []domain.WageEntry
	ListHistory() []domain.HistoryRecord
}

type journalReader interface {
	EventsAfter(index uint64) ([]journal.IndexedRecord, error)
}

// Server exposes HTTP endpoints serving the HTML page, JSON state and an
// SSE stream of journal events.
type Server struct {
	addr    string
	state   stateReader
	journal journalReader
	logger  *zap.Logger
}

// NewServer creates a dashboard server over the given readers.
func NewServer(addr string, state stateReader, jr journalReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{addr: addr, state: state, journal: jr, logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/prices", s.handlePrices)
		r.Get("/wages", s.handleWages)
		r.Get("/history", s.handleHistory)
	})
	r.Get("/events/stream", s.handleEventStream)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handlePrices(w http.ResponseWriter, _ *http.Request) {
	ps := s.state.ActivePrices()
	s.writeJSON(w, map[string]string{
		"gold_without_gst":   ps.GoldWithoutGST.String(),
		"gold_with_gst":      ps.GoldWithGST.String(),
		"silver_without_gst": ps.SilverWithoutGST.String(),
		"silver_with_gst":    ps.SilverWithGST.String(),
	})
}

type wageView struct {
	ID    int64  `json:"id"`
	SrNo  int    `json:"sr_no"`
	Label string `json:"label"`
	Rate  string `json:"rate"`
}

func (s *Server) handleWages(w http.ResponseWriter, _ *http.Request) {
	entries := s.state.ListWages()
	views := make([]wageView, 0, len(entries))
	for _, e := range entries {
		views = append(views, wageView{ID: e.ID, SrNo: e.SrNo, Label: e.Label, Rate: e.Rate.String()})
	}
	s.writeJSON(w, views)
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.state.ListHistory())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response failed", zap.Error(err))
	}
}

func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("journal not available"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(eventPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendEvents := func() error {
		records, err := s.journal.EventsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Record)
			if err != nil {
				return err
			}
			if _, err := w.Write([]byte("event: session\ndata: " + string(payload) + "\n\n")); err != nil {
				return err
			}
			flusher.Flush()
			lastIndex = record.Index
		}
		return nil
	}

	if err := sendEvents(); err != nil {
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		s.logger.Warn("event stream initial load failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendEvents(); err != nil {
				s.logger.Warn("event stream poll failed", zap.Error(err))
			}
		}
	}
}
