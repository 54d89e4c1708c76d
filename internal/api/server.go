package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/monitoring"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/occupancy"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

const defaultEventsLimit = 50

// Controller is the subset of thermal.Pipeline the control endpoints drive.
// Defined as an interface so tests can wire a fake instead of a real
// pipeline.
type Controller interface {
	Recalibrate()
	Stop(wallClock time.Time)
}

// Server wires the occupancy counter, event store and pipeline controls
// onto an http.ServeMux.
type Server struct {
	counter *occupancy.Counter
	store   *persistence.Store
	ctrl    Controller
	mux     *http.ServeMux
}

// New builds a Server and registers its routes on a fresh mux. store may be
// nil: none of these handlers read it, and /events serves the counter's
// in-memory history.
func New(counter *occupancy.Counter, store *persistence.Store, ctrl Controller) *Server {
	s := &Server{
		counter: counter,
		store:   store,
		ctrl:    ctrl,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the mux so callers can wrap it (middleware, admin routes)
// or pass it directly to http.Server.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/events", s.handleEvents)
	s.mux.HandleFunc("/control/reset", s.handleControlReset)
	s.mux.HandleFunc("/control/recalibrate", s.handleControlRecalibrate)
	s.mux.HandleFunc("/control/stop", s.handleControlStop)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
}

type statusResponse struct {
	Occupancy int64     `json:"occupancy"`
	Entrances int64     `json:"entrances"`
	Exits     int64     `json:"exits"`
	Since     time.Time `json:"since"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entrances, exits := s.counter.EntrancesAndExits()
	writeJSON(w, statusResponse{
		Occupancy: s.counter.Count(),
		Entrances: entrances,
		Exits:     exits,
		Since:     s.counter.Since(),
	})
}

type eventResponse struct {
	TrackID    int64             `json:"track_id"`
	Direction  thermal.Direction `json:"direction"`
	WallClock  time.Time         `json:"wall_clock"`
	FrameIndex int64             `json:"frame_index"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultEventsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events := s.counter.Recent(limit)
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			TrackID:    e.TrackID,
			Direction:  e.Direction,
			WallClock:  e.WallClock,
			FrameIndex: e.FrameIndex,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleControlReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.counter.Reset()
	monitoring.Logf("api: reset_counts control signal received")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleControlRecalibrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.ctrl.Recalibrate()
	monitoring.Logf("api: recalibrate control signal received")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleControlStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.ctrl.Stop(time.Now())
	monitoring.Logf("api: stop control signal received")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("api: failed to encode JSON response: %v", err)
	}
}
