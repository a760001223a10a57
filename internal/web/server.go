// Package web provides the HTTP control surface for the clock daemon.
// The page and API read from the status tracker; control endpoints route
// through the tracker so every change is validated and serialized.
package web

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sweeney/matrix-clock/internal/status"
)

// Server serves the status page, JSON API, and control endpoints.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	hub        *Hub
}

// New creates a Server that reads and mutates state via the tracker.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker, hub: NewHub()}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/time", s.handleTime)
	mux.HandleFunc("/api/matrix", s.handleMatrix)
	mux.HandleFunc("/power", s.handlePower)
	mux.HandleFunc("/brightness", s.handleBrightness)
	mux.HandleFunc("/format", s.handleFormat)
	mux.HandleFunc("/units", s.handleUnits)
	mux.HandleFunc("/timezone", s.handleTimezone)
	mux.HandleFunc("/schedule", s.handleSchedule)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/ws", s.hub.HandleWS)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

// NotifyRefresh pushes a refresh hint to connected websocket clients.
// Called by the control loop when the ambient light changes enough that
// the page should re-poll.
func (s *Server) NotifyRefresh() {
	s.hub.Broadcast([]byte(`{"refresh":true}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

// handleStatus returns the full status document. Reading it consumes the
// one-shot light-changed flag; everything else is untouched.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap, s.tracker.ConsumeLightChanged()))
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(formatTimeJSON(snap))
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(formatMatrixJSON(snap))
}

// writeStatus is the common response for control endpoints: the page
// re-renders from the returned document.
func (s *Server) writeStatus(w http.ResponseWriter) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap, false))
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.tracker.TogglePower(time.Now())
	s.writeStatus(w)
}

// handleBrightness accepts either mode=toggle (flip auto/manual) or
// value=N (set the manual level, clamped to 1..15).
func (s *Server) handleBrightness(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if r.FormValue("mode") == "toggle" {
		s.tracker.ToggleBrightnessMode()
		s.writeStatus(w)
		return
	}
	raw := r.FormValue("value")
	if raw == "" {
		http.Error(w, "mode=toggle or value=N required", http.StatusBadRequest)
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "value must be an integer", http.StatusBadRequest)
		return
	}
	s.tracker.SetManualBrightness(value)
	s.writeStatus(w)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.tracker.ToggleTimeFormat()
	s.writeStatus(w)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.tracker.ToggleTempUnit()
	s.writeStatus(w)
}

func (s *Server) handleTimezone(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	if !s.tracker.RequestTimezone(index) {
		http.Error(w, "timezone index out of range", http.StatusBadRequest)
		return
	}
	s.writeStatus(w)
}

// handleSchedule updates the nightly OFF window. Fields outside their
// valid range are clamped, matching the display's own behavior.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	enabled := r.FormValue("enabled") == "1" || r.FormValue("enabled") == "true"
	startHour := formInt(r, "start_hour")
	startMin := formInt(r, "start_min")
	endHour := formInt(r, "end_hour")
	endMin := formInt(r, "end_min")
	s.tracker.UpdateSchedule(enabled, startHour, startMin, endHour, endMin)
	s.writeStatus(w)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.tracker.RequestReset()
	s.writeStatus(w)
}

func formInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.FormValue(key))
	return v
}
