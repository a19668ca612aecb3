package api

import (
	"net/http"
	"time"
)

// handleIndex handles the index route
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"version": "1.0.0",
		"name":    "GTFS Feed API",
		"time":    time.Now().Format(time.RFC3339),
	}
	if last := s.store.GetLastStaticUpdate(); !last.IsZero() {
		data["last_static_update"] = last.Format(time.RFC3339)
	}

	response := Response{
		Data: data,
		Links: map[string]string{
			"agencies":  "/agencies",
			"routes":    "/routes",
			"stops":     "/stops",
			"trips":     "/trips",
			"shapes":    "/shapes",
			"services":  "/services",
			"feed_info": "/feed_info",
		},
		Meta: map[string]interface{}{
			"counts": s.store.Counts(),
		},
	}
	if s.metrics != nil {
		response.Links["metrics"] = "/metrics"
	}

	s.sendResponse(w, r, response)
}

// handleHealth reports whether a feed has been loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	last := s.store.GetLastStaticUpdate()
	if last.IsZero() {
		s.sendErrorResponse(w, http.StatusServiceUnavailable, "No feed loaded yet")
		return
	}
	s.sendResponse(w, r, Response{
		Data: map[string]interface{}{
			"status":             "ok",
			"last_static_update": last.Format(time.RFC3339),
		},
	})
}
