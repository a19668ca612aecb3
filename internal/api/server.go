package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/store"
)

// Server represents the API server
type Server struct {
	store   *store.Store
	metrics http.Handler
}

// NewServer creates a new API server. metrics is served at /metrics when
// it is not nil.
func NewServer(store *store.Store, metrics http.Handler) *Server {
	return &Server{
		store:   store,
		metrics: metrics,
	}
}

// Router creates and returns the HTTP router
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/feed_info", s.handleFeedInfo).Methods("GET")
	r.HandleFunc("/agencies", s.handleAgencies).Methods("GET")
	r.HandleFunc("/agencies/{id}", s.handleAgency).Methods("GET")
	r.HandleFunc("/routes", s.handleRoutes).Methods("GET")
	r.HandleFunc("/routes/{id}", s.handleRoute).Methods("GET")
	r.HandleFunc("/stops", s.handleStops).Methods("GET")
	r.HandleFunc("/stops/{id}", s.handleStop).Methods("GET")
	r.HandleFunc("/stops/{id}/stop_times", s.handleStopTimes).Methods("GET")
	r.HandleFunc("/trips", s.handleTrips).Methods("GET")
	r.HandleFunc("/trips/{id}", s.handleTrip).Methods("GET")
	r.HandleFunc("/shapes", s.handleShapes).Methods("GET")
	r.HandleFunc("/shapes/{id}", s.handleShape).Methods("GET")
	r.HandleFunc("/services", s.handleServices).Methods("GET")

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods("GET")
	}

	return s.corsMiddleware(r)
}

// corsMiddleware adds CORS headers to all responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
