package api

import (
	"net/http"
	"slices"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleTrips handles the trips collection endpoint
func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	var trips []*models.Trip
	switch {
	case options.HasFilter("route"):
		// Filter by route is a common case, use optimized store method
		for _, routeID := range options.GetFilter("route") {
			trips = append(trips, s.store.GetTripsByRoute(routeID)...)
		}
	case options.HasFilter("service"):
		for _, serviceID := range options.GetFilter("service") {
			trips = append(trips, s.store.GetTripsByService(serviceID)...)
		}
	default:
		trips = s.store.GetAllTrips()
	}

	trips = filter.Filter(trips, func(trip *models.Trip) bool {
		return options.Matches("id", trip.ID) &&
			options.Matches("service", trip.ServiceID) &&
			options.Matches("block", trip.BlockID)
	})

	if options.HasFilter("direction_id") {
		dirs, err := options.GetInts("direction_id")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		trips = filter.Filter(trips, func(trip *models.Trip) bool {
			return slices.Contains(dirs, int(trip.DirectionID))
		})
	}

	if options.HasFilter("date") {
		date, err := options.GetDate("date")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		services := s.store.ActiveServices(date)
		trips = filter.Filter(trips, func(trip *models.Trip) bool {
			return slices.Contains(services, trip.ServiceID)
		})
	}

	if options.HasSort() {
		err := filter.SortBy(trips, options.GetSort(), map[string]filter.CompareFunc[*models.Trip]{
			"id":           filter.By(func(t *models.Trip) string { return t.ID }),
			"headsign":     filter.By(func(t *models.Trip) string { return t.Headsign }),
			"route":        filter.By(func(t *models.Trip) string { return t.RouteID }),
			"block_id":     filter.By(func(t *models.Trip) string { return t.BlockID }),
			"direction_id": filter.By(func(t *models.Trip) models.TripDirectionID { return t.DirectionID }),
		})
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	resources := make([]Resource, len(trips))
	for i, trip := range trips {
		resources[i] = tripToResource(trip)
	}

	s.sendResponse(w, r, collection("/trips", resources))
}

// handleTrip handles the trip detail endpoint
func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	trip := s.store.GetTrip(id)
	if trip == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Trip not found")
		return
	}

	options := filter.NewOptions(r.URL.Query())

	data := tripToResource(trip)
	if freqs := s.store.GetFrequenciesByTrip(trip.ID); len(freqs) > 0 {
		windows := make([]map[string]interface{}, len(freqs))
		for i, f := range freqs {
			windows[i] = map[string]interface{}{
				"start_time":   f.StartTime,
				"end_time":     f.EndTime,
				"headway_secs": f.HeadwaySecs,
				"exact_times":  f.ExactTimes,
			}
		}
		data.Attributes["frequencies"] = windows
	}

	response := Response{
		Data: data,
		Links: map[string]string{
			"self": "/trips/" + id,
		},
	}

	var included []Resource

	if options.HasInclude("route") {
		if route := s.store.GetRoute(trip.RouteID); route != nil {
			included = append(included, s.routeToResource(route))
		}
	}

	stopTimes := s.store.GetStopTimesByTrip(trip.ID)

	if options.HasInclude("stop_times") {
		for _, st := range stopTimes {
			included = append(included, stopTimeToResource(st))
		}
	}

	if options.HasInclude("stops") {
		seen := map[string]bool{}
		for _, st := range stopTimes {
			if seen[st.StopID] {
				continue
			}
			seen[st.StopID] = true
			if stop := s.store.GetStop(st.StopID); stop != nil {
				included = append(included, stopToResource(stop))
			}
		}
	}

	if options.HasInclude("shape") && trip.ShapeID != "" {
		if points := s.store.GetShape(trip.ShapeID); len(points) > 0 {
			included = append(included, shapeToResource(trip.ShapeID, points))
		}
	}

	if len(included) > 0 {
		response.Included = included
	}

	s.sendResponse(w, r, response)
}

// tripToResource converts a Trip model to a JSON:API resource
func tripToResource(trip *models.Trip) Resource {
	res := newResource("trip", "trips", trip.ID, map[string]interface{}{
		"headsign":              trip.Headsign,
		"short_name":            trip.ShortName,
		"direction_id":          trip.DirectionID,
		"block_id":              trip.BlockID,
		"wheelchair_accessible": trip.WheelchairAccessible,
		"bikes_allowed":         trip.BikesAllowed,
	})
	res.relate("route", "route", trip.RouteID)
	res.relate("service", "service", trip.ServiceID)
	res.relate("shape", "shape", trip.ShapeID)
	return res
}
