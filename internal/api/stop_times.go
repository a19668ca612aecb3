package api

import (
	"net/http"
	"slices"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleStopTimes lists the scheduled calls at a stop, ordered by time of
// day. filter[date] keeps only trips whose service runs on that date.
func (s *Server) handleStopTimes(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if s.store.GetStop(id) == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Stop not found")
		return
	}

	options := filter.NewOptions(r.URL.Query())

	var services []string
	if options.HasFilter("date") {
		date, err := options.GetDate("date")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		services = s.store.ActiveServices(date)
	}

	stopTimes := filter.Filter(s.store.GetStopTimesByStop(id), func(st *models.StopTime) bool {
		trip := s.store.GetTrip(st.TripID)
		if trip == nil {
			return false
		}
		if services != nil && !slices.Contains(services, trip.ServiceID) {
			return false
		}
		return options.Matches("route", trip.RouteID) && options.Matches("trip", trip.ID)
	})

	sort.SliceStable(stopTimes, func(i, j int) bool {
		ti, tj := callTime(stopTimes[i]), callTime(stopTimes[j])
		if ti.IsProvided() != tj.IsProvided() {
			return ti.IsProvided()
		}
		return ti.TotalSeconds() < tj.TotalSeconds()
	})

	resources := make([]Resource, len(stopTimes))
	for i, st := range stopTimes {
		resources[i] = stopTimeToResource(st)
	}

	response := collection("/stops/"+id+"/stop_times", resources)

	if options.HasInclude("trip") {
		included := map[string]bool{}
		for _, st := range stopTimes {
			if included[st.TripID] {
				continue
			}
			included[st.TripID] = true
			if trip := s.store.GetTrip(st.TripID); trip != nil {
				response.Included = append(response.Included, tripToResource(trip))
			}
		}
	}

	s.sendResponse(w, r, response)
}

// callTime is the departure time of a call, or its arrival time when no
// departure is given.
func callTime(st *models.StopTime) models.Time {
	if st.DepartureTime.IsProvided() {
		return st.DepartureTime
	}
	return st.ArrivalTime
}

// stopTimeToResource converts a StopTime model to a JSON:API resource. Stop
// times have no ID of their own, so the trip and sequence identify them.
func stopTimeToResource(st *models.StopTime) Resource {
	attributes := map[string]interface{}{
		"arrival_time":   st.ArrivalTime,
		"departure_time": st.DepartureTime,
		"stop_sequence":  st.StopSequence,
		"pickup_type":    st.PickupType,
		"drop_off_type":  st.DropOffType,
		"timepoint":      st.Timepoint,
	}
	if st.StopHeadsign != "" {
		attributes["stop_headsign"] = st.StopHeadsign
	}
	if st.ShapeDistTraveled != 0 {
		attributes["shape_dist_traveled"] = st.ShapeDistTraveled
	}

	res := Resource{
		Type:       "stop_time",
		ID:         st.TripID + "-" + strconv.FormatUint(uint64(st.StopSequence), 10),
		Attributes: attributes,
	}
	res.relate("trip", "trip", st.TripID)
	res.relate("stop", "stop", st.StopID)
	return res
}
