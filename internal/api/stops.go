package api

import (
	"net/http"
	"slices"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleStops handles the stops collection endpoint
func (s *Server) handleStops(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	var stops []*models.Stop
	switch {
	case options.HasFilter("route"):
		for _, routeID := range options.GetFilter("route") {
			stops = append(stops, s.store.GetStopsByRoute(routeID)...)
		}
	case options.HasFilter("parent_station"):
		for _, stationID := range options.GetFilter("parent_station") {
			stops = append(stops, s.store.GetStopsByParent(stationID)...)
		}
	default:
		stops = s.store.GetAllStops()
	}

	stops = filter.Filter(stops, func(stop *models.Stop) bool {
		return options.Matches("id", stop.ID) && options.Matches("zone", stop.ZoneID)
	})

	if options.HasFilter("location_type") {
		types, err := options.GetInts("location_type")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		stops = filter.Filter(stops, func(stop *models.Stop) bool {
			return slices.Contains(types, int(stop.LocationType))
		})
	}

	if options.HasSort() {
		err := filter.SortBy(stops, options.GetSort(), map[string]filter.CompareFunc[*models.Stop]{
			"id":   filter.By(func(st *models.Stop) string { return st.ID }),
			"name": filter.By(func(st *models.Stop) string { return st.Name }),
			"code": filter.By(func(st *models.Stop) string { return st.Code }),
		})
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	resources := make([]Resource, len(stops))
	for i, stop := range stops {
		resources[i] = stopToResource(stop)
	}

	s.sendResponse(w, r, collection("/stops", resources))
}

// handleStop handles the stop detail endpoint
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	stop := s.store.GetStop(id)
	if stop == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Stop not found")
		return
	}

	options := filter.NewOptions(r.URL.Query())

	response := Response{
		Data: stopToResource(stop),
		Links: map[string]string{
			"self":       "/stops/" + id,
			"stop_times": "/stops/" + id + "/stop_times",
		},
	}

	if options.HasInclude("parent_station") {
		if parent := s.store.GetStop(stop.ParentStation); parent != nil {
			response.Included = append(response.Included, stopToResource(parent))
		}
	}
	if options.HasInclude("children") {
		for _, child := range s.store.GetStopsByParent(stop.ID) {
			response.Included = append(response.Included, stopToResource(child))
		}
	}
	if options.HasInclude("level") {
		if level := s.store.GetLevel(stop.LevelID); level != nil {
			response.Included = append(response.Included, levelToResource(level))
		}
	}

	s.sendResponse(w, r, response)
}

// stopToResource converts a Stop model to a JSON:API resource
func stopToResource(stop *models.Stop) Resource {
	attributes := map[string]interface{}{
		"name":                stop.Name,
		"code":                stop.Code,
		"description":         stop.Description,
		"location_type":       stop.LocationType,
		"wheelchair_boarding": stop.WheelchairBoarding,
	}
	// Coordinates are optional for generic nodes and boarding areas
	if stop.CoordinatesPresent {
		attributes["latitude"] = stop.Latitude
		attributes["longitude"] = stop.Longitude
	}
	if stop.PlatformCode != "" {
		attributes["platform_code"] = stop.PlatformCode
	}
	if stop.Timezone != "" {
		attributes["timezone"] = stop.Timezone
	}

	res := newResource("stop", "stops", stop.ID, attributes)
	res.relate("parent_station", "stop", stop.ParentStation)
	res.relate("level", "level", stop.LevelID)
	return res
}

func levelToResource(level *models.Level) Resource {
	return Resource{
		Type: "level",
		ID:   level.ID,
		Attributes: map[string]interface{}{
			"index": level.Index,
			"name":  level.Name,
		},
	}
}
