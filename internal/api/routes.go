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

// handleRoutes handles the routes collection endpoint
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	var routes []*models.Route
	if options.HasFilter("agency") {
		for _, agencyID := range options.GetFilter("agency") {
			routes = append(routes, s.store.GetRoutesByAgency(agencyID)...)
		}
	} else {
		routes = s.store.GetAllRoutes()
	}

	routes = filter.Filter(routes, func(route *models.Route) bool {
		return options.Matches("id", route.ID)
	})

	if options.HasFilter("type") {
		types, err := options.GetInts("type")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		routes = filter.Filter(routes, func(route *models.Route) bool {
			return slices.Contains(types, int(route.Type))
		})
	}

	// route_sort_order first, then ID
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].SortOrder != routes[j].SortOrder {
			return routes[i].SortOrder < routes[j].SortOrder
		}
		return routes[i].ID < routes[j].ID
	})

	if options.HasSort() {
		err := filter.SortBy(routes, options.GetSort(), map[string]filter.CompareFunc[*models.Route]{
			"id":         filter.By(func(rt *models.Route) string { return rt.ID }),
			"short_name": filter.By(func(rt *models.Route) string { return rt.ShortName }),
			"long_name":  filter.By(func(rt *models.Route) string { return rt.LongName }),
			"type":       filter.By(func(rt *models.Route) models.RouteType { return rt.Type }),
			"sort_order": filter.By(func(rt *models.Route) uint { return rt.SortOrder }),
		})
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	resources := make([]Resource, len(routes))
	for i, route := range routes {
		resources[i] = s.routeToResource(route)
	}

	s.sendResponse(w, r, collection("/routes", resources))
}

// handleRoute handles the route detail endpoint
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	route := s.store.GetRoute(id)
	if route == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Route not found")
		return
	}

	options := filter.NewOptions(r.URL.Query())

	response := Response{
		Data: s.routeToResource(route),
		Links: map[string]string{
			"self": "/routes/" + id,
		},
	}

	if options.HasInclude("agency") {
		if agency := s.store.GetAgency(route.AgencyID); agency != nil {
			response.Included = append(response.Included, agencyToResource(agency))
		}
	}
	if options.HasInclude("stops") {
		for _, stop := range s.store.GetStopsByRoute(route.ID) {
			response.Included = append(response.Included, stopToResource(stop))
		}
	}
	if options.HasInclude("trips") {
		for _, trip := range s.store.GetTripsByRoute(route.ID) {
			response.Included = append(response.Included, tripToResource(trip))
		}
	}

	s.sendResponse(w, r, response)
}

// routeToResource converts a Route model to a JSON:API resource
func (s *Server) routeToResource(route *models.Route) Resource {
	attributes := map[string]interface{}{
		"short_name":  route.ShortName,
		"long_name":   route.LongName,
		"description": route.Description,
		"type":        route.Type,
		"type_name":   route.Type.String(),
		"color":       route.Color,
		"text_color":  route.TextColor,
		"sort_order":  route.SortOrder,
	}

	// Headsigns per direction, keyed "0" and "1"
	if headsigns := s.store.RouteHeadsigns(route.ID); len(headsigns) > 0 {
		byDirection := make(map[string][]string, len(headsigns))
		for dir, names := range headsigns {
			byDirection[strconv.Itoa(int(dir))] = names
		}
		attributes["headsigns"] = byDirection
	}

	res := newResource("route", "routes", route.ID, attributes)
	res.relate("agency", "agency", route.AgencyID)
	return res
}
