package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleAgencies handles the agencies collection endpoint
func (s *Server) handleAgencies(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	agencies := filter.Filter(s.store.GetAllAgencies(), func(agency *models.Agency) bool {
		return options.Matches("id", agency.ID)
	})

	resources := make([]Resource, len(agencies))
	for i, agency := range agencies {
		resources[i] = agencyToResource(agency)
	}

	s.sendResponse(w, r, collection("/agencies", resources))
}

// handleAgency handles the agency detail endpoint
func (s *Server) handleAgency(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	agency := s.store.GetAgency(id)
	if agency == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Agency not found")
		return
	}

	options := filter.NewOptions(r.URL.Query())

	response := Response{
		Data: agencyToResource(agency),
		Links: map[string]string{
			"self": "/agencies/" + id,
		},
	}

	if options.HasInclude("routes") {
		for _, route := range s.store.GetRoutesByAgency(agency.ID) {
			response.Included = append(response.Included, s.routeToResource(route))
		}
	}

	s.sendResponse(w, r, response)
}

// agencyToResource converts an Agency model to a JSON:API resource
func agencyToResource(agency *models.Agency) Resource {
	attributes := map[string]interface{}{
		"name":     agency.Name,
		"url":      agency.URL,
		"timezone": agency.Timezone,
	}
	if agency.Lang != "" {
		attributes["lang"] = agency.Lang
	}
	if agency.Phone != "" {
		attributes["phone"] = agency.Phone
	}
	if agency.FareURL != "" {
		attributes["fare_url"] = agency.FareURL
	}
	if agency.Email != "" {
		attributes["email"] = agency.Email
	}

	return newResource("agency", "agencies", agency.ID, attributes)
}
