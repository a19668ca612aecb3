package api

import (
	"net/http"

	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleFeedInfo returns feed_info.txt along with the attributions of the
// dataset.
func (s *Server) handleFeedInfo(w http.ResponseWriter, r *http.Request) {
	info := s.store.GetFeedInfo()
	if info == nil {
		s.sendErrorResponse(w, http.StatusNotFound, "Feed info not found")
		return
	}

	response := Response{
		Data: Resource{
			Type: "feed_info",
			ID:   info.PublisherName,
			Attributes: map[string]interface{}{
				"publisher_name": info.PublisherName,
				"publisher_url":  info.PublisherURL,
				"lang":           info.Lang,
				"start_date":     info.StartDate,
				"end_date":       info.EndDate,
				"version":        info.Version,
				"contact_email":  info.ContactEmail,
				"contact_url":    info.ContactURL,
			},
		},
		Links: map[string]string{
			"self": "/feed_info",
		},
	}

	for _, attr := range s.store.GetAllAttributions() {
		response.Included = append(response.Included, attributionToResource(attr))
	}

	s.sendResponse(w, r, response)
}

func attributionToResource(attr *models.Attribution) Resource {
	id := attr.ID
	if id == "" {
		id = attr.OrganizationName
	}

	res := Resource{
		Type: "attribution",
		ID:   id,
		Attributes: map[string]interface{}{
			"organization_name": attr.OrganizationName,
			"is_producer":       attr.IsProducer == models.RolePresent,
			"is_operator":       attr.IsOperator == models.RolePresent,
			"is_authority":      attr.IsAuthority == models.RolePresent,
			"url":               attr.URL,
			"email":             attr.Email,
			"phone":             attr.Phone,
		},
	}
	res.relate("agency", "agency", attr.AgencyID)
	res.relate("route", "route", attr.RouteID)
	res.relate("trip", "trip", attr.TripID)
	return res
}
