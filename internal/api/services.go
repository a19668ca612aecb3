package api

import (
	"net/http"
	"sort"

	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleServices lists service ids from calendar.txt and
// calendar_dates.txt. With filter[date]=YYYYMMDD only the services running
// on that date are returned.
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	var ids []string
	meta := map[string]interface{}{}

	if options.HasFilter("date") {
		date, err := options.GetDate("date")
		if err != nil {
			s.sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		ids = s.store.ActiveServices(date)
		meta["date"] = date
		meta["weekday"] = date.Weekday().String()
	} else {
		ids = s.serviceIDs()
	}

	resources := make([]Resource, 0, len(ids))
	for _, id := range ids {
		if options.Matches("id", id) {
			resources = append(resources, s.serviceToResource(id))
		}
	}

	response := collection("/services", resources)
	for k, v := range meta {
		response.Meta[k] = v
	}
	s.sendResponse(w, r, response)
}

// serviceIDs returns the sorted union of service ids.
func (s *Server) serviceIDs() []string {
	seen := map[string]bool{}
	for _, item := range s.store.GetAllCalendar() {
		seen[item.ServiceID] = true
	}
	for _, cd := range s.store.GetAllCalendarDates() {
		seen[cd.ServiceID] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Server) serviceToResource(id string) Resource {
	attributes := map[string]interface{}{}

	if item := s.store.GetCalendar(id); item != nil {
		days := map[string]models.CalendarAvailability{
			"monday":    item.Monday,
			"tuesday":   item.Tuesday,
			"wednesday": item.Wednesday,
			"thursday":  item.Thursday,
			"friday":    item.Friday,
			"saturday":  item.Saturday,
			"sunday":    item.Sunday,
		}
		for day, avail := range days {
			attributes[day] = avail == models.AvailableOnDay
		}
		attributes["start_date"] = item.StartDate
		attributes["end_date"] = item.EndDate
	}

	added := []models.Date{}
	removed := []models.Date{}
	for _, cd := range s.store.GetCalendarDatesByService(id) {
		switch cd.ExceptionType {
		case models.ServiceAdded:
			added = append(added, cd.Date)
		case models.ServiceRemoved:
			removed = append(removed, cd.Date)
		}
	}
	attributes["added_dates"] = added
	attributes["removed_dates"] = removed

	return Resource{
		Type:       "service",
		ID:         id,
		Attributes: attributes,
		Links: map[string]string{
			"trips": "/trips?filter[service]=" + id,
		},
	}
}
