package store

import (
	"sort"
	"sync"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/models"
)

// Store provides thread-safe access to a loaded GTFS feed. Collections keep
// insertion order; records are never modified once added.
type Store struct {
	mu sync.RWMutex

	agencies       []*models.Agency
	stops          []*models.Stop
	routes         []*models.Route
	trips          []*models.Trip
	stopTimes      []*models.StopTime
	calendar       []*models.CalendarItem
	calendarDates  []*models.CalendarDate
	fareAttributes []*models.FareAttribute
	fareRules      []*models.FareRule
	shapePoints    []*models.ShapePoint
	frequencies    []*models.Frequency
	transfers      []*models.Transfer
	pathways       []*models.Pathway
	levels         []*models.Level
	feedInfo       *models.FeedInfo
	translations   []*models.Translation
	attributions   []*models.Attribution

	// Indexes for faster lookups
	agencyByID             map[string]*models.Agency
	stopByID               map[string]*models.Stop
	routeByID              map[string]*models.Route
	tripByID               map[string]*models.Trip
	calendarByService      map[string]*models.CalendarItem
	fareByID               map[string]*models.FareAttribute
	pathwayByID            map[string]*models.Pathway
	levelByID              map[string]*models.Level
	routesByAgency         map[string][]*models.Route        // map[agencyID][]Route
	tripsByRoute           map[string][]*models.Trip         // map[routeID][]Trip
	tripsByService         map[string][]*models.Trip         // map[serviceID][]Trip
	stopTimesByTrip        map[string][]*models.StopTime     // map[tripID][]StopTime
	stopTimesByStop        map[string][]*models.StopTime     // map[stopID][]StopTime
	calendarDatesByService map[string][]*models.CalendarDate // map[serviceID][]CalendarDate
	shapePointsByShape     map[string][]*models.ShapePoint   // map[shapeID][]ShapePoint
	frequenciesByTrip      map[string][]*models.Frequency    // map[tripID][]Frequency
	fareRulesByFare        map[string][]*models.FareRule     // map[fareID][]FareRule
	translationsByTable    map[models.TranslationTable][]*models.Translation
	stopsByParent          map[string][]*models.Stop // map[parentStation][]Stop
	stopsByRoute           map[string][]string       // map[routeID][]stopID, built after load

	lastStaticUpdate time.Time
}

// NewStore creates a new data store
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.agencies = nil
	s.stops = nil
	s.routes = nil
	s.trips = nil
	s.stopTimes = nil
	s.calendar = nil
	s.calendarDates = nil
	s.fareAttributes = nil
	s.fareRules = nil
	s.shapePoints = nil
	s.frequencies = nil
	s.transfers = nil
	s.pathways = nil
	s.levels = nil
	s.feedInfo = nil
	s.translations = nil
	s.attributions = nil

	s.agencyByID = make(map[string]*models.Agency)
	s.stopByID = make(map[string]*models.Stop)
	s.routeByID = make(map[string]*models.Route)
	s.tripByID = make(map[string]*models.Trip)
	s.calendarByService = make(map[string]*models.CalendarItem)
	s.fareByID = make(map[string]*models.FareAttribute)
	s.pathwayByID = make(map[string]*models.Pathway)
	s.levelByID = make(map[string]*models.Level)
	s.routesByAgency = make(map[string][]*models.Route)
	s.tripsByRoute = make(map[string][]*models.Trip)
	s.tripsByService = make(map[string][]*models.Trip)
	s.stopTimesByTrip = make(map[string][]*models.StopTime)
	s.stopTimesByStop = make(map[string][]*models.StopTime)
	s.calendarDatesByService = make(map[string][]*models.CalendarDate)
	s.shapePointsByShape = make(map[string][]*models.ShapePoint)
	s.frequenciesByTrip = make(map[string][]*models.Frequency)
	s.fareRulesByFare = make(map[string][]*models.FareRule)
	s.translationsByTable = make(map[models.TranslationTable][]*models.Translation)
	s.stopsByParent = make(map[string][]*models.Stop)
	s.stopsByRoute = make(map[string][]string)
}

// Clear removes all data from the store
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.lastStaticUpdate = time.Time{}
}

// Swap atomically replaces the contents of s with those of next. next must
// not be used afterwards.
func (s *Store) Swap(next *Store) {
	if next == s {
		return
	}
	next.mu.Lock()
	defer next.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agencies = next.agencies
	s.stops = next.stops
	s.routes = next.routes
	s.trips = next.trips
	s.stopTimes = next.stopTimes
	s.calendar = next.calendar
	s.calendarDates = next.calendarDates
	s.fareAttributes = next.fareAttributes
	s.fareRules = next.fareRules
	s.shapePoints = next.shapePoints
	s.frequencies = next.frequencies
	s.transfers = next.transfers
	s.pathways = next.pathways
	s.levels = next.levels
	s.feedInfo = next.feedInfo
	s.translations = next.translations
	s.attributions = next.attributions

	s.agencyByID = next.agencyByID
	s.stopByID = next.stopByID
	s.routeByID = next.routeByID
	s.tripByID = next.tripByID
	s.calendarByService = next.calendarByService
	s.fareByID = next.fareByID
	s.pathwayByID = next.pathwayByID
	s.levelByID = next.levelByID
	s.routesByAgency = next.routesByAgency
	s.tripsByRoute = next.tripsByRoute
	s.tripsByService = next.tripsByService
	s.stopTimesByTrip = next.stopTimesByTrip
	s.stopTimesByStop = next.stopTimesByStop
	s.calendarDatesByService = next.calendarDatesByService
	s.shapePointsByShape = next.shapePointsByShape
	s.frequenciesByTrip = next.frequenciesByTrip
	s.fareRulesByFare = next.fareRulesByFare
	s.translationsByTable = next.translationsByTable
	s.stopsByParent = next.stopsByParent
	s.stopsByRoute = next.stopsByRoute

	s.lastStaticUpdate = next.lastStaticUpdate
}

// Counts returns the number of records per dataset file.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedInfo := 0
	if s.feedInfo != nil {
		feedInfo = 1
	}
	return map[string]int{
		"agency.txt":          len(s.agencies),
		"stops.txt":           len(s.stops),
		"routes.txt":          len(s.routes),
		"trips.txt":           len(s.trips),
		"stop_times.txt":      len(s.stopTimes),
		"calendar.txt":        len(s.calendar),
		"calendar_dates.txt":  len(s.calendarDates),
		"fare_attributes.txt": len(s.fareAttributes),
		"fare_rules.txt":      len(s.fareRules),
		"shapes.txt":          len(s.shapePoints),
		"frequencies.txt":     len(s.frequencies),
		"transfers.txt":       len(s.transfers),
		"pathways.txt":        len(s.pathways),
		"levels.txt":          len(s.levels),
		"feed_info.txt":       feedInfo,
		"translations.txt":    len(s.translations),
		"attributions.txt":    len(s.attributions),
	}
}

// Agency methods
func (s *Store) AddAgency(agency *models.Agency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agencies = append(s.agencies, agency)
	s.agencyByID[agency.ID] = agency
}

// GetAgency returns the agency with the given id. An empty id resolves to
// the only agency of a single-agency feed.
func (s *Store) GetAgency(id string) *models.Agency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == "" && len(s.agencies) == 1 {
		return s.agencies[0]
	}
	return s.agencyByID[id]
}

func (s *Store) GetAllAgencies() []*models.Agency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Agency(nil), s.agencies...)
}

// Stop methods
func (s *Store) AddStop(stop *models.Stop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = append(s.stops, stop)
	s.stopByID[stop.ID] = stop
	if stop.ParentStation != "" {
		s.stopsByParent[stop.ParentStation] = append(s.stopsByParent[stop.ParentStation], stop)
	}
}

func (s *Store) GetStop(id string) *models.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopByID[id]
}

func (s *Store) GetAllStops() []*models.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Stop(nil), s.stops...)
}

// GetStopsByParent returns the platforms, entrances and nodes of a station.
func (s *Store) GetStopsByParent(stationID string) []*models.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Stop(nil), s.stopsByParent[stationID]...)
}

func (s *Store) GetStopsByRoute(routeID string) []*models.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stopIDs := s.stopsByRoute[routeID]
	stops := make([]*models.Stop, 0, len(stopIDs))
	for _, id := range stopIDs {
		if stop, ok := s.stopByID[id]; ok {
			stops = append(stops, stop)
		}
	}
	return stops
}

// Route methods
func (s *Store) AddRoute(route *models.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route)
	s.routeByID[route.ID] = route

	// Update indexes
	if route.AgencyID != "" {
		s.routesByAgency[route.AgencyID] = append(s.routesByAgency[route.AgencyID], route)
	}
}

func (s *Store) GetRoute(id string) *models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.routeByID[id]
}

func (s *Store) GetAllRoutes() []*models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Route(nil), s.routes...)
}

// GetRoutesByAgency returns the routes of an agency. Routes without an
// agency_id belong to the only agency of a single-agency feed.
func (s *Store) GetRoutesByAgency(agencyID string) []*models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.agencies) == 1 && s.agencies[0].ID == agencyID {
		routes := make([]*models.Route, 0, len(s.routes))
		for _, r := range s.routes {
			if r.AgencyID == "" || r.AgencyID == agencyID {
				routes = append(routes, r)
			}
		}
		return routes
	}
	return append([]*models.Route(nil), s.routesByAgency[agencyID]...)
}

// Trip methods
func (s *Store) AddTrip(trip *models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, trip)
	s.tripByID[trip.ID] = trip

	// Update indexes
	s.tripsByRoute[trip.RouteID] = append(s.tripsByRoute[trip.RouteID], trip)
	s.tripsByService[trip.ServiceID] = append(s.tripsByService[trip.ServiceID], trip)
}

func (s *Store) GetTrip(id string) *models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tripByID[id]
}

func (s *Store) GetAllTrips() []*models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Trip(nil), s.trips...)
}

func (s *Store) GetTripsByRoute(routeID string) []*models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Trip(nil), s.tripsByRoute[routeID]...)
}

func (s *Store) GetTripsByService(serviceID string) []*models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Trip(nil), s.tripsByService[serviceID]...)
}

// StopTime methods
func (s *Store) AddStopTime(stopTime *models.StopTime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimes = append(s.stopTimes, stopTime)
	s.stopTimesByTrip[stopTime.TripID] = append(s.stopTimesByTrip[stopTime.TripID], stopTime)
	s.stopTimesByStop[stopTime.StopID] = append(s.stopTimesByStop[stopTime.StopID], stopTime)
}

func (s *Store) GetAllStopTimes() []*models.StopTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.StopTime(nil), s.stopTimes...)
}

// GetStopTimesByTrip returns the stop times of a trip ordered by
// stop_sequence.
func (s *Store) GetStopTimesByTrip(tripID string) []*models.StopTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stopTimes := append([]*models.StopTime(nil), s.stopTimesByTrip[tripID]...)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})
	return stopTimes
}

// GetStopTimesByStop returns the stop times at a stop in feed order.
func (s *Store) GetStopTimesByStop(stopID string) []*models.StopTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.StopTime(nil), s.stopTimesByStop[stopID]...)
}

// Calendar methods
func (s *Store) AddCalendarItem(item *models.CalendarItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendar = append(s.calendar, item)
	s.calendarByService[item.ServiceID] = item
}

func (s *Store) GetCalendar(serviceID string) *models.CalendarItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calendarByService[serviceID]
}

func (s *Store) GetAllCalendar() []*models.CalendarItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.CalendarItem(nil), s.calendar...)
}

// CalendarDate methods
func (s *Store) AddCalendarDate(calendarDate *models.CalendarDate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendarDates = append(s.calendarDates, calendarDate)
	s.calendarDatesByService[calendarDate.ServiceID] = append(s.calendarDatesByService[calendarDate.ServiceID], calendarDate)
}

// GetCalendarDatesByService returns the exceptions of a service ordered by
// date.
func (s *Store) GetCalendarDatesByService(serviceID string) []*models.CalendarDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := append([]*models.CalendarDate(nil), s.calendarDatesByService[serviceID]...)
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Date.Compare(dates[j].Date) < 0
	})
	return dates
}

func (s *Store) GetAllCalendarDates() []*models.CalendarDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.CalendarDate(nil), s.calendarDates...)
}

// ActiveServices returns the ids of services running on date, combining
// calendar.txt patterns with calendar_dates.txt exceptions.
func (s *Store) ActiveServices(date models.Date) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make(map[string]bool)
	weekday := date.Weekday()
	for _, item := range s.calendar {
		if date.Compare(item.StartDate) < 0 || date.Compare(item.EndDate) > 0 {
			continue
		}
		if runsOn(item, weekday) {
			active[item.ServiceID] = true
		}
	}

	for _, cd := range s.calendarDates {
		if !cd.Date.Equal(date) {
			continue
		}
		switch cd.ExceptionType {
		case models.ServiceAdded:
			active[cd.ServiceID] = true
		case models.ServiceRemoved:
			delete(active, cd.ServiceID)
		}
	}

	services := make([]string, 0, len(active))
	for id := range active {
		services = append(services, id)
	}
	sort.Strings(services)
	return services
}

func runsOn(item *models.CalendarItem, weekday time.Weekday) bool {
	days := [...]models.CalendarAvailability{
		time.Sunday:    item.Sunday,
		time.Monday:    item.Monday,
		time.Tuesday:   item.Tuesday,
		time.Wednesday: item.Wednesday,
		time.Thursday:  item.Thursday,
		time.Friday:    item.Friday,
		time.Saturday:  item.Saturday,
	}
	return days[weekday] == models.AvailableOnDay
}

// Fare methods
func (s *Store) AddFareAttribute(fare *models.FareAttribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fareAttributes = append(s.fareAttributes, fare)
	s.fareByID[fare.ID] = fare
}

func (s *Store) GetFareAttribute(id string) *models.FareAttribute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fareByID[id]
}

func (s *Store) GetAllFareAttributes() []*models.FareAttribute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.FareAttribute(nil), s.fareAttributes...)
}

func (s *Store) AddFareRule(rule *models.FareRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fareRules = append(s.fareRules, rule)
	s.fareRulesByFare[rule.FareID] = append(s.fareRulesByFare[rule.FareID], rule)
}

func (s *Store) GetFareRulesByFare(fareID string) []*models.FareRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.FareRule(nil), s.fareRulesByFare[fareID]...)
}

func (s *Store) GetAllFareRules() []*models.FareRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.FareRule(nil), s.fareRules...)
}

// Shape methods
func (s *Store) AddShapePoint(point *models.ShapePoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapePoints = append(s.shapePoints, point)
	s.shapePointsByShape[point.ShapeID] = append(s.shapePointsByShape[point.ShapeID], point)
}

// GetShape returns the points of a shape ordered by shape_pt_sequence.
func (s *Store) GetShape(shapeID string) []*models.ShapePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedShape(s.shapePointsByShape[shapeID])
}

// GetAllShapes returns every shape keyed by id, each ordered by sequence.
func (s *Store) GetAllShapes() map[string][]*models.ShapePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shapes := make(map[string][]*models.ShapePoint, len(s.shapePointsByShape))
	for id, points := range s.shapePointsByShape {
		shapes[id] = sortedShape(points)
	}
	return shapes
}

func sortedShape(points []*models.ShapePoint) []*models.ShapePoint {
	sorted := append([]*models.ShapePoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}

// Frequency methods
func (s *Store) AddFrequency(freq *models.Frequency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frequencies = append(s.frequencies, freq)
	s.frequenciesByTrip[freq.TripID] = append(s.frequenciesByTrip[freq.TripID], freq)
}

func (s *Store) GetFrequenciesByTrip(tripID string) []*models.Frequency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Frequency(nil), s.frequenciesByTrip[tripID]...)
}

func (s *Store) GetAllFrequencies() []*models.Frequency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Frequency(nil), s.frequencies...)
}

// Transfer methods
func (s *Store) AddTransfer(transfer *models.Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = append(s.transfers, transfer)
}

// GetTransfer returns the first transfer between two stops.
func (s *Store) GetTransfer(fromStopID, toStopID string) *models.Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transfers {
		if t.FromStopID == fromStopID && t.ToStopID == toStopID {
			return t
		}
	}
	return nil
}

func (s *Store) GetAllTransfers() []*models.Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Transfer(nil), s.transfers...)
}

// Pathway methods
func (s *Store) AddPathway(pathway *models.Pathway) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathways = append(s.pathways, pathway)
	s.pathwayByID[pathway.ID] = pathway
}

func (s *Store) GetPathway(id string) *models.Pathway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathwayByID[id]
}

// GetPathwaysBetween returns the pathways leading from one location to
// another, including bidirectional pathways declared the other way round.
func (s *Store) GetPathwaysBetween(fromStopID, toStopID string) []*models.Pathway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pathways []*models.Pathway
	for _, p := range s.pathways {
		forward := p.FromStopID == fromStopID && p.ToStopID == toStopID
		backward := p.IsBidirectional == models.Bidirectional && p.FromStopID == toStopID && p.ToStopID == fromStopID
		if forward || backward {
			pathways = append(pathways, p)
		}
	}
	return pathways
}

func (s *Store) GetAllPathways() []*models.Pathway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Pathway(nil), s.pathways...)
}

// Level methods
func (s *Store) AddLevel(level *models.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels = append(s.levels, level)
	s.levelByID[level.ID] = level
}

func (s *Store) GetLevel(id string) *models.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levelByID[id]
}

func (s *Store) GetAllLevels() []*models.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Level(nil), s.levels...)
}

// FeedInfo methods
func (s *Store) SetFeedInfo(info *models.FeedInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedInfo = info
}

func (s *Store) GetFeedInfo() *models.FeedInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedInfo
}

// Translation methods
func (s *Store) AddTranslation(tr *models.Translation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translations = append(s.translations, tr)
	s.translationsByTable[tr.TableName] = append(s.translationsByTable[tr.TableName], tr)
}

func (s *Store) GetTranslationsByTable(table models.TranslationTable) []*models.Translation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Translation(nil), s.translationsByTable[table]...)
}

func (s *Store) GetAllTranslations() []*models.Translation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Translation(nil), s.translations...)
}

// Attribution methods
func (s *Store) AddAttribution(attr *models.Attribution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributions = append(s.attributions, attr)
}

func (s *Store) GetAllAttributions() []*models.Attribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Attribution(nil), s.attributions...)
}

// Update time getters/setters
func (s *Store) SetLastStaticUpdate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStaticUpdate = t
}

func (s *Store) GetLastStaticUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStaticUpdate
}

// BuildStopsByRoute builds the stopsByRoute index from existing data.
// This should be called after all GTFS data is loaded. Stops are listed in
// the order they are first visited by the route's trips.
func (s *Store) BuildStopsByRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()

	stopsByRoute := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, trip := range s.trips {
		if seen[trip.RouteID] == nil {
			seen[trip.RouteID] = make(map[string]bool)
		}
		stopTimes := append([]*models.StopTime(nil), s.stopTimesByTrip[trip.ID]...)
		sort.SliceStable(stopTimes, func(i, j int) bool {
			return stopTimes[i].StopSequence < stopTimes[j].StopSequence
		})
		for _, st := range stopTimes {
			if !seen[trip.RouteID][st.StopID] {
				seen[trip.RouteID][st.StopID] = true
				stopsByRoute[trip.RouteID] = append(stopsByRoute[trip.RouteID], st.StopID)
			}
		}
	}

	s.stopsByRoute = stopsByRoute
}

// RouteHeadsigns returns the distinct trip headsigns of a route for each
// direction_id, in feed order.
func (s *Store) RouteHeadsigns(routeID string) map[models.TripDirectionID][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		direction models.TripDirectionID
		headsign  string
	}

	headsigns := make(map[models.TripDirectionID][]string)
	seen := make(map[key]bool)
	for _, trip := range s.tripsByRoute[routeID] {
		if trip.Headsign == "" {
			continue
		}
		k := key{trip.DirectionID, trip.Headsign}
		if seen[k] {
			continue
		}
		seen[k] = true
		headsigns[trip.DirectionID] = append(headsigns[trip.DirectionID], trip.Headsign)
	}
	return headsigns
}
