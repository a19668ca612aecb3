package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/models"
)

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", raw, err)
	}
	return d
}

func TestGetAgencySingleFallback(t *testing.T) {
	s := NewStore()
	s.AddAgency(&models.Agency{ID: "A", Name: "Agency A"})

	if a := s.GetAgency(""); a == nil || a.ID != "A" {
		t.Errorf("GetAgency(\"\"): got %v want agency A", a)
	}

	s.AddAgency(&models.Agency{ID: "B", Name: "Agency B"})
	if a := s.GetAgency(""); a != nil {
		t.Errorf("GetAgency(\"\") with two agencies: got %v want nil", a)
	}
	if a := s.GetAgency("B"); a == nil || a.Name != "Agency B" {
		t.Errorf("GetAgency(\"B\"): got %v", a)
	}
}

func TestGetRoutesByAgency(t *testing.T) {
	s := NewStore()
	s.AddAgency(&models.Agency{ID: "A"})
	s.AddRoute(&models.Route{ID: "r1", AgencyID: "A"})
	s.AddRoute(&models.Route{ID: "r2"})

	routes := s.GetRoutesByAgency("A")
	if len(routes) != 2 {
		t.Fatalf("unexpected number of routes: got %d want 2", len(routes))
	}
	if routes[0].ID != "r1" || routes[1].ID != "r2" {
		t.Errorf("unexpected route order: got %s, %s", routes[0].ID, routes[1].ID)
	}
}

func TestStopTimesByTripSorted(t *testing.T) {
	s := NewStore()
	s.AddTrip(&models.Trip{ID: "t1", RouteID: "r1", ServiceID: "wk"})
	s.AddStopTime(&models.StopTime{TripID: "t1", StopID: "c", StopSequence: 3})
	s.AddStopTime(&models.StopTime{TripID: "t1", StopID: "a", StopSequence: 1})
	s.AddStopTime(&models.StopTime{TripID: "t1", StopID: "b", StopSequence: 2})
	s.AddStopTime(&models.StopTime{TripID: "t2", StopID: "a", StopSequence: 1})

	got := s.GetStopTimesByTrip("t1")
	var ids []string
	for _, st := range got {
		ids = append(ids, st.StopID)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("stop order: got %v want %v", ids, want)
	}

	if n := len(s.GetStopTimesByStop("a")); n != 2 {
		t.Errorf("stop times at a: got %d want 2", n)
	}
	if n := len(s.GetAllStopTimes()); n != 4 {
		t.Errorf("all stop times: got %d want 4", n)
	}
}

func TestBuildStopsByRoute(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		s.AddStop(&models.Stop{ID: id})
	}
	s.AddTrip(&models.Trip{ID: "t1", RouteID: "r1"})
	s.AddTrip(&models.Trip{ID: "t2", RouteID: "r1"})
	s.AddStopTime(&models.StopTime{TripID: "t1", StopID: "b", StopSequence: 2})
	s.AddStopTime(&models.StopTime{TripID: "t1", StopID: "a", StopSequence: 1})
	s.AddStopTime(&models.StopTime{TripID: "t2", StopID: "b", StopSequence: 1})
	s.AddStopTime(&models.StopTime{TripID: "t2", StopID: "c", StopSequence: 2})
	s.BuildStopsByRoute()

	var ids []string
	for _, stop := range s.GetStopsByRoute("r1") {
		ids = append(ids, stop.ID)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("stops by route: got %v want %v", ids, want)
	}
}

func TestCalendarDatesSortedByDate(t *testing.T) {
	s := NewStore()
	s.AddCalendarDate(&models.CalendarDate{ServiceID: "wk", Date: mustDate(t, "20240310"), ExceptionType: models.ServiceRemoved})
	s.AddCalendarDate(&models.CalendarDate{ServiceID: "wk", Date: mustDate(t, "20240105"), ExceptionType: models.ServiceAdded})

	dates := s.GetCalendarDatesByService("wk")
	if len(dates) != 2 {
		t.Fatalf("unexpected number of dates: got %d want 2", len(dates))
	}
	if dates[0].Date.String() != "20240105" {
		t.Errorf("first date: got %s want 20240105", dates[0].Date)
	}
}

func TestActiveServices(t *testing.T) {
	s := NewStore()
	s.AddCalendarItem(&models.CalendarItem{
		ServiceID: "weekday",
		Monday:    models.AvailableOnDay,
		Tuesday:   models.AvailableOnDay,
		Wednesday: models.AvailableOnDay,
		Thursday:  models.AvailableOnDay,
		Friday:    models.AvailableOnDay,
		StartDate: mustDate(t, "20240101"),
		EndDate:   mustDate(t, "20241231"),
	})
	s.AddCalendarItem(&models.CalendarItem{
		ServiceID: "weekend",
		Saturday:  models.AvailableOnDay,
		Sunday:    models.AvailableOnDay,
		StartDate: mustDate(t, "20240101"),
		EndDate:   mustDate(t, "20241231"),
	})
	// 2024-12-25 is a Wednesday
	s.AddCalendarDate(&models.CalendarDate{ServiceID: "weekday", Date: mustDate(t, "20241225"), ExceptionType: models.ServiceRemoved})
	s.AddCalendarDate(&models.CalendarDate{ServiceID: "weekend", Date: mustDate(t, "20241225"), ExceptionType: models.ServiceAdded})

	tests := []struct {
		date string
		want []string
	}{
		{"20240102", []string{"weekday"}},
		{"20240106", []string{"weekend"}},
		{"20241225", []string{"weekend"}},
		{"20250102", []string{}},
	}
	for _, tt := range tests {
		got := s.ActiveServices(mustDate(t, tt.date))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ActiveServices(%s): got %v want %v", tt.date, got, tt.want)
		}
	}
}

func TestShapeSortedBySequence(t *testing.T) {
	s := NewStore()
	s.AddShapePoint(&models.ShapePoint{ShapeID: "s1", Sequence: 2, Latitude: 2})
	s.AddShapePoint(&models.ShapePoint{ShapeID: "s1", Sequence: 1, Latitude: 1})
	s.AddShapePoint(&models.ShapePoint{ShapeID: "s2", Sequence: 1})

	points := s.GetShape("s1")
	if len(points) != 2 || points[0].Sequence != 1 || points[1].Sequence != 2 {
		t.Errorf("unexpected shape points: %+v", points)
	}
	if n := len(s.GetAllShapes()); n != 2 {
		t.Errorf("shape count: got %d want 2", n)
	}
}

func TestTransfersAndPathways(t *testing.T) {
	s := NewStore()
	s.AddTransfer(&models.Transfer{FromStopID: "a", ToStopID: "b", Type: models.TransferMinimumTime, MinTransferTime: 120})
	if tr := s.GetTransfer("a", "b"); tr == nil || tr.MinTransferTime != 120 {
		t.Errorf("GetTransfer(a, b): got %v", tr)
	}
	if tr := s.GetTransfer("b", "a"); tr != nil {
		t.Errorf("GetTransfer(b, a): got %v want nil", tr)
	}

	s.AddPathway(&models.Pathway{ID: "p1", FromStopID: "x", ToStopID: "y", Mode: models.Walkway, IsBidirectional: models.Bidirectional})
	s.AddPathway(&models.Pathway{ID: "p2", FromStopID: "y", ToStopID: "x", Mode: models.Escalator})
	if p := s.GetPathway("p2"); p == nil || p.Mode != models.Escalator {
		t.Errorf("GetPathway(p2): got %v", p)
	}
	if n := len(s.GetPathwaysBetween("y", "x")); n != 2 {
		t.Errorf("pathways from y to x: got %d want 2", n)
	}
	if n := len(s.GetPathwaysBetween("x", "y")); n != 1 {
		t.Errorf("pathways from x to y: got %d want 1", n)
	}
}

func TestTranslationsByTable(t *testing.T) {
	s := NewStore()
	s.AddTranslation(&models.Translation{TableName: models.TranslateStops, FieldName: "stop_name", Language: "fr", Translation: "Gare", RecordID: "s1"})
	s.AddTranslation(&models.Translation{TableName: models.TranslateRoutes, FieldName: "route_long_name", Language: "fr", Translation: "Ligne", RecordID: "r1"})

	got := s.GetTranslationsByTable(models.TranslateStops)
	if len(got) != 1 || got[0].Translation != "Gare" {
		t.Errorf("translations for stops: got %+v", got)
	}
}

func TestSwapAndCounts(t *testing.T) {
	s := NewStore()
	s.AddStop(&models.Stop{ID: "old"})

	next := NewStore()
	next.AddStop(&models.Stop{ID: "new"})
	next.AddRoute(&models.Route{ID: "r"})
	next.SetFeedInfo(&models.FeedInfo{PublisherName: "Pub"})

	s.Swap(next)

	if s.GetStop("old") != nil {
		t.Errorf("old stop still present after swap")
	}
	if s.GetStop("new") == nil {
		t.Errorf("new stop missing after swap")
	}

	counts := s.Counts()
	if counts["stops.txt"] != 1 || counts["routes.txt"] != 1 || counts["feed_info.txt"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	s.Clear()
	if n := len(s.GetAllStops()); n != 0 {
		t.Errorf("stops after clear: got %d want 0", n)
	}
}

func TestSwapWithItself(t *testing.T) {
	s := NewStore()
	s.AddStop(&models.Stop{ID: "keep"})

	done := make(chan struct{})
	go func() {
		s.Swap(s)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Swap with itself did not return")
	}
	if s.GetStop("keep") == nil {
		t.Errorf("stop lost after swapping store with itself")
	}
}

func TestRouteHeadsigns(t *testing.T) {
	s := NewStore()
	s.AddTrip(&models.Trip{ID: "t1", RouteID: "r", Headsign: "Downtown", DirectionID: models.DefaultDirection})
	s.AddTrip(&models.Trip{ID: "t2", RouteID: "r", Headsign: "Downtown", DirectionID: models.DefaultDirection})
	s.AddTrip(&models.Trip{ID: "t3", RouteID: "r", Headsign: "Airport", DirectionID: models.OppositeDirection})

	got := s.RouteHeadsigns("r")
	want := map[models.TripDirectionID][]string{
		models.DefaultDirection:  {"Downtown"},
		models.OppositeDirection: {"Airport"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headsigns: got %v want %v", got, want)
	}
}
