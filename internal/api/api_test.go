package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/models"
	"github.com/joeshaw/gtfsfeed/internal/store"
)

func mustTime(t *testing.T, raw string) models.Time {
	t.Helper()
	v, err := models.ParseTime(raw)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	v, err := models.ParseDate(raw)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// testStore builds a small feed: one agency, two routes, a weekday and a
// weekend trip both calling at stop "center".
func testStore(t *testing.T) *store.Store {
	st := store.NewStore()
	st.AddAgency(&models.Agency{ID: "DTA", Name: "Demo Transit", URL: "http://example.com", Timezone: "America/New_York"})
	st.AddRoute(&models.Route{ID: "r1", AgencyID: "DTA", ShortName: "1", LongName: "Crosstown", Type: models.Bus})
	st.AddRoute(&models.Route{ID: "r2", AgencyID: "DTA", ShortName: "2", Type: models.Tram})
	st.AddStop(&models.Stop{ID: "center", Name: "Center", CoordinatesPresent: true, Latitude: 40, Longitude: -83})
	st.AddStop(&models.Stop{ID: "node", Name: "Node", LocationType: models.GenericNode, ParentStation: "center"})
	st.AddTrip(&models.Trip{ID: "wk1", RouteID: "r1", ServiceID: "weekday", Headsign: "Downtown", ShapeID: "shp"})
	st.AddTrip(&models.Trip{ID: "we1", RouteID: "r2", ServiceID: "weekend", Headsign: "Airport"})
	st.AddStopTime(&models.StopTime{TripID: "wk1", StopID: "center", StopSequence: 1, ArrivalTime: mustTime(t, "9:00:00"), DepartureTime: mustTime(t, "9:00:00")})
	st.AddStopTime(&models.StopTime{TripID: "we1", StopID: "center", StopSequence: 1, ArrivalTime: mustTime(t, "8:00:00"), DepartureTime: mustTime(t, "8:05:00")})
	st.AddCalendarItem(&models.CalendarItem{
		ServiceID: "weekday",
		Monday:    models.AvailableOnDay,
		Tuesday:   models.AvailableOnDay,
		Wednesday: models.AvailableOnDay,
		Thursday:  models.AvailableOnDay,
		Friday:    models.AvailableOnDay,
		StartDate: mustDate(t, "20240101"),
		EndDate:   mustDate(t, "20241231"),
	})
	st.AddCalendarDate(&models.CalendarDate{ServiceID: "weekend", Date: mustDate(t, "20240106"), ExceptionType: models.ServiceAdded})
	st.AddShapePoint(&models.ShapePoint{ShapeID: "shp", Sequence: 1, Latitude: 38.5, Longitude: -120.2})
	st.AddShapePoint(&models.ShapePoint{ShapeID: "shp", Sequence: 2, Latitude: 40.7, Longitude: -120.95})
	st.AddShapePoint(&models.ShapePoint{ShapeID: "shp", Sequence: 3, Latitude: 43.252, Longitude: -126.453})
	st.BuildStopsByRoute()
	return st
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var response Response
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
			t.Fatalf("%s: error parsing response: %v", path, err)
		}
	}
	return rr, response
}

func ids(t *testing.T, response Response) []string {
	t.Helper()
	data, ok := response.Data.([]interface{})
	if !ok {
		t.Fatalf("response data is not an array")
	}
	var out []string
	for _, d := range data {
		out = append(out, d.(map[string]interface{})["id"].(string))
	}
	return out
}

func TestIndexEndpoint(t *testing.T) {
	server := NewServer(store.NewStore(), nil)

	rr, response := get(t, server.Router(), "/")
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	contentType := rr.Header().Get("Content-Type")
	if contentType != "application/vnd.api+json" {
		t.Errorf("handler returned wrong content type: got %v want %v", contentType, "application/vnd.api+json")
	}

	for _, link := range []string{"agencies", "routes", "stops", "trips", "shapes", "services", "feed_info"} {
		if _, ok := response.Links[link]; !ok {
			t.Errorf("missing link: %s", link)
		}
	}
	if _, ok := response.Links["metrics"]; ok {
		t.Errorf("metrics link present without a metrics handler")
	}
}

func TestRoutesEndpoint(t *testing.T) {
	server := NewServer(testStore(t), nil)
	h := server.Router()

	rr, response := get(t, h, "/routes")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if got := ids(t, response); len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("unexpected routes: %v", got)
	}

	route := response.Data.([]interface{})[0].(map[string]interface{})
	if route["type"] != "route" {
		t.Errorf("unexpected resource type: got %v want %v", route["type"], "route")
	}
	attrs := route["attributes"].(map[string]interface{})
	headsigns, ok := attrs["headsigns"].(map[string]interface{})
	if !ok || len(headsigns["0"].([]interface{})) != 1 {
		t.Errorf("unexpected headsigns: %v", attrs["headsigns"])
	}

	_, response = get(t, h, "/routes?filter[type]=0")
	if got := ids(t, response); len(got) != 1 || got[0] != "r2" {
		t.Errorf("routes of type 0: got %v", got)
	}

	_, response = get(t, h, "/routes?filter[id]=r1,r2,r9")
	if got := ids(t, response); len(got) != 2 {
		t.Errorf("routes by id list: got %v", got)
	}

	rr, _ = get(t, h, "/routes?filter[type]=bus")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad type filter: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	rr, _ = get(t, h, "/routes/nope")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing route: got %v want %v", rr.Code, http.StatusNotFound)
	}

	_, response = get(t, h, "/routes/r1?include=agency,stops")
	if len(response.Included) != 2 {
		t.Errorf("included: got %d want 2", len(response.Included))
	}
}

func TestStopsEndpoint(t *testing.T) {
	h := NewServer(testStore(t), nil).Router()

	_, response := get(t, h, "/stops?filter[route]=r1")
	if got := ids(t, response); len(got) != 1 || got[0] != "center" {
		t.Errorf("stops on r1: got %v", got)
	}

	_, response = get(t, h, "/stops?filter[location_type]=3")
	if got := ids(t, response); len(got) != 1 || got[0] != "node" {
		t.Errorf("generic nodes: got %v", got)
	}

	_, response = get(t, h, "/stops/node")
	stop := response.Data.(map[string]interface{})
	if _, ok := stop["attributes"].(map[string]interface{})["latitude"]; ok {
		t.Errorf("stop without coordinates should not report latitude")
	}
	if _, ok := stop["relationships"].(map[string]interface{})["parent_station"]; !ok {
		t.Errorf("missing parent_station relationship")
	}

	_, response = get(t, h, "/stops/center?include=children")
	if len(response.Included) != 1 || response.Included[0].ID != "node" {
		t.Errorf("children: got %v", response.Included)
	}
}

func TestStopTimesEndpoint(t *testing.T) {
	h := NewServer(testStore(t), nil).Router()

	_, response := get(t, h, "/stops/center/stop_times")
	if got := ids(t, response); len(got) != 2 || got[0] != "we1-1" || got[1] != "wk1-1" {
		t.Errorf("stop times ordered by departure: got %v", got)
	}

	// 2024-01-02 is a Tuesday
	_, response = get(t, h, "/stops/center/stop_times?filter[date]=20240102")
	if got := ids(t, response); len(got) != 1 || got[0] != "wk1-1" {
		t.Errorf("stop times on a weekday: got %v", got)
	}

	_, response = get(t, h, "/stops/center/stop_times?filter[date]=20240106&include=trip")
	if got := ids(t, response); len(got) != 1 || got[0] != "we1-1" {
		t.Errorf("stop times on an added date: got %v", got)
	}
	if len(response.Included) != 1 || response.Included[0].ID != "we1" {
		t.Errorf("included trips: got %v", response.Included)
	}

	rr, _ := get(t, h, "/stops/center/stop_times?filter[date]=20240230")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid date: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	rr, _ = get(t, h, "/stops/nope/stop_times")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing stop: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestTripsEndpoint(t *testing.T) {
	h := NewServer(testStore(t), nil).Router()

	_, response := get(t, h, "/trips?filter[date]=20240106")
	if got := ids(t, response); len(got) != 1 || got[0] != "we1" {
		t.Errorf("trips on 20240106: got %v", got)
	}

	_, response = get(t, h, "/trips/wk1?include=route,stop_times,shape")
	if len(response.Included) != 3 {
		t.Errorf("included: got %d want 3", len(response.Included))
	}
}

func TestServicesEndpoint(t *testing.T) {
	h := NewServer(testStore(t), nil).Router()

	_, response := get(t, h, "/services")
	if got := ids(t, response); len(got) != 2 || got[0] != "weekday" || got[1] != "weekend" {
		t.Errorf("services: got %v", got)
	}

	_, response = get(t, h, "/services?filter[date]=20240106")
	if got := ids(t, response); len(got) != 1 || got[0] != "weekend" {
		t.Errorf("services on 20240106: got %v", got)
	}
	if response.Meta["weekday"] != "Saturday" {
		t.Errorf("weekday: got %v want Saturday", response.Meta["weekday"])
	}
}

func TestShapesEndpoint(t *testing.T) {
	h := NewServer(testStore(t), nil).Router()

	_, response := get(t, h, "/shapes/shp")
	attrs := response.Data.(map[string]interface{})["attributes"].(map[string]interface{})
	if want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"; attrs["polyline"] != want {
		t.Errorf("polyline: got %v want %v", attrs["polyline"], want)
	}

	_, response = get(t, h, "/shapes?filter[route]=r1")
	if got := ids(t, response); len(got) != 1 || got[0] != "shp" {
		t.Errorf("shapes on r1: got %v", got)
	}
}

func TestFeedInfoAndHealth(t *testing.T) {
	st := testStore(t)
	h := NewServer(st, nil).Router()

	rr, _ := get(t, h, "/feed_info")
	if rr.Code != http.StatusNotFound {
		t.Errorf("feed_info without feed_info.txt: got %v want %v", rr.Code, http.StatusNotFound)
	}
	rr, _ = get(t, h, "/healthz")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz before load: got %v want %v", rr.Code, http.StatusServiceUnavailable)
	}

	st.SetFeedInfo(&models.FeedInfo{PublisherName: "Demo", PublisherURL: "http://example.com", Lang: "en"})
	st.AddAttribution(&models.Attribution{OrganizationName: "Demo Ops", IsOperator: models.RolePresent})
	st.SetLastStaticUpdate(time.Now())

	rr, response := get(t, h, "/feed_info")
	if rr.Code != http.StatusOK || len(response.Included) != 1 {
		t.Errorf("feed_info: got %v with %d included", rr.Code, len(response.Included))
	}
	rr, _ = get(t, h, "/healthz")
	if rr.Code != http.StatusOK {
		t.Errorf("healthz after load: got %v want %v", rr.Code, http.StatusOK)
	}
}

func TestMetricsAndCORS(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics\n"))
	})
	h := NewServer(store.NewStore(), metrics).Router()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "# metrics\n" {
		t.Errorf("metrics: got %v %q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest("OPTIONS", "/routes", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight: got %v, headers %v", rr.Code, rr.Header())
	}
}

func TestSortAndSparseFields(t *testing.T) {
	server := NewServer(testStore(t), nil)
	h := server.Router()

	_, response := get(t, h, "/routes?sort=type")
	if got := ids(t, response); len(got) != 2 || got[0] != "r2" || got[1] != "r1" {
		t.Errorf("routes sorted by type: got %v", got)
	}

	_, response = get(t, h, "/stops?sort=-id")
	if got := ids(t, response); len(got) != 2 || got[0] != "node" || got[1] != "center" {
		t.Errorf("stops sorted by -id: got %v", got)
	}

	_, response = get(t, h, "/trips?sort=-headsign")
	if got := ids(t, response); len(got) != 2 || got[0] != "wk1" || got[1] != "we1" {
		t.Errorf("trips sorted by -headsign: got %v", got)
	}

	rr, _ := get(t, h, "/stops?sort=elevation")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unsupported sort: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	_, response = get(t, h, "/stops/center?fields[stop]=name")
	stop := response.Data.(map[string]interface{})
	attrs := stop["attributes"].(map[string]interface{})
	if len(attrs) != 1 || attrs["name"] != "Center" {
		t.Errorf("sparse stop attributes: got %v", attrs)
	}

	_, response = get(t, h, "/routes?fields[route]=short_name")
	for _, item := range response.Data.([]interface{}) {
		attrs := item.(map[string]interface{})["attributes"].(map[string]interface{})
		if _, ok := attrs["long_name"]; ok || len(attrs) != 1 {
			t.Errorf("sparse route attributes: got %v", attrs)
		}
	}
}
