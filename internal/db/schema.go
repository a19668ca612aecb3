package db

import (
	"sort"
	"strings"

	"github.com/joeshaw/gtfsfeed/internal/store"
)

// table describes how one GTFS file is stored. Column names match the db
// tags of the corresponding model.
type table struct {
	Name    string
	Columns []string // "name TYPE"
	rows    func(st *store.Store) []interface{}
}

func (t table) columnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i], _, _ = strings.Cut(c, " ")
	}
	return names
}

func (t table) createSQL() string {
	return "CREATE TABLE IF NOT EXISTS " + t.Name + " (\n\t" + strings.Join(t.Columns, ",\n\t") + "\n)"
}

// insertSQL uses named parameters bound from the model's db tags.
func (t table) insertSQL() string {
	names := t.columnNames()
	return "INSERT INTO " + t.Name + " (" + strings.Join(names, ", ") +
		") VALUES (:" + strings.Join(names, ", :") + ")"
}

func all[T any](items []*T) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

var tables = []table{
	{
		Name: "agency",
		Columns: []string{
			"agency_id TEXT", "agency_name TEXT", "agency_url TEXT", "agency_timezone TEXT",
			"agency_lang TEXT", "agency_phone TEXT", "agency_fare_url TEXT", "agency_email TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllAgencies()) },
	},
	{
		Name: "stops",
		Columns: []string{
			"stop_id TEXT", "stop_code TEXT", "stop_name TEXT", "stop_desc TEXT",
			"coordinates_present BOOLEAN", "stop_lat DOUBLE PRECISION", "stop_lon DOUBLE PRECISION",
			"zone_id TEXT", "stop_url TEXT", "location_type INTEGER", "parent_station TEXT",
			"stop_timezone TEXT", "wheelchair_boarding INTEGER", "level_id TEXT", "platform_code TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllStops()) },
	},
	{
		Name: "routes",
		Columns: []string{
			"route_id TEXT", "agency_id TEXT", "route_short_name TEXT", "route_long_name TEXT",
			"route_desc TEXT", "route_type INTEGER", "route_url TEXT", "route_color TEXT",
			"route_text_color TEXT", "route_sort_order INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllRoutes()) },
	},
	{
		Name: "trips",
		Columns: []string{
			"trip_id TEXT", "route_id TEXT", "service_id TEXT", "trip_headsign TEXT",
			"trip_short_name TEXT", "direction_id INTEGER", "block_id TEXT", "shape_id TEXT",
			"wheelchair_accessible INTEGER", "bikes_allowed INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllTrips()) },
	},
	{
		Name: "stop_times",
		Columns: []string{
			"trip_id TEXT", "arrival_time TEXT", "departure_time TEXT", "stop_id TEXT",
			"stop_sequence INTEGER", "stop_headsign TEXT", "pickup_type INTEGER",
			"drop_off_type INTEGER", "shape_dist_traveled DOUBLE PRECISION", "timepoint INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllStopTimes()) },
	},
	{
		Name: "calendar",
		Columns: []string{
			"service_id TEXT", "monday INTEGER", "tuesday INTEGER", "wednesday INTEGER",
			"thursday INTEGER", "friday INTEGER", "saturday INTEGER", "sunday INTEGER",
			"start_date TEXT", "end_date TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllCalendar()) },
	},
	{
		Name:    "calendar_dates",
		Columns: []string{"service_id TEXT", "date TEXT", "exception_type INTEGER"},
		rows:    func(st *store.Store) []interface{} { return all(st.GetAllCalendarDates()) },
	},
	{
		Name: "fare_attributes",
		Columns: []string{
			"fare_id TEXT", "price DOUBLE PRECISION", "currency_type TEXT",
			"payment_method INTEGER", "transfers INTEGER", "agency_id TEXT", "transfer_duration INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllFareAttributes()) },
	},
	{
		Name: "fare_rules",
		Columns: []string{
			"fare_id TEXT", "route_id TEXT", "origin_id TEXT", "destination_id TEXT", "contains_id TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllFareRules()) },
	},
	{
		Name: "shapes",
		Columns: []string{
			"shape_id TEXT", "shape_pt_lat DOUBLE PRECISION", "shape_pt_lon DOUBLE PRECISION",
			"shape_pt_sequence INTEGER", "shape_dist_traveled DOUBLE PRECISION",
		},
		rows: shapeRows,
	},
	{
		Name: "frequencies",
		Columns: []string{
			"trip_id TEXT", "start_time TEXT", "end_time TEXT", "headway_secs INTEGER", "exact_times INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllFrequencies()) },
	},
	{
		Name: "transfers",
		Columns: []string{
			"from_stop_id TEXT", "to_stop_id TEXT", "transfer_type INTEGER", "min_transfer_time INTEGER",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllTransfers()) },
	},
	{
		Name: "pathways",
		Columns: []string{
			"pathway_id TEXT", "from_stop_id TEXT", "to_stop_id TEXT", "pathway_mode INTEGER",
			"is_bidirectional INTEGER", "length DOUBLE PRECISION", "traversal_time INTEGER",
			"stair_count INTEGER", "max_slope DOUBLE PRECISION", "min_width DOUBLE PRECISION",
			"signposted_as TEXT", "reversed_signposted_as TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllPathways()) },
	},
	{
		Name:    "levels",
		Columns: []string{"level_id TEXT", "level_index DOUBLE PRECISION", "level_name TEXT"},
		rows:    func(st *store.Store) []interface{} { return all(st.GetAllLevels()) },
	},
	{
		Name: "feed_info",
		Columns: []string{
			"feed_publisher_name TEXT", "feed_publisher_url TEXT", "feed_lang TEXT", "feed_start_date TEXT",
			"feed_end_date TEXT", "feed_version TEXT", "feed_contact_email TEXT", "feed_contact_url TEXT",
		},
		rows: func(st *store.Store) []interface{} {
			if info := st.GetFeedInfo(); info != nil {
				return []interface{}{info}
			}
			return nil
		},
	},
	{
		Name: "translations",
		Columns: []string{
			"table_name TEXT", "field_name TEXT", "language TEXT", "translation TEXT",
			"record_id TEXT", "record_sub_id TEXT", "field_value TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllTranslations()) },
	},
	{
		Name: "attributions",
		Columns: []string{
			"attribution_id TEXT", "agency_id TEXT", "route_id TEXT", "trip_id TEXT",
			"organization_name TEXT", "is_producer INTEGER", "is_operator INTEGER", "is_authority INTEGER",
			"attribution_url TEXT", "attribution_email TEXT", "attribution_phone TEXT",
		},
		rows: func(st *store.Store) []interface{} { return all(st.GetAllAttributions()) },
	},
}

// shapeRows flattens the shapes in id order, each already sorted by
// sequence.
func shapeRows(st *store.Store) []interface{} {
	shapes := st.GetAllShapes()
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []interface{}
	for _, id := range ids {
		out = append(out, all(shapes[id])...)
	}
	return out
}

const createImportRuns = `CREATE TABLE IF NOT EXISTS import_runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	record_count INTEGER NOT NULL
)`
