package models

// Agency represents a transit agency
type Agency struct {
	ID       string `json:"id,omitzero" db:"agency_id"`
	Name     string `json:"name" db:"agency_name"`
	URL      string `json:"url" db:"agency_url"`
	Timezone string `json:"timezone" db:"agency_timezone"`
	Lang     string `json:"lang,omitzero" db:"agency_lang"`
	Phone    string `json:"phone,omitzero" db:"agency_phone"`
	FareURL  string `json:"fare_url,omitzero" db:"agency_fare_url"`
	Email    string `json:"email,omitzero" db:"agency_email"`
}

// Stop represents a stop, station or other location in stops.txt.
// Latitude and Longitude are meaningful only when CoordinatesPresent is set.
type Stop struct {
	ID                 string             `json:"id" db:"stop_id"`
	Code               string             `json:"code,omitzero" db:"stop_code"`
	Name               string             `json:"name" db:"stop_name"`
	Description        string             `json:"description,omitzero" db:"stop_desc"`
	CoordinatesPresent bool               `json:"coordinates_present" db:"coordinates_present"`
	Latitude           float64            `json:"latitude" db:"stop_lat"`
	Longitude          float64            `json:"longitude" db:"stop_lon"`
	ZoneID             string             `json:"zone_id,omitzero" db:"zone_id"`
	URL                string             `json:"url,omitzero" db:"stop_url"`
	LocationType       StopLocationType   `json:"location_type" db:"location_type"`
	ParentStation      string             `json:"parent_station,omitzero" db:"parent_station"`
	Timezone           string             `json:"timezone,omitzero" db:"stop_timezone"`
	WheelchairBoarding WheelchairBoarding `json:"wheelchair_boarding,omitzero" db:"wheelchair_boarding"`
	LevelID            string             `json:"level_id,omitzero" db:"level_id"`
	PlatformCode       string             `json:"platform_code,omitzero" db:"platform_code"`
}

// Route represents a transit route
type Route struct {
	ID          string    `json:"id" db:"route_id"`
	AgencyID    string    `json:"agency_id,omitzero" db:"agency_id"`
	ShortName   string    `json:"short_name" db:"route_short_name"`
	LongName    string    `json:"long_name" db:"route_long_name"`
	Description string    `json:"description,omitzero" db:"route_desc"`
	Type        RouteType `json:"type" db:"route_type"`
	URL         string    `json:"url,omitzero" db:"route_url"`
	Color       string    `json:"color,omitzero" db:"route_color"`
	TextColor   string    `json:"text_color,omitzero" db:"route_text_color"`
	SortOrder   uint      `json:"sort_order,omitzero" db:"route_sort_order"`
}

// Trip represents a transit trip
type Trip struct {
	ID                   string          `json:"id" db:"trip_id"`
	RouteID              string          `json:"route_id" db:"route_id"`
	ServiceID            string          `json:"service_id" db:"service_id"`
	Headsign             string          `json:"headsign,omitzero" db:"trip_headsign"`
	ShortName            string          `json:"short_name,omitzero" db:"trip_short_name"`
	DirectionID          TripDirectionID `json:"direction_id" db:"direction_id"`
	BlockID              string          `json:"block_id,omitzero" db:"block_id"`
	ShapeID              string          `json:"shape_id,omitzero" db:"shape_id"`
	WheelchairAccessible TripAccess      `json:"wheelchair_accessible,omitzero" db:"wheelchair_accessible"`
	BikesAllowed         TripAccess      `json:"bikes_allowed,omitzero" db:"bikes_allowed"`
}

// StopTime represents a scheduled stop time for a trip
type StopTime struct {
	TripID            string           `json:"trip_id" db:"trip_id"`
	ArrivalTime       Time             `json:"arrival_time" db:"arrival_time"`
	DepartureTime     Time             `json:"departure_time" db:"departure_time"`
	StopID            string           `json:"stop_id" db:"stop_id"`
	StopSequence      uint             `json:"stop_sequence" db:"stop_sequence"`
	StopHeadsign      string           `json:"stop_headsign,omitzero" db:"stop_headsign"`
	PickupType        StopTimeBoarding `json:"pickup_type,omitzero" db:"pickup_type"`
	DropOffType       StopTimeBoarding `json:"drop_off_type,omitzero" db:"drop_off_type"`
	ShapeDistTraveled float64          `json:"shape_dist_traveled,omitzero" db:"shape_dist_traveled"`
	Timepoint         StopTimePoint    `json:"timepoint" db:"timepoint"`
}

// CalendarItem is a row of calendar.txt: a weekly service pattern valid
// between two dates.
type CalendarItem struct {
	ServiceID string               `json:"service_id" db:"service_id"`
	Monday    CalendarAvailability `json:"monday" db:"monday"`
	Tuesday   CalendarAvailability `json:"tuesday" db:"tuesday"`
	Wednesday CalendarAvailability `json:"wednesday" db:"wednesday"`
	Thursday  CalendarAvailability `json:"thursday" db:"thursday"`
	Friday    CalendarAvailability `json:"friday" db:"friday"`
	Saturday  CalendarAvailability `json:"saturday" db:"saturday"`
	Sunday    CalendarAvailability `json:"sunday" db:"sunday"`
	StartDate Date                 `json:"start_date" db:"start_date"`
	EndDate   Date                 `json:"end_date" db:"end_date"`
}

// CalendarDate represents an exception to a service's weekly pattern
type CalendarDate struct {
	ServiceID     string                `json:"service_id" db:"service_id"`
	Date          Date                  `json:"date" db:"date"`
	ExceptionType CalendarDateException `json:"exception_type" db:"exception_type"`
}

type FareAttribute struct {
	ID               string        `json:"id" db:"fare_id"`
	Price            float64       `json:"price" db:"price"`
	CurrencyType     string        `json:"currency_type" db:"currency_type"`
	PaymentMethod    FarePayment   `json:"payment_method" db:"payment_method"`
	Transfers        FareTransfers `json:"transfers" db:"transfers"`
	AgencyID         string        `json:"agency_id,omitzero" db:"agency_id"`
	TransferDuration uint          `json:"transfer_duration,omitzero" db:"transfer_duration"`
}

type FareRule struct {
	FareID        string `json:"fare_id" db:"fare_id"`
	RouteID       string `json:"route_id,omitzero" db:"route_id"`
	OriginID      string `json:"origin_id,omitzero" db:"origin_id"`
	DestinationID string `json:"destination_id,omitzero" db:"destination_id"`
	ContainsID    string `json:"contains_id,omitzero" db:"contains_id"`
}

// ShapePoint represents a single point of a shape
type ShapePoint struct {
	ShapeID      string  `json:"shape_id" db:"shape_id"`
	Latitude     float64 `json:"latitude" db:"shape_pt_lat"`
	Longitude    float64 `json:"longitude" db:"shape_pt_lon"`
	Sequence     uint    `json:"sequence" db:"shape_pt_sequence"`
	DistTraveled float64 `json:"dist_traveled,omitzero" db:"shape_dist_traveled"`
}

// Frequency represents headway-based service for a trip
type Frequency struct {
	TripID      string               `json:"trip_id" db:"trip_id"`
	StartTime   Time                 `json:"start_time" db:"start_time"`
	EndTime     Time                 `json:"end_time" db:"end_time"`
	HeadwaySecs uint                 `json:"headway_secs" db:"headway_secs"`
	ExactTimes  FrequencyTripService `json:"exact_times" db:"exact_times"`
}

type Transfer struct {
	FromStopID      string       `json:"from_stop_id" db:"from_stop_id"`
	ToStopID        string       `json:"to_stop_id" db:"to_stop_id"`
	Type            TransferType `json:"transfer_type" db:"transfer_type"`
	MinTransferTime uint         `json:"min_transfer_time,omitzero" db:"min_transfer_time"`
}

// Pathway links two locations inside a station
type Pathway struct {
	ID                   string           `json:"id" db:"pathway_id"`
	FromStopID           string           `json:"from_stop_id" db:"from_stop_id"`
	ToStopID             string           `json:"to_stop_id" db:"to_stop_id"`
	Mode                 PathwayMode      `json:"mode" db:"pathway_mode"`
	IsBidirectional      PathwayDirection `json:"is_bidirectional" db:"is_bidirectional"`
	Length               float64          `json:"length,omitzero" db:"length"`
	TraversalTime        uint             `json:"traversal_time,omitzero" db:"traversal_time"`
	StairCount           int              `json:"stair_count,omitzero" db:"stair_count"`
	MaxSlope             float64          `json:"max_slope,omitzero" db:"max_slope"`
	MinWidth             float64          `json:"min_width,omitzero" db:"min_width"`
	SignpostedAs         string           `json:"signposted_as,omitzero" db:"signposted_as"`
	ReversedSignpostedAs string           `json:"reversed_signposted_as,omitzero" db:"reversed_signposted_as"`
}

type Level struct {
	ID    string  `json:"id" db:"level_id"`
	Index float64 `json:"index" db:"level_index"`
	Name  string  `json:"name,omitzero" db:"level_name"`
}

// FeedInfo describes the dataset itself
type FeedInfo struct {
	PublisherName string `json:"publisher_name" db:"feed_publisher_name"`
	PublisherURL  string `json:"publisher_url" db:"feed_publisher_url"`
	Lang          string `json:"lang" db:"feed_lang"`
	StartDate     Date   `json:"start_date" db:"feed_start_date"`
	EndDate       Date   `json:"end_date" db:"feed_end_date"`
	Version       string `json:"version,omitzero" db:"feed_version"`
	ContactEmail  string `json:"contact_email,omitzero" db:"feed_contact_email"`
	ContactURL    string `json:"contact_url,omitzero" db:"feed_contact_url"`
}

// Translation holds a translated value for a field of another file
type Translation struct {
	TableName   TranslationTable `json:"table_name" db:"table_name"`
	FieldName   string           `json:"field_name" db:"field_name"`
	Language    string           `json:"language" db:"language"`
	Translation string           `json:"translation" db:"translation"`
	RecordID    string           `json:"record_id,omitzero" db:"record_id"`
	RecordSubID string           `json:"record_sub_id,omitzero" db:"record_sub_id"`
	FieldValue  string           `json:"field_value,omitzero" db:"field_value"`
}

type Attribution struct {
	ID               string          `json:"id,omitzero" db:"attribution_id"`
	AgencyID         string          `json:"agency_id,omitzero" db:"agency_id"`
	RouteID          string          `json:"route_id,omitzero" db:"route_id"`
	TripID           string          `json:"trip_id,omitzero" db:"trip_id"`
	OrganizationName string          `json:"organization_name" db:"organization_name"`
	IsProducer       AttributionRole `json:"is_producer" db:"is_producer"`
	IsOperator       AttributionRole `json:"is_operator" db:"is_operator"`
	IsAuthority      AttributionRole `json:"is_authority" db:"is_authority"`
	URL              string          `json:"url,omitzero" db:"attribution_url"`
	Email            string          `json:"email,omitzero" db:"attribution_email"`
	Phone            string          `json:"phone,omitzero" db:"attribution_phone"`
}
