package models

import "database/sql/driver"

// StopLocationType is the location_type of a stop.
type StopLocationType int

const (
	StopOrPlatform StopLocationType = 0
	Station        StopLocationType = 1
	EntranceExit   StopLocationType = 2
	GenericNode    StopLocationType = 3
	BoardingArea   StopLocationType = 4
)

func (t StopLocationType) Valid() bool {
	return t >= StopOrPlatform && t <= BoardingArea
}

func (t StopLocationType) String() string {
	switch t {
	case StopOrPlatform:
		return "stop"
	case Station:
		return "station"
	case EntranceExit:
		return "entrance"
	case GenericNode:
		return "generic_node"
	case BoardingArea:
		return "boarding_area"
	}
	return "unknown"
}

// RouteType covers the basic GTFS route types and the extended
// (Google Transit) hierarchical values.
type RouteType int

const (
	Tram       RouteType = 0
	Subway     RouteType = 1
	Rail       RouteType = 2
	Bus        RouteType = 3
	Ferry      RouteType = 4
	CableTram  RouteType = 5
	AerialLift RouteType = 6
	Funicular  RouteType = 7
	Trolleybus RouteType = 11
	Monorail   RouteType = 12

	RailwayService            RouteType = 100
	HighSpeedRailService      RouteType = 101
	LongDistanceTrains        RouteType = 102
	InterRegionalRailService  RouteType = 103
	CarTransportRailService   RouteType = 104
	SleeperRailService        RouteType = 105
	RegionalRailService       RouteType = 106
	TouristRailwayService     RouteType = 107
	RailShuttleWithinComplex  RouteType = 108
	SuburbanRailway           RouteType = 109
	ReplacementRailService    RouteType = 110
	SpecialRailService        RouteType = 111
	LorryTransportRailService RouteType = 112
	AllRailServices           RouteType = 113
	CrossCountryRailService   RouteType = 114
	VehicleTransportRail      RouteType = 115
	RackAndPinionRailway      RouteType = 116
	AdditionalRailService     RouteType = 117
	CoachService              RouteType = 200
	UrbanRailwayService       RouteType = 400
	MetroService              RouteType = 401
	UndergroundService        RouteType = 402
	BusService                RouteType = 700
	TrolleybusService         RouteType = 800
	TramService               RouteType = 900
	WaterTransportService     RouteType = 1000
	AirService                RouteType = 1100
	FerryService              RouteType = 1200
	AerialLiftService         RouteType = 1300
	FunicularService          RouteType = 1400
	TaxiService               RouteType = 1500
	MiscellaneousService      RouteType = 1700
	HorseDrawnCarriage        RouteType = 1702
)

// Basic reports whether the type is one of the non-extended values.
func (t RouteType) Basic() bool {
	return (t >= Tram && t <= Funicular) || t == Trolleybus || t == Monorail
}

func (t RouteType) String() string {
	switch t {
	case Tram:
		return "tram"
	case Subway:
		return "subway"
	case Rail:
		return "rail"
	case Bus:
		return "bus"
	case Ferry:
		return "ferry"
	case CableTram:
		return "cable_tram"
	case AerialLift:
		return "aerial_lift"
	case Funicular:
		return "funicular"
	case Trolleybus:
		return "trolleybus"
	case Monorail:
		return "monorail"
	}
	if t >= RailwayService {
		return "extended"
	}
	return "unknown"
}

// TripDirectionID is the direction_id of a trip.
type TripDirectionID int

const (
	DefaultDirection  TripDirectionID = 0
	OppositeDirection TripDirectionID = 1
)

func (d TripDirectionID) Valid() bool {
	return d == DefaultDirection || d == OppositeDirection
}

// TripAccess is used for wheelchair_accessible and bikes_allowed.
type TripAccess int

const (
	AccessNoInfo     TripAccess = 0
	AccessAllowed    TripAccess = 1
	AccessNotAllowed TripAccess = 2
)

func (a TripAccess) Valid() bool {
	return a >= AccessNoInfo && a <= AccessNotAllowed
}

// WheelchairBoarding is the wheelchair_boarding of a stop.
type WheelchairBoarding int

const (
	WheelchairNoInfo     WheelchairBoarding = 0
	WheelchairPossible   WheelchairBoarding = 1
	WheelchairImpossible WheelchairBoarding = 2
)

func (w WheelchairBoarding) Valid() bool {
	return w >= WheelchairNoInfo && w <= WheelchairImpossible
}

// StopTimeBoarding is used for pickup_type and drop_off_type.
type StopTimeBoarding int

const (
	RegularlyScheduled   StopTimeBoarding = 0
	NotAvailable         StopTimeBoarding = 1
	PhoneAgency          StopTimeBoarding = 2
	CoordinateWithDriver StopTimeBoarding = 3
)

func (b StopTimeBoarding) Valid() bool {
	return b >= RegularlyScheduled && b <= CoordinateWithDriver
}

// StopTimePoint is the timepoint of a stop time.
type StopTimePoint int

const (
	Approximate StopTimePoint = 0
	Exact       StopTimePoint = 1
)

func (p StopTimePoint) Valid() bool {
	return p == Approximate || p == Exact
}

// CalendarAvailability is a weekday flag in calendar.txt.
type CalendarAvailability int

const (
	NotAvailableOnDay CalendarAvailability = 0
	AvailableOnDay    CalendarAvailability = 1
)

func (a CalendarAvailability) Valid() bool {
	return a == NotAvailableOnDay || a == AvailableOnDay
}

// CalendarDateException is the exception_type of a calendar date.
type CalendarDateException int

const (
	ServiceAdded   CalendarDateException = 1
	ServiceRemoved CalendarDateException = 2
)

func (e CalendarDateException) Valid() bool {
	return e == ServiceAdded || e == ServiceRemoved
}

// FarePayment is the payment_method of a fare.
type FarePayment int

const (
	PaidOnBoard        FarePayment = 0
	PaidBeforeBoarding FarePayment = 1
)

func (p FarePayment) Valid() bool {
	return p == PaidOnBoard || p == PaidBeforeBoarding
}

// FareTransfers is the number of transfers permitted on a fare.
type FareTransfers int

const (
	NoTransfers        FareTransfers = 0
	OneTransfer        FareTransfers = 1
	TwoTransfers       FareTransfers = 2
	UnlimitedTransfers FareTransfers = -1
)

func (t FareTransfers) Valid() bool {
	return t >= UnlimitedTransfers && t <= TwoTransfers
}

// FrequencyTripService is the exact_times of a frequency.
type FrequencyTripService int

const (
	FrequencyBased FrequencyTripService = 0
	ScheduleBased  FrequencyTripService = 1
)

func (s FrequencyTripService) Valid() bool {
	return s == FrequencyBased || s == ScheduleBased
}

// TransferType is the transfer_type of a transfer.
type TransferType int

const (
	TransferRecommended TransferType = 0
	TransferTimed       TransferType = 1
	TransferMinimumTime TransferType = 2
	TransferNotPossible TransferType = 3
	TransferInSeat      TransferType = 4
	TransferInSeatNever TransferType = 5
)

func (t TransferType) Valid() bool {
	return t >= TransferRecommended && t <= TransferInSeatNever
}

// PathwayMode is the pathway_mode of a pathway.
type PathwayMode int

const (
	Walkway        PathwayMode = 1
	Stairs         PathwayMode = 2
	MovingSidewalk PathwayMode = 3
	Escalator      PathwayMode = 4
	Elevator       PathwayMode = 5
	FareGate       PathwayMode = 6
	ExitGate       PathwayMode = 7
)

func (m PathwayMode) Valid() bool {
	return m >= Walkway && m <= ExitGate
}

// PathwayDirection is the is_bidirectional of a pathway.
type PathwayDirection int

const (
	Unidirectional PathwayDirection = 0
	Bidirectional  PathwayDirection = 1
)

func (d PathwayDirection) Valid() bool {
	return d == Unidirectional || d == Bidirectional
}

// TranslationTable names the file a translation applies to.
type TranslationTable int

const (
	TranslateAgency TranslationTable = iota
	TranslateStops
	TranslateRoutes
	TranslateTrips
	TranslateStopTimes
	TranslateFeedInfo
)

var translationTableNames = map[string]TranslationTable{
	"agency":     TranslateAgency,
	"stops":      TranslateStops,
	"routes":     TranslateRoutes,
	"trips":      TranslateTrips,
	"stop_times": TranslateStopTimes,
	"feed_info":  TranslateFeedInfo,
}

// ParseTranslationTable maps a table_name value to its TranslationTable.
func ParseTranslationTable(name string) (TranslationTable, bool) {
	t, ok := translationTableNames[name]
	return t, ok
}

func (t TranslationTable) String() string {
	for name, v := range translationTableNames {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// Value stores the table name rather than its ordinal.
func (t TranslationTable) Value() (driver.Value, error) {
	return t.String(), nil
}

// MarshalJSON encodes the table name.
func (t TranslationTable) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// AttributionRole is used for is_producer, is_operator and is_authority.
type AttributionRole int

const (
	RoleAbsent  AttributionRole = 0
	RolePresent AttributionRole = 1
)

func (r AttributionRole) Valid() bool {
	return r == RoleAbsent || r == RolePresent
}
