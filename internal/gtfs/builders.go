package gtfs

import (
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// fieldReader pulls typed values out of a Row and keeps the first error.
type fieldReader struct {
	row Row
	err error
}

func (f *fieldReader) fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// required reads a column that must exist. Its value may be empty.
func (f *fieldReader) required(key string) string {
	v, err := required(f.row, key)
	f.fail(err)
	return v
}

// id reads a column that must exist and be non-empty.
func (f *fieldReader) id(key string) string {
	v, err := requiredNonEmpty(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) optional(key string) string {
	return optional(f.row, key)
}

func (f *fieldReader) requiredUint(key string) uint {
	v, err := requiredUint(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) optionalUint(key string) uint {
	v, err := optionalUint(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) optionalInt(key string) int {
	v, err := optionalInt(f.row, key, 0)
	f.fail(err)
	return v
}

func (f *fieldReader) requiredFloat(key string) float64 {
	v, err := requiredFloat(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) optionalFloat(key string) float64 {
	v, err := optionalFloat(f.row, key)
	f.fail(err)
	return v
}

// distance reads an optional non-negative float.
func (f *fieldReader) distance(key string) float64 {
	v := f.optionalFloat(key)
	f.fail(nonNegative(key, v))
	return v
}

func (f *fieldReader) latitude(key string) float64 {
	v := f.requiredFloat(key)
	f.fail(checkLatitude(key, v))
	return v
}

func (f *fieldReader) longitude(key string) float64 {
	v := f.requiredFloat(key)
	f.fail(checkLongitude(key, v))
	return v
}

func (f *fieldReader) time(key string) models.Time {
	v, err := timeField(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) requiredTime(key string) models.Time {
	v, err := requiredTime(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) requiredDate(key string) models.Date {
	v, err := requiredDate(f.row, key)
	f.fail(err)
	return v
}

func (f *fieldReader) optionalDate(key string) models.Date {
	v, err := optionalDate(f.row, key)
	f.fail(err)
	return v
}

func readRequiredEnum[E enum](f *fieldReader, key string) E {
	v, err := requiredEnum[E](f.row, key)
	f.fail(err)
	return v
}

func readOptionalEnum[E enum](f *fieldReader, key string, def E) E {
	v, err := optionalEnum(f.row, key, def)
	f.fail(err)
	return v
}

// BuildAgency builds an Agency from a row of agency.txt.
func BuildAgency(row Row) (models.Agency, error) {
	f := fieldReader{row: row}
	agency := models.Agency{
		ID:       f.optional("agency_id"),
		Name:     f.required("agency_name"),
		URL:      f.required("agency_url"),
		Timezone: f.required("agency_timezone"),
		Lang:     f.optional("agency_lang"),
		Phone:    f.optional("agency_phone"),
		FareURL:  f.optional("agency_fare_url"),
		Email:    f.optional("agency_email"),
	}
	if f.err != nil {
		return models.Agency{}, f.err
	}
	return agency, nil
}

// BuildStop builds a Stop from a row of stops.txt. Coordinates are recorded
// only when both stop_lat and stop_lon are given.
func BuildStop(row Row) (models.Stop, error) {
	f := fieldReader{row: row}
	stop := models.Stop{
		ID:                 f.id("stop_id"),
		Code:               f.optional("stop_code"),
		Name:               f.optional("stop_name"),
		Description:        f.optional("stop_desc"),
		ZoneID:             f.optional("zone_id"),
		URL:                f.optional("stop_url"),
		LocationType:       readOptionalEnum(&f, "location_type", models.StopOrPlatform),
		ParentStation:      f.optional("parent_station"),
		Timezone:           f.optional("stop_timezone"),
		WheelchairBoarding: readOptionalEnum(&f, "wheelchair_boarding", models.WheelchairNoInfo),
		LevelID:            f.optional("level_id"),
		PlatformCode:       f.optional("platform_code"),
	}

	lat, lon := f.optional("stop_lat"), f.optional("stop_lon")
	if lat != "" {
		stop.Latitude = f.latitude("stop_lat")
	}
	if lon != "" {
		stop.Longitude = f.longitude("stop_lon")
	}
	stop.CoordinatesPresent = lat != "" && lon != ""
	if !stop.CoordinatesPresent {
		stop.Latitude, stop.Longitude = 0, 0
	}

	if f.err == nil {
		switch stop.LocationType {
		case models.EntranceExit, models.GenericNode, models.BoardingArea:
			if stop.ParentStation == "" {
				f.fail(&Error{
					Kind:    RequiredFieldAbsent,
					Field:   "parent_station",
					Message: "'parent_station' is required for location_type " + stop.LocationType.String(),
				})
			}
		case models.Station:
			if stop.ParentStation != "" {
				f.fail(invalidField("parent_station", "a station cannot have a 'parent_station'"))
			}
		}
	}

	if f.err != nil {
		return models.Stop{}, f.err
	}
	return stop, nil
}

// BuildRoute builds a Route from a row of routes.txt.
func BuildRoute(row Row) (models.Route, error) {
	f := fieldReader{row: row}
	route := models.Route{
		ID:          f.id("route_id"),
		AgencyID:    f.optional("agency_id"),
		ShortName:   f.optional("route_short_name"),
		LongName:    f.optional("route_long_name"),
		Description: f.optional("route_desc"),
		URL:         f.optional("route_url"),
		Color:       f.optional("route_color"),
		TextColor:   f.optional("route_text_color"),
		SortOrder:   f.optionalUint("route_sort_order"),
	}

	if v, err := requiredInt(row, "route_type"); err != nil {
		f.fail(err)
	} else if v < 0 {
		f.fail(invalidField("route_type", "'route_type' must not be negative: %d", v))
	} else {
		route.Type = models.RouteType(v)
	}

	if f.err == nil && route.ShortName == "" && route.LongName == "" {
		f.fail(&Error{
			Kind:    RequiredFieldAbsent,
			Field:   "route_short_name",
			Message: "'route_short_name' or 'route_long_name' must be specified",
		})
	}

	if f.err != nil {
		return models.Route{}, f.err
	}
	return route, nil
}

// BuildTrip builds a Trip from a row of trips.txt.
func BuildTrip(row Row) (models.Trip, error) {
	f := fieldReader{row: row}
	trip := models.Trip{
		RouteID:              f.id("route_id"),
		ServiceID:            f.id("service_id"),
		ID:                   f.id("trip_id"),
		Headsign:             f.optional("trip_headsign"),
		ShortName:            f.optional("trip_short_name"),
		DirectionID:          readOptionalEnum(&f, "direction_id", models.DefaultDirection),
		BlockID:              f.optional("block_id"),
		ShapeID:              f.optional("shape_id"),
		WheelchairAccessible: readOptionalEnum(&f, "wheelchair_accessible", models.AccessNoInfo),
		BikesAllowed:         readOptionalEnum(&f, "bikes_allowed", models.AccessNoInfo),
	}
	if f.err != nil {
		return models.Trip{}, f.err
	}
	return trip, nil
}

// BuildStopTime builds a StopTime from a row of stop_times.txt. The
// arrival_time and departure_time columns must exist but may be empty.
func BuildStopTime(row Row) (models.StopTime, error) {
	f := fieldReader{row: row}
	st := models.StopTime{
		TripID:            f.id("trip_id"),
		ArrivalTime:       f.time("arrival_time"),
		DepartureTime:     f.time("departure_time"),
		StopID:            f.id("stop_id"),
		StopSequence:      f.requiredUint("stop_sequence"),
		StopHeadsign:      f.optional("stop_headsign"),
		PickupType:        readOptionalEnum(&f, "pickup_type", models.RegularlyScheduled),
		DropOffType:       readOptionalEnum(&f, "drop_off_type", models.RegularlyScheduled),
		ShapeDistTraveled: f.distance("shape_dist_traveled"),
		Timepoint:         readOptionalEnum(&f, "timepoint", models.Exact),
	}
	if f.err != nil {
		return models.StopTime{}, f.err
	}
	return st, nil
}

// BuildCalendarItem builds a CalendarItem from a row of calendar.txt.
func BuildCalendarItem(row Row) (models.CalendarItem, error) {
	f := fieldReader{row: row}
	item := models.CalendarItem{
		ServiceID: f.id("service_id"),
		Monday:    readRequiredEnum[models.CalendarAvailability](&f, "monday"),
		Tuesday:   readRequiredEnum[models.CalendarAvailability](&f, "tuesday"),
		Wednesday: readRequiredEnum[models.CalendarAvailability](&f, "wednesday"),
		Thursday:  readRequiredEnum[models.CalendarAvailability](&f, "thursday"),
		Friday:    readRequiredEnum[models.CalendarAvailability](&f, "friday"),
		Saturday:  readRequiredEnum[models.CalendarAvailability](&f, "saturday"),
		Sunday:    readRequiredEnum[models.CalendarAvailability](&f, "sunday"),
		StartDate: f.requiredDate("start_date"),
		EndDate:   f.requiredDate("end_date"),
	}
	if f.err != nil {
		return models.CalendarItem{}, f.err
	}
	return item, nil
}

// BuildCalendarDate builds a CalendarDate from a row of calendar_dates.txt.
func BuildCalendarDate(row Row) (models.CalendarDate, error) {
	f := fieldReader{row: row}
	cd := models.CalendarDate{
		ServiceID:     f.id("service_id"),
		Date:          f.requiredDate("date"),
		ExceptionType: readRequiredEnum[models.CalendarDateException](&f, "exception_type"),
	}
	if f.err != nil {
		return models.CalendarDate{}, f.err
	}
	return cd, nil
}

// BuildFareAttribute builds a FareAttribute from a row of
// fare_attributes.txt. An empty transfers value means unlimited transfers.
func BuildFareAttribute(row Row) (models.FareAttribute, error) {
	f := fieldReader{row: row}
	fare := models.FareAttribute{
		ID:               f.id("fare_id"),
		Price:            f.requiredFloat("price"),
		CurrencyType:     f.id("currency_type"),
		PaymentMethod:    readRequiredEnum[models.FarePayment](&f, "payment_method"),
		AgencyID:         f.optional("agency_id"),
		TransferDuration: f.optionalUint("transfer_duration"),
	}
	f.fail(nonNegative("price", fare.Price))

	if f.required("transfers") == "" {
		fare.Transfers = models.UnlimitedTransfers
	} else {
		fare.Transfers = readRequiredEnum[models.FareTransfers](&f, "transfers")
		if fare.Transfers == models.UnlimitedTransfers {
			f.fail(invalidField("transfers", "'transfers' has unsupported value -1"))
		}
	}

	if f.err != nil {
		return models.FareAttribute{}, f.err
	}
	return fare, nil
}

// BuildFareRule builds a FareRule from a row of fare_rules.txt.
func BuildFareRule(row Row) (models.FareRule, error) {
	f := fieldReader{row: row}
	rule := models.FareRule{
		FareID:        f.id("fare_id"),
		RouteID:       f.optional("route_id"),
		OriginID:      f.optional("origin_id"),
		DestinationID: f.optional("destination_id"),
		ContainsID:    f.optional("contains_id"),
	}
	if f.err != nil {
		return models.FareRule{}, f.err
	}
	return rule, nil
}

// BuildShapePoint builds a ShapePoint from a row of shapes.txt.
func BuildShapePoint(row Row) (models.ShapePoint, error) {
	f := fieldReader{row: row}
	pt := models.ShapePoint{
		ShapeID:      f.id("shape_id"),
		Latitude:     f.latitude("shape_pt_lat"),
		Longitude:    f.longitude("shape_pt_lon"),
		Sequence:     f.requiredUint("shape_pt_sequence"),
		DistTraveled: f.distance("shape_dist_traveled"),
	}
	if f.err != nil {
		return models.ShapePoint{}, f.err
	}
	return pt, nil
}

// BuildFrequency builds a Frequency from a row of frequencies.txt.
func BuildFrequency(row Row) (models.Frequency, error) {
	f := fieldReader{row: row}
	freq := models.Frequency{
		TripID:      f.id("trip_id"),
		StartTime:   f.requiredTime("start_time"),
		EndTime:     f.requiredTime("end_time"),
		HeadwaySecs: f.requiredUint("headway_secs"),
		ExactTimes:  readOptionalEnum(&f, "exact_times", models.FrequencyBased),
	}
	if f.err != nil {
		return models.Frequency{}, f.err
	}
	return freq, nil
}

// BuildTransfer builds a Transfer from a row of transfers.txt. An empty
// transfer_type means a recommended transfer.
func BuildTransfer(row Row) (models.Transfer, error) {
	f := fieldReader{row: row}
	tr := models.Transfer{
		FromStopID:      f.id("from_stop_id"),
		ToStopID:        f.id("to_stop_id"),
		MinTransferTime: f.optionalUint("min_transfer_time"),
	}
	f.required("transfer_type")
	tr.Type = readOptionalEnum(&f, "transfer_type", models.TransferRecommended)

	if f.err != nil {
		return models.Transfer{}, f.err
	}
	return tr, nil
}

// BuildPathway builds a Pathway from a row of pathways.txt.
func BuildPathway(row Row) (models.Pathway, error) {
	f := fieldReader{row: row}
	pw := models.Pathway{
		ID:                   f.id("pathway_id"),
		FromStopID:           f.id("from_stop_id"),
		ToStopID:             f.id("to_stop_id"),
		Mode:                 readRequiredEnum[models.PathwayMode](&f, "pathway_mode"),
		IsBidirectional:      readRequiredEnum[models.PathwayDirection](&f, "is_bidirectional"),
		Length:               f.distance("length"),
		TraversalTime:        f.optionalUint("traversal_time"),
		StairCount:           f.optionalInt("stair_count"),
		MaxSlope:             f.optionalFloat("max_slope"),
		MinWidth:             f.distance("min_width"),
		SignpostedAs:         f.optional("signposted_as"),
		ReversedSignpostedAs: f.optional("reversed_signposted_as"),
	}
	if f.err != nil {
		return models.Pathway{}, f.err
	}
	return pw, nil
}

// BuildLevel builds a Level from a row of levels.txt.
func BuildLevel(row Row) (models.Level, error) {
	f := fieldReader{row: row}
	level := models.Level{
		ID:    f.id("level_id"),
		Index: f.requiredFloat("level_index"),
		Name:  f.optional("level_name"),
	}
	if f.err != nil {
		return models.Level{}, f.err
	}
	return level, nil
}

// BuildFeedInfo builds FeedInfo from a row of feed_info.txt.
func BuildFeedInfo(row Row) (models.FeedInfo, error) {
	f := fieldReader{row: row}
	info := models.FeedInfo{
		PublisherName: f.required("feed_publisher_name"),
		PublisherURL:  f.required("feed_publisher_url"),
		Lang:          f.required("feed_lang"),
		StartDate:     f.optionalDate("feed_start_date"),
		EndDate:       f.optionalDate("feed_end_date"),
		Version:       f.optional("feed_version"),
		ContactEmail:  f.optional("feed_contact_email"),
		ContactURL:    f.optional("feed_contact_url"),
	}
	if f.err != nil {
		return models.FeedInfo{}, f.err
	}
	return info, nil
}

// BuildTranslation builds a Translation from a row of translations.txt.
func BuildTranslation(row Row) (models.Translation, error) {
	f := fieldReader{row: row}
	tr := models.Translation{
		FieldName:   f.required("field_name"),
		Language:    f.required("language"),
		Translation: f.required("translation"),
		RecordID:    f.optional("record_id"),
		RecordSubID: f.optional("record_sub_id"),
		FieldValue:  f.optional("field_value"),
	}

	table := f.id("table_name")
	if f.err == nil {
		t, ok := models.ParseTranslationTable(table)
		if !ok {
			f.fail(invalidField("table_name", "unknown 'table_name': %q", table))
		}
		tr.TableName = t
	}

	if f.err == nil && tr.TableName != models.TranslateFeedInfo {
		switch {
		case tr.RecordID == "" && tr.FieldValue == "":
			f.fail(&Error{
				Kind:    RequiredFieldAbsent,
				Field:   "record_id",
				Message: "'record_id' or 'field_value' must be specified",
			})
		case tr.RecordID != "" && tr.FieldValue != "":
			f.fail(invalidField("field_value", "'record_id' and 'field_value' cannot both be specified"))
		}
	}

	if f.err != nil {
		return models.Translation{}, f.err
	}
	return tr, nil
}

// BuildAttribution builds an Attribution from a row of attributions.txt.
func BuildAttribution(row Row) (models.Attribution, error) {
	f := fieldReader{row: row}
	attr := models.Attribution{
		ID:               f.optional("attribution_id"),
		AgencyID:         f.optional("agency_id"),
		RouteID:          f.optional("route_id"),
		TripID:           f.optional("trip_id"),
		OrganizationName: f.required("organization_name"),
		IsProducer:       readOptionalEnum(&f, "is_producer", models.RoleAbsent),
		IsOperator:       readOptionalEnum(&f, "is_operator", models.RoleAbsent),
		IsAuthority:      readOptionalEnum(&f, "is_authority", models.RoleAbsent),
		URL:              f.optional("attribution_url"),
		Email:            f.optional("attribution_email"),
		Phone:            f.optional("attribution_phone"),
	}

	if f.err == nil {
		if attr.IsProducer != models.RolePresent && attr.IsOperator != models.RolePresent && attr.IsAuthority != models.RolePresent {
			f.fail(&Error{
				Kind:    RequiredFieldAbsent,
				Field:   "is_producer",
				Message: "one of 'is_producer', 'is_operator' or 'is_authority' must be 1",
			})
		}

		scoped := 0
		for _, id := range []string{attr.AgencyID, attr.RouteID, attr.TripID} {
			if id != "" {
				scoped++
			}
		}
		if scoped > 1 {
			f.fail(invalidField("agency_id", "only one of 'agency_id', 'route_id' or 'trip_id' may be specified"))
		}
	}

	if f.err != nil {
		return models.Attribution{}, f.err
	}
	return attr, nil
}
