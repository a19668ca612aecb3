package gtfs

import (
	"github.com/joeshaw/gtfsfeed/internal/store"
)

// FileKind identifies one of the files of a GTFS dataset.
type FileKind int

const (
	AgencyFile FileKind = iota
	StopsFile
	RoutesFile
	TripsFile
	StopTimesFile
	CalendarFile
	CalendarDatesFile
	FareAttributesFile
	FareRulesFile
	ShapesFile
	FrequenciesFile
	TransfersFile
	PathwaysFile
	LevelsFile
	FeedInfoFile
	TranslationsFile
	AttributionsFile
)

// Presence says whether a dataset must contain a file.
type Presence int

const (
	Required Presence = iota
	ConditionallyRequired
	Optional
)

// rowHandler builds a record from a row and adds it to the store.
type rowHandler func(st *store.Store, row Row) error

type fileSpec struct {
	Name     string
	Presence Presence
	handle   rowHandler
}

func handler[T any](build func(Row) (T, error), add func(*store.Store, *T)) rowHandler {
	return func(st *store.Store, row Row) error {
		rec, err := build(row)
		if err != nil {
			return err
		}
		add(st, &rec)
		return nil
	}
}

var files = map[FileKind]fileSpec{
	AgencyFile:         {"agency.txt", Required, handler(BuildAgency, (*store.Store).AddAgency)},
	StopsFile:          {"stops.txt", Required, handler(BuildStop, (*store.Store).AddStop)},
	RoutesFile:         {"routes.txt", Required, handler(BuildRoute, (*store.Store).AddRoute)},
	TripsFile:          {"trips.txt", Required, handler(BuildTrip, (*store.Store).AddTrip)},
	StopTimesFile:      {"stop_times.txt", Required, handler(BuildStopTime, (*store.Store).AddStopTime)},
	CalendarFile:       {"calendar.txt", ConditionallyRequired, handler(BuildCalendarItem, (*store.Store).AddCalendarItem)},
	CalendarDatesFile:  {"calendar_dates.txt", ConditionallyRequired, handler(BuildCalendarDate, (*store.Store).AddCalendarDate)},
	FareAttributesFile: {"fare_attributes.txt", Optional, handler(BuildFareAttribute, (*store.Store).AddFareAttribute)},
	FareRulesFile:      {"fare_rules.txt", Optional, handler(BuildFareRule, (*store.Store).AddFareRule)},
	ShapesFile:         {"shapes.txt", Optional, handler(BuildShapePoint, (*store.Store).AddShapePoint)},
	FrequenciesFile:    {"frequencies.txt", Optional, handler(BuildFrequency, (*store.Store).AddFrequency)},
	TransfersFile:      {"transfers.txt", Optional, handler(BuildTransfer, (*store.Store).AddTransfer)},
	PathwaysFile:       {"pathways.txt", Optional, handler(BuildPathway, (*store.Store).AddPathway)},
	LevelsFile:         {"levels.txt", ConditionallyRequired, handler(BuildLevel, (*store.Store).AddLevel)},
	FeedInfoFile:       {"feed_info.txt", ConditionallyRequired, handler(BuildFeedInfo, (*store.Store).SetFeedInfo)},
	TranslationsFile:   {"translations.txt", Optional, handler(BuildTranslation, (*store.Store).AddTranslation)},
	AttributionsFile:   {"attributions.txt", Optional, handler(BuildAttribution, (*store.Store).AddAttribution)},
}

// loadOrder is the order in which Load reads files.
var loadOrder = []FileKind{
	AgencyFile,
	StopsFile,
	RoutesFile,
	TripsFile,
	StopTimesFile,
	CalendarFile,
	CalendarDatesFile,
	FareAttributesFile,
	FareRulesFile,
	ShapesFile,
	FrequenciesFile,
	TransfersFile,
	PathwaysFile,
	LevelsFile,
	FeedInfoFile,
	TranslationsFile,
	AttributionsFile,
}

// FileName returns the dataset file name for k.
func (k FileKind) FileName() string {
	return files[k].Name
}

func (k FileKind) String() string {
	return k.FileName()
}

// Presence returns whether the file must be present in a dataset.
func (k FileKind) Presence() Presence {
	return files[k].Presence
}
