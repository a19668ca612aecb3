package filter

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/joeshaw/gtfsfeed/internal/models"
)

// Options represents filter, sort, include, and fields options for an API request
type Options struct {
	Filters  map[string][]string
	Includes []string
	Fields   map[string][]string
	Sort     []string
}

// NewOptions parses query parameters and creates filter options. Filter
// values are split on commas, so filter[id]=a,b matches either id.
func NewOptions(query url.Values) *Options {
	options := &Options{
		Filters:  make(map[string][]string),
		Includes: []string{},
		Fields:   make(map[string][]string),
		Sort:     []string{},
	}

	for key, values := range query {
		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			name := key[7 : len(key)-1]
			for _, v := range values {
				options.Filters[name] = append(options.Filters[name], splitList(v)...)
			}
		case strings.HasPrefix(key, "fields[") && strings.HasSuffix(key, "]"):
			if len(values) > 0 {
				// fields[type]= asks for no attributes at all
				fields := splitList(values[0])
				if fields == nil {
					fields = []string{}
				}
				options.Fields[key[7:len(key)-1]] = fields
			}
		}
	}

	if include := query.Get("include"); include != "" {
		options.Includes = splitList(include)
	}
	if sort := query.Get("sort"); sort != "" {
		options.Sort = splitList(sort)
	}

	return options
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HasFilter checks if a specific filter exists
func (o *Options) HasFilter(name string) bool {
	_, exists := o.Filters[name]
	return exists
}

// GetFilter returns the value(s) for a specific filter
func (o *Options) GetFilter(name string) []string {
	return o.Filters[name]
}

// Matches reports whether value passes the named filter. An absent filter
// matches everything.
func (o *Options) Matches(name, value string) bool {
	values, ok := o.Filters[name]
	return !ok || slices.Contains(values, value)
}

// GetInts returns the named filter as integers.
func (o *Options) GetInts(name string) ([]int, error) {
	var out []int
	for _, v := range o.Filters[name] {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("filter[%s]: %q is not an integer", name, v)
		}
		out = append(out, i)
	}
	return out, nil
}

// GetDate returns the named filter as a GTFS date (YYYYMMDD). The filter
// must have exactly one value.
func (o *Options) GetDate(name string) (models.Date, error) {
	values := o.Filters[name]
	if len(values) != 1 {
		return models.Date{}, fmt.Errorf("filter[%s] takes a single YYYYMMDD date", name)
	}
	d, err := models.ParseDate(values[0])
	if err != nil {
		return models.Date{}, fmt.Errorf("filter[%s]: %w", name, err)
	}
	if !d.IsProvided() {
		return models.Date{}, fmt.Errorf("filter[%s] is empty", name)
	}
	return d, nil
}

// HasInclude checks if a specific include is requested
func (o *Options) HasInclude(name string) bool {
	return slices.Contains(o.Includes, name)
}

// GetFields returns the fields to include for a resource type, or nil when
// no sparse fieldset was requested for it.
func (o *Options) GetFields(resourceType string) []string {
	return o.Fields[resourceType]
}

// ShouldIncludeField checks if a field should be included
func (o *Options) ShouldIncludeField(resourceType, field string) bool {
	fields, ok := o.Fields[resourceType]
	if !ok {
		// If no fields specified, include all
		return true
	}
	return slices.Contains(fields, field)
}

// HasSort checks if sorting is requested
func (o *Options) HasSort() bool {
	return len(o.Sort) > 0
}

// GetSort returns the sort fields
func (o *Options) GetSort() []string {
	return o.Sort
}

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(item T) bool

// Filter applies a filter function to a slice of items
func Filter[T any](items []T, fn FilterFunc[T]) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if fn(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// CompareFunc orders two items by one sort key.
type CompareFunc[T any] func(a, b T) int

// SortBy orders items by the given sort keys, as in sort=name,-id. A key
// prefixed with "-" sorts descending. Keys missing from compare are an
// error. Items that compare equal on every key keep their order.
func SortBy[T any](items []T, keys []string, compare map[string]CompareFunc[T]) error {
	type step struct {
		fn   CompareFunc[T]
		desc bool
	}
	steps := make([]step, 0, len(keys))
	for _, key := range keys {
		name, desc := strings.CutPrefix(key, "-")
		fn, ok := compare[name]
		if !ok {
			return fmt.Errorf("unsupported sort field %q", name)
		}
		steps = append(steps, step{fn, desc})
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, st := range steps {
			c := st.fn(a, b)
			if st.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

// By builds a CompareFunc from a key extractor.
func By[T any, K cmp.Ordered](key func(T) K) CompareFunc[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
