package api

import (
	"math"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/joeshaw/gtfsfeed/internal/filter"
	"github.com/joeshaw/gtfsfeed/internal/models"
)

// handleShapes handles the shapes collection endpoint
func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	options := filter.NewOptions(r.URL.Query())

	var shapes map[string][]*models.ShapePoint

	switch {
	case options.HasFilter("id"):
		shapes = make(map[string][]*models.ShapePoint)
		for _, id := range options.GetFilter("id") {
			if points := s.store.GetShape(id); len(points) > 0 {
				shapes[id] = points
			}
		}
	case options.HasFilter("route"):
		shapes = make(map[string][]*models.ShapePoint)
		for _, routeID := range options.GetFilter("route") {
			for _, trip := range s.store.GetTripsByRoute(routeID) {
				if trip.ShapeID == "" {
					continue
				}
				if points := s.store.GetShape(trip.ShapeID); len(points) > 0 {
					shapes[trip.ShapeID] = points
				}
			}
		}
	default:
		shapes = s.store.GetAllShapes()
	}

	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	resources := make([]Resource, len(ids))
	for i, id := range ids {
		resources[i] = shapeToResource(id, shapes[id])
	}

	s.sendResponse(w, r, collection("/shapes", resources))
}

// handleShape handles the shape detail endpoint
func (s *Server) handleShape(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	points := s.store.GetShape(id)
	if len(points) == 0 {
		s.sendErrorResponse(w, http.StatusNotFound, "Shape not found")
		return
	}

	s.sendResponse(w, r, Response{
		Data: shapeToResource(id, points),
		Links: map[string]string{
			"self": "/shapes/" + id,
		},
	})
}

// shapeToResource converts the ordered points of a shape into a resource
// carrying both an encoded polyline and the raw points.
func shapeToResource(id string, points []*models.ShapePoint) Resource {
	coords := make([][2]float64, len(points))
	pointsData := make([]map[string]interface{}, len(points))

	for i, point := range points {
		coords[i] = [2]float64{point.Latitude, point.Longitude}
		pointsData[i] = map[string]interface{}{
			"latitude":      point.Latitude,
			"longitude":     point.Longitude,
			"sequence":      point.Sequence,
			"dist_traveled": point.DistTraveled,
		}
	}

	return newResource("shape", "shapes", id, map[string]interface{}{
		"polyline": encodePolyline(coords),
		"points":   pointsData,
	})
}

// encodePolyline encodes a series of coordinates into a Google polyline format
// Polyline encoding algorithm: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func encodePolyline(coords [][2]float64) string {
	if len(coords) == 0 {
		return ""
	}

	result := make([]byte, 0, len(coords)*4)

	var prevLat, prevLng int
	for _, coord := range coords {
		lat5 := int(math.Round(coord[0] * 1e5))
		lng5 := int(math.Round(coord[1] * 1e5))

		result = appendEncoded(result, lat5-prevLat)
		result = appendEncoded(result, lng5-prevLng)

		prevLat, prevLng = lat5, lng5
	}

	return string(result)
}

// appendEncoded appends an encoded integer to the byte slice
func appendEncoded(result []byte, value int) []byte {
	value = value << 1
	if value < 0 {
		value = ^value
	}

	for value >= 0x20 {
		result = append(result, byte((0x20|(value&0x1f))+63))
		value >>= 5
	}

	result = append(result, byte(value+63))
	return result
}
