package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/joeshaw/gtfsfeed/internal/filter"
)

// Resource represents a JSON:API resource object
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    map[string]interface{}  `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         map[string]string       `json:"links,omitempty"`
}

// Relationship represents a JSON:API relationship object
type Relationship struct {
	Data  interface{}       `json:"data,omitempty"`
	Links map[string]string `json:"links,omitempty"`
}

// ResourceIdentifier represents a JSON:API resource identifier object
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Response represents a JSON:API response document
type Response struct {
	Data     interface{}            `json:"data"`
	Included []Resource             `json:"included,omitempty"`
	Links    map[string]string      `json:"links,omitempty"`
	Meta     map[string]interface{} `json:"meta,omitempty"`
}

// ErrorResponse represents a JSON:API error response
type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

// Error represents a JSON:API error object
type Error struct {
	Status string `json:"status,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// newResource builds a resource whose self link is /<collection>/<id>.
func newResource(typ, collection, id string, attributes map[string]interface{}) Resource {
	return Resource{
		Type:       typ,
		ID:         id,
		Attributes: attributes,
		Links: map[string]string{
			"self": "/" + collection + "/" + id,
		},
	}
}

// relate adds a to-one relationship unless id is empty.
func (r *Resource) relate(name, typ, id string) {
	if id == "" {
		return
	}
	if r.Relationships == nil {
		r.Relationships = make(map[string]Relationship)
	}
	r.Relationships[name] = Relationship{Data: ResourceIdentifier{Type: typ, ID: id}}
}

// collection wraps resources in a response linked to self.
func collection(self string, resources []Resource) Response {
	return Response{
		Data:  resources,
		Links: map[string]string{"self": self},
		Meta:  map[string]interface{}{"count": len(resources)},
	}
}

// sendResponse sends a JSON:API response, trimming attributes to the
// sparse fieldsets requested with fields[type]=a,b.
func (s *Server) sendResponse(w http.ResponseWriter, r *http.Request, response Response) {
	options := filter.NewOptions(r.URL.Query())
	if len(options.Fields) > 0 {
		switch data := response.Data.(type) {
		case Resource:
			response.Data = sparseFields(data, options)
		case []Resource:
			for i := range data {
				data[i] = sparseFields(data[i], options)
			}
		}
		for i := range response.Included {
			response.Included[i] = sparseFields(response.Included[i], options)
		}
	}
	s.writeJSON(w, http.StatusOK, response)
}

func sparseFields(res Resource, options *filter.Options) Resource {
	if options.GetFields(res.Type) == nil {
		return res
	}
	attributes := make(map[string]interface{}, len(res.Attributes))
	for name, v := range res.Attributes {
		if options.ShouldIncludeField(res.Type, name) {
			attributes[name] = v
		}
	}
	res.Attributes = attributes
	return res
}

// sendErrorResponse sends a JSON:API error response
func (s *Server) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, ErrorResponse{
		Errors: []Error{
			{
				Status: strconv.Itoa(statusCode),
				Title:  http.StatusText(statusCode),
				Detail: message,
			},
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling JSON: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(statusCode)
	w.Write(jsonData)
}
