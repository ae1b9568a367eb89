package openapi

import "maps"

// errorResponses are the shared error responses every spec carries, keyed by
// component name. Each body is an Error object.
var errorResponses = map[string]string{
	"BadRequest":          "Invalid request",
	"NotFound":            "Resource not found",
	"Conflict":            "Resource conflict (duplicate id)",
	"UnprocessableEntity": "Document failed schema validation",
	"ServiceUnavailable":  "Backing service unavailable",
}

// NewComponents creates Components with the shared Error and PageRequest
// schemas and one response per entry in errorResponses.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Case-insensitive substring match"},
					"sort":      {Type: "string", Description: "Comma-separated fields, - prefix for descending; unknown fields are ignored", Example: "-updated_at,title"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
	}
	for name, desc := range errorResponses {
		c.Responses[name] = ResponseJSON(desc, "Error")
	}
	return c
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
