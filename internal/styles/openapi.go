package styles

import (
	"maps"

	"github.com/JaimeStill/promptiverse/pkg/openapi"
)

type spec struct {
	List     *openapi.Operation
	Find     *openapi.Operation
	Create   *openapi.Operation
	Update   *openapi.Operation
	Delete   *openapi.Operation
	Search   *openapi.Operation
	Validate *openapi.Operation
	Export   *openapi.Operation
	Snapshot *openapi.Operation
}

var idParam = openapi.StringPathParam("id", "Style profile ID (e.g. style.neo_noir.v1)")

// Spec documents the style profile endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List style profiles",
		Description: "Returns a paginated list of style profiles. search matches name and description.",
		Parameters: append(
			openapi.PageParams(),
			openapi.QueryParam("tags", "string", "Comma-separated tags; matches any", false),
			openapi.QueryParam("is_template", "boolean", "Filter by template flag", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated style profiles", "StyleProfilePageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find style profile by ID",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Style profile", "StyleProfile"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create style profile",
		Description: "Creates a style profile. The ID is optional; a UUID is assigned when omitted.",
		RequestBody: openapi.RequestBodyJSON("StyleProfileCreate", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created style profile", "StyleProfile"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Replace style profile",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("StyleProfilePayload", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated style profile", "StyleProfile"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete style profile",
		Description: "Deletes the profile and its export. Prompts referencing it keep no style.",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Style profile deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search style profiles",
		RequestBody: openapi.RequestBodyJSON("StyleProfileSearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated style profiles", "StyleProfilePageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Validate: &openapi.Operation{
		Summary:     "Validate a style profile document",
		Description: "Checks a document against the style profile schema without storing it.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{Type: "object", AdditionalProperties: true}},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Validation result", "ValidationResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export style profile",
		Description: "Writes a canonical JSON snapshot of the profile to blob storage.",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Export details", "StyleExport"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Snapshot: &openapi.Operation{
		Summary:    "Download style profile export",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseAttachment("Exported snapshot", "application/json"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas referenced by the style profile operations.
func (spec) Schemas() map[string]*openapi.Schema {
	tags := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	section := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "object", Description: desc}
	}

	payload := map[string]*openapi.Schema{
		"schema_version": {Type: "string", Example: SchemaVersion},
		"name":           {Type: "string", Example: "Neo-Noir"},
		"description":    {Type: "string"},
		"tags":           tags,
		"intent":         section("Use cases and mood"),
		"style":          section("Aesthetic, palette, lighting, rendering, camera, and postprocess descriptors"),
		"negative":       section("Weighted terms to avoid"),
		"is_template":    {Type: "boolean"},
	}

	withID := func(extra map[string]*openapi.Schema) map[string]*openapi.Schema {
		props := maps.Clone(payload)
		maps.Copy(props, extra)
		return props
	}

	return map[string]*openapi.Schema{
		"StyleProfile": {
			Type: "object",
			Properties: withID(map[string]*openapi.Schema{
				"id":          {Type: "string"},
				"usage_count": {Type: "integer"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			}),
		},
		"StyleProfilePayload": {
			Type:       "object",
			Required:   []string{"name"},
			Properties: payload,
		},
		"StyleProfileCreate": {
			Type:     "object",
			Required: []string{"name"},
			Properties: withID(map[string]*openapi.Schema{
				"id": {Type: "string", Example: "style.neo_noir.v1"},
			}),
		},
		"StyleProfilePageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("StyleProfile")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"StyleProfileSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"search":      {Type: "string"},
				"sort":        {Type: "string"},
				"name":        {Type: "string"},
				"tags":        tags,
				"is_template": {Type: "boolean"},
			},
		},
		"ValidationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"valid":  {Type: "boolean"},
				"errors": tags,
			},
		},
		"StyleExport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"style_id":     {Type: "string"},
				"key":          {Type: "string"},
				"size":         {Type: "integer"},
				"content_type": {Type: "string"},
				"exported_at":  {Type: "string", Format: "date-time"},
			},
		},
	}
}
