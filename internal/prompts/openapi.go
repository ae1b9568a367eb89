package prompts

import "github.com/JaimeStill/promptiverse/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	ModalTypes *openapi.Operation
	Stats      *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	Search     *openapi.Operation
}

// Spec documents the prompt endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List prompts",
		Description: "Returns a paginated list of prompts with optional filters.",
		Parameters: append(
			openapi.PageParams(),
			openapi.RefQueryParam("modal_type", "ModalType", "Filter by modal type; unknown values are ignored"),
			openapi.QueryParam("style_profile_id", "string", "Filter by referenced style profile", false),
			openapi.QueryParam("tags", "string", "Comma-separated tags; matches any", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated prompts", "PromptPageResult"),
		},
	},
	ModalTypes: &openapi.Operation{
		Summary: "List supported modal types",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Modal types",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{
						Type:  "array",
						Items: openapi.SchemaRef("ModalType"),
					}},
				},
			},
		},
	},
	Stats: &openapi.Operation{
		Summary:     "Prompt catalog statistics",
		Description: "Returns the prompt total, counts by modal type, and the most recent prompts.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("recent", "integer", "Number of recent prompts to include (default 5)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Statistics", "PromptStats"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find prompt by ID",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt details", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create prompt",
		Description: "Creates a prompt. A referenced style profile has its usage count incremented.",
		RequestBody: openapi.RequestBodyJSON("PromptPayload", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Replace prompt",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt UUID")},
		RequestBody: openapi.RequestBodyJSON("PromptPayload", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete prompt",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt UUID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Prompt deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search prompts",
		Description: "Search prompts with a JSON body combining pagination and filters.",
		RequestBody: openapi.RequestBodyJSON("PromptSearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated prompts", "PromptPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

// Schemas returns the component schemas referenced by the prompt operations.
func (spec) Schemas() map[string]*openapi.Schema {
	modalEnum := make([]any, 0, len(ModalTypes()))
	for _, m := range ModalTypes() {
		modalEnum = append(modalEnum, string(m))
	}

	tags := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	document := &openapi.Schema{Type: "object", AdditionalProperties: true}

	return map[string]*openapi.Schema{
		"ModalType": {Type: "string", Enum: modalEnum},
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"title":            {Type: "string"},
				"description":      {Type: "string"},
				"modal_type":       openapi.SchemaRef("ModalType"),
				"content":          document,
				"style_profile_id": {Type: "string"},
				"style_name":       {Type: "string", Description: "Name of the referenced style profile"},
				"tags":             tags,
				"metadata":         document,
				"created_at":       {Type: "string", Format: "date-time"},
				"updated_at":       {Type: "string", Format: "date-time"},
			},
		},
		"PromptPayload": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":            {Type: "string", Example: "Lighthouse at dusk"},
				"description":      {Type: "string"},
				"modal_type":       openapi.SchemaRef("ModalType"),
				"content":          document,
				"style_profile_id": {Type: "string", Example: "style.neo_noir.v1"},
				"tags":             tags,
				"metadata":         document,
			},
		},
		"PromptPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Prompt")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"PromptSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":             {Type: "integer"},
				"page_size":        {Type: "integer"},
				"search":           {Type: "string"},
				"sort":             {Type: "string"},
				"modal_type":       openapi.SchemaRef("ModalType"),
				"style_profile_id": {Type: "string"},
				"tags":             tags,
			},
		},
		"PromptStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":         {Type: "integer"},
				"by_modal_type": {Type: "object", Description: "Count per modal type"},
				"recent":        {Type: "array", Items: openapi.SchemaRef("Prompt")},
			},
		},
	}
}
