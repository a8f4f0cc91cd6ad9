package sysprompts

import "github.com/JaimeStill/sysprompts/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Create     *openapi.Operation
	Search     *openapi.Operation
	Default    *openapi.Operation
	ForModel   *openapi.Operation
	Find       *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	SetDefault *openapi.Operation
}

// Spec holds the OpenAPI operations for the system prompt routes.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List system prompts",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompts ordered by name", "PromptList"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a system prompt",
		Description: "Creating a default prompt demotes the current default.",
		RequestBody: openapi.RequestBodyJSON("CreateCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", "PromptResponse"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search system prompts by tag",
		Description: "Returns prompts carrying any of the requested tags. An empty tag list matches nothing.",
		RequestBody: openapi.RequestBodyJSON("SearchCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Matching prompts", "PromptList"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Default: &openapi.Operation{
		Summary: "Get the default system prompt",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Default prompt", "PromptResponse"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	ForModel: &openapi.Operation{
		Summary:     "Resolve the system prompt for a model",
		Description: "Exact model match, then partial match in either direction, then the default.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("model", "Model name, e.g. gpt-4o")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resolved prompt", "PromptResponse"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get a system prompt by id or name",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id or name")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "PromptResponse"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update a system prompt",
		Description: "Only supplied fields change.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
		RequestBody: openapi.RequestBodyJSON("UpdateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", "PromptResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a system prompt",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseMessage("System prompt deleted successfully"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	SetDefault: &openapi.Operation{
		Summary:    "Make a system prompt the default",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseMessage("Default system prompt set successfully"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func Schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	tags := &openapi.Schema{Type: "array", Items: str}

	return map[string]*openapi.Schema{
		"Prompt": {
			Type:     "object",
			Required: []string{"id", "name", "content", "is_default", "created_at", "updated_at", "tags"},
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"name":           str,
				"description":    {Type: "string", Description: "Optional free text"},
				"content":        str,
				"is_default":     {Type: "boolean"},
				"created_at":     {Type: "string", Format: "date-time"},
				"updated_at":     {Type: "string", Format: "date-time"},
				"tags":           tags,
				"model_specific": {Type: "string", Description: "Target model family"},
			},
		},
		"PromptList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompts": {Type: "array", Items: openapi.SchemaRef("Prompt")},
			},
		},
		"PromptResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompt": openapi.SchemaRef("Prompt"),
			},
		},
		"CreateCommand": {
			Type:     "object",
			Required: []string{"name", "content"},
			Properties: map[string]*openapi.Schema{
				"name":           str,
				"description":    str,
				"content":        str,
				"tags":           tags,
				"model_specific": str,
				"is_default":     {Type: "boolean", Default: false},
			},
		},
		"UpdateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":           str,
				"description":    str,
				"content":        str,
				"tags":           tags,
				"model_specific": str,
			},
		},
		"SearchCommand": {
			Type:     "object",
			Required: []string{"tags"},
			Properties: map[string]*openapi.Schema{
				"tags": tags,
			},
		},
	}
}
