// Package docs holds the swagger spec served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/create": {
            "post": {
                "description": "Validates the text fields and four photos, stores them and renders the invite page.\nPhotos are sent as photo_cover, photo_story, photo_details and photo_rsvp, or as exactly four files in \"photos\".",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Create an invite",
                "responses": {
                    "200": {"description": "Invite created", "schema": {"$ref": "#/definitions/handlers.CreateInviteResponse"}},
                    "400": {"description": "Missing field or unsupported photo", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Storage or rendering failure", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/invites": {
            "get": {
                "description": "Lists invites recorded in the mirror index, newest first. Only available when the Supabase mirror is configured.",
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "List recent invites",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of invites (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Recent invites", "schema": {"$ref": "#/definitions/handlers.ListInvitesResponse"}},
                    "404": {"description": "Mirror not configured", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Mirror query failed", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/prefill": {
            "post": {
                "description": "Sends free-text question/answer pairs to the language model and returns values for every schema field.\nFields the model cannot fill with confidence are empty strings.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Prefill invite fields",
                "parameters": [
                    {"description": "Question/answer pairs", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PrefillRequest"}}
                ],
                "responses": {
                    "200": {"description": "Derived field values", "schema": {"$ref": "#/definitions/handlers.PrefillResponse"}},
                    "400": {"description": "Missing or malformed answers", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Model not configured or model call failed", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateInviteResponse": {
            "type": "object",
            "properties": {
                "direct_static_url": {"type": "string"},
                "invite_id": {"type": "string"},
                "ok": {"type": "boolean"},
                "url": {"type": "string"}
            }
        },
        "handlers.ListInvitesResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.InviteRecord"}},
                "ok": {"type": "boolean"}
            }
        },
        "handlers.PrefillResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": {"type": "string"}},
                "ok": {"type": "boolean"}
            }
        },
        "models.Answer": {
            "type": "object",
            "properties": {
                "a": {"type": "string", "maxLength": 4000},
                "q": {"type": "string", "maxLength": 500}
            }
        },
        "models.InviteRecord": {
            "type": "object",
            "properties": {
                "couple_title": {"type": "string"},
                "created_at": {"type": "string"},
                "invite_id": {"type": "string"},
                "page_title": {"type": "string"},
                "page_url": {"type": "string"},
                "venue_name": {"type": "string"},
                "wedding_date_text": {"type": "string"}
            }
        },
        "models.PrefillRequest": {
            "type": "object",
            "required": ["answers"],
            "properties": {
                "answers": {"type": "array", "maxItems": 50, "minItems": 1, "items": {"$ref": "#/definitions/models.Answer"}}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "ok": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Invite Service API",
	Description:      "Creates shareable wedding invitation pages from form fields and four photos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
