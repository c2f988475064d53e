// Package docs registers the swagger document served at /swagger/doc.json.
// Regenerate with: swag init -g internal/platform/httpserver/server.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/contracts": {
            "get": {
                "produces": ["application/json"],
                "summary": "List vendor contracts ordered by end date",
                "parameters": [
                    {"type": "string", "name": "vendor_id", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"},
                    {"type": "boolean", "name": "expired", "in": "query"},
                    {"type": "integer", "name": "expiring_within_days", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create a vendor contract",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/contracts/{contract_id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get a contract (status healed on read)",
                "parameters": [{"type": "string", "name": "contract_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Update a contract",
                "parameters": [{"type": "string", "name": "contract_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "summary": "Delete a contract",
                "parameters": [{"type": "string", "name": "contract_id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/contracts/{contract_id}/document": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Attach an uploaded document URL to a contract",
                "parameters": [{"type": "string", "name": "contract_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Steward Contract Lifecycle API",
	Description:      "Vendor contract lifecycle management",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
