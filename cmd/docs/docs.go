// Package docs holds the Swagger document served at /swagger when not in production.
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
        "/distribution": {
            "get": {
                "description": "Counts readings per mood between start and end inclusive. Both default to today.",
                "produces": ["application/json"],
                "tags": ["distribution"],
                "summary": "Mood distribution",
                "parameters": [
                    {"type": "string", "description": "First day (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Last day (YYYY-MM-DD)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DistributionResponse"}},
                    "400": {"description": "Invalid date range", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/dto.DistributionResponse"}}
                }
            }
        },
        "/distribution/stream": {
            "get": {
                "description": "Server-Sent Events stream of today's distribution. One event is sent on connect, then one per refresh (timer or new submission).",
                "produces": ["text/event-stream"],
                "tags": ["distribution"],
                "summary": "Live mood distribution",
                "responses": {
                    "200": {"description": "distribution events", "schema": {"$ref": "#/definitions/dto.DistributionResponse"}}
                }
            }
        },
        "/moods": {
            "get": {
                "description": "Returns the readings between start and end inclusive, oldest first. Both default to today.",
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "List mood readings",
                "parameters": [
                    {"type": "string", "description": "First day (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Last day (YYYY-MM-DD)", "name": "end", "in": "query"},
                    {"type": "integer", "description": "Page size (1-500, default 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Cursor from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListMoodEntriesResponse"}},
                    "400": {"description": "Invalid date range or token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Appends a reading stamped with the server time. The mood may be the emoji or its label.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "Log a mood reading",
                "parameters": [
                    {"description": "Mood reading", "name": "mood", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitMoodRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MoodEntryResponse"}},
                    "400": {"description": "No mood or unknown mood", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too many submissions", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/moods/options": {
            "get": {
                "description": "Returns the mood options in display order and the chart refresh interval.",
                "produces": ["application/json"],
                "tags": ["moods"],
                "summary": "Mood board configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MoodOptionsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.MoodOption": {
            "type": "object",
            "properties": {"emoji": {"type": "string"}, "label": {"type": "string"}}
        },
        "dto.MoodCountResponse": {
            "type": "object",
            "properties": {
                "emoji": {"type": "string"},
                "label": {"type": "string"},
                "count": {"type": "integer"},
                "share": {"type": "number"}
            }
        },
        "dto.DistributionResponse": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "total": {"type": "integer"},
                "counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "bars": {"type": "array", "items": {"$ref": "#/definitions/dto.MoodCountResponse"}},
                "generatedAt": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "dto.MoodEntryResponse": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "mood": {"type": "string"},
                "label": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "dto.ListMoodEntriesResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.MoodEntryResponse"}},
                "nextToken": {"type": "string"}
            }
        },
        "dto.MoodOptionsResponse": {
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"$ref": "#/definitions/domain.MoodOption"}},
                "refreshIntervalSeconds": {"type": "integer"},
                "today": {"type": "string"}
            }
        },
        "dto.SubmitMoodRequest": {
            "type": "object",
            "required": ["mood"],
            "properties": {"mood": {"type": "string"}, "note": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Queue Mood Board API",
	Description:      "Log emoji mood readings for a support queue and read today's distribution.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
