// Package docs registers the OpenAPI description served at /swagger.
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
        "/courses": {
            "post": {
                "description": "Sends the syllabus text to the generative service and replaces the session's current course",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Generate a course",
                "parameters": [
                    {
                        "description": "Syllabus text and week count",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.GenerateCourseRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.GenerateCourseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/courses/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get the current course",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CourseResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["courses"],
                "summary": "Discard the current course",
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/courses/current/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Download the current course as a JSON file",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/courses/current/weeks/{week}/{tab}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get the dashboard view of one week and tab",
                "parameters": [
                    {"type": "integer", "description": "Week number, starting at 1", "name": "week", "in": "path", "required": true},
                    {"type": "string", "description": "overview, lecture, slides, assessments or resources", "name": "tab", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get the generation status of the session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatusResponse"}}}
            }
        },
        "/sample": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get the sample syllabus",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SampleResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.GenerateCourseRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "weeks": {"type": "integer"}
            }
        },
        "dto.GenerateCourseResponse": {
            "type": "object",
            "properties": {
                "course": {"type": "object"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/domain.Issue"}}
            }
        },
        "dto.CourseResponse": {
            "type": "object",
            "properties": {
                "course": {"type": "object"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/domain.Issue"}}
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["idle", "generating", "success", "error"]},
                "hasCourse": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "dto.SampleResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "weeks": {"type": "integer"}
            }
        },
        "domain.Issue": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "SyllabusAI Builder API",
	Description:      "Turns raw syllabus text into a structured multi-week course.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
