package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DSM Admin Gateway",
        "description": "Reschedule wizard gateway for the driving-school management platform",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enrollments", "description": "Enrollment listing passthrough"},
        {"name": "Reschedule", "description": "Day-by-day reschedule wizard"}
    ],
    "paths": {
        "/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "courseId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments/{id}/reschedule": {
            "post": {
                "tags": ["Reschedule"],
                "summary": "Open a reschedule wizard session",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartRescheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Session opened", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No eligible slots for the first day"},
                    "412": {"description": "Enrollment has no scheduled days"},
                    "502": {"description": "Platform fetch failed"}
                }
            }
        },
        "/reschedule-sessions/{sid}": {
            "get": {
                "tags": ["Reschedule"],
                "summary": "Reload a wizard session",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found or expired"}
                }
            }
        },
        "/reschedule-sessions/{sid}/picks": {
            "post": {
                "tags": ["Reschedule"],
                "summary": "Pick a candidate slot for the current day",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PickRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Slot is not an eligible candidate"},
                    "409": {"description": "No eligible slots for the next day; session cancelled"}
                }
            }
        },
        "/reschedule-sessions/{sid}/back": {
            "post": {
                "tags": ["Reschedule"],
                "summary": "Step back to the previous day",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reschedule-sessions/{sid}/cancel": {
            "post": {
                "tags": ["Reschedule"],
                "summary": "Abandon a wizard session",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Session discarded"}
                }
            }
        },
        "/reschedule-sessions/{sid}/summary": {
            "get": {
                "tags": ["Reschedule"],
                "summary": "Show the confirmation summary",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Session has picks outstanding"}
                }
            }
        },
        "/reschedule-sessions/{sid}/summary/export": {
            "get": {
                "tags": ["Reschedule"],
                "summary": "Download the confirmation summary",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/reschedule-sessions/{sid}/confirm": {
            "post": {
                "tags": ["Reschedule"],
                "summary": "Submit the completed plan to the platform",
                "parameters": [
                    {"name": "sid", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Schedule replaced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Session has picks outstanding"},
                    "502": {"description": "Submission failed; plan discarded"}
                }
            }
        }
    },
    "definitions": {
        "StartRescheduleRequest": {
            "type": "object",
            "required": ["courseId", "days"],
            "properties": {
                "courseId": {"type": "string"},
                "days": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "PickRequest": {
            "type": "object",
            "required": ["scheduleId"],
            "properties": {
                "scheduleId": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
