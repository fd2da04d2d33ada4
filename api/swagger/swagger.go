package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Course timetable generation, persistence and export",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Faculty", "description": "Instructor catalogue"},
        {"name": "Rooms", "description": "Room catalogue"},
        {"name": "TimeSlots", "description": "Fixed weekly slot catalogue"},
        {"name": "Timetable", "description": "Generation, persistence and export"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete a course and its timetable entries",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/import": {
            "post": {
                "tags": ["Courses"],
                "summary": "Import courses from CSV",
                "consumes": ["text/csv", "multipart/form-data"],
                "responses": {
                    "201": {"description": "Imported", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "List faculty",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Faculty"],
                "summary": "Create a faculty member",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFacultyRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/{id}": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Get a faculty member",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Faculty"],
                "summary": "Delete a faculty member and their timetable entries",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/faculty/import": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Import faculty from CSV",
                "consumes": ["text/csv", "multipart/form-data"],
                "responses": {"201": {"description": "Imported"}, "400": {"description": "Invalid file"}}
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create a room",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get a room",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete a room and its timetable entries",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/rooms/import": {
            "post": {
                "tags": ["Rooms"],
                "summary": "Import rooms from CSV",
                "consumes": ["text/csv", "multipart/form-data"],
                "responses": {"201": {"description": "Imported"}, "400": {"description": "Invalid file"}}
            }
        },
        "/time-slots": {
            "get": {
                "tags": ["TimeSlots"],
                "summary": "List the 40 weekly time slots",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Load catalogue and persisted timetable",
                "description": "Never fails; a storage error yields empty collections and a LOAD_FAILED notification.",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Timetable"],
                "summary": "Replace the persisted timetable",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTimetableRequest"}}],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Another operation is in progress"},
                    "500": {"description": "Save failed"}
                }
            },
            "delete": {
                "tags": ["Timetable"],
                "summary": "Delete every timetable entry",
                "responses": {
                    "200": {"description": "Cleared"},
                    "409": {"description": "Another operation is in progress"},
                    "500": {"description": "Clear failed"}
                }
            }
        },
        "/timetable/status": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Coordinator state and in-flight flags",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate and persist a new timetable",
                "description": "When saving fails the generated entries are returned in data alongside the error.",
                "responses": {
                    "200": {"description": "Generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Another operation is in progress"},
                    "412": {"description": "Courses, faculty or rooms missing"},
                    "500": {"description": "Save failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Load failed"}
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Download the persisted timetable",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}],
                "responses": {"200": {"description": "File"}, "400": {"description": "Unsupported format"}}
            }
        }
    },
    "definitions": {
        "CreateCourseRequest": {
            "type": "object",
            "required": ["name", "code", "enrollment"],
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "enrollment": {"type": "integer", "minimum": 1},
                "duration_hours": {"type": "integer", "minimum": 1},
                "description": {"type": "string"}
            }
        },
        "CreateFacultyRequest": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "specializations": {"type": "string", "description": "comma separated"}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "required": ["name", "capacity"],
            "properties": {
                "name": {"type": "string"},
                "capacity": {"type": "integer", "minimum": 1},
                "building": {"type": "string"},
                "floor": {"type": "integer"},
                "has_projector": {"type": "boolean"},
                "has_computers": {"type": "boolean"}
            }
        },
        "SaveTimetableEntry": {
            "type": "object",
            "required": ["courseId", "facultyId", "roomId", "timeSlotId"],
            "properties": {
                "id": {"type": "string"},
                "courseId": {"type": "string"},
                "facultyId": {"type": "string"},
                "roomId": {"type": "string"},
                "timeSlotId": {"type": "integer", "minimum": 1, "maximum": 40}
            }
        },
        "SaveTimetableRequest": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/SaveTimetableEntry"}}
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
