package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sevarthi API",
        "description": "Attendance, polls and reporting for the Sevarthi troupe",
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
        {"name": "Auth", "description": "Member login"},
        {"name": "Members", "description": "Troupe roster"},
        {"name": "Attendance", "description": "Show and practice attendance"},
        {"name": "Stats", "description": "Dashboard and performance statistics"},
        {"name": "Reports", "description": "Exports and member reports"},
        {"name": "Polls", "description": "Notification polls"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login with MHT ID and email or mobile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/members": {
            "get": {
                "tags": ["Members"],
                "summary": "List members",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "isAdmin", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/members/{id}/attendance": {
            "get": {
                "tags": ["Members"],
                "summary": "Attendance history of one member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance with relations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dateFrom", "in": "query", "type": "string"},
                    {"name": "dateTo", "in": "query", "type": "string"},
                    {"name": "statusFilter", "in": "query", "type": "string"},
                    {"name": "storyFilter", "in": "query", "type": "string"},
                    {"name": "memberFilter", "in": "query", "type": "string"},
                    {"name": "eventFilter", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Log attendance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/dashboard": {
            "get": {
                "tags": ["Stats"],
                "summary": "Dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}}
                }
            }
        },
        "/stats/performance": {
            "get": {
                "tags": ["Stats"],
                "summary": "Member performance ranking",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PerformanceStats"}}
                }
            }
        },
        "/reports/attendance/export": {
            "post": {
                "tags": ["Reports"],
                "summary": "Export filtered attendance",
                "security": [{"BearerAuth": []}],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
                    "application/pdf",
                    "image/png",
                    "text/csv"
                ],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/polls/{id}": {
            "get": {
                "tags": ["Polls"],
                "summary": "Poll with tally",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/polls/{id}/responses": {
            "post": {
                "tags": ["Polls"],
                "summary": "Answer a poll",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PollResponseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/polls/export": {
            "post": {
                "tags": ["Polls"],
                "summary": "Export poll responses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PollExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "404": {"description": "Poll not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["mhtId", "identifier"],
            "properties": {
                "mhtId": {"type": "string"},
                "identifier": {"type": "string", "description": "Registered email or mobile number"}
            }
        },
        "AttendanceRequest": {
            "type": "object",
            "required": ["date", "status"],
            "properties": {
                "memberId": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-15"},
                "status": {"type": "string", "enum": ["present", "absent", "replaced"]},
                "storyId": {"type": "string"},
                "roleId": {"type": "string"},
                "characterIds": {"type": "array", "items": {"type": "string"}},
                "timeIn": {"type": "string", "example": "18:30"},
                "timeOut": {"type": "string", "example": "21:00"},
                "reason": {"type": "string"},
                "replacedMemberId": {"type": "string"},
                "eventType": {"type": "string"}
            }
        },
        "AttendanceFilter": {
            "type": "object",
            "properties": {
                "dateFrom": {"type": "string"},
                "dateTo": {"type": "string"},
                "statusFilter": {"type": "string"},
                "storyFilter": {"type": "string"},
                "memberFilter": {"type": "string"},
                "eventFilter": {"type": "string"}
            }
        },
        "AttendanceExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["excel", "pdf", "image", "csv"]},
                "filters": {"$ref": "#/definitions/AttendanceFilter"}
            }
        },
        "PollExportRequest": {
            "type": "object",
            "required": ["pollId", "format"],
            "properties": {
                "pollId": {"type": "string"},
                "format": {"type": "string", "enum": ["excel", "pdf", "image", "csv"]}
            }
        },
        "PollResponseRequest": {
            "type": "object",
            "required": ["selectedOption"],
            "properties": {
                "selectedOption": {"type": "integer"}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "totalMembers": {"type": "integer"},
                "totalShows": {"type": "integer"},
                "recentAttendance": {"type": "integer"},
                "activeNotifications": {"type": "integer"}
            }
        },
        "Performer": {
            "type": "object",
            "properties": {
                "memberId": {"type": "string"},
                "name": {"type": "string"},
                "percentage": {"type": "integer"}
            }
        },
        "PerformanceStats": {
            "type": "object",
            "properties": {
                "totalMembers": {"type": "integer"},
                "averageAttendance": {"type": "integer"},
                "topPerformers": {"type": "array", "items": {"$ref": "#/definitions/Performer"}},
                "lowPerformers": {"type": "array", "items": {"$ref": "#/definitions/Performer"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
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
