// Package docs holds the Swagger document served at /swagger.
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
        "/user/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a client account",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/user/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/user/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/api/v1/me": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        },
        "/api/v1/requests": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "List requests",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RequestListResponse"}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "Create a legal request",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateLegalRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.LegalRequestResponse"}}}
            }
        },
        "/api/v1/requests/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "Get a request with its documents",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RequestDetailResponse"}}}
            }
        },
        "/api/v1/requests/{id}/submit": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "Submit a draft request",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LegalRequestResponse"}}}
            }
        },
        "/api/v1/requests/{id}/claim": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "Claim an unassigned request",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LegalRequestResponse"}}}
            }
        },
        "/api/v1/requests/{id}/close": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["requests"],
                "summary": "Close a request under review",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LegalRequestResponse"}}}
            }
        },
        "/api/v1/requests/{id}/documents": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["documents"],
                "summary": "List a request's documents",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.DocumentResponse"}}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["documents"],
                "summary": "Attach a document to a request",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"type": "file", "in": "formData", "name": "file", "required": true}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DocumentResponse"}}}
            }
        },
        "/api/v1/documents/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["documents"],
                "summary": "Detach a document",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/documents/url": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["documents"],
                "summary": "Get a temporary download URL",
                "parameters": [{"type": "string", "in": "query", "name": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignedURLResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.RegisterRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "full_name": {"type": "string"}, "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.AuthResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "refresh_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.CreateLegalRequest": {"type": "object", "properties": {"case_type": {"type": "string"}, "full_name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "description": {"type": "string"}}},
        "dto.LegalRequestResponse": {"type": "object", "properties": {"id": {"type": "string"}, "client_id": {"type": "string"}, "attorney_id": {"type": "string"}, "case_type": {"type": "string"}, "case_type_label": {"type": "string"}, "status": {"type": "string"}, "status_label": {"type": "string"}, "full_name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "description": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.RequestListResponse": {"type": "object", "properties": {"requests": {"type": "array", "items": {"$ref": "#/definitions/dto.LegalRequestResponse"}}, "available": {"type": "array", "items": {"$ref": "#/definitions/dto.LegalRequestResponse"}}, "mine": {"type": "array", "items": {"$ref": "#/definitions/dto.LegalRequestResponse"}}}},
        "dto.DocumentResponse": {"type": "object", "properties": {"id": {"type": "string"}, "legal_request_id": {"type": "string"}, "uploaded_by": {"type": "string"}, "path": {"type": "string"}, "name": {"type": "string"}, "mime_type": {"type": "string"}, "size": {"type": "integer"}, "created_at": {"type": "string"}}},
        "dto.RequestDetailResponse": {"type": "object", "properties": {"request": {"$ref": "#/definitions/dto.LegalRequestResponse"}, "documents": {"type": "array", "items": {"$ref": "#/definitions/dto.DocumentResponse"}}}},
        "dto.SignedURLResponse": {"type": "object", "properties": {"url": {"type": "string"}, "expires_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Legaldesk API",
	Description:      "Legal request intake, attorney claims and document custody",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
