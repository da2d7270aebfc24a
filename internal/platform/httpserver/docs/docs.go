// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o internal/platform/httpserver/docs
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/identity.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/identity.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for an access token",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/identity.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/identity.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List all posts, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/posts.PostResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post as the authenticated user",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/posts.CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/posts.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get a post by id",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/posts.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Partially update a post (author or admin)",
                "parameters": [
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/posts.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/posts.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete a post (author or admin)",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List all users (admin only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/identity.UserResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user by id (self or admin)",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/identity.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user (self or admin)",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/sanitize.ErrorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "common.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "identity.RegisterRequest": {
            "type": "object",
            "required": ["username", "password", "confirmPassword"],
            "properties": {
                "username": {"type": "string", "minLength": 3, "maxLength": 30, "example": "john_doe"},
                "password": {"type": "string", "minLength": 8, "maxLength": 128, "example": "MySecurePassword123"},
                "confirmPassword": {"type": "string", "example": "MySecurePassword123"}
            }
        },
        "identity.RegisterResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "User registered successfully"}}
        },
        "identity.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "example": "john_doe"},
                "password": {"type": "string", "example": "MySecurePassword123"}
            }
        },
        "identity.LoginResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}}
        },
        "identity.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "posts.CreatePostRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 200},
                "content": {"type": "string", "minLength": 1, "maxLength": 10000},
                "desc": {"type": "string", "maxLength": 500},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "posts.UpdatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 200},
                "content": {"type": "string", "minLength": 1, "maxLength": 10000},
                "desc": {"type": "string", "maxLength": 500},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "posts.AuthorResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "username": {"type": "string"}}
        },
        "posts.PostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "desc": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "authorId": {"type": "string"},
                "author": {"$ref": "#/definitions/posts.AuthorResponse"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "sanitize.ErrorPayload": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "timestamp": {"type": "string"},
                "path": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Scribe Blog API",
	Description:      "Multi-tenant blogging backend with ownership-based authorization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
