// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/surveys": {
            "get": {"tags": ["Surveys"], "summary": "List surveys", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Surveys"], "summary": "Create a survey", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input data"}, "403": {"description": "Not authenticated"}}}
        },
        "/surveys/create": {
            "post": {"tags": ["Surveys"], "summary": "Create a survey with questions and choices", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input data"}, "403": {"description": "Not authenticated"}}}
        },
        "/surveys/{id}": {
            "get": {"tags": ["Surveys"], "summary": "Get a survey", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Surveys"], "summary": "Replace a survey's fields", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not the owner"}}},
            "patch": {"tags": ["Surveys"], "summary": "Partially update a survey", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not the owner"}}},
            "delete": {"tags": ["Surveys"], "summary": "Delete a survey", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}, "403": {"description": "Not the owner"}}}
        },
        "/surveys/{id}/statistics": {
            "get": {"tags": ["Surveys"], "summary": "Survey statistics", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/surveys/{id}/questions": {
            "get": {"tags": ["Admin - Questions"], "summary": "(Admin) List a survey's questions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin - Questions"], "summary": "(Admin) Add a question to a survey", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/surveys/{id}/questions/{question_id}": {
            "get": {"tags": ["Admin - Questions"], "summary": "(Admin) Get a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Admin - Questions"], "summary": "(Admin) Replace a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Admin - Questions"], "summary": "(Admin) Partially update a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Admin - Questions"], "summary": "(Admin) Delete a question", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/questions/{id}/choices": {
            "get": {"tags": ["Admin - Choices"], "summary": "(Admin) List a question's choices", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Admin - Choices"], "summary": "(Admin) Add a choice to a question", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/questions/{id}/choices/{choice_id}": {
            "get": {"tags": ["Admin - Choices"], "summary": "(Admin) Get a choice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Admin - Choices"], "summary": "(Admin) Replace a choice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Admin - Choices"], "summary": "(Admin) Partially update a choice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Admin - Choices"], "summary": "(Admin) Delete a choice", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/responses": {
            "get": {"tags": ["Responses"], "summary": "List my responses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Responses"], "summary": "Start a response to a survey", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/responses/{id}": {
            "get": {"tags": ["Responses"], "summary": "Get one of my responses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Responses"], "summary": "Delete one of my responses", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/responses/{id}/submit-answers": {
            "post": {"tags": ["Responses"], "summary": "Submit a batch of answers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid answers"}}}
        },
        "/answers": {
            "get": {"tags": ["Answers"], "summary": "List my answers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/answers/{id}": {
            "get": {"tags": ["Answers"], "summary": "Get one of my answers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/registration": {
            "post": {"tags": ["Auth"], "summary": "Register a user", "responses": {"201": {"description": "Created"}}}
        },
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Bad credentials"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Log out", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/user": {
            "get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/password/change": {
            "post": {"tags": ["Auth"], "summary": "Change password", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Survey API",
	Description:      "Create surveys with nested questions and choices, collect answers and read aggregate statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
