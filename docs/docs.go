// Package docs holds the OpenAPI document served at /swagger.
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
		"/v1/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register an account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					}
				}
			}
		},
		"/v1/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log in and receive a session cookie",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/v1/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Destroy the current session",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/auth/logout-all": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Destroy every session of the caller",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current identity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/auth/verify": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Confirm an email verification token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/v1/skills": {
			"get": {
				"tags": [
					"profiles"
				],
				"summary": "Skill taxonomy",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/v1/profile/employer": {
			"put": {
				"tags": [
					"profiles"
				],
				"summary": "Create or update the employer profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/profile/seeker": {
			"put": {
				"tags": [
					"profiles"
				],
				"summary": "Create or update the job seeker profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/jobs": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "Search open jobs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"jobs"
				],
				"summary": "Post a job",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/jobs/mine": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "Jobs owned by the caller",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Page (1-based)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (max 100)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/jobs/recommended": {
			"get": {
				"tags": [
					"matching"
				],
				"summary": "Open jobs ranked by match score",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/jobs/{id}": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "Job detail",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"patch": {
				"tags": [
					"jobs"
				],
				"summary": "Update an owned job",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"delete": {
				"tags": [
					"jobs"
				],
				"summary": "Delete an owned job",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/jobs/{id}/applications": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "Applications received for an owned job",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/talent": {
			"get": {
				"tags": [
					"matching"
				],
				"summary": "Browse seekers ranked against open jobs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/applications": {
			"post": {
				"tags": [
					"applications"
				],
				"summary": "Apply to an open job",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/applications/mine": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "Applications submitted by the caller",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/applications/{id}": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "Application detail with status history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"patch": {
				"tags": [
					"applications"
				],
				"summary": "Move an application through review",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			},
			"delete": {
				"tags": [
					"applications"
				],
				"summary": "Delete an application",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/messages": {
			"post": {
				"tags": [
					"messages"
				],
				"summary": "Send a message",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/messages/threads": {
			"get": {
				"tags": [
					"messages"
				],
				"summary": "Threads of the caller",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/messages/threads/{id}": {
			"get": {
				"tags": [
					"messages"
				],
				"summary": "Thread with its messages",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/messages/threads/{id}/read": {
			"post": {
				"tags": [
					"messages"
				],
				"summary": "Mark a thread read",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/uploads": {
			"post": {
				"tags": [
					"uploads"
				],
				"summary": "Upload a resume, portfolio item or logo",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/portfolio": {
			"get": {
				"tags": [
					"uploads"
				],
				"summary": "Portfolio of the caller",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		},
		"/v1/portfolio/{id}": {
			"delete": {
				"tags": [
					"uploads"
				],
				"summary": "Delete a portfolio item",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthenticated"
					},
					"403": {
						"description": "Forbidden"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"SessionCookie": []
					}
				]
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "session_token",
			"in": "cookie"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Salone SkillsHub API",
	Description:      "Job matching for Sierra Leonean students, graduates and artisans.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
