// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/auth/login": {
            "post": {
                "summary": "Supervisor login",
                "tags": [
                    "auth"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "invalid password"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.LoginRequest"
                        }
                    }
                ]
            }
        },
        "/questions": {
            "get": {
                "summary": "List the question bank",
                "tags": [
                    "questions"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/questions/{id}": {
            "get": {
                "summary": "Get one question",
                "tags": [
                    "questions"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "question not found"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/evaluate": {
            "post": {
                "summary": "Score an answer set without storing it",
                "tags": [
                    "scoring"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "invalid answer set"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EvaluateRequest"
                        }
                    }
                ]
            }
        },
        "/respondents": {
            "post": {
                "summary": "Register a respondent",
                "tags": [
                    "assessment"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "validation failed"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.RegisterRequest"
                        }
                    }
                ]
            }
        },
        "/assessment/progress": {
            "get": {
                "summary": "Respondent progress",
                "tags": [
                    "assessment"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "RespondentToken": []
                    }
                ]
            }
        },
        "/assessment/question": {
            "get": {
                "summary": "Next unanswered question",
                "tags": [
                    "assessment"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "assessment already completed"
                    }
                },
                "security": [
                    {
                        "RespondentToken": []
                    }
                ]
            }
        },
        "/assessment/answers": {
            "post": {
                "summary": "Submit an answer",
                "tags": [
                    "assessment"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "validation failed"
                    },
                    "409": {
                        "description": "assessment already completed"
                    }
                },
                "security": [
                    {
                        "RespondentToken": []
                    }
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.SubmitAnswerRequest"
                        }
                    }
                ]
            }
        },
        "/assessment/result": {
            "get": {
                "summary": "Own result",
                "tags": [
                    "assessment"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "result not found"
                    }
                },
                "security": [
                    {
                        "RespondentToken": []
                    }
                ]
            }
        },
        "/results": {
            "get": {
                "summary": "List results",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ]
            }
        },
        "/results/{respondentId}": {
            "get": {
                "summary": "Get one result",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "respondentId",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/results/{respondentId}/responses": {
            "get": {
                "summary": "Raw responses of one respondent",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "not found"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "respondentId",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/reports/summary": {
            "get": {
                "summary": "Aggregate summary",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ]
            }
        },
        "/reports/compare": {
            "post": {
                "summary": "Compare 2 to 4 respondents",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "bad respondent count"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.CompareRequest"
                        }
                    }
                ]
            }
        },
        "/reports/export.csv": {
            "get": {
                "summary": "Export all results as CSV",
                "tags": [
                    "reports"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SupervisorToken": []
                    }
                ],
                "produces": [
                    "text/csv"
                ]
            }
        }
    },
    "definitions": {
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {
                    "type": "string"
                }
            }
        },
        "model.RegisterRequest": {
            "type": "object",
            "properties": {
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "model.SubmitAnswerRequest": {
            "type": "object",
            "properties": {
                "questionId": {
                    "type": "integer"
                },
                "answer": {
                    "type": "string",
                    "enum": [
                        "A",
                        "B",
                        "C",
                        "D"
                    ]
                }
            }
        },
        "model.Answer": {
            "type": "object",
            "properties": {
                "questionId": {
                    "type": "integer"
                },
                "answer": {
                    "type": "string"
                }
            }
        },
        "model.EvaluateRequest": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Answer"
                    }
                },
                "compact": {
                    "type": "string",
                    "example": "AADCCDBACDBB"
                }
            }
        },
        "model.CompareRequest": {
            "type": "object",
            "properties": {
                "respondentIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "SupervisorToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "RespondentToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Leadership Style Assessment API",
	Description:      "Management-style questionnaire: intake, scoring and supervisor reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
