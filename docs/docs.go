// Package docs registers the swagger spec for the serve-mode API.
// Regenerate with: swag init -g cmd/proposer/main.go -o docs
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
        "/proposals": {
            "get": {
                "produces": ["application/json"],
                "summary": "List recently submitted proposals",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 50,
                        "description": "max rows",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Build, sign and submit a batched payout proposal",
                "parameters": [
                    {
                        "description": "payout list",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request.CreateProposalRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Response"}
                    }
                }
            }
        }
    },
    "definitions": {
        "request.CreateProposalRequest": {
            "type": "object",
            "required": ["payouts"],
            "properties": {
                "dry_run": {"type": "boolean"},
                "payouts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/request.PayoutItem"}
                }
            }
        },
        "request.PayoutItem": {
            "type": "object",
            "required": ["address", "fiat_amount"],
            "properties": {
                "address": {"type": "string"},
                "fiat_amount": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "msg": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Safe Salary Proposal API",
	Description:      "Builds, signs and submits batched payout proposals to a Gnosis Safe.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
