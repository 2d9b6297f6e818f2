// Package docs registers the API document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{.Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's orders, newest first",
                "parameters": [
                    {"type": "string", "description": "Only orders in this status", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Page size, 1 to 500", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place a purchase order",
                "parameters": [
                    {"type": "string", "description": "Replays return the order created under the key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewOrder"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/claimable": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dispatch"],
                "summary": "Ready orders without a delivery partner, oldest first",
                "parameters": [
                    {"type": "integer", "description": "Page size, 1 to 500", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Order"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/{orderId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Order with its line items",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Order id", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Order"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/{orderId}/transitions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order to another status",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Order id", "name": "orderId", "in": "path", "required": true},
                    {"description": "Target status", "name": "transition", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.Transition"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Order"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}},
                    "409": {"description": "Illegal transition", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/{orderId}/claim": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dispatch"],
                "summary": "Claim a ready order for delivery",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Order id", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Order"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}},
                    "409": {"description": "Claim conflict", "schema": {"$ref": "#/definitions/http.Error"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/vendors/me/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Order counts and spend of the calling vendor",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VendorStats"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/me/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Whether the caller has a profile for their role",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Profile"}}
                }
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Server-sent order change events relevant to the caller",
                "responses": {
                    "200": {"description": "Event stream"}
                }
            }
        }
    },
    "definitions": {
        "http.Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "kind": {"type": "string"},
                "message": {"type": "string"},
                "current_status": {"type": "string"}
            }
        },
        "http.NewOrderItem": {
            "type": "object",
            "properties": {
                "productId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer", "minimum": 1},
                "unitPrice": {"type": "string", "example": "10.00"}
            }
        },
        "http.NewOrder": {
            "type": "object",
            "properties": {
                "supplierId": {"type": "string", "format": "uuid"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.NewOrderItem"}},
                "deliveryAddress": {"type": "string"},
                "deliveryDate": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"}
            }
        },
        "http.Transition": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": ["confirmed", "ready_for_pickup", "out_for_delivery", "delivered", "cancelled"]
                }
            }
        },
        "http.OrderItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "productId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "string"},
                "totalPrice": {"type": "string"}
            }
        },
        "http.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "orderNumber": {"type": "string", "example": "ORD-1700000000000-42"},
                "vendorId": {"type": "string", "format": "uuid"},
                "supplierId": {"type": "string", "format": "uuid"},
                "deliveryPartnerId": {"type": "string", "format": "uuid"},
                "status": {"type": "string"},
                "totalAmount": {"type": "string"},
                "deliveryAddress": {"type": "string"},
                "deliveryDate": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.OrderItem"}}
            }
        },
        "http.VendorStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "byStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                "totalSpent": {"type": "string"}
            }
        },
        "http.Profile": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "completed": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds the exported document metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "supplyhub order API",
	Description:      "Purchase orders between vendors and suppliers, and their delivery dispatch.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
