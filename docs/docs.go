package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Site data API for the Web Link Creator agency website and its admin dashboard",
        "title": "Web Link Creator API",
        "version": "1.0"
    },
    "host": "localhost:3001",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check",
                "description": "Check that the site document can be read",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Document store unavailable"
                    }
                }
            }
        },
        "/api/websiteData": {
            "get": {
                "tags": ["Website Data"],
                "summary": "Get the site document",
                "description": "Returns orders and team. The ETag header carries the document revision.",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Full document",
                        "schema": {"$ref": "#/definitions/Document"}
                    },
                    "500": {
                        "description": "Error reading website data",
                        "schema": {"$ref": "#/definitions/MessageResponse"}
                    }
                }
            },
            "post": {
                "tags": ["Website Data"],
                "summary": "Replace the site document",
                "description": "Missing collections are stored as empty. Send If-Match with a previous ETag to reject the write when the document changed in between.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "document",
                        "required": true,
                        "schema": {"$ref": "#/definitions/Document"}
                    },
                    {
                        "in": "header",
                        "name": "If-Match",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Data updated successfully",
                        "schema": {"$ref": "#/definitions/MessageResponse"}
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    },
                    "412": {
                        "description": "Document changed since it was read"
                    },
                    "500": {
                        "description": "Error writing website data",
                        "schema": {"$ref": "#/definitions/MessageResponse"}
                    }
                }
            }
        },
        "/api/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Company, services, subscription plans, contact and testimonials",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Catalog"
                    }
                }
            }
        },
        "/api/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Order counts per status and team size",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Stats"
                    }
                }
            }
        },
        "/api/orders": {
            "get": {
                "tags": ["Orders"],
                "summary": "List orders, newest first",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "enum": ["pending", "completed", "cancelled"]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Orders",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}
                    },
                    "400": {
                        "description": "Invalid status filter"
                    }
                }
            },
            "post": {
                "tags": ["Orders"],
                "summary": "Place an order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "order",
                        "required": true,
                        "schema": {"$ref": "#/definitions/NewOrder"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created order",
                        "schema": {"$ref": "#/definitions/Order"}
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        },
        "/api/orders/{id}/status": {
            "patch": {
                "tags": ["Orders"],
                "summary": "Change an order status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {
                        "in": "body",
                        "name": "status",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "status": {"type": "string", "enum": ["pending", "completed", "cancelled"]}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Updated order", "schema": {"$ref": "#/definitions/Order"}},
                    "400": {"description": "Invalid status"},
                    "404": {"description": "Order not found"}
                }
            }
        },
        "/api/orders/{id}": {
            "delete": {
                "tags": ["Orders"],
                "summary": "Delete an order",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Removed order", "schema": {"$ref": "#/definitions/Order"}},
                    "404": {"description": "Order not found"}
                }
            }
        },
        "/api/team": {
            "get": {
                "tags": ["Team"],
                "summary": "List team members in display order",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Team",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/TeamMember"}}
                    }
                }
            },
            "post": {
                "tags": ["Team"],
                "summary": "Add a team member",
                "description": "JSON body, or multipart/form-data with name, role, experience, bio, image, social.<platform> fields and an optional image file (max 5MB).",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "member",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TeamMember"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created member", "schema": {"$ref": "#/definitions/TeamMember"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/team/{id}": {
            "put": {
                "tags": ["Team"],
                "summary": "Update a team member",
                "description": "Only the provided fields change.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {
                        "in": "body",
                        "name": "member",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TeamMember"}
                    }
                ],
                "responses": {
                    "200": {"description": "Updated member", "schema": {"$ref": "#/definitions/TeamMember"}},
                    "400": {"description": "Validation failed"},
                    "404": {"description": "Team member not found"}
                }
            },
            "delete": {
                "tags": ["Team"],
                "summary": "Remove a team member",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Removed member", "schema": {"$ref": "#/definitions/TeamMember"}},
                    "404": {"description": "Team member not found"}
                }
            }
        },
        "/api/team/{id}/move": {
            "post": {
                "tags": ["Team"],
                "summary": "Move a team member to another position",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {
                        "in": "body",
                        "name": "position",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "position": {"type": "integer", "minimum": 0}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Team in its new order"},
                    "404": {"description": "Team member not found"}
                }
            }
        }
    },
    "definitions": {
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "details": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "reason": {"type": "string"}
                        }
                    }
                }
            }
        },
        "CustomerInfo": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "company": {"type": "string"},
                "phone": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "NewOrder": {
            "type": "object",
            "required": ["planName", "customerInfo"],
            "properties": {
                "planId": {"type": "integer", "example": 1},
                "planName": {"type": "string", "example": "Starter"},
                "planPrice": {"type": "number", "example": 299},
                "customerInfo": {"$ref": "#/definitions/CustomerInfo"}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "planId": {"type": "integer"},
                "planName": {"type": "string"},
                "planPrice": {"type": "number"},
                "customerInfo": {"$ref": "#/definitions/CustomerInfo"},
                "date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["pending", "completed", "cancelled"]}
            }
        },
        "TeamMember": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "experience": {"type": "number"},
                "bio": {"type": "string"},
                "image": {"type": "string"},
                "social": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            }
        },
        "Document": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/Order"}},
                "team": {"type": "array", "items": {"$ref": "#/definitions/TeamMember"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Web Link Creator API",
	Description:      "Site data API for the Web Link Creator agency website and its admin dashboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
