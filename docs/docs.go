// Package docs registers the OpenAPI document served under /swagger.
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
        "/ShoppingCart/AddProductToCart": {
            "post": {
                "description": "Adds quantity units of a product to the named customer's cart, creating the cart on first use.\nAn existing line for the same product is incremented; the cart total is recomputed.",
                "produces": [
                    "application/json",
                    "text/plain"
                ],
                "tags": [
                    "ShoppingCart"
                ],
                "summary": "Add a product to a cart",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Customer name (exact match, must not be blank)",
                        "name": "customerName",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Product ID (>= 1)",
                        "name": "productId",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Quantity to add (>= 1)",
                        "name": "quantity",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.Cart"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters. | Product does not exist.",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Failure message",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "dependency unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.Cart": {
            "type": "object",
            "properties": {
                "CartItems": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.CartItem"
                    }
                },
                "CustomerName": {
                    "type": "string"
                },
                "ID": {
                    "type": "integer"
                },
                "TotalAmount": {
                    "type": "number"
                }
            }
        },
        "models.CartItem": {
            "type": "object",
            "properties": {
                "Amount": {
                    "type": "number"
                },
                "CartID": {
                    "type": "integer"
                },
                "ID": {
                    "type": "integer"
                },
                "Product": {
                    "$ref": "#/definitions/models.Product"
                },
                "ProductID": {
                    "type": "integer"
                },
                "Quantity": {
                    "type": "integer"
                }
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "ID": {
                    "type": "integer"
                },
                "PricePerQuantity": {
                    "type": "number"
                },
                "ProductName": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shopping Cart API",
	Description:      "Adds products to per-customer shopping carts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
