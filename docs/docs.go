// Package docs registers the storefront OpenAPI document with swag so that
// gin-swagger can serve it under /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "paths": {
        "/storefront/home": {
            "get": {
                "tags": ["storefront-catalog"],
                "summary": "Home page",
                "operationId": "getStorefrontHome",
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "502": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/products": {
            "get": {
                "tags": ["storefront-catalog"],
                "summary": "All products",
                "operationId": "listStorefrontProducts",
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "502": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/products/by-category": {
            "get": {
                "tags": ["storefront-catalog"],
                "summary": "Products in a category",
                "operationId": "listStorefrontProductsByCategory",
                "parameters": [
                    {"name": "category", "in": "query", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "502": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/products/{productId}/cart": {
            "post": {
                "tags": ["storefront-catalog"],
                "summary": "Add a product to the cart",
                "operationId": "addStorefrontProductToCart",
                "parameters": [{"$ref": "#/components/parameters/ProductID"}],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "502": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/count": {
            "get": {
                "tags": ["storefront-cart"],
                "summary": "Cart badge",
                "operationId": "getStorefrontCartCount",
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/views": {
            "post": {
                "tags": ["storefront-cart"],
                "summary": "Open a cart page",
                "operationId": "openStorefrontCartView",
                "responses": {
                    "201": {"$ref": "#/components/responses/Success"}
                }
            }
        },
        "/storefront/cart/views/{viewId}": {
            "get": {
                "tags": ["storefront-cart"],
                "summary": "Get a cart page",
                "operationId": "getStorefrontCartView",
                "parameters": [{"$ref": "#/components/parameters/ViewID"}],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/views/{viewId}/retry": {
            "post": {
                "tags": ["storefront-cart"],
                "summary": "Retry loading a cart page",
                "operationId": "retryStorefrontCartView",
                "parameters": [{"$ref": "#/components/parameters/ViewID"}],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/views/{viewId}/items/{productId}/add": {
            "post": {
                "tags": ["storefront-cart"],
                "summary": "Add one unit",
                "operationId": "addStorefrontCartItem",
                "parameters": [
                    {"$ref": "#/components/parameters/ViewID"},
                    {"$ref": "#/components/parameters/ProductID"}
                ],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/views/{viewId}/items/{productId}/subtract": {
            "post": {
                "tags": ["storefront-cart"],
                "summary": "Remove one unit",
                "operationId": "subtractStorefrontCartItem",
                "parameters": [
                    {"$ref": "#/components/parameters/ViewID"},
                    {"$ref": "#/components/parameters/ProductID"}
                ],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/storefront/cart/views/{viewId}/order": {
            "post": {
                "tags": ["storefront-cart"],
                "summary": "Place the order",
                "operationId": "placeStorefrontOrder",
                "parameters": [{"$ref": "#/components/parameters/ViewID"}],
                "responses": {
                    "200": {"$ref": "#/components/responses/Success"},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/system/ping": {
            "get": {
                "tags": ["system"],
                "summary": "Ping the API",
                "operationId": "pingSystem",
                "responses": {"200": {"$ref": "#/components/responses/Success"}}
            }
        },
        "/system/info": {
            "get": {
                "tags": ["system"],
                "summary": "Get system information",
                "operationId": "getSystemInfo",
                "responses": {"200": {"$ref": "#/components/responses/Success"}}
            }
        }
    },
    "components": {
        "parameters": {
            "ViewID": {"name": "viewId", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
            "ProductID": {"name": "productId", "in": "path", "required": true, "schema": {"type": "string", "maxLength": 128}}
        },
        "schemas": {
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {"type": "string", "example": "ERR_UPSTREAM_UNAVAILABLE"},
                    "message": {"type": "string"},
                    "request_id": {"type": "string"},
                    "details": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
                        }
                    }
                }
            },
            "Response": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {},
                    "error": {"$ref": "#/components/schemas/ErrorInfo"},
                    "meta": {"type": "object", "properties": {"total": {"type": "integer"}}}
                }
            }
        },
        "responses": {
            "Success": {
                "description": "OK",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Response"}}}
            },
            "Error": {
                "description": "Error",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Response"}}}
            }
        }
    }
}`

// SwaggerInfo holds the document metadata. main overrides Host and Version.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Storefront front end for the commerce API: catalog pages, cart badge, cart pages and checkout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
