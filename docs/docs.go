// Package docs holds the OpenAPI document served under /swagger.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/places": {
            "get": {
                "produces": ["application/json"],
                "tags": ["places"],
                "summary": "Place autocomplete",
                "parameters": [
                    {"type": "string", "description": "Text typed by the user", "name": "query", "in": "query", "required": true},
                    {"type": "string", "description": "Autocomplete session token", "name": "sessionToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AutocompleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.AutocompleteResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.AutocompleteResponse"}}
                }
            }
        },
        "/api/place-details": {
            "get": {
                "produces": ["application/json"],
                "tags": ["places"],
                "summary": "Place details",
                "parameters": [
                    {"type": "string", "description": "Place identifier from autocomplete", "name": "placeId", "in": "query", "required": true},
                    {"type": "string", "description": "Autocomplete session token", "name": "sessionToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DetailsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.DetailsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.DetailsResponse"}}
                }
            }
        },
        "/api/markers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["markers"],
                "summary": "List saved markers",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["markers"],
                "summary": "Save a marker",
                "parameters": [
                    {"description": "Marker to save", "name": "marker", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateMarkerRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/ingest": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ingest"],
                "summary": "Submit a shared link",
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "handler.CreateMarkerRequest": {
            "type": "object",
            "required": ["latitude", "longitude"],
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "name": {"type": "string"}
            }
        },
        "models.Prediction": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "place_id": {"type": "string"}
            }
        },
        "models.AutocompleteResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error_message": {"type": "string"},
                "predictions": {"type": "array", "items": {"$ref": "#/definitions/models.Prediction"}}
            }
        },
        "models.LatLng": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "models.DetailsResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error_message": {"type": "string"},
                "result": {
                    "type": "object",
                    "properties": {
                        "name": {"type": "string"},
                        "formatted_address": {"type": "string"},
                        "geometry": {
                            "type": "object",
                            "properties": {"location": {"$ref": "#/definitions/models.LatLng"}}
                        }
                    }
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
	Title:            "Places Proxy API",
	Description:      "Proxy for place autocomplete and details plus saved map markers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
