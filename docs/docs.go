package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Resource Utilization & Issue Tracker API",
    "description": "Filtering, aggregation and grouping for the resource and issue dashboards",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/api/resources": {"get": {"tags": ["resources"], "summary": "List resources", "parameters": [
      {"name": "client_partner", "in": "query", "type": "string"},
      {"name": "end_date", "in": "query", "type": "string", "format": "date"},
      {"name": "region", "in": "query", "type": "string"}
    ], "responses": {"200": {"description": "OK"}}}},
    "/api/resources/summary": {"get": {"tags": ["resources"], "summary": "Resource dashboard summary", "responses": {"200": {"description": "OK"}}}},
    "/api/resources/groups": {"get": {"tags": ["resources"], "summary": "Resources grouped by client and project", "responses": {"200": {"description": "OK"}}}},
    "/api/resources/highlights": {"get": {"tags": ["resources"], "summary": "Highlighted resources", "responses": {"200": {"description": "OK"}}}},
    "/api/resources/client-partners": {"get": {"tags": ["resources"], "summary": "Client partners", "responses": {"200": {"description": "OK"}}}},
    "/api/issues": {
      "get": {"tags": ["issues"], "summary": "List issues", "parameters": [
        {"name": "client_partner", "in": "query", "type": "string"},
        {"name": "escalated", "in": "query", "type": "string", "enum": ["All", "true", "false"]},
        {"name": "rag_status", "in": "query", "type": "string", "enum": ["All", "Red", "Amber", "Green"]}
      ], "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["issues"], "summary": "Create issue", "parameters": [
        {"name": "X-User", "in": "header", "type": "string", "required": true}
      ], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
    },
    "/api/issues/summary": {"get": {"tags": ["issues"], "summary": "Issue summary over all issues", "responses": {"200": {"description": "OK"}}}},
    "/api/issues/trend": {"get": {"tags": ["issues"], "summary": "Daily open and resolved counts", "responses": {"200": {"description": "OK"}}}},
    "/api/issues/client-partners": {"get": {"tags": ["issues"], "summary": "Client partners", "responses": {"200": {"description": "OK"}}}},
    "/api/issues/alerts": {"post": {"tags": ["issues"], "summary": "Send alerts for escalated issues", "responses": {"200": {"description": "OK"}}}},
    "/api/issues/{id}": {
      "get": {"tags": ["issues"], "summary": "Get issue", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
      "put": {"tags": ["issues"], "summary": "Edit issue", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
    },
    "/api/issues/{id}/history": {"get": {"tags": ["issues"], "summary": "Issue history", "responses": {"200": {"description": "OK"}}}},
    "/api/issues/{id}/resolve": {"post": {"tags": ["issues"], "summary": "Resolve issue", "responses": {"200": {"description": "OK"}, "409": {"description": "Already resolved"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
