// Package api provides the HTTP handlers of the catalog API. Handlers decode
// and validate requests, take the authenticated user from the request
// context, call the services and map their errors to status codes through
// HandleAPIError. Error bodies have the shape {"error", "fields", "trace_id"}
// and never contain raw error text.
package api
