// Package service contains the catalog use cases. It orchestrates the
// repositories defined in internal/store to fulfil product, category, stock
// and user operations.
//
// Every catalog operation takes the authenticated owner as an explicit
// argument and passes it down to the store, where it scopes each query.
// Writes that touch more than one table (a product and its category links,
// a stock row and the product it belongs to) run in a single transaction
// obtained from a store.Transactor.
//
// Expected failures (validation, not found, duplicates, bad credentials)
// are returned as the sentinel or typed errors of the domain, store and auth
// packages so the API layer can map them to status codes. Anything else is
// wrapped in a *ServiceError.
package service
