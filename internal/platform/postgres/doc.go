// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver.
//
// Catalog queries restrict rows to their owner through scopeToOwner. The
// schema is managed by goose migrations embedded from the migrations
// subpackage and applied with Migrate.
package postgres
