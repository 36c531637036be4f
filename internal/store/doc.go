// Package store declares the persistence interfaces used by the service
// layer, the sentinel errors they return, and the Transactor that groups
// store calls into one database transaction.
//
// Every catalog store method takes the owning user's ID explicitly. A row
// owned by someone else is reported exactly like a missing row.
package store
