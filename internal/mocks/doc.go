// Package mocks provides function-field test doubles for the service and
// auth interfaces used by the HTTP layer. Each mock calls its Fn field when
// set and otherwise returns its zero-configured defaults.
package mocks
