// Package domain contains the core business entities, value objects, and
// domain logic of the catalog: users, products, product categories and stock
// rows, together with the validation rules every write must satisfy before it
// reaches the store. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
