// Package testdb provides utilities for database integration tests.
//
// Tests run against the PostgreSQL database named by DATABASE_URL (or
// CATALOG_TEST_DB_URL). Each test runs inside its own transaction which is
// rolled back when the test completes, so tests can run in parallel without
// truncating tables:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        owner := testdb.MustInsertUser(ctx, t, tx, "owner@example.com")
//	        ...
//	    })
//	}
//
// Tests are skipped when no database URL is configured.
package testdb
