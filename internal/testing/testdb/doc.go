// Package testdb provides test database utilities for the Foundry API.
//
// The testdb package manages test database connections with automatic
// setup, migration, and cleanup.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.DB for database operations
//	}
//
// # Migrations
//
// Schema migrations are applied automatically on setup:
//
//	tdb := testdb.New(t) // applies migrations/*.surql
//
// # Isolation
//
// Each test gets an isolated database namespace, so tests can run in
// parallel without seeing each other's data.
//
// # Shared Database
//
// For subtests that can share schema setup:
//
//	tdb := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { tdb.SetupSubtest(t); ... })
//	t.Run("read", func(t *testing.T) { tdb.SetupSubtest(t); ... })
//
// # Connection
//
// The database connection comes from TEST_DB_HOST, TEST_DB_PORT,
// TEST_DB_USER, and TEST_DB_PASSWORD, defaulting to a local instance.
package testdb
