// Package database provides the document-store abstraction for the Foundry
// directory API.
//
// The Database interface abstracts SurrealDB operations so repositories depend
// only on the interface, never on a concrete backend.
//
// # Interface Design
//
// Three query methods cover every repository operation:
//   - Query: Returns multiple results (for SELECT queries returning lists)
//   - QueryOne: Returns a single result (for SELECT by id)
//   - Execute: No return value (for CREATE/UPDATE/DELETE mutations)
//
// Each create/read/update/delete is an independent operation; the store
// defines no cross-request coordination and no multi-entity transactions.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	db.Connect(ctx)
//	defer db.Close()
//
//	result, err := db.QueryOne(ctx, "SELECT * FROM startup WHERE uid = $uid", map[string]interface{}{"uid": id})
package database
