// Package model defines the domain entities of the Foundry directory:
// users, problems, startups (with embedded team members), and the investor
// capability extension.
//
// Entities are plain data. Validation rules are pure functions returning
// every violation as a list of field errors, so the same rules apply
// regardless of transport or storage backend. Invariants:
//
//   - ids are immutable after creation and unique within a collection
//   - createdAt never changes and is always <= updatedAt
//   - Startup.stage belongs to a closed four-value enumeration
//   - categories, problems, and team are non-empty for a valid startup
//     (a validation-time invariant; storage accepts unvalidated records)
package model
