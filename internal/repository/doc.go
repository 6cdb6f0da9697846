// Package repository implements data access for the Foundry directory over
// the database.Database interface.
//
// Each entity gets five operations: Create, Update (field-level merge patch),
// GetByID, List (exact-match conjunction filter), and Delete. Documents are
// stored in the wire shape (camelCase field names) with the domain identifier
// in a dedicated "uid" field, keeping the public id decoupled from the
// storage record key.
//
// "Not found" is signaled as (nil, nil), never as an error; callers must
// check for the absent value explicitly. Duplicate ids are not pre-checked
// on Create - the unique uid index surfaces them as a storage error.
package repository
