package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// errInvalidRecord indicates a stored document could not be interpreted.
var errInvalidRecord = errors.New("invalid record format")

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// extractQueryResults extracts the result rows from a SurrealDB response
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	if results, ok := result.([]interface{}); ok {
		if len(results) > 0 {
			if firstResult, ok := results[0].(map[string]interface{}); ok {
				if resultArray, ok := firstResult["result"].([]interface{}); ok {
					return resultArray, true
				}
			}
			// Direct array format
			return results, true
		}
	}
	return nil, false
}

// normalizeValue converts SurrealDB driver types (record ids, datetimes) into
// plain JSON-compatible values so a record can be decoded through the entity
// JSON tags.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.RecordID:
		return t.String()
	case *models.RecordID:
		if t != nil {
			return t.String()
		}
		return nil
	case models.CustomDateTime:
		return t.Time.UTC().Format(time.RFC3339Nano)
	case *models.CustomDateTime:
		if t != nil {
			return t.Time.UTC().Format(time.RFC3339Nano)
		}
		return nil
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// decodeRecord decodes a stored document into an entity. The storage record
// key ("id") is dropped; the domain identifier lives in the "uid" field and
// is returned separately so callers can place it on the entity.
func decodeRecord(result interface{}, dest interface{}) (string, error) {
	record, ok := result.(map[string]interface{})
	if !ok {
		return "", errInvalidRecord
	}

	doc := make(map[string]interface{}, len(record))
	for k, v := range record {
		if k == "id" {
			continue
		}
		doc[k] = normalizeValue(v)
	}

	uid, _ := doc["uid"].(string)
	delete(doc, "uid")

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return "", err
	}
	return uid, nil
}

// toDoc converts an entity into a stored document via its JSON tags, placing
// the domain id in the "uid" field. The public identifier is deliberately
// decoupled from the storage record key.
func toDoc(entity interface{}, uid string) (map[string]interface{}, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	delete(doc, "id")
	doc["uid"] = uid
	return doc, nil
}
