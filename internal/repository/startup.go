package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/foundry/api/internal/database"
	"github.com/forgo/foundry/api/internal/model"
)

// StartupRepository handles startup data access
type StartupRepository struct {
	db database.Database
}

// NewStartupRepository creates a new startup repository
func NewStartupRepository(db database.Database) *StartupRepository {
	return &StartupRepository{db: db}
}

// Create inserts a startup document. The id is caller-supplied; no duplicate
// pre-check is performed, so a colliding id surfaces as a storage error via
// the unique uid index.
func (r *StartupRepository) Create(ctx context.Context, startup *model.Startup) error {
	doc, err := toDoc(startup, startup.ID)
	if err != nil {
		return err
	}

	query := `CREATE startup CONTENT $data`
	vars := map[string]interface{}{"data": doc}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: startup id already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetByID retrieves a startup by its domain id. Lookups use the uid document
// field, never the storage record key. Returns (nil, nil) when absent.
func (r *StartupRepository) GetByID(ctx context.Context, id string) (*model.Startup, error) {
	query := `SELECT * FROM startup WHERE uid = $uid LIMIT 1`
	vars := map[string]interface{}{"uid": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseStartupRecord(result)
}

// List retrieves startups matching the filter. An empty filter returns the
// full collection; a non-empty filter is an exact-match conjunction over the
// declared fields. No ordering is guaranteed.
func (r *StartupRepository) List(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
	query := `SELECT * FROM startup`
	vars := map[string]interface{}{}

	var conds []string
	if filter != nil {
		if filter.Stage != nil {
			conds = append(conds, "stage = $stage")
			vars["stage"] = *filter.Stage
		}
		if filter.Category != nil {
			conds = append(conds, "$category INSIDE categories")
			vars["category"] = *filter.Category
		}
		if filter.Problem != nil {
			conds = append(conds, "$problem INSIDE problems")
			vars["problem"] = *filter.Problem
		}
		if filter.CreatedBy != nil {
			conds = append(conds, "createdBy = $createdBy")
			vars["createdBy"] = *filter.CreatedBy
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseStartupRecords(results)
}

// Update applies a field-level merge of the given patch document and returns
// the post-merge startup. The patch keys are wire field names; updatedAt is
// always refreshed. Returns (nil, nil) when no document matches the id - no
// upsert ever happens.
func (r *StartupRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	patch := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	query := `UPDATE startup MERGE $patch WHERE uid = $uid`
	vars := map[string]interface{}{
		"uid":   id,
		"patch": patch,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(results)
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	return parseStartupRecord(rows[0])
}

// Delete removes a startup by id and reports whether a record was removed.
func (r *StartupRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE startup WHERE uid = $uid RETURN BEFORE`
	vars := map[string]interface{}{"uid": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	rows, ok := extractQueryResults(results)
	return ok && len(rows) > 0, nil
}

// parseStartupRecord decodes a stored document into a Startup
func parseStartupRecord(result interface{}) (*model.Startup, error) {
	var startup model.Startup
	uid, err := decodeRecord(result, &startup)
	if err != nil {
		return nil, err
	}
	startup.ID = uid
	return &startup, nil
}

// parseStartupRecords decodes a query response into a startup list
func parseStartupRecords(results []interface{}) ([]*model.Startup, error) {
	rows, ok := extractQueryResults(results)
	if !ok {
		return []*model.Startup{}, nil
	}

	startups := make([]*model.Startup, 0, len(rows))
	for _, row := range rows {
		startup, err := parseStartupRecord(row)
		if err != nil {
			return nil, err
		}
		startups = append(startups, startup)
	}
	return startups, nil
}
