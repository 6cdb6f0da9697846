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

// ProblemRepository handles problem data access
type ProblemRepository struct {
	db database.Database
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(db database.Database) *ProblemRepository {
	return &ProblemRepository{db: db}
}

// Create inserts a problem document.
func (r *ProblemRepository) Create(ctx context.Context, problem *model.Problem) error {
	doc, err := toDoc(problem, problem.ID)
	if err != nil {
		return err
	}

	query := `CREATE problem CONTENT $data`
	vars := map[string]interface{}{"data": doc}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: problem id already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetByID retrieves a problem by domain id. Returns (nil, nil) when absent.
func (r *ProblemRepository) GetByID(ctx context.Context, id string) (*model.Problem, error) {
	query := `SELECT * FROM problem WHERE uid = $uid LIMIT 1`
	vars := map[string]interface{}{"uid": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseProblemRecord(result)
}

// List retrieves problems matching the filter.
func (r *ProblemRepository) List(ctx context.Context, filter *model.ProblemFilter) ([]*model.Problem, error) {
	query := `SELECT * FROM problem`
	vars := map[string]interface{}{}

	var conds []string
	if filter != nil {
		if filter.Title != nil {
			conds = append(conds, "title = $title")
			vars["title"] = *filter.Title
		}
		if filter.Startup != nil {
			conds = append(conds, "$startup INSIDE startups")
			vars["startup"] = *filter.Startup
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(results)
	if !ok {
		return []*model.Problem{}, nil
	}

	problems := make([]*model.Problem, 0, len(rows))
	for _, row := range rows {
		problem, err := parseProblemRecord(row)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}
	return problems, nil
}

// Update applies a field-level merge and returns the post-merge problem, or
// (nil, nil) when absent.
func (r *ProblemRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Problem, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	patch := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	query := `UPDATE problem MERGE $patch WHERE uid = $uid`
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
	return parseProblemRecord(rows[0])
}

// AttachStartup adds a startup id to the problem's back-reference list.
// The reference is weak: the startup is not checked for existence.
func (r *ProblemRepository) AttachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	query := `
		UPDATE problem SET
			startups = array::union(startups ?? [], [$startupId]),
			updatedAt = $now
		WHERE uid = $uid
	`
	vars := map[string]interface{}{
		"uid":       problemID,
		"startupId": startupID,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(results)
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	return parseProblemRecord(rows[0])
}

// DetachStartup removes a startup id from the problem's back-reference list.
func (r *ProblemRepository) DetachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	query := `
		UPDATE problem SET
			startups = array::difference(startups ?? [], [$startupId]),
			updatedAt = $now
		WHERE uid = $uid
	`
	vars := map[string]interface{}{
		"uid":       problemID,
		"startupId": startupID,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(results)
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	return parseProblemRecord(rows[0])
}

// Delete removes a problem by id and reports whether a record was removed.
func (r *ProblemRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE problem WHERE uid = $uid RETURN BEFORE`
	vars := map[string]interface{}{"uid": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	rows, ok := extractQueryResults(results)
	return ok && len(rows) > 0, nil
}

// parseProblemRecord decodes a stored document into a Problem
func parseProblemRecord(result interface{}) (*model.Problem, error) {
	var problem model.Problem
	uid, err := decodeRecord(result, &problem)
	if err != nil {
		return nil, err
	}
	problem.ID = uid
	return &problem, nil
}
