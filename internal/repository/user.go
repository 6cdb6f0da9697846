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

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user document. Email uniqueness is not enforced at the
// storage level; only the uid index guards against id collisions.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	doc, err := toDoc(user, user.ID)
	if err != nil {
		return err
	}

	query := `CREATE user CONTENT $data`
	vars := map[string]interface{}{"data": doc}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: user id already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by domain id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM user WHERE uid = $uid LIMIT 1`
	vars := map[string]interface{}{"uid": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// List retrieves users matching the filter.
func (r *UserRepository) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	query := `SELECT * FROM user`
	vars := map[string]interface{}{}

	var conds []string
	if filter != nil {
		if filter.Role != nil {
			conds = append(conds, "role = $role")
			vars["role"] = *filter.Role
		}
		if filter.Email != nil {
			conds = append(conds, "email = $email")
			vars["email"] = *filter.Email
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
		return []*model.User{}, nil
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		user, err := parseUserRecord(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Update applies a field-level merge and returns the post-merge user, or
// (nil, nil) when absent.
func (r *UserRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.User, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	patch := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	query := `UPDATE user MERGE $patch WHERE uid = $uid`
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
	return parseUserRecord(rows[0])
}

// Delete removes a user by id and reports whether a record was removed.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE user WHERE uid = $uid RETURN BEFORE`
	vars := map[string]interface{}{"uid": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	rows, ok := extractQueryResults(results)
	return ok && len(rows) > 0, nil
}

// parseUserRecord decodes a stored document into a User
func parseUserRecord(result interface{}) (*model.User, error) {
	var user model.User
	uid, err := decodeRecord(result, &user)
	if err != nil {
		return nil, err
	}
	user.ID = uid
	return &user, nil
}
