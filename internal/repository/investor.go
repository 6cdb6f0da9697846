package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/foundry/api/internal/database"
	"github.com/forgo/foundry/api/internal/model"
)

// InvestorRepository handles the investor capability extension. Investor
// fields live on the user document; every operation is scoped to users whose
// role discriminant is "investor".
type InvestorRepository struct {
	db database.Database
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db database.Database) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// GetByID retrieves an investor by user id. Returns (nil, nil) when the user
// is absent or is not an investor.
func (r *InvestorRepository) GetByID(ctx context.Context, id string) (*model.Investor, error) {
	query := `SELECT * FROM user WHERE uid = $uid AND role = $role LIMIT 1`
	vars := map[string]interface{}{
		"uid":  id,
		"role": string(model.UserRoleInvestor),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseInvestorRecord(result)
}

// SaveStartup adds a startup id to the investor's saved set. The reference
// is weak; duplicates are collapsed by the set union.
func (r *InvestorRepository) SaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error) {
	query := `
		UPDATE user SET
			savedStartups = array::union(savedStartups ?? [], [$startupId]),
			updatedAt = $now
		WHERE uid = $uid AND role = $role
	`
	return r.mutate(ctx, query, map[string]interface{}{
		"uid":       id,
		"role":      string(model.UserRoleInvestor),
		"startupId": startupID,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// UnsaveStartup removes a startup id from the investor's saved set.
func (r *InvestorRepository) UnsaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error) {
	query := `
		UPDATE user SET
			savedStartups = array::difference(savedStartups ?? [], [$startupId]),
			updatedAt = $now
		WHERE uid = $uid AND role = $role
	`
	return r.mutate(ctx, query, map[string]interface{}{
		"uid":       id,
		"role":      string(model.UserRoleInvestor),
		"startupId": startupID,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// SetInterests replaces the investor's interest list.
func (r *InvestorRepository) SetInterests(ctx context.Context, id string, interests []string) (*model.Investor, error) {
	query := `
		UPDATE user SET
			interests = $interests,
			updatedAt = $now
		WHERE uid = $uid AND role = $role
	`
	return r.mutate(ctx, query, map[string]interface{}{
		"uid":       id,
		"role":      string(model.UserRoleInvestor),
		"interests": interests,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// SetNotifications toggles the investor's notification flag.
func (r *InvestorRepository) SetNotifications(ctx context.Context, id string, enabled bool) (*model.Investor, error) {
	query := `
		UPDATE user SET
			notificationsEnabled = $enabled,
			updatedAt = $now
		WHERE uid = $uid AND role = $role
	`
	return r.mutate(ctx, query, map[string]interface{}{
		"uid":     id,
		"role":    string(model.UserRoleInvestor),
		"enabled": enabled,
		"now":     time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// mutate runs an investor update and returns the post-merge record, or
// (nil, nil) when no investor matched.
func (r *InvestorRepository) mutate(ctx context.Context, query string, vars map[string]interface{}) (*model.Investor, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(results)
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	return parseInvestorRecord(rows[0])
}

// parseInvestorRecord decodes a stored user document into an Investor
func parseInvestorRecord(result interface{}) (*model.Investor, error) {
	var investor model.Investor
	uid, err := decodeRecord(result, &investor)
	if err != nil {
		return nil, err
	}
	investor.ID = uid
	if investor.Interests == nil {
		investor.Interests = []string{}
	}
	if investor.SavedStartups == nil {
		investor.SavedStartups = []string{}
	}
	return &investor, nil
}
