package tests

import (
	"testing"

	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/repository"
	"github.com/forgo/foundry/api/internal/testing/fixtures"
	"github.com/forgo/foundry/api/internal/testing/helpers"
	"github.com/forgo/foundry/api/internal/testing/testdb"
)

/*
FEATURE: User Accounts
DOMAIN: Users

ACCEPTANCE CRITERIA:
===================

AC-USER-001: Email Lookup
  GIVEN a stored user
  WHEN it is looked up by email
  THEN the same user comes back
  AND an unknown email yields no user

AC-USER-002: Duplicate Emails Allowed
  GIVEN a stored user
  WHEN another user is created with the same email
  THEN the second create succeeds

AC-USER-003: Role Filtering
  GIVEN a founder and an investor
  WHEN the listing is filtered by role
  THEN only matching users are returned

AC-USER-004: Deletion
  GIVEN a stored user
  WHEN it is deleted
  THEN it no longer exists in the database
*/

func TestUsers_EmailLookup(t *testing.T) {
	// AC-USER-001: Email Lookup
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)

	user := f.CreateUser(t)

	got, err := repo.GetByEmail(tdb.Ctx(), user.Email)
	if err != nil {
		t.Fatalf("email lookup failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("expected user %s by email, got %+v", user.ID, got)
	}

	missing, err := repo.GetByEmail(tdb.Ctx(), "nobody@test.local")
	if err != nil {
		t.Fatalf("unknown email lookup errored: %v", err)
	}
	if missing != nil {
		t.Errorf("expected no user for unknown email, got %+v", missing)
	}
}

func TestUsers_DuplicateEmailsAllowed(t *testing.T) {
	// AC-USER-002: Duplicate Emails Allowed
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)

	first := f.CreateUser(t)
	second := f.CreateUser(t, func(o *fixtures.UserOpts) {
		o.Email = first.Email
	})

	helpers.AssertRecordExists(t, tdb.DB, "user", first.ID)
	helpers.AssertRecordExists(t, tdb.DB, "user", second.ID)
}

func TestUsers_RoleFiltering(t *testing.T) {
	// AC-USER-003: Role Filtering
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)

	f.CreateFounder(t)
	investor := f.CreateInvestor(t)

	role := string(model.UserRoleInvestor)
	filtered, err := repo.List(tdb.Ctx(), &model.UserFilter{Role: &role})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != investor.ID {
		t.Errorf("expected only the investor, got %d results", len(filtered))
	}
}

func TestUsers_Deletion(t *testing.T) {
	// AC-USER-004: Deletion
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)

	user := f.CreateUser(t)

	removed, err := repo.Delete(tdb.Ctx(), user.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !removed {
		t.Error("expected delete to report a removed record")
	}

	helpers.AssertRecordNotExists(t, tdb.DB, "user", user.ID)
}
