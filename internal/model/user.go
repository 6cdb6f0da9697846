package model

import "time"

// UserRole discriminates the closed user variant: every user is either a
// founder or an investor.
type UserRole string

const (
	UserRoleFounder  UserRole = "founder"
	UserRoleInvestor UserRole = "investor"
)

// IsValidUserRole reports whether a role string is a member of the closed
// enumeration.
func IsValidUserRole(role string) bool {
	return role == string(UserRoleFounder) || role == string(UserRoleInvestor)
}

// User represents an account in the directory. Email uniqueness is a
// convention, not a storage constraint. Users are never hard-deleted by
// application flows, but the repository supports Delete for completeness.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarUrl *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsInvestor reports whether the investor capability extension applies.
func (u *User) IsInvestor() bool {
	return u.Role == UserRoleInvestor
}

// ValidateRequiredFields checks the required-field invariants for a user.
func (u *User) ValidateRequiredFields() []FieldError {
	var errs []FieldError
	if u.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "User name is required."})
	}
	if u.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required."})
	}
	if u.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "Role is required."})
	}
	return errs
}

// Investor is a user plus the investor-only capability fields. The extension
// lives on the same stored document, keyed by the role discriminant.
type Investor struct {
	User
	Interests            []string `json:"interests"`
	SavedStartups        []string `json:"savedStartups"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
}

// UserFilter is an exact-match conjunction over declared fields.
type UserFilter struct {
	Role  *string
	Email *string
}

// IsEmpty reports whether the filter constrains anything.
func (f *UserFilter) IsEmpty() bool {
	return f == nil || (f.Role == nil && f.Email == nil)
}

// UserPatch carries a partial user update with tri-state pointer semantics.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarUrl *string `json:"avatarUrl,omitempty"`
}
