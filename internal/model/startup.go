package model

import (
	"strings"
	"time"
)

// Stage represents the maturity stage of a startup.
// The enumeration is closed: any other value fails validation.
type Stage string

const (
	StageIdea     Stage = "idea"
	StageMVP      Stage = "mvp"
	StageTraction Stage = "traction"
	StageRevenue  Stage = "revenue"
)

// Stages lists every valid stage, in maturity order.
var Stages = []Stage{StageIdea, StageMVP, StageTraction, StageRevenue}

// IsValidStage reports whether a client-supplied stage string is a member of
// the closed enumeration.
func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if string(s) == stage {
			return true
		}
	}
	return false
}

// NormalizeName trims surrounding whitespace from a startup name.
// It is total: it reshapes input but never rejects it.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// TeamMember is a value type embedded in a Startup. It has no identity of
// its own and no independent lifecycle.
type TeamMember struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Bio         *string `json:"bio,omitempty"`
	LinkedinUrl *string `json:"linkedinUrl,omitempty"`
}

// Startup is a submitted startup profile.
//
// The id is an opaque unique string assigned at creation time and never
// reassigned. Referential fields (problems, createdBy) are opaque foreign
// keys by convention; referenced entities are not checked for existence.
// JSON tags follow the documented wire contract (camelCase, ISO-8601 dates).
type Startup struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Categories   []string     `json:"categories"`
	Problems     []string     `json:"problems"`
	Stage        Stage        `json:"stage"`
	Team         []TeamMember `json:"team"`
	FundingNeeds string       `json:"fundingNeeds"`
	PitchDeckUrl string       `json:"pitchDeckUrl"`
	PitchVideoUrl string      `json:"pitchVideoUrl"`
	DemoUrl      string       `json:"demoUrl"`
	Traction     string       `json:"traction,omitempty"`
	Revenue      string       `json:"revenue"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	SocialMedia  string       `json:"socialMedia"`
	ImageUrl     string       `json:"imageUrl"`
	CreatedBy    string       `json:"createdBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ValidateRequiredFields checks the required-field invariants for a startup.
// It returns every violation found, or an empty list for a valid candidate.
// It is pure: no I/O, no side effects, and it never rejects by panicking.
func (s *Startup) ValidateRequiredFields() []FieldError {
	var errs []FieldError
	if s.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Startup name is required."})
	}
	if s.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required."})
	}
	if len(s.Categories) == 0 {
		errs = append(errs, FieldError{Field: "categories", Message: "At least one category is required."})
	}
	if len(s.Problems) == 0 {
		errs = append(errs, FieldError{Field: "problems", Message: "At least one problem is required."})
	}
	if s.Stage == "" {
		errs = append(errs, FieldError{Field: "stage", Message: "Stage is required."})
	}
	if len(s.Team) == 0 {
		errs = append(errs, FieldError{Field: "team", Message: "At least one team member is required."})
	}
	if s.CreatedBy == "" {
		errs = append(errs, FieldError{Field: "createdBy", Message: "CreatedBy (user) is required."})
	}
	return errs
}

// Validate runs the required-field checks plus stage enumeration membership.
func (s *Startup) Validate() []FieldError {
	errs := s.ValidateRequiredFields()
	if s.Stage != "" && !IsValidStage(string(s.Stage)) {
		errs = append(errs, FieldError{Field: "stage", Message: "Stage must be one of: idea, mvp, traction, revenue."})
	}
	return errs
}

// StartupFilter is an exact-match conjunction over declared fields.
// Nil fields do not constrain the result; an empty filter matches everything.
type StartupFilter struct {
	Stage     *string
	Category  *string
	Problem   *string
	CreatedBy *string
}

// IsEmpty reports whether the filter constrains anything.
func (f *StartupFilter) IsEmpty() bool {
	return f == nil || (f.Stage == nil && f.Category == nil && f.Problem == nil && f.CreatedBy == nil)
}

// StartupPatch carries a partial update. Pointer fields give tri-state
// semantics: nil leaves the stored value unchanged, a pointer to the zero
// value clears it.
type StartupPatch struct {
	Name          *string       `json:"name,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Categories    *[]string     `json:"categories,omitempty"`
	Problems      *[]string     `json:"problems,omitempty"`
	Stage         *string       `json:"stage,omitempty"`
	Team          *[]TeamMember `json:"team,omitempty"`
	FundingNeeds  *string       `json:"fundingNeeds,omitempty"`
	PitchDeckUrl  *string       `json:"pitchDeckUrl,omitempty"`
	PitchVideoUrl *string       `json:"pitchVideoUrl,omitempty"`
	DemoUrl       *string       `json:"demoUrl,omitempty"`
	Traction      *string       `json:"traction,omitempty"`
	Revenue       *string       `json:"revenue,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	Email         *string       `json:"email,omitempty"`
	SocialMedia   *string       `json:"socialMedia,omitempty"`
	ImageUrl      *string       `json:"imageUrl,omitempty"`
}

// StartupSearchRequest describes a startup search.
type StartupSearchRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Problem  string `json:"problem,omitempty"`
	Stage    string `json:"stage,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
}

// StartupSearchResult holds a page of matches and the total match count.
type StartupSearchResult struct {
	Startups []*Startup `json:"startups"`
	Total    int        `json:"total"`
}
