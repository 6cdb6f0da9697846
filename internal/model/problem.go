package model

import "time"

// Problem is a problem statement that startups can address. The startups
// field is a back-reference of Startup ids, not ownership: deleting a
// startup does not cascade here, and referenced ids are not checked for
// existence.
type Problem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Startups    []string  `json:"startups"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidateRequiredFields checks the required-field invariants for a problem.
func (p *Problem) ValidateRequiredFields() []FieldError {
	var errs []FieldError
	if p.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Problem title is required."})
	}
	if p.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required."})
	}
	return errs
}

// ProblemFilter is an exact-match conjunction over declared fields.
type ProblemFilter struct {
	Title   *string
	Startup *string
}

// IsEmpty reports whether the filter constrains anything.
func (f *ProblemFilter) IsEmpty() bool {
	return f == nil || (f.Title == nil && f.Startup == nil)
}

// ProblemPatch carries a partial problem update with tri-state pointer
// semantics.
type ProblemPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Startups    *[]string `json:"startups,omitempty"`
}
