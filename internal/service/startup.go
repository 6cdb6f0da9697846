package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/foundry/api/internal/model"
)

// StartupRepository defines the interface for startup storage
type StartupRepository interface {
	Create(ctx context.Context, startup *model.Startup) error
	GetByID(ctx context.Context, id string) (*model.Startup, error)
	List(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StartupService handles startup business logic, including the submission
// pipeline that turns a raw form bundle into a persisted startup.
type StartupService struct {
	repo   StartupRepository
	strict bool
}

// StartupServiceConfig holds configuration for the startup service
type StartupServiceConfig struct {
	StartupRepo StartupRepository
	// StrictValidation gates the submission pipeline on the entity rules.
	// Off by default: submissions with missing required fields are stored
	// as-is, matching the historical behavior of the directory.
	StrictValidation bool
}

// NewStartupService creates a new startup service
func NewStartupService(cfg StartupServiceConfig) *StartupService {
	return &StartupService{
		repo:   cfg.StartupRepo,
		strict: cfg.StrictValidation,
	}
}

// Submit runs the submission pipeline: it maps a weakly typed form bundle
// (string-valued fields, some possibly absent, plus an optional stored-image
// URL) into a well-formed Startup and persists it.
//
// The mapping is total: every absent optional field defaults to its empty
// value, scalar submissions of list fields are coerced to one-element lists,
// and the pipeline never fails on missing input unless strict validation is
// enabled.
func (s *StartupService) Submit(ctx context.Context, form url.Values, imageURL string) (*model.Startup, error) {
	now := time.Now().UTC()

	startup := &model.Startup{
		ID:            uuid.New().String(),
		Name:          model.NormalizeName(form.Get("name")),
		Description:   form.Get("description"),
		Categories:    scalarToList(form.Get("category")),
		Problems:      listValues(form, "problems"),
		Stage:         model.Stage(form.Get("stage")),
		Team:          parseTeamValues(form["team"]),
		FundingNeeds:  form.Get("fundingNeeds"),
		PitchDeckUrl:  form.Get("pitchDeckUrl"),
		PitchVideoUrl: form.Get("pitchVideoUrl"),
		DemoUrl:       form.Get("demoUrl"),
		Revenue:       form.Get("revenue"),
		Phone:         form.Get("phone"),
		Email:         form.Get("email"),
		SocialMedia:   form.Get("socialMedia"),
		ImageUrl:      imageURL,
		CreatedBy:     "", // identity is an external concern; no auth today
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.strict {
		if violations := startup.Validate(); len(violations) > 0 {
			return nil, &ValidationError{Violations: violations}
		}
	}

	if err := s.repo.Create(ctx, startup); err != nil {
		return nil, err
	}
	return startup, nil
}

// Create persists a fully formed startup after running the entity rules.
// Unlike Submit, this programmatic path always enforces validation.
func (s *StartupService) Create(ctx context.Context, startup *model.Startup) (*model.Startup, error) {
	if violations := startup.Validate(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	now := time.Now().UTC()
	if startup.ID == "" {
		startup.ID = uuid.New().String()
	}
	startup.Name = model.NormalizeName(startup.Name)
	startup.CreatedAt = now
	startup.UpdatedAt = now

	if err := s.repo.Create(ctx, startup); err != nil {
		return nil, err
	}
	return startup, nil
}

// Get retrieves a startup by id
func (s *StartupService) Get(ctx context.Context, id string) (*model.Startup, error) {
	startup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if startup == nil {
		return nil, ErrStartupNotFound
	}
	return startup, nil
}

// List retrieves startups matching the filter
func (s *StartupService) List(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
	startups, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if startups == nil {
		startups = []*model.Startup{}
	}
	return startups, nil
}

// Update applies a partial patch. Pointer fields give tri-state semantics:
// nil leaves the stored value unchanged, a pointer to the zero value clears
// it. Only the provided fields are touched; updatedAt advances.
func (s *StartupService) Update(ctx context.Context, id string, patch *model.StartupPatch) (*model.Startup, error) {
	if patch.Stage != nil && *patch.Stage != "" && !model.IsValidStage(*patch.Stage) {
		return nil, ErrInvalidStage
	}

	updates := startupPatchUpdates(patch)
	startup, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if startup == nil {
		return nil, ErrStartupNotFound
	}
	return startup, nil
}

// Delete removes a startup by id
func (s *StartupService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrStartupNotFound
	}
	return nil
}

// Search finds startups by free-text query over name and description plus
// exact-match category/problem/stage filters, with offset pagination.
func (s *StartupService) Search(ctx context.Context, req model.StartupSearchRequest) (*model.StartupSearchResult, error) {
	filter := &model.StartupFilter{}
	if req.Category != "" {
		filter.Category = &req.Category
	}
	if req.Problem != "" {
		filter.Problem = &req.Problem
	}
	if req.Stage != "" {
		filter.Stage = &req.Stage
	}

	startups, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	matches := startups
	if req.Query != "" {
		query := strings.ToLower(req.Query)
		matches = make([]*model.Startup, 0, len(startups))
		for _, startup := range startups {
			if strings.Contains(strings.ToLower(startup.Name), query) ||
				strings.Contains(strings.ToLower(startup.Description), query) {
				matches = append(matches, startup)
			}
		}
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	total := len(matches)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &model.StartupSearchResult{
		Startups: matches[start:end],
		Total:    total,
	}, nil
}

// scalarToList coerces an optional scalar into a list: absent becomes the
// empty list, a value becomes a one-element list.
func scalarToList(value string) []string {
	if value == "" {
		return []string{}
	}
	return []string{value}
}

// listValues returns every submitted value for a list field. A field posted
// once (a bare scalar) yields a one-element list; repeated fields pass
// through unchanged; absent fields yield the empty list.
func listValues(form url.Values, key string) []string {
	values := form[key]
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

// parseTeamValues maps submitted team entries into team members. Each entry
// is "name/role", optionally extended to "name/role/bio/linkedinUrl"; an
// entry with no separator becomes a member with only a name.
func parseTeamValues(values []string) []model.TeamMember {
	team := make([]model.TeamMember, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		parts := strings.Split(v, "/")
		member := model.TeamMember{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			member.Role = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			bio := strings.TrimSpace(parts[2])
			member.Bio = &bio
		}
		if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
			linkedin := strings.TrimSpace(strings.Join(parts[3:], "/"))
			member.LinkedinUrl = &linkedin
		}
		team = append(team, member)
	}
	return team
}

// startupPatchUpdates lowers a tri-state patch onto wire-shaped update keys.
func startupPatchUpdates(patch *model.StartupPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = model.NormalizeName(*patch.Name)
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Categories != nil {
		updates["categories"] = *patch.Categories
	}
	if patch.Problems != nil {
		updates["problems"] = *patch.Problems
	}
	if patch.Stage != nil {
		updates["stage"] = *patch.Stage
	}
	if patch.Team != nil {
		updates["team"] = *patch.Team
	}
	if patch.FundingNeeds != nil {
		updates["fundingNeeds"] = *patch.FundingNeeds
	}
	if patch.PitchDeckUrl != nil {
		updates["pitchDeckUrl"] = *patch.PitchDeckUrl
	}
	if patch.PitchVideoUrl != nil {
		updates["pitchVideoUrl"] = *patch.PitchVideoUrl
	}
	if patch.DemoUrl != nil {
		updates["demoUrl"] = *patch.DemoUrl
	}
	if patch.Traction != nil {
		updates["traction"] = *patch.Traction
	}
	if patch.Revenue != nil {
		updates["revenue"] = *patch.Revenue
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.SocialMedia != nil {
		updates["socialMedia"] = *patch.SocialMedia
	}
	if patch.ImageUrl != nil {
		updates["imageUrl"] = *patch.ImageUrl
	}
	return updates
}
