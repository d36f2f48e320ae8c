package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// RiskUseCase provides CRUD and mitigation-toggle operations over the risk
// register.
type RiskUseCase struct {
	repo interfaces.Repository
}

func NewRiskUseCase(repo interfaces.Repository) *RiskUseCase {
	return &RiskUseCase{repo: repo}
}

// CreateInput carries the fields of a new risk. RiskID is optional; an
// absent ID is generated.
type CreateInput struct {
	RiskID               string              `json:"risk_id"`
	Title                string              `json:"title"`
	Owner                types.Owner         `json:"risk_owner"`
	Category             types.Category      `json:"risk_category"`
	Likelihood           int                 `json:"likelihood"`
	Impact               int                 `json:"impact"`
	Status               types.Status        `json:"status"`
	ControlEffectiveness types.Effectiveness `json:"control_effectiveness"`
	IsMitigated          bool                `json:"is_mitigated"`
}

// UpdateInput carries a partial update; nil fields are left untouched
type UpdateInput struct {
	Title                *string              `json:"title"`
	Likelihood           *int                 `json:"likelihood"`
	Impact               *int                 `json:"impact"`
	Status               *types.Status        `json:"status"`
	ControlEffectiveness *types.Effectiveness `json:"control_effectiveness"`
	IsMitigated          *bool                `json:"is_mitigated"`
}

// ListInput carries the filter, sort, and pagination parameters of a list
// query. Zero values mean "no constraint".
type ListInput struct {
	Status        types.Status
	Category      types.Category
	Owner         types.Owner
	Effectiveness types.Effectiveness
	IsMitigated   *bool
	MinScore      *int
	MaxScore      *int
	Search        string

	// SortBy is a field name, "-" prefix for descending. Default -risk_score.
	SortBy   string
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListResult is one page of risks plus the total match count
type ListResult struct {
	Risks    []*model.Risk `json:"risks"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Create stores a new risk. A missing risk ID is generated; a colliding one
// is rejected rather than overwritten.
func (uc *RiskUseCase) Create(ctx context.Context, input *CreateInput) (*model.Risk, error) {
	riskID := strings.TrimSpace(input.RiskID)
	if riskID == "" {
		riskID = generateRiskID()
	}

	if _, err := uc.repo.Risk().Find(ctx, riskID); err == nil {
		return nil, goerr.New("risk already exists", goerr.V("risk_id", riskID))
	} else if !goerr.HasTag(err, types.ErrTagNotFound) {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = types.StatusOpen
	}
	effectiveness := input.ControlEffectiveness
	if effectiveness == "" {
		effectiveness = types.EffectivenessMedium
	}

	risk := &model.Risk{
		RiskID:               riskID,
		Title:                strings.TrimSpace(input.Title),
		Owner:                input.Owner,
		Category:             input.Category,
		Likelihood:           input.Likelihood,
		Impact:               input.Impact,
		Status:               status,
		ControlEffectiveness: effectiveness,
		IsMitigated:          input.IsMitigated,
	}
	risk.Recalc()
	if err := risk.Validate(); err != nil {
		return nil, err
	}

	return uc.repo.Risk().Save(ctx, risk)
}

// Get retrieves one risk by its natural key
func (uc *RiskUseCase) Get(ctx context.Context, riskID string) (*model.Risk, error) {
	return uc.repo.Risk().Find(ctx, riskID)
}

// Update applies a partial update to an existing risk. The score is
// recomputed and the change date set by the store.
func (uc *RiskUseCase) Update(ctx context.Context, riskID string, input *UpdateInput) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Find(ctx, riskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		risk.Title = strings.TrimSpace(*input.Title)
	}
	if input.Likelihood != nil {
		risk.Likelihood = *input.Likelihood
	}
	if input.Impact != nil {
		risk.Impact = *input.Impact
	}
	if input.Status != nil {
		risk.Status = *input.Status
	}
	if input.ControlEffectiveness != nil {
		risk.ControlEffectiveness = *input.ControlEffectiveness
	}
	if input.IsMitigated != nil {
		risk.IsMitigated = *input.IsMitigated
	}

	risk.Recalc()
	if err := risk.Validate(); err != nil {
		return nil, err
	}

	return uc.repo.Risk().Save(ctx, risk)
}

// Delete removes a risk by its natural key
func (uc *RiskUseCase) Delete(ctx context.Context, riskID string) error {
	return uc.repo.Risk().Delete(ctx, riskID)
}

// ToggleMitigated flips the mitigation flag and nudges the status to keep
// the pair coherent: flag on forces status Mitigated; flag off reopens only
// a Mitigated risk. Closed and Accepted statuses are left alone so the flag
// can disagree with them.
func (uc *RiskUseCase) ToggleMitigated(ctx context.Context, riskID string) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Find(ctx, riskID)
	if err != nil {
		return nil, err
	}

	risk.IsMitigated = !risk.IsMitigated
	if risk.IsMitigated {
		risk.Status = types.StatusMitigated
	} else if risk.Status == types.StatusMitigated {
		risk.Status = types.StatusOpen
	}

	return uc.repo.Risk().Save(ctx, risk)
}

// List retrieves one filtered, sorted page of the register
func (uc *RiskUseCase) List(ctx context.Context, input *ListInput) (*ListResult, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*model.Risk, 0, len(risks))
	for _, risk := range risks {
		if input.matches(risk) {
			filtered = append(filtered, risk)
		}
	}

	sortRisks(filtered, input.SortBy)

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &ListResult{
		Risks:    filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (in *ListInput) matches(risk *model.Risk) bool {
	if in.Status != "" && risk.Status != in.Status {
		return false
	}
	if in.Category != "" && risk.Category != in.Category {
		return false
	}
	if in.Owner != "" && risk.Owner != in.Owner {
		return false
	}
	if in.Effectiveness != "" && risk.ControlEffectiveness != in.Effectiveness {
		return false
	}
	if in.IsMitigated != nil && risk.IsMitigated != *in.IsMitigated {
		return false
	}
	if in.MinScore != nil && risk.Score < *in.MinScore {
		return false
	}
	if in.MaxScore != nil && risk.Score > *in.MaxScore {
		return false
	}
	if in.Search != "" {
		needle := strings.ToLower(in.Search)
		if !strings.Contains(strings.ToLower(risk.RiskID), needle) &&
			!strings.Contains(strings.ToLower(risk.Title), needle) {
			return false
		}
	}
	return true
}

func sortRisks(risks []*model.Risk, sortBy string) {
	if sortBy == "" {
		sortBy = "-risk_score"
	}
	descending := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")

	less := func(a, b *model.Risk) bool {
		switch field {
		case "risk_id":
			return a.RiskID < b.RiskID
		case "title":
			return a.Title < b.Title
		case "likelihood":
			return a.Likelihood < b.Likelihood
		case "impact":
			return a.Impact < b.Impact
		case "status":
			return a.Status < b.Status
		case "last_updated":
			return a.LastUpdated.Before(b.LastUpdated)
		default:
			return a.Score < b.Score
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if descending {
			return less(risks[j], risks[i])
		}
		return less(risks[i], risks[j])
	})
}

func generateRiskID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RISK-" + strings.ToUpper(id[:8])
}
