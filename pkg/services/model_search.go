package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fretbase/guitar-registry/pkg/apperrors"
	"github.com/fretbase/guitar-registry/pkg/config"
	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/repositories"
	"github.com/fretbase/guitar-registry/pkg/search"
)

// ModelSearchParams are the inputs of a model search request.
type ModelSearchParams struct {
	ModelName        string
	ManufacturerName string
	Year             *int
	Page             int
	PageSize         int
}

// ModelSearchService resolves free-text model queries against the registry.
type ModelSearchService interface {
	SearchModels(ctx context.Context, params ModelSearchParams) ([]models.ModelResult, search.Meta, error)
	// CandidateModelIDs resolves a text query to matching model ids using
	// the same fuzzy logic as SearchModels, unpaginated and without a year
	// filter. The instrument resolver uses it; year relevance is a ranking
	// signal there, not an exclusion.
	CandidateModelIDs(ctx context.Context, modelName, manufacturerName string) ([]uuid.UUID, error)
}

type modelSearchService struct {
	repo   repositories.ModelSearchRepository
	cfg    config.SearchConfig
	logger *zap.Logger
}

// NewModelSearchService creates a ModelSearchService.
func NewModelSearchService(repo repositories.ModelSearchRepository, cfg config.SearchConfig, logger *zap.Logger) ModelSearchService {
	return &modelSearchService{repo: repo, cfg: cfg, logger: logger}
}

var _ ModelSearchService = (*modelSearchService)(nil)

func (s *modelSearchService) SearchModels(ctx context.Context, params ModelSearchParams) ([]models.ModelResult, search.Meta, error) {
	modelName := strings.TrimSpace(params.ModelName)
	if modelName == "" {
		return nil, search.Meta{}, apperrors.NewValidationError("model_name", "model_name is required")
	}
	if params.Year != nil && (*params.Year < search.MinYear || *params.Year > search.MaxYear) {
		return nil, search.Meta{}, apperrors.NewValidationError("year",
			fmt.Sprintf("year must be between %d and %d", search.MinYear, search.MaxYear))
	}

	p := s.pagination(params.Page, params.PageSize)

	// An explicit year parameter wins; a year embedded in the text becomes
	// the filter only when no explicit year was supplied.
	q := search.ParseQuery(modelName, params.Year)

	query := repositories.ModelQuery{
		Terms:                 q.Terms,
		ManufacturerTerms:     search.SplitTerms(params.ManufacturerName),
		Year:                  q.Year,
		ExactName:             modelName,
		ModelThreshold:        s.cfg.ModelThreshold,
		ManufacturerThreshold: s.cfg.ManufacturerThreshold,
	}

	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search models: %w", err)
	}
	if total == 0 {
		return []models.ModelResult{}, p.Meta(0), nil
	}

	results, err := s.repo.List(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search models: %w", err)
	}

	s.logger.Debug("model search completed",
		zap.String("model_name", modelName),
		zap.Int("total_records", total),
		zap.Int("page", p.Page))

	return results, p.Meta(total), nil
}

func (s *modelSearchService) CandidateModelIDs(ctx context.Context, modelName, manufacturerName string) ([]uuid.UUID, error) {
	q := search.ParseQuery(modelName, nil)

	query := repositories.ModelQuery{
		Terms:                 q.Terms,
		ManufacturerTerms:     search.SplitTerms(manufacturerName),
		ModelThreshold:        s.cfg.ModelThreshold,
		ManufacturerThreshold: s.cfg.ManufacturerThreshold,
	}
	if len(query.Terms) == 0 && len(query.ManufacturerTerms) == 0 {
		return nil, nil
	}

	ids, err := s.repo.CandidateIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolve candidate models: %w", err)
	}
	return ids, nil
}

func (s *modelSearchService) pagination(page, pageSize int) search.Pagination {
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	return search.NormalizePagination(page, pageSize, s.cfg.MaxPageSize)
}
