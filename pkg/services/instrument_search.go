package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fretbase/guitar-registry/pkg/apperrors"
	"github.com/fretbase/guitar-registry/pkg/config"
	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/repositories"
	"github.com/fretbase/guitar-registry/pkg/search"
)

// InstrumentSearchParams are the inputs of an instrument search request.
// Exactly one of SerialNumber or UnknownSerial must be supplied.
type InstrumentSearchParams struct {
	SerialNumber     string
	UnknownSerial    bool
	ModelName        string
	ManufacturerName string
	YearEstimate     *int
	Page             int
	PageSize         int
}

// InstrumentSearchService resolves serial-number and unknown-serial queries
// to individual instruments.
type InstrumentSearchService interface {
	SearchInstruments(ctx context.Context, params InstrumentSearchParams) ([]models.InstrumentResult, search.Meta, error)
}

type instrumentSearchService struct {
	repo        repositories.InstrumentSearchRepository
	modelSearch ModelSearchService
	cfg         config.SearchConfig
	logger      *zap.Logger
}

// NewInstrumentSearchService creates an InstrumentSearchService. Unknown
// serial searches resolve candidate models through the given
// ModelSearchService.
func NewInstrumentSearchService(
	repo repositories.InstrumentSearchRepository,
	modelSearch ModelSearchService,
	cfg config.SearchConfig,
	logger *zap.Logger,
) InstrumentSearchService {
	return &instrumentSearchService{repo: repo, modelSearch: modelSearch, cfg: cfg, logger: logger}
}

var _ InstrumentSearchService = (*instrumentSearchService)(nil)

func (s *instrumentSearchService) SearchInstruments(ctx context.Context, params InstrumentSearchParams) ([]models.InstrumentResult, search.Meta, error) {
	serial := strings.TrimSpace(params.SerialNumber)

	switch {
	case serial != "" && params.UnknownSerial:
		return nil, search.Meta{}, apperrors.NewValidationError("serial_number",
			"provide either serial_number or unknown_serial, not both")
	case serial == "" && !params.UnknownSerial:
		return nil, search.Meta{}, apperrors.NewValidationError("serial_number",
			"either serial_number or unknown_serial must be provided")
	}

	if params.YearEstimate != nil && (*params.YearEstimate < search.MinYear || *params.YearEstimate > search.MaxYear) {
		return nil, search.Meta{}, apperrors.NewValidationError("year_estimate",
			fmt.Sprintf("year_estimate must be between %d and %d", search.MinYear, search.MaxYear))
	}

	p := s.pagination(params.Page, params.PageSize)

	if serial != "" {
		return s.searchBySerial(ctx, serial, p)
	}
	return s.searchUnknownSerial(ctx, params, p)
}

func (s *instrumentSearchService) searchBySerial(ctx context.Context, serial string, p search.Pagination) ([]models.InstrumentResult, search.Meta, error) {
	normalized := search.NormalizeSerial(serial)

	total, err := s.repo.CountBySerial(ctx, serial, normalized)
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search instruments by serial: %w", err)
	}
	if total == 0 {
		return []models.InstrumentResult{}, p.Meta(0), nil
	}

	rows, err := s.repo.ListBySerial(ctx, serial, normalized, p.PageSize, p.Offset())
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search instruments by serial: %w", err)
	}

	return toResults(rows), p.Meta(total), nil
}

// searchUnknownSerial resolves the query along two paths and unions the
// results: instruments linked to fuzzily-matched models, and instruments
// with no model link whose fallback text fields match. An instrument found
// by both paths appears exactly once, keyed by id.
func (s *instrumentSearchService) searchUnknownSerial(ctx context.Context, params InstrumentSearchParams, p search.Pagination) ([]models.InstrumentResult, search.Meta, error) {
	modelName := strings.TrimSpace(params.ModelName)
	manufacturerName := strings.TrimSpace(params.ManufacturerName)
	if modelName == "" && manufacturerName == "" {
		return nil, search.Meta{}, apperrors.NewValidationError("model_name",
			"model_name or manufacturer_name is required for unknown serial search")
	}

	q := search.ParseQuery(modelName, params.YearEstimate)
	manufacturerTerms := search.SplitTerms(manufacturerName)

	candidateIDs, err := s.modelSearch.CandidateModelIDs(ctx, modelName, manufacturerName)
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search instruments: %w", err)
	}

	linked, err := s.repo.ListByModelIDs(ctx, candidateIDs)
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search instruments: %w", err)
	}

	fallback, err := s.repo.ListFallbackMatches(ctx, repositories.FallbackQuery{
		ModelTerms:            q.Terms,
		ManufacturerTerms:     manufacturerTerms,
		ModelThreshold:        s.cfg.ModelThreshold,
		ManufacturerThreshold: s.cfg.ManufacturerThreshold,
	})
	if err != nil {
		return nil, search.Meta{}, fmt.Errorf("search instruments: %w", err)
	}

	merged := mergeCandidates(linked, fallback)
	rankInstruments(merged, q.Year)

	s.logger.Debug("unknown-serial search completed",
		zap.String("model_name", modelName),
		zap.String("manufacturer_name", manufacturerName),
		zap.Int("model_linked", len(linked)),
		zap.Int("fallback_linked", len(fallback)),
		zap.Int("total_records", len(merged)))

	lo, hi := p.Slice(len(merged))
	return toResults(merged[lo:hi]), p.Meta(len(merged)), nil
}

// mergeCandidates unions the two candidate sets keyed by instrument id,
// preferring the model-linked row when both paths found the same id.
func mergeCandidates(linked, fallback []models.InstrumentRow) []models.InstrumentRow {
	seen := make(map[uuid.UUID]int, len(linked)+len(fallback))
	merged := make([]models.InstrumentRow, 0, len(linked)+len(fallback))

	for _, row := range linked {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = len(merged)
		merged = append(merged, row)
	}
	for _, row := range fallback {
		if i, ok := seen[row.ID]; ok {
			if !merged[i].ModelLinked {
				merged[i] = row
			}
			continue
		}
		seen[row.ID] = len(merged)
		merged = append(merged, row)
	}
	return merged
}

// rankInstruments orders candidates by descending relevance: exact year
// match first, then estimated value (nulls last), then significance, then id
// for determinism.
func rankInstruments(rows []models.InstrumentRow, yearHint *int) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]

		if yearHint != nil {
			am, bm := yearMatches(a, *yearHint), yearMatches(b, *yearHint)
			if am != bm {
				return am
			}
		}

		if c := compareValueDesc(a.CurrentEstimatedValue, b.CurrentEstimatedValue); c != 0 {
			return c < 0
		}

		ar, br := models.SignificanceRank(a.SignificanceLevel), models.SignificanceRank(b.SignificanceLevel)
		if ar != br {
			return ar < br
		}

		return a.ID.String() < b.ID.String()
	})
}

// yearMatches reports whether the instrument's resolved year equals the
// query's year hint. The linked model's year wins when present; otherwise
// the stored year_estimate is parsed best-effort; non-numeric estimates
// simply rank below matches without being excluded.
func yearMatches(row *models.InstrumentRow, year int) bool {
	if row.ModelYear != nil {
		return *row.ModelYear == year
	}
	if row.YearEstimate == nil {
		return false
	}
	years := search.ExtractYears(*row.YearEstimate)
	return len(years) > 0 && years[0] == year
}

// compareValueDesc orders estimated values high to low with nils last.
func compareValueDesc(a, b *decimal.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return b.Cmp(*a)
	}
}

func toResults(rows []models.InstrumentRow) []models.InstrumentResult {
	results := make([]models.InstrumentResult, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].ToResult())
	}
	return results
}

func (s *instrumentSearchService) pagination(page, pageSize int) search.Pagination {
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	return search.NormalizePagination(page, pageSize, s.cfg.MaxPageSize)
}
