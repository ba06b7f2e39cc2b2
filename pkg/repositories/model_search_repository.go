package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fretbase/guitar-registry/pkg/database"
	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/search"
)

// ModelQuery is the structured form of a model search as the repository
// consumes it: normalized terms plus the thresholds and filters to apply.
type ModelQuery struct {
	// Terms are matched fuzzily against models.name and product_lines.name.
	Terms []string
	// ManufacturerTerms are matched fuzzily against manufacturers.name.
	ManufacturerTerms []string
	// Year, when set, is a hard filter on models.year.
	Year *int
	// ExactName is the raw model_name input, used only to rank exact
	// case-insensitive full-string matches first.
	ExactName string

	ModelThreshold        float64
	ManufacturerThreshold float64
}

// ModelSearchRepository runs read-only model searches against the registry.
type ModelSearchRepository interface {
	Count(ctx context.Context, q ModelQuery) (int, error)
	List(ctx context.Context, q ModelQuery, limit, offset int) ([]models.ModelResult, error)
	// CandidateIDs returns the ids of every model matching the query,
	// unpaginated. The instrument resolver uses it to expand a text query
	// into model-linked instruments.
	CandidateIDs(ctx context.Context, q ModelQuery) ([]uuid.UUID, error)
}

type modelSearchRepository struct {
	db *database.DB
}

// NewModelSearchRepository creates a ModelSearchRepository backed by the
// registry database.
func NewModelSearchRepository(db *database.DB) ModelSearchRepository {
	return &modelSearchRepository{db: db}
}

var _ ModelSearchRepository = (*modelSearchRepository)(nil)

const modelSearchFrom = `
	FROM models m
	JOIN manufacturers mfr ON m.manufacturer_id = mfr.id
	LEFT JOIN product_lines pl ON m.product_line_id = pl.id`

// whereClause builds the shared WHERE clause for all three queries. A term
// counts toward relevance whether it matches the model name or the product
// line name; the two are indistinguishable in user input.
func (q ModelQuery) whereClause(args *search.ArgList) string {
	var conditions []string

	if c := search.MultiFieldCondition(q.Terms, []string{"m.name", "pl.name"}, q.ModelThreshold, args); c != "" {
		conditions = append(conditions, c)
	}
	if c := search.FuzzyCondition(q.ManufacturerTerms, "mfr.name", q.ManufacturerThreshold, args); c != "" {
		conditions = append(conditions, c)
	}
	if q.Year != nil {
		conditions = append(conditions, fmt.Sprintf("m.year = %s", args.Add(*q.Year)))
	}

	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

func (r *modelSearchRepository) Count(ctx context.Context, q ModelQuery) (int, error) {
	args := &search.ArgList{}
	query := "SELECT COUNT(m.id)" + modelSearchFrom + " " + q.whereClause(args)

	var count int
	if err := r.db.QueryRow(ctx, query, args.Values()...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count models: %w", err)
	}
	return count, nil
}

func (r *modelSearchRepository) List(ctx context.Context, q ModelQuery, limit, offset int) ([]models.ModelResult, error) {
	args := &search.ArgList{}
	where := q.whereClause(args)

	// Exact full-string matches rank first, then more recent years, then
	// name as the final tie-break.
	orderBy := fmt.Sprintf(`
		ORDER BY
			CASE WHEN LOWER(m.name) = LOWER(%s) THEN 1 ELSE 2 END,
			m.year DESC,
			m.name`, args.Add(q.ExactName))

	query := `
		SELECT m.id, m.name, m.year, m.description, mfr.name, pl.name` +
		modelSearchFrom + " " + where + orderBy +
		fmt.Sprintf(" LIMIT %s OFFSET %s", args.Add(limit), args.Add(offset))

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	results := make([]models.ModelResult, 0, limit)
	for rows.Next() {
		var (
			id     uuid.UUID
			result models.ModelResult
		)
		if err := rows.Scan(&id, &result.ModelName, &result.Year, &result.Description,
			&result.ManufacturerName, &result.ProductLineName); err != nil {
			return nil, fmt.Errorf("failed to scan model row: %w", err)
		}
		result.ID = id.String()
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model rows: %w", err)
	}
	return results, nil
}

func (r *modelSearchRepository) CandidateIDs(ctx context.Context, q ModelQuery) ([]uuid.UUID, error) {
	args := &search.ArgList{}
	query := "SELECT m.id" + modelSearchFrom + " " + q.whereClause(args)

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate models: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate model id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate model ids: %w", err)
	}
	return ids, nil
}
