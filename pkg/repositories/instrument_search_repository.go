package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fretbase/guitar-registry/pkg/database"
	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/search"
)

// FallbackQuery matches instruments that have no model link by their
// free-text fallback fields.
type FallbackQuery struct {
	ModelTerms        []string
	ManufacturerTerms []string

	ModelThreshold        float64
	ManufacturerThreshold float64
}

// InstrumentSearchRepository runs read-only instrument searches against the
// registry.
type InstrumentSearchRepository interface {
	CountBySerial(ctx context.Context, serial, normalized string) (int, error)
	ListBySerial(ctx context.Context, serial, normalized string, limit, offset int) ([]models.InstrumentRow, error)
	// ListByModelIDs returns every instrument linked to one of the given
	// models, with display fields resolved through the join.
	ListByModelIDs(ctx context.Context, ids []uuid.UUID) ([]models.InstrumentRow, error)
	// ListFallbackMatches returns instruments with no model link whose
	// fallback text fields fuzzy-match the query.
	ListFallbackMatches(ctx context.Context, q FallbackQuery) ([]models.InstrumentRow, error)
}

type instrumentSearchRepository struct {
	db *database.DB
}

// NewInstrumentSearchRepository creates an InstrumentSearchRepository backed
// by the registry database.
func NewInstrumentSearchRepository(db *database.DB) InstrumentSearchRepository {
	return &instrumentSearchRepository{db: db}
}

var _ InstrumentSearchRepository = (*instrumentSearchRepository)(nil)

// instrumentSelect resolves display fields by preferring the joined model,
// manufacturer, and product line, falling back to the instrument's own text
// fields. product_line_name only ever comes from the join; fallback
// instruments have no product line.
const instrumentSelect = `
	SELECT
		ig.id,
		ig.serial_number,
		ig.year_estimate,
		ig.description,
		ig.significance_level,
		ig.significance_notes,
		ig.current_estimated_value,
		ig.condition_rating,
		COALESCE(m.name, ig.model_name_fallback),
		COALESCE(mfr.name, ig.manufacturer_name_fallback),
		pl.name,
		m.year,
		ig.model_id IS NOT NULL`

const instrumentFrom = `
	FROM individual_guitars ig
	LEFT JOIN models m ON ig.model_id = m.id
	LEFT JOIN manufacturers mfr ON m.manufacturer_id = mfr.id
	LEFT JOIN product_lines pl ON m.product_line_id = pl.id`

// serialWhere matches stored serials against the query serial on normalized
// form only: the raw input, the dash-and-space-stripped form, and that form
// with leading zeros removed. Never fuzzy; partial matches on short
// alphanumeric codes produce too many false positives.
const serialWhere = `
	WHERE (LOWER(ig.serial_number) = LOWER($1)
	   OR LOWER(REPLACE(REPLACE(ig.serial_number, '-', ''), ' ', '')) = LOWER($2)
	   OR LOWER(TRIM(LEADING '0' FROM REPLACE(REPLACE(ig.serial_number, '-', ''), ' ', ''))) = LOWER($2))`

func (r *instrumentSearchRepository) CountBySerial(ctx context.Context, serial, normalized string) (int, error) {
	query := "SELECT COUNT(ig.id)" + instrumentFrom + serialWhere

	var count int
	if err := r.db.QueryRow(ctx, query, serial, normalized).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count instruments by serial: %w", err)
	}
	return count, nil
}

func (r *instrumentSearchRepository) ListBySerial(ctx context.Context, serial, normalized string, limit, offset int) ([]models.InstrumentRow, error) {
	query := instrumentSelect + instrumentFrom + serialWhere + `
	ORDER BY
		CASE WHEN LOWER(ig.serial_number) = LOWER($1) THEN 1
		     WHEN LOWER(REPLACE(REPLACE(ig.serial_number, '-', ''), ' ', '')) = LOWER($2) THEN 2
		     ELSE 3 END,
		ig.current_estimated_value DESC NULLS LAST,
		ig.serial_number
	LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, serial, normalized, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments by serial: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

func (r *instrumentSearchRepository) ListByModelIDs(ctx context.Context, ids []uuid.UUID) ([]models.InstrumentRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := instrumentSelect + instrumentFrom + `
	WHERE ig.model_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments by model: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

func (r *instrumentSearchRepository) ListFallbackMatches(ctx context.Context, q FallbackQuery) ([]models.InstrumentRow, error) {
	args := &search.ArgList{}
	conditions := []string{"ig.model_id IS NULL"}

	if c := search.FuzzyCondition(q.ModelTerms, "ig.model_name_fallback", q.ModelThreshold, args); c != "" {
		conditions = append(conditions, c)
	}
	if c := search.FuzzyCondition(q.ManufacturerTerms, "ig.manufacturer_name_fallback", q.ManufacturerThreshold, args); c != "" {
		conditions = append(conditions, c)
	}
	if len(conditions) == 1 {
		// Nothing to match against; an unconstrained scan of every
		// fallback instrument is never the right answer.
		return nil, nil
	}

	query := instrumentSelect + instrumentFrom + `
	WHERE ` + strings.Join(conditions, " AND ")

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fallback instruments: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

// rowScanner is satisfied by pgx.Rows; declared locally so scanning is
// testable without a live connection.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanInstrumentRows(rows rowScanner) ([]models.InstrumentRow, error) {
	var out []models.InstrumentRow
	for rows.Next() {
		var (
			row   models.InstrumentRow
			value decimal.NullDecimal
		)
		if err := rows.Scan(
			&row.ID,
			&row.SerialNumber,
			&row.YearEstimate,
			&row.Description,
			&row.SignificanceLevel,
			&row.SignificanceNotes,
			&value,
			&row.ConditionRating,
			&row.ModelName,
			&row.ManufacturerName,
			&row.ProductLineName,
			&row.ModelYear,
			&row.ModelLinked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan instrument row: %w", err)
		}
		if value.Valid {
			v := value.Decimal
			row.CurrentEstimatedValue = &v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instrument rows: %w", err)
	}
	return out, nil
}
