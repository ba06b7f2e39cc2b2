package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Registry entities are owned by the ingestion side of the registry; this
// service only reads them.

// Manufacturer is a guitar maker (e.g. Gibson, Fender).
type Manufacturer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Country     *string   `json:"country,omitempty"`
	FoundedYear *int      `json:"founded_year,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

// ProductLine is an optional grouping layer between a manufacturer and its
// models (e.g. "Les Paul" above "Les Paul Standard").
type ProductLine struct {
	ID             uuid.UUID `json:"id"`
	ManufacturerID uuid.UUID `json:"manufacturer_id"`
	Name           string    `json:"name"`
	IntroducedYear *int      `json:"introduced_year,omitempty"`
}

// Model is a catalog model. Identity is (manufacturer, lower(name), year);
// year is required because the same name reappears across production years.
type Model struct {
	ID             uuid.UUID  `json:"id"`
	ManufacturerID uuid.UUID  `json:"manufacturer_id"`
	ProductLineID  *uuid.UUID `json:"product_line_id,omitempty"`
	Name           string     `json:"name"`
	Year           int        `json:"year"`
	ProductionType *string    `json:"production_type,omitempty"`
	Description    *string    `json:"description,omitempty"`
}

// IndividualGuitar is a physical instrument. It is identified either through
// a model_id link or through the free-text fallback fields recorded before a
// Model row exists; it is never fully anonymous.
type IndividualGuitar struct {
	ID                      uuid.UUID        `json:"id"`
	ModelID                 *uuid.UUID       `json:"model_id,omitempty"`
	SerialNumber            *string          `json:"serial_number,omitempty"`
	ManufacturerNameFallback *string         `json:"manufacturer_name_fallback,omitempty"`
	ModelNameFallback       *string          `json:"model_name_fallback,omitempty"`
	YearEstimate            *string          `json:"year_estimate,omitempty"`
	Description             *string          `json:"description,omitempty"`
	SignificanceLevel       *string          `json:"significance_level,omitempty"`
	SignificanceNotes       *string          `json:"significance_notes,omitempty"`
	CurrentEstimatedValue   *decimal.Decimal `json:"current_estimated_value,omitempty"`
	ConditionRating         *int             `json:"condition_rating,omitempty"`
}

// Significance levels, most significant first.
const (
	SignificanceHistoric = "historic"
	SignificanceRare     = "rare"
	SignificanceNotable  = "notable"
	SignificanceCustom   = "custom"
)

// SignificanceRank orders significance levels for result ranking. Lower is
// more significant; unknown or unset levels sort last.
func SignificanceRank(level *string) int {
	if level == nil {
		return 4
	}
	switch *level {
	case SignificanceHistoric:
		return 0
	case SignificanceRare:
		return 1
	case SignificanceNotable:
		return 2
	case SignificanceCustom:
		return 3
	default:
		return 4
	}
}
