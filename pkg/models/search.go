package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModelResult is one row of a model search response.
type ModelResult struct {
	ID               string  `json:"id"`
	ModelName        string  `json:"model_name"`
	Year             int     `json:"year"`
	ManufacturerName string  `json:"manufacturer_name"`
	ProductLineName  *string `json:"product_line_name"`
	Description      *string `json:"description"`
}

// InstrumentRow is an instrument candidate as read from the store, carrying
// the joined display fields plus the typed columns the ranking pass needs.
// ModelLinked records which retrieval path produced the row: the model join
// or the fallback text fields.
type InstrumentRow struct {
	ID                    uuid.UUID
	SerialNumber          *string
	YearEstimate          *string
	Description           *string
	SignificanceLevel     *string
	SignificanceNotes     *string
	CurrentEstimatedValue *decimal.Decimal
	ConditionRating       *int
	ModelName             *string
	ManufacturerName      *string
	ProductLineName       *string
	ModelYear             *int
	ModelLinked           bool
}

// InstrumentResult is one row of an instrument search response. The estimated
// value is serialized as a decimal string, matching the registry's public API.
type InstrumentResult struct {
	ID                    string  `json:"id"`
	SerialNumber          *string `json:"serial_number"`
	YearEstimate          *string `json:"year_estimate"`
	Description           *string `json:"description"`
	SignificanceLevel     *string `json:"significance_level"`
	SignificanceNotes     *string `json:"significance_notes"`
	CurrentEstimatedValue *string `json:"current_estimated_value"`
	ConditionRating       *int    `json:"condition_rating"`
	ModelName             *string `json:"model_name"`
	ManufacturerName      *string `json:"manufacturer_name"`
	ProductLineName       *string `json:"product_line_name"`
}

// ToResult converts a scanned row into its response shape.
func (r *InstrumentRow) ToResult() InstrumentResult {
	var value *string
	if r.CurrentEstimatedValue != nil {
		s := r.CurrentEstimatedValue.String()
		value = &s
	}
	return InstrumentResult{
		ID:                    r.ID.String(),
		SerialNumber:          r.SerialNumber,
		YearEstimate:          r.YearEstimate,
		Description:           r.Description,
		SignificanceLevel:     r.SignificanceLevel,
		SignificanceNotes:     r.SignificanceNotes,
		CurrentEstimatedValue: value,
		ConditionRating:       r.ConditionRating,
		ModelName:             r.ModelName,
		ManufacturerName:      r.ManufacturerName,
		ProductLineName:       r.ProductLineName,
	}
}
