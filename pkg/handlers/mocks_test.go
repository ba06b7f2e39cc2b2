package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/search"
	"github.com/fretbase/guitar-registry/pkg/services"
)

type mockModelSearchService struct {
	results []models.ModelResult
	meta    search.Meta
	err     error

	lastParams services.ModelSearchParams
}

func (m *mockModelSearchService) SearchModels(ctx context.Context, params services.ModelSearchParams) ([]models.ModelResult, search.Meta, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, search.Meta{}, m.err
	}
	return m.results, m.meta, nil
}

func (m *mockModelSearchService) CandidateModelIDs(ctx context.Context, modelName, manufacturerName string) ([]uuid.UUID, error) {
	return nil, nil
}

type mockInstrumentSearchService struct {
	results []models.InstrumentResult
	meta    search.Meta
	err     error

	lastParams services.InstrumentSearchParams
}

func (m *mockInstrumentSearchService) SearchInstruments(ctx context.Context, params services.InstrumentSearchParams) ([]models.InstrumentResult, search.Meta, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, search.Meta{}, m.err
	}
	return m.results, m.meta, nil
}
