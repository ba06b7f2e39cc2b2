package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fretbase/guitar-registry/pkg/models"
	"github.com/fretbase/guitar-registry/pkg/repositories"
	"github.com/fretbase/guitar-registry/pkg/search"
)

// mockModelRepo is a configurable ModelSearchRepository for service tests.
type mockModelRepo struct {
	count   int
	results []models.ModelResult
	ids     []uuid.UUID
	err     error

	lastQuery  repositories.ModelQuery
	lastLimit  int
	lastOffset int
	listCalls  int
}

func (m *mockModelRepo) Count(ctx context.Context, q repositories.ModelQuery) (int, error) {
	m.lastQuery = q
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockModelRepo) List(ctx context.Context, q repositories.ModelQuery, limit, offset int) ([]models.ModelResult, error) {
	m.lastQuery = q
	m.lastLimit = limit
	m.lastOffset = offset
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	lo := offset
	if lo > len(m.results) {
		lo = len(m.results)
	}
	hi := lo + limit
	if hi > len(m.results) {
		hi = len(m.results)
	}
	return m.results[lo:hi], nil
}

func (m *mockModelRepo) CandidateIDs(ctx context.Context, q repositories.ModelQuery) ([]uuid.UUID, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	return m.ids, nil
}

// mockInstrumentRepo is a configurable InstrumentSearchRepository.
type mockInstrumentRepo struct {
	serialCount  int
	serialRows   []models.InstrumentRow
	linkedRows   []models.InstrumentRow
	fallbackRows []models.InstrumentRow
	err          error

	lastSerial     string
	lastNormalized string
	lastModelIDs   []uuid.UUID
	lastFallback   repositories.FallbackQuery
}

func (m *mockInstrumentRepo) CountBySerial(ctx context.Context, serial, normalized string) (int, error) {
	m.lastSerial = serial
	m.lastNormalized = normalized
	if m.err != nil {
		return 0, m.err
	}
	return m.serialCount, nil
}

func (m *mockInstrumentRepo) ListBySerial(ctx context.Context, serial, normalized string, limit, offset int) ([]models.InstrumentRow, error) {
	m.lastSerial = serial
	m.lastNormalized = normalized
	if m.err != nil {
		return nil, m.err
	}
	return m.serialRows, nil
}

func (m *mockInstrumentRepo) ListByModelIDs(ctx context.Context, ids []uuid.UUID) ([]models.InstrumentRow, error) {
	m.lastModelIDs = ids
	if m.err != nil {
		return nil, m.err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return m.linkedRows, nil
}

func (m *mockInstrumentRepo) ListFallbackMatches(ctx context.Context, q repositories.FallbackQuery) ([]models.InstrumentRow, error) {
	m.lastFallback = q
	if m.err != nil {
		return nil, m.err
	}
	return m.fallbackRows, nil
}

// mockModelSearch stands in for the model resolver in instrument tests.
type mockModelSearch struct {
	ids []uuid.UUID
	err error

	lastModelName        string
	lastManufacturerName string
}

func (m *mockModelSearch) SearchModels(ctx context.Context, params ModelSearchParams) ([]models.ModelResult, search.Meta, error) {
	panic("not used in instrument tests")
}

func (m *mockModelSearch) CandidateModelIDs(ctx context.Context, modelName, manufacturerName string) ([]uuid.UUID, error) {
	m.lastModelName = modelName
	m.lastManufacturerName = manufacturerName
	if m.err != nil {
		return nil, m.err
	}
	return m.ids, nil
}
