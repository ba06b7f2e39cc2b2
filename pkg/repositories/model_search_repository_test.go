//go:build integration

package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretbase/guitar-registry/pkg/search"
	"github.com/fretbase/guitar-registry/pkg/testhelpers"
)

// registryTestContext holds shared dependencies plus the ids of the seeded
// registry rows.
type registryTestContext struct {
	t    *testing.T
	db   *testhelpers.TestDB
	repo ModelSearchRepository

	gibson, fender       uuid.UUID
	lesPaulLine          uuid.UUID
	lesPaul59, lesPaul60 uuid.UUID
	strat54              uuid.UUID
}

func setupRegistryTest(t *testing.T) *registryTestContext {
	testDB := testhelpers.GetTestDB(t)
	testhelpers.TruncateRegistry(t, testDB.DB)

	tc := &registryTestContext{
		t:    t,
		db:   testDB,
		repo: NewModelSearchRepository(testDB.DB),

		gibson:      uuid.New(),
		fender:      uuid.New(),
		lesPaulLine: uuid.New(),
		lesPaul59:   uuid.New(),
		lesPaul60:   uuid.New(),
		strat54:     uuid.New(),
	}
	tc.seed()
	return tc
}

func (tc *registryTestContext) seed() {
	tc.t.Helper()
	ctx := context.Background()

	tc.exec(ctx, `INSERT INTO manufacturers (id, name, country, status) VALUES
		($1, 'Gibson', 'USA', 'active'),
		($2, 'Fender', 'USA', 'active')`,
		tc.gibson, tc.fender)

	tc.exec(ctx, `INSERT INTO product_lines (id, manufacturer_id, name, introduced_year)
		VALUES ($1, $2, 'Les Paul', 1952)`,
		tc.lesPaulLine, tc.gibson)

	tc.exec(ctx, `INSERT INTO models (id, manufacturer_id, product_line_id, name, year, description) VALUES
		($1, $2, $3, 'Les Paul Standard', 1959, 'Sunburst, PAF humbuckers'),
		($4, $2, $3, 'Les Paul Standard', 1960, 'Slim taper neck'),
		($5, $6, NULL, 'Stratocaster', 1954, 'First production year')`,
		tc.lesPaul59, tc.gibson, tc.lesPaulLine,
		tc.lesPaul60,
		tc.strat54, tc.fender)
}

func (tc *registryTestContext) exec(ctx context.Context, sql string, args ...any) {
	tc.t.Helper()
	if _, err := tc.db.DB.Exec(ctx, sql, args...); err != nil {
		tc.t.Fatalf("failed to seed registry: %v", err)
	}
}

func modelQuery(text string) ModelQuery {
	q := search.ParseQuery(text, nil)
	return ModelQuery{
		Terms:                 q.Terms,
		Year:                  q.Year,
		ExactName:             text,
		ModelThreshold:        0.3,
		ManufacturerThreshold: 0.25,
	}
}

func TestModelSearchRepository_ExactMatch(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	results, err := tc.repo.List(ctx, modelQuery("Les Paul Standard"), 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Equal(t, "Les Paul Standard", r.ModelName)
		assert.Equal(t, "Gibson", r.ManufacturerName)
		require.NotNil(t, r.ProductLineName)
		assert.Equal(t, "Les Paul", *r.ProductLineName)
	}
	// More recent year first among equal-rank matches.
	assert.Equal(t, 1960, results[0].Year)
	assert.Equal(t, 1959, results[1].Year)
}

func TestModelSearchRepository_FuzzyModelName(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	// Misspelled but well above the 0.3 similarity threshold.
	results, err := tc.repo.List(ctx, modelQuery("stratocastor"), 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Stratocaster", results[0].ModelName)
	assert.Equal(t, "Fender", results[0].ManufacturerName)
	assert.Nil(t, results[0].ProductLineName)
}

func TestModelSearchRepository_ProductLineNameMatches(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	// "Les Paul" is the product line name; both Standards match through it.
	count, err := tc.repo.Count(ctx, modelQuery("les paul"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestModelSearchRepository_EmbeddedYearFilters(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	results, err := tc.repo.List(ctx, modelQuery("Les Paul Standard 1959"), 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1959, results[0].Year)
}

func TestModelSearchRepository_YearFilterExcludesOtherYears(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	year := 1955
	q := modelQuery("Les Paul Standard")
	q.Year = &year

	count, err := tc.repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestModelSearchRepository_ManufacturerFilter(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	q := modelQuery("standard")
	q.ManufacturerTerms = []string{"gibson"}
	count, err := tc.repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	q.ManufacturerTerms = []string{"fender"}
	count, err = tc.repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestModelSearchRepository_ShortTermFallsBackToSubstring(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	// Two-character terms cannot use trigram similarity; ILIKE matching
	// still finds the Stratocaster.
	count, err := tc.repo.Count(ctx, modelQuery("st"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

func TestModelSearchRepository_NoMatches(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	count, err := tc.repo.Count(ctx, modelQuery("flying banjo deluxe"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestModelSearchRepository_CandidateIDs(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	ids, err := tc.repo.CandidateIDs(ctx, modelQuery("les paul standard"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{tc.lesPaul59, tc.lesPaul60}, ids)
}

func TestModelSearchRepository_Pagination(t *testing.T) {
	tc := setupRegistryTest(t)
	ctx := context.Background()

	q := modelQuery("Les Paul Standard")
	page1, err := tc.repo.List(ctx, q, 1, 0)
	require.NoError(t, err)
	require.Len(t, page1, 1)

	page2, err := tc.repo.List(ctx, q, 1, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)

	beyond, err := tc.repo.List(ctx, q, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
