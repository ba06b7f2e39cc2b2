// seed-demo-data loads a small demo registry: a handful of manufacturers,
// product lines, models, and individual guitars with serials, values, and
// significance levels. Intended for local development and manual testing of
// the search endpoints.
//
// Usage: go run ./scripts/seed-demo-data
//
// Database connection: Uses standard PG* environment variables
//
// Flags:
//
//	-wipe   Truncate the registry tables before seeding (default: false)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

func main() {
	wipe := flag.Bool("wipe", false, "Truncate registry tables before seeding")
	flag.Parse()

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if *wipe {
		if _, err := conn.Exec(ctx,
			"TRUNCATE individual_guitars, models, product_lines, manufacturers CASCADE"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to truncate registry tables: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Truncated registry tables")
	}

	if err := seed(ctx, conn); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed demo data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Demo registry seeded")
}

func seed(ctx context.Context, conn *pgx.Conn) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var gibson, fender, martin string
	if err := tx.QueryRow(ctx, `INSERT INTO manufacturers (name, country, founded_year, status)
		VALUES ('Gibson', 'USA', 1902, 'active') RETURNING id`).Scan(&gibson); err != nil {
		return fmt.Errorf("failed to insert Gibson: %w", err)
	}
	if err := tx.QueryRow(ctx, `INSERT INTO manufacturers (name, country, founded_year, status)
		VALUES ('Fender', 'USA', 1946, 'active') RETURNING id`).Scan(&fender); err != nil {
		return fmt.Errorf("failed to insert Fender: %w", err)
	}
	if err := tx.QueryRow(ctx, `INSERT INTO manufacturers (name, country, founded_year, status)
		VALUES ('Martin', 'USA', 1833, 'active') RETURNING id`).Scan(&martin); err != nil {
		return fmt.Errorf("failed to insert Martin: %w", err)
	}

	var lesPaulLine, stratLine string
	if err := tx.QueryRow(ctx, `INSERT INTO product_lines (manufacturer_id, name, introduced_year)
		VALUES ($1, 'Les Paul', 1952) RETURNING id`, gibson).Scan(&lesPaulLine); err != nil {
		return fmt.Errorf("failed to insert Les Paul line: %w", err)
	}
	if err := tx.QueryRow(ctx, `INSERT INTO product_lines (manufacturer_id, name, introduced_year)
		VALUES ($1, 'Stratocaster', 1954) RETURNING id`, fender).Scan(&stratLine); err != nil {
		return fmt.Errorf("failed to insert Stratocaster line: %w", err)
	}

	models := []struct {
		manufacturer string
		productLine  *string
		name         string
		year         int
		production   string
		description  string
	}{
		{gibson, &lesPaulLine, "Les Paul Standard", 1959, "mass", "Sunburst finish, PAF humbuckers"},
		{gibson, &lesPaulLine, "Les Paul Standard", 1960, "mass", "Slim taper neck profile"},
		{gibson, &lesPaulLine, "Les Paul Custom", 1957, "mass", "Three pickup Black Beauty"},
		{gibson, nil, "ES-335", 1958, "mass", "Semi-hollow thinline"},
		{fender, &stratLine, "Stratocaster", 1954, "mass", "First production year"},
		{fender, &stratLine, "Stratocaster", 1962, "mass", "Pre-CBS slab board"},
		{fender, nil, "Telecaster", 1952, "mass", "Blackguard"},
		{martin, nil, "D-28", 1941, "mass", "Herringbone dreadnought"},
	}

	modelIDs := make(map[string]string, len(models))
	for _, m := range models {
		var id string
		if err := tx.QueryRow(ctx, `INSERT INTO models
			(manufacturer_id, product_line_id, name, year, production_type, description)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			m.manufacturer, m.productLine, m.name, m.year, m.production, m.description).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert model %s %d: %w", m.name, m.year, err)
		}
		modelIDs[fmt.Sprintf("%s-%d", m.name, m.year)] = id
	}

	guitars := []struct {
		modelKey     string
		serial       string
		significance *string
		notes        *string
		value        *string
		condition    *int
		description  string
	}{
		{"Les Paul Standard-1959", "9-0824", ptr("historic"), ptr("Documented touring history"), ptr("495000.00"), ptrInt(8), "A well known burst"},
		{"Les Paul Standard-1960", "0-7342", ptr("rare"), nil, ptr("285000.00"), ptrInt(7), "Cherry sunburst"},
		{"Stratocaster-1954", "0072", ptr("historic"), ptr("First-year example"), ptr("165000.00"), ptrInt(6), "Two-tone sunburst"},
		{"Stratocaster-1962", "87123", nil, nil, ptr("38000.00"), ptrInt(8), "Fiesta red refinish"},
		{"Telecaster-1952", "1604", ptr("rare"), nil, ptr("72000.00"), ptrInt(7), "Butterscotch blackguard"},
		{"D-28-1941", "78586", ptr("historic"), ptr("Pre-war scalloped bracing"), ptr("125000.00"), ptrInt(6), "Herringbone trim"},
	}

	for _, g := range guitars {
		modelID := modelIDs[g.modelKey]
		if _, err := tx.Exec(ctx, `INSERT INTO individual_guitars
			(model_id, serial_number, significance_level, significance_notes, current_estimated_value, condition_rating, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			modelID, g.serial, g.significance, g.notes, g.value, g.condition, g.description); err != nil {
			return fmt.Errorf("failed to insert guitar %s: %w", g.serial, err)
		}
	}

	// Instruments captured before their models were cataloged; only the
	// fallback text fields identify them.
	fallbacks := []struct {
		manufacturer string
		model        string
		yearEstimate string
		serial       string
	}{
		{"Gibson", "Les Paul Junior", "circa 1956", "6-3311"},
		{"Gretsch", "6120 Chet Atkins", "late 1950s", "29488"},
	}

	for _, f := range fallbacks {
		if _, err := tx.Exec(ctx, `INSERT INTO individual_guitars
			(manufacturer_name_fallback, model_name_fallback, year_estimate, serial_number)
			VALUES ($1, $2, $3, $4)`,
			f.manufacturer, f.model, f.yearEstimate, f.serial); err != nil {
			return fmt.Errorf("failed to insert fallback guitar %s: %w", f.serial, err)
		}
	}

	return tx.Commit(ctx)
}

func ptr(s string) *string { return &s }
func ptrInt(i int) *int    { return &i }
