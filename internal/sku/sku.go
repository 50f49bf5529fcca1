// Package sku composes product codes from category, year, sequence number
// and fabric. Uniqueness comes from the store's per-category-per-year
// counters; this package only formats and orchestrates.
package sku

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aldeenj/veilflow/internal/store"
)

// Generate issues the next SKU for a category/fabric pair. The embedded
// year is taken from the clock at generation time, and the sequence number
// is persisted before the code is returned.
func Generate(ctx context.Context, db *sql.DB, category, fabric string) (string, error) {
	return generateAt(ctx, db, category, fabric, time.Now())
}

func generateAt(ctx context.Context, db *sql.DB, category, fabric string, now time.Time) (string, error) {
	sequence, err := store.NextSequence(ctx, db, category, now.Year())
	if err != nil {
		return "", fmt.Errorf("generating sku: %w", err)
	}
	return Format(category, now.Year(), sequence, fabric), nil
}

// Format renders a SKU as <category><yy><seq%05d>-<fabric>, e.g.
// "C2500001-S". Sequence values beyond 99999 widen the field rather than
// truncate, which keeps codes unique at the cost of fixed width.
func Format(category string, year int, sequence int64, fabric string) string {
	return fmt.Sprintf("%s%02d%05d-%s", category, year%100, sequence, fabric)
}
