package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aldeenj/veilflow/internal/model"
)

// statsDateLayout is how calendar dates are stored for rollover checks.
const statsDateLayout = "2006-01-02"

// GetStats returns the print statistics, applying the day rollover first:
// if the stored last print date isn't today, today's count is zeroed and
// persisted. Viewing stats on a new day therefore shows zero before any
// print happens.
func GetStats(ctx context.Context, db *sql.DB) (*model.PrintStats, error) {
	return getStatsAt(ctx, db, time.Now())
}

// RecordPrint adds count to both counters, rolling today's count over to
// zero first when the calendar date changed.
func RecordPrint(ctx context.Context, db *sql.DB, count int64) error {
	return recordPrintAt(ctx, db, count, time.Now())
}

func getStatsAt(ctx context.Context, db *sql.DB, now time.Time) (*model.PrintStats, error) {
	today := now.Format(statsDateLayout)

	// Rollover is a single conditional update, so concurrent readers can't
	// double-apply it.
	_, err := db.ExecContext(ctx,
		`UPDATE stats SET today_prints = 0, last_print_date = ?
		 WHERE id = 1 AND last_print_date <> ?`,
		today, today,
	)
	if err != nil {
		return nil, fmt.Errorf("rolling over stats: %w", err)
	}

	stats := &model.PrintStats{}
	err = db.QueryRowContext(ctx,
		`SELECT total_prints, today_prints, last_print_date FROM stats WHERE id = 1`,
	).Scan(&stats.TotalPrints, &stats.TodayPrints, &stats.LastPrintDate)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	return stats, nil
}

func recordPrintAt(ctx context.Context, db *sql.DB, count int64, now time.Time) error {
	today := now.Format(statsDateLayout)

	_, err := db.ExecContext(ctx,
		`UPDATE stats SET
		     total_prints    = total_prints + ?,
		     today_prints    = CASE WHEN last_print_date = ? THEN today_prints ELSE 0 END + ?,
		     last_print_date = ?
		 WHERE id = 1`,
		count, today, count, today,
	)
	if err != nil {
		return fmt.Errorf("recording prints: %w", err)
	}
	return nil
}

// setStats overwrites the stats row, used by import.
func setStats(ctx context.Context, tx *sql.Tx, stats model.PrintStats) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE stats SET total_prints = ?, today_prints = ?, last_print_date = ? WHERE id = 1`,
		stats.TotalPrints, stats.TodayPrints, stats.LastPrintDate,
	)
	if err != nil {
		return fmt.Errorf("storing stats: %w", err)
	}
	return nil
}
