package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// NextSequence atomically increments and returns the counter for the given
// category and year. Counters start at 0, so the first issued value is 1.
// The increment is a single upsert, so two callers can never observe the
// same value, even from separate connections.
func NextSequence(ctx context.Context, db *sql.DB, category string, year int) (int64, error) {
	var counter int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO sequences (category, year, counter) VALUES (?, ?, 1)
		 ON CONFLICT (category, year) DO UPDATE SET counter = counter + 1
		 RETURNING counter`,
		category, year,
	).Scan(&counter)
	if err != nil {
		return 0, fmt.Errorf("incrementing sequence %s/%d: %w", category, year, err)
	}
	return counter, nil
}

// GetSequences returns all counters keyed as "<category>_<year>".
func GetSequences(ctx context.Context, db *sql.DB) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category, year, counter FROM sequences`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sequences: %w", err)
	}
	defer rows.Close()

	sequences := make(map[string]int64)
	for rows.Next() {
		var category string
		var year int
		var counter int64
		if err := rows.Scan(&category, &year, &counter); err != nil {
			return nil, fmt.Errorf("scanning sequence: %w", err)
		}
		sequences[sequenceKey(category, year)] = counter
	}
	return sequences, rows.Err()
}

// sequenceKey formats the exported map key for a counter.
func sequenceKey(category string, year int) string {
	return fmt.Sprintf("%s_%d", category, year)
}

// parseSequenceKey splits an exported "<category>_<year>" key.
func parseSequenceKey(key string) (category string, year int, err error) {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 || idx == len(key)-1 {
		return "", 0, fmt.Errorf("malformed sequence key %q", key)
	}
	year, err = strconv.Atoi(key[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed sequence key %q: %w", key, err)
	}
	return key[:idx], year, nil
}
