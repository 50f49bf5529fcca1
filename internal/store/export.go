package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aldeenj/veilflow/internal/model"
)

// Snapshot is the aggregate export format: a single JSON document holding
// every persisted record kind. On import, a nil top-level field means
// "leave that kind untouched".
type Snapshot struct {
	Products   *[]model.Product  `json:"products,omitempty"`
	Settings   *model.Settings   `json:"settings,omitempty"`
	Sequences  *map[string]int64 `json:"sequences,omitempty"`
	Stats      *model.PrintStats `json:"stats,omitempty"`
	Logo       *LogoRecord       `json:"logo,omitempty"`
	ExportDate time.Time         `json:"exportDate"`
}

// LogoRecord carries the shop logo inside a snapshot. The image bytes are
// base64 in the JSON form.
type LogoRecord struct {
	Image []byte `json:"image"`
	MIME  string `json:"mime"`
}

// ParseError means an import payload was not well-formed or lacked the
// expected shape. The store is left unchanged when one is returned.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing snapshot: %v", e.err) }
func (e *ParseError) Unwrap() error { return e.err }

// Export builds a full snapshot of the store.
func Export(ctx context.Context, db *sql.DB) (*Snapshot, error) {
	products, err := ListProducts(ctx, db)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}

	settings, err := GetSettings(ctx, db)
	if err != nil {
		return nil, err
	}

	sequences, err := GetSequences(ctx, db)
	if err != nil {
		return nil, err
	}

	stats, err := GetStats(ctx, db)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Products:   &products,
		Settings:   &settings,
		Sequences:  &sequences,
		Stats:      stats,
		ExportDate: time.Now().UTC(),
	}

	image, mime, err := GetLogo(ctx, db)
	if err != nil {
		return nil, err
	}
	if image != nil {
		snap.Logo = &LogoRecord{Image: image, MIME: mime}
	}

	return snap, nil
}

// Import parses a snapshot and replaces each present record kind wholesale.
// The whole import runs in one transaction: either every present key is
// applied or nothing is.
func Import(ctx context.Context, db *sql.DB, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &ParseError{err: err}
	}

	// Validate sequence keys and counters up front so a malformed snapshot
	// is rejected before anything is written.
	type seqRow struct {
		category string
		year     int
		counter  int64
	}
	var seqRows []seqRow
	if snap.Sequences != nil {
		for key, counter := range *snap.Sequences {
			category, year, err := parseSequenceKey(key)
			if err != nil {
				return &ParseError{err: err}
			}
			if counter < 0 {
				return &ParseError{err: fmt.Errorf("negative counter %d for sequence %q", counter, key)}
			}
			seqRows = append(seqRows, seqRow{category, year, counter})
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}
	defer tx.Rollback()

	if snap.Products != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("replacing products: %w", err)
		}
		for _, p := range *snap.Products {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO products (id, name, price, category, fabric, sku, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Name, p.Price.String(), p.Category, p.Fabric, p.SKU, p.CreatedAt, p.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("replacing products: %w", err)
			}
		}
	}

	if snap.Settings != nil {
		raw, err := json.Marshal(snap.Settings)
		if err != nil {
			return fmt.Errorf("replacing settings: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			settingsKey, string(raw),
		)
		if err != nil {
			return fmt.Errorf("replacing settings: %w", err)
		}
	}

	if snap.Sequences != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sequences`); err != nil {
			return fmt.Errorf("replacing sequences: %w", err)
		}
		for _, row := range seqRows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sequences (category, year, counter) VALUES (?, ?, ?)`,
				row.category, row.year, row.counter,
			)
			if err != nil {
				return fmt.Errorf("replacing sequences: %w", err)
			}
		}
	}

	if snap.Stats != nil {
		if err := setStats(ctx, tx, *snap.Stats); err != nil {
			return err
		}
	}

	if snap.Logo != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM logo`); err != nil {
			return fmt.Errorf("replacing logo: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO logo (id, image, mime) VALUES (1, ?, ?)`,
			snap.Logo.Image, snap.Logo.MIME,
		)
		if err != nil {
			return fmt.Errorf("replacing logo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}
	return nil
}

// Reset wipes all labeling data (products, sequences, settings, logo,
// stats) in one transaction. User accounts are untouched.
func Reset(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM products`,
		`DELETE FROM sequences`,
		`DELETE FROM settings WHERE key = 'settings'`,
		`DELETE FROM logo`,
		`UPDATE stats SET total_prints = 0, today_prints = 0, last_print_date = '' WHERE id = 1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	return nil
}
