package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetLogo stores the shop logo, replacing any previous one.
func SetLogo(ctx context.Context, db *sql.DB, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO logo (id, image, mime) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET image = excluded.image, mime = excluded.mime`,
		image, mime,
	)
	if err != nil {
		return fmt.Errorf("storing logo: %w", err)
	}
	return nil
}

// GetLogo returns the shop logo data and MIME type, or nil when none is set.
func GetLogo(ctx context.Context, db *sql.DB) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx, `SELECT image, mime FROM logo WHERE id = 1`).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting logo: %w", err)
	}
	return image, mime, nil
}

// HasLogo reports whether a shop logo is stored.
func HasLogo(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM logo`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking logo: %w", err)
	}
	return count > 0, nil
}

// DeleteLogo removes the shop logo.
func DeleteLogo(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DELETE FROM logo`)
	if err != nil {
		return fmt.Errorf("deleting logo: %w", err)
	}
	return nil
}
