package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/aldeenj/veilflow/internal/model"
)

// settingsKey is the settings row in the key-value table.
const settingsKey = "settings"

// GetSettings returns the stored settings record. A missing row yields the
// zero record, which the resolver fills entirely from defaults.
func GetSettings(ctx context.Context, db *sql.DB) (model.Settings, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingsKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.Settings{}, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("getting settings: %w", err)
	}

	var s model.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// UpdateSettings merges the given fields into the stored record and
// persists the result. Absent (nil/empty) fields keep their stored values.
func UpdateSettings(ctx context.Context, db *sql.DB, patch model.Settings) (model.Settings, error) {
	current, err := GetSettings(ctx, db)
	if err != nil {
		return model.Settings{}, err
	}

	merged := mergeSettings(current, patch)
	if err := putSettings(ctx, db, merged); err != nil {
		return model.Settings{}, err
	}
	return merged, nil
}

// ReplaceSettings overwrites the stored record wholesale.
func ReplaceSettings(ctx context.Context, db *sql.DB, s model.Settings) error {
	return putSettings(ctx, db, s)
}

// ResetSettings drops the stored record and the shop logo, so that reads
// resolve to pure defaults again.
func ResetSettings(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, settingsKey); err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM logo`); err != nil {
		return fmt.Errorf("resetting logo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	return nil
}

func putSettings(ctx context.Context, db *sql.DB, s model.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing settings: %w", err)
	}
	return nil
}

func mergeSettings(current, patch model.Settings) model.Settings {
	if patch.LabelWidth != nil {
		current.LabelWidth = patch.LabelWidth
	}
	if patch.LabelHeight != nil {
		current.LabelHeight = patch.LabelHeight
	}
	if patch.PaperSize != "" {
		current.PaperSize = patch.PaperSize
	}
	if patch.PaperType != "" {
		current.PaperType = patch.PaperType
	}
	if patch.MarginTop != nil {
		current.MarginTop = patch.MarginTop
	}
	if patch.MarginRight != nil {
		current.MarginRight = patch.MarginRight
	}
	if patch.MarginBottom != nil {
		current.MarginBottom = patch.MarginBottom
	}
	if patch.MarginLeft != nil {
		current.MarginLeft = patch.MarginLeft
	}
	if patch.FontSize != nil {
		current.FontSize = patch.FontSize
	}
	if patch.LabelTemplate != "" {
		current.LabelTemplate = patch.LabelTemplate
	}
	if patch.ShopName != "" {
		current.ShopName = patch.ShopName
	}
	if patch.ShowLogoOnLabel != nil {
		current.ShowLogoOnLabel = patch.ShowLogoOnLabel
	}
	return current
}

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}
