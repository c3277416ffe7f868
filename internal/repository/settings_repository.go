package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/abrarlaghari22/absrefer/internal/models"
)

// SettingsRepository is the key-value store for configurable platform
// parameters. Callers read it at decision time, never caching values.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the setting or nil when the key is absent.
func (r *SettingsRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.GetContext(ctx, &setting, `
		SELECT id, key, value, updated_at FROM settings WHERE key = $1
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings repository: get %s: %w", key, err)
	}
	return &setting, nil
}

// Set upserts a setting value.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("settings repository: set %s: %w", key, err)
	}
	return nil
}

// EnsureDefaults seeds the recognized keys that are not present yet.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context) error {
	defaults := map[string]string{
		models.SettingCommissionRate: "15",
		models.SettingMinWithdrawal:  "100",
		models.SettingDepositAmount:  "1000",
	}

	for key, value := range defaults {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value)
		if err != nil {
			return fmt.Errorf("settings repository: ensure default %s: %w", key, err)
		}
	}
	return nil
}
