package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/proposal"
)

// SettingsDocumentID is the config row holding the tenant settings.
const SettingsDocumentID = "general"

// SettingsRepository keeps the tenant settings document in the config table.
type SettingsRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ proposal.SettingsSource = (*SettingsRepository)(nil)

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db, now: time.Now}
}

// Load returns the stored document merged over the defaults: variables keys
// absent from the document keep their default, explicit zeros are kept. A
// missing document yields the defaults.
func (r *SettingsRepository) Load(ctx context.Context) (catalog.Settings, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data_json FROM config WHERE id = ?`, SettingsDocumentID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Defaults(), nil
	}
	if err != nil {
		return catalog.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	s := catalog.Settings{Variables: catalog.DefaultVariables()}
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return catalog.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s.Normalize(), nil
}

// Save replaces the settings document.
func (r *SettingsRepository) Save(ctx context.Context, s catalog.Settings) (catalog.Settings, error) {
	s = s.Normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return catalog.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO config (id, data_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data_json = excluded.data_json, updated_at = excluded.updated_at
	`, SettingsDocumentID, string(data), FormatTime(r.now())); err != nil {
		return catalog.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return s, nil
}

// Exists reports whether a settings document has been stored.
func (r *SettingsRepository) Exists(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM config WHERE id = ?)`, SettingsDocumentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check settings existence: %w", err)
	}
	return exists, nil
}
