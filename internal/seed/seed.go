package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/store"
	"github.com/littlemaker/configurador/internal/users"
)

// Config contains the values required by startup seed.
type Config struct {
	SuperAdmins []string
	Now         func() time.Time
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(ctx, tx, now(), &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, email := range cfg.SuperAdmins {
		if err := ensureSuperAdmin(ctx, tx, users.NormalizeEmail(email), now(), &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, now time.Time, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM config WHERE id = ?)`, store.SettingsDocumentID).Scan(&exists); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if exists {
		return nil
	}

	data, err := json.Marshal(catalog.Defaults())
	if err != nil {
		return fmt.Errorf("encode default settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO config (id, data_json, updated_at)
		VALUES (?, ?, ?)
	`, store.SettingsDocumentID, string(data), store.FormatTime(now)); err != nil {
		return fmt.Errorf("insert default settings: %w", err)
	}
	stats.Inserts++
	return nil
}

// ensureSuperAdmin registers the address as master, promoting it when it was
// stored as a consultant.
func ensureSuperAdmin(ctx context.Context, tx *sql.Tx, email string, now time.Time, stats *Stats) error {
	if email == "" {
		return nil
	}

	var role sql.NullString
	err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE email = ?`, email).Scan(&role)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (email, role, created_at)
			VALUES (?, ?, ?)
		`, email, string(users.RoleMaster), store.FormatTime(now)); err != nil {
			return fmt.Errorf("insert super admin %s: %w", email, err)
		}
		stats.Inserts++
	case err != nil:
		return fmt.Errorf("check super admin existence: %w", err)
	case role.String != string(users.RoleMaster):
		if _, err := tx.ExecContext(ctx, `UPDATE users SET role = ? WHERE email = ?`, string(users.RoleMaster), email); err != nil {
			return fmt.Errorf("promote super admin %s: %w", email, err)
		}
		stats.Updates++
	}
	return nil
}
