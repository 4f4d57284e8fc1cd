package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/db"
	"github.com/littlemaker/configurador/internal/migrations"
	"github.com/littlemaker/configurador/internal/pricing"
	"github.com/littlemaker/configurador/internal/proposal"
	"github.com/littlemaker/configurador/internal/selection"
	"github.com/littlemaker/configurador/internal/users"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestProposalRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository(openTestDB(t))

	infraTotal := 90000.0
	created := time.Date(2026, 4, 1, 12, 30, 0, 123, time.UTC)
	st := proposal.NewState(created)
	st.Client.SchoolName = "Escola Sol"
	st.Selection = selection.Of("maker_minima", "maker_ferr_red_18")
	st.Commercial = pricing.Commercial{
		TotalStudents:    120,
		ContractDuration: pricing.ThreeYears,
		Overrides:        pricing.Overrides{InfraTotal: &infraTotal},
	}
	p := proposal.Proposal{
		ID: "p-1", OwnerID: "u-1", OwnerEmail: "ana@escola.com", SchoolName: "Escola Sol",
		State: st, CreatedAt: created, UpdatedAt: created,
	}

	if _, err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OwnerEmail != "ana@escola.com" || !got.CreatedAt.Equal(created) {
		t.Fatalf("got = %+v", got)
	}
	if !got.State.Selection.Equal(st.Selection) {
		t.Fatalf("selection = %v", got.State.Selection.IDs())
	}
	if got.State.Commercial.Overrides.InfraTotal == nil || *got.State.Commercial.Overrides.InfraTotal != 90000 {
		t.Fatalf("overrides = %+v", got.State.Commercial.Overrides)
	}
	if got.State.Commercial.Overrides.MaterialBonus != nil {
		t.Fatalf("unset override decoded as %v", *got.State.Commercial.Overrides.MaterialBonus)
	}

	p.SchoolName = "Escola Lua"
	p.UpdatedAt = created.Add(time.Hour)
	if _, err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetByID(ctx, "p-1")
	if got.SchoolName != "Escola Lua" || !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("after update = %+v", got)
	}

	if err := repo.Delete(ctx, "p-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "p-1"); !errors.Is(err, proposal.ErrProposalNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	if err := repo.Delete(ctx, "p-1"); !errors.Is(err, proposal.ErrProposalNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if _, err := repo.Update(ctx, p); !errors.Is(err, proposal.ErrProposalNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
}

func TestProposalRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository(openTestDB(t))

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		ts := base.Add(time.Duration(i) * 1500 * time.Millisecond)
		p := proposal.Proposal{ID: id, OwnerID: "u", State: proposal.NewState(ts), CreatedAt: ts, UpdatedAt: ts}
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[2].ID != "a" {
		t.Fatalf("order = %v", []string{list[0].ID, list[1].ID, list[2].ID})
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	if _, err := repo.Get(ctx, "ana@escola.com"); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("get missing err = %v", err)
	}
	if _, err := repo.Create(ctx, users.User{Email: "ana@escola.com", Role: users.RoleConsultant, CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, users.User{Email: "ana@escola.com", Role: users.RoleConsultant, CreatedAt: now}); !errors.Is(err, users.ErrUserExists) {
		t.Fatalf("duplicate create err = %v", err)
	}
	if err := repo.UpdateRole(ctx, "ana@escola.com", "owner"); !errors.Is(err, users.ErrInvalidRole) {
		t.Fatalf("invalid role err = %v", err)
	}
	if err := repo.UpdateRole(ctx, "ana@escola.com", users.RoleMaster); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if err := repo.TouchLogin(ctx, "ana@escola.com", now.Add(time.Hour)); err != nil {
		t.Fatalf("touch login: %v", err)
	}
	if err := repo.TouchLogin(ctx, "nobody@escola.com", now); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("touch missing err = %v", err)
	}

	u, err := repo.Get(ctx, "ana@escola.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Role != users.RoleMaster || u.LastLogin == nil || !u.LastLogin.Equal(now.Add(time.Hour)) {
		t.Fatalf("user = %+v", u)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %+v, err %v", list, err)
	}
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t))

	s, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(s.Items) != len(catalog.DefaultItems()) || s.Variables != catalog.DefaultVariables() {
		t.Fatalf("defaults = %+v", s.Variables)
	}
	if ok, _ := repo.Exists(ctx); ok {
		t.Fatalf("exists = true before save")
	}

	s.Variables.MaterialBonus = 0.3
	s.Regions = s.Regions[:2]
	if _, err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Variables.MaterialBonus = 0.2
	if _, err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save twice: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Variables.MaterialBonus != 0.2 || len(got.Regions) != 2 {
		t.Fatalf("loaded = %+v regions=%d", got.Variables, len(got.Regions))
	}
	if ok, _ := repo.Exists(ctx); !ok {
		t.Fatalf("exists = false after save")
	}
}

func TestSettingsRepository_ZeroBonusFractionsSurvive(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t))

	s := catalog.Defaults()
	s.Variables.MaterialBonus = 0
	s.Variables.InfraBonus = 0
	if _, err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Variables.MaterialBonus != 0 || got.Variables.InfraBonus != 0 {
		t.Fatalf("variables = %+v, want zero bonuses kept", got.Variables)
	}
	if got.Variables.MarketplaceMargin != catalog.DefaultMarketplaceMargin {
		t.Fatalf("MarketplaceMargin = %v", got.Variables.MarketplaceMargin)
	}
}

func TestSettingsRepository_MissingVariablesUseDefaults(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewSettingsRepository(database)

	if _, err := database.Exec(`
		INSERT INTO config (id, data_json, updated_at) VALUES (?, ?, ?)
	`, SettingsDocumentID, `{"variables":{"infraBonus":0}}`, FormatTime(time.Now())); err != nil {
		t.Fatalf("insert settings: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := catalog.DefaultVariables()
	want.InfraBonus = 0
	if got.Variables != want {
		t.Fatalf("variables = %+v, want %+v", got.Variables, want)
	}
	if len(got.Items) != len(catalog.DefaultItems()) {
		t.Fatalf("items = %d, want defaults", len(got.Items))
	}
}
