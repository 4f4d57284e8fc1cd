package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/littlemaker/configurador/internal/users"
)

// UserRepository persists users in the users table.
type UserRepository struct {
	db *sql.DB
}

var _ users.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(s userScanner) (users.User, error) {
	var (
		u         users.User
		role      string
		createdAt string
		lastLogin sql.NullString
	)
	if err := s.Scan(&u.Email, &role, &createdAt, &lastLogin); err != nil {
		return users.User{}, err
	}
	u.Role = users.Role(role)
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return users.User{}, err
	}
	if u.LastLogin, err = parseNullTime(lastLogin); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email, role, created_at, last_login FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []users.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) Get(ctx context.Context, email string) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT email, role, created_at, last_login FROM users WHERE email = ?
	`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrUserNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u users.User) (users.User, error) {
	if !u.Role.Valid() {
		return users.User{}, users.ErrInvalidRole
	}
	var lastLogin any
	if u.LastLogin != nil {
		lastLogin = FormatTime(*u.LastLogin)
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, role, created_at, last_login)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING
	`, u.Email, string(u.Role), FormatTime(u.CreatedAt), lastLogin)
	if err != nil {
		return users.User{}, fmt.Errorf("insert user: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return users.User{}, fmt.Errorf("insert user rows affected: %w", err)
	} else if n == 0 {
		return users.User{}, users.ErrUserExists
	}
	return u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, email string, role users.Role) error {
	if !role.Valid() {
		return users.ErrInvalidRole
	}
	return r.exec(ctx, `UPDATE users SET role = ? WHERE email = ?`, string(role), email)
}

func (r *UserRepository) TouchLogin(ctx context.Context, email string, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login = ? WHERE email = ?`, FormatTime(at), email)
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if n == 0 {
		return users.ErrUserNotFound
	}
	return nil
}
