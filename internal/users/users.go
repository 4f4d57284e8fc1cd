package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrProtectedUser = errors.New("super admin role cannot be changed")
	ErrInvalidRole   = errors.New("invalid role")
)

// Role is the access level of a user.
type Role string

const (
	RoleMaster     Role = "master"
	RoleConsultant Role = "consultant"
)

func (r Role) Valid() bool { return r == RoleMaster || r == RoleConsultant }

// User is a registered consultant or master.
type User struct {
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	SuperAdmin bool       `json:"superAdmin"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastLogin  *time.Time `json:"lastLogin"`
}

// IsMaster reports whether u may edit settings, overrides and other users.
func (u User) IsMaster() bool { return u.SuperAdmin || u.Role == RoleMaster }

// Repository persists users keyed by lower-cased email.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	UpdateRole(ctx context.Context, email string, role Role) error
	TouchLogin(ctx context.Context, email string, at time.Time) error
}

// IUserUseCase exposes user management operations.
type IUserUseCase interface {
	Sync(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Add(ctx context.Context, email string) (User, error)
	ToggleRole(ctx context.Context, email string) (User, error)
}

type Service struct {
	repo        Repository
	superAdmins map[string]bool
	now         func() time.Time
}

var _ IUserUseCase = (*Service)(nil)

func NewService(repo Repository, superAdmins []string) *Service {
	supers := make(map[string]bool, len(superAdmins))
	for _, e := range superAdmins {
		if e = NormalizeEmail(e); e != "" {
			supers[e] = true
		}
	}
	return &Service{repo: repo, superAdmins: supers, now: time.Now}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

func (s *Service) decorate(u User) User {
	if s.superAdmins[u.Email] {
		u.SuperAdmin = true
		u.Role = RoleMaster
	}
	if !u.Role.Valid() {
		u.Role = RoleConsultant
	}
	return u
}

// Sync records a login, registering unknown users as consultants, and returns
// the user with its effective role.
func (s *Service) Sync(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if !validEmail(email) {
		return User{}, ErrInvalidEmail
	}
	now := s.now().UTC()

	u, err := s.repo.Get(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		u, err = s.repo.Create(ctx, User{Email: email, Role: RoleConsultant, CreatedAt: now, LastLogin: &now})
		if err != nil {
			return User{}, err
		}
		log.Printf("[users][usecase] registered email=%s", email)
	case err != nil:
		return User{}, err
	default:
		if err := s.repo.TouchLogin(ctx, email, now); err != nil {
			return User{}, err
		}
		u.LastLogin = &now
	}
	return s.decorate(u), nil
}

// List returns every user plus any super admin that never logged in, sorted by email.
func (s *Service) List(ctx context.Context) ([]User, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(stored))
	out := make([]User, 0, len(stored)+len(s.superAdmins))
	for _, u := range stored {
		seen[u.Email] = true
		out = append(out, s.decorate(u))
	}
	for email := range s.superAdmins {
		if !seen[email] {
			out = append(out, s.decorate(User{Email: email}))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Add pre-registers a consultant.
func (s *Service) Add(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if !validEmail(email) {
		return User{}, ErrInvalidEmail
	}
	if _, err := s.repo.Get(ctx, email); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	u, err := s.repo.Create(ctx, User{Email: email, Role: RoleConsultant, CreatedAt: s.now().UTC()})
	if err != nil {
		return User{}, err
	}
	return s.decorate(u), nil
}

// ToggleRole switches a user between master and consultant.
func (s *Service) ToggleRole(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if s.superAdmins[email] {
		return User{}, ErrProtectedUser
	}
	u, err := s.repo.Get(ctx, email)
	if err != nil {
		return User{}, err
	}
	next := RoleMaster
	if u.Role == RoleMaster {
		next = RoleConsultant
	}
	if err := s.repo.UpdateRole(ctx, email, next); err != nil {
		return User{}, fmt.Errorf("update role of %s: %w", email, err)
	}
	u.Role = next
	log.Printf("[users][usecase] role changed email=%s role=%s", email, next)
	return s.decorate(u), nil
}
