package proposal

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/pricing"
	"github.com/littlemaker/configurador/internal/recommend"
	"github.com/littlemaker/configurador/internal/selection"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks -exclude_interfaces=IProposalUseCase

// Repository persists proposals. GetByID returns ErrProposalNotFound for a
// missing id; List returns the newest first.
type Repository interface {
	Create(ctx context.Context, p Proposal) (Proposal, error)
	Update(ctx context.Context, p Proposal) (Proposal, error)
	GetByID(ctx context.Context, id string) (Proposal, error)
	List(ctx context.Context) ([]Proposal, error)
	Delete(ctx context.Context, id string) error
}

// SettingsSource yields the current tenant settings, already normalized.
type SettingsSource interface {
	Load(ctx context.Context) (catalog.Settings, error)
}

// Listing is one dashboard entry.
type Listing struct {
	Proposal Proposal `json:"proposal"`
	Card     Card     `json:"card"`
}

// IProposalUseCase exposes the editor and dashboard operations.
type IProposalUseCase interface {
	Start(ctx context.Context, proposalID string, st State) (State, error)
	ToggleItem(ctx context.Context, st State, itemID string) (State, error)
	Quote(ctx context.Context, st State) (Quote, error)
	Save(ctx context.Context, actor Actor, id string, st State) (Proposal, error)
	Get(ctx context.Context, id string) (Proposal, error)
	List(ctx context.Context, search string) ([]Listing, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Copy(ctx context.Context, id string) (State, error)
	Text(ctx context.Context, id string) (string, error)
}

type Service struct {
	repo     Repository
	settings SettingsSource
	now      func() time.Time
}

var _ IProposalUseCase = (*Service)(nil)

func NewService(repo Repository, settings SettingsSource) *Service {
	return &Service{repo: repo, settings: settings, now: time.Now}
}

// Start prepares the editor after the client step: the region follows the
// client's state and an unsaved empty proposal gets the recommended bundle.
func (s *Service) Start(ctx context.Context, proposalID string, st State) (State, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return State{}, err
	}
	st = st.Normalize(cfg)
	if id, ok := catalog.RegionForState(st.Client.State); ok {
		st.RegionID = cfg.Region(id).ID
	}
	if recommend.ShouldApply(proposalID, st.Selection) {
		segs := recommend.ParseSegments(st.Client.Segments)
		st.Selection = selection.Normalize(recommend.Selection(st.Commercial.TotalStudents, segs), cfg.Catalog())
	}
	return st, nil
}

func (s *Service) ToggleItem(ctx context.Context, st State, itemID string) (State, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return State{}, err
	}
	st = st.Normalize(cfg)
	st.Selection = selection.Toggle(st.Selection, itemID, cfg.Catalog())
	return st, nil
}

func (s *Service) Quote(ctx context.Context, st State) (Quote, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return Quote{}, err
	}
	return BuildQuote(st.Normalize(cfg), cfg), nil
}

// Save creates a proposal when id is empty and overwrites it otherwise.
// Only the owner or a master may overwrite.
func (s *Service) Save(ctx context.Context, actor Actor, id string, st State) (Proposal, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Proposal{}, fmt.Errorf("%w: missing owner", ErrInvalidProposal)
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return Proposal{}, err
	}
	st = st.Normalize(cfg)
	now := s.now().UTC()

	id = strings.TrimSpace(id)
	if id == "" {
		p := Proposal{
			ID:         uuid.NewString(),
			OwnerID:    actor.UserID,
			OwnerEmail: actor.Email,
			SchoolName: schoolName(st),
			State:      st,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		created, err := s.repo.Create(ctx, p)
		if err != nil {
			return Proposal{}, err
		}
		log.Printf("[proposal][usecase] created id=%s owner=%s", created.ID, created.OwnerEmail)
		return created, nil
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Proposal{}, err
	}
	if !actor.Master && !actor.owns(existing) {
		log.Printf("[proposal][usecase] overwrite denied id=%s actor=%s", id, actor.Email)
		return Proposal{}, ErrForbidden
	}
	existing.SchoolName = schoolName(st)
	existing.State = st
	existing.UpdatedAt = now
	return s.repo.Update(ctx, existing)
}

func (s *Service) Get(ctx context.Context, id string) (Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Proposal{}, ErrProposalNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List returns proposals whose school name contains search, newest first.
func (s *Service) List(ctx context.Context, search string) ([]Listing, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]Listing, 0, len(all))
	for _, p := range all {
		if needle != "" && !strings.Contains(strings.ToLower(p.SchoolName), needle) {
			continue
		}
		out = append(out, Listing{Proposal: p, Card: BuildCard(p.State.Normalize(cfg), cfg)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Proposal.UpdatedAt.After(out[j].Proposal.UpdatedAt)
	})
	return out, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Master && !actor.owns(p) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	log.Printf("[proposal][usecase] deleted id=%s actor=%s", p.ID, actor.Email)
	return nil
}

// Copy returns an unsaved duplicate of a proposal's state.
func (s *Service) Copy(ctx context.Context, id string) (State, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return State{}, err
	}
	st := p.State.Clone()
	st.Client.SchoolName += copySuffix
	return st, nil
}

func (s *Service) Text(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return "", err
	}
	p.State = p.State.Normalize(cfg)
	return PlainText(p, cfg), nil
}

// CommercialAction is one editor action on the commercial configuration.
type CommercialAction string

const (
	ActionToggleContract    CommercialAction = "toggleContract"
	ActionToggleMarketplace CommercialAction = "toggleMarketplace"
	ActionToggleInfraBonus  CommercialAction = "toggleInfraBonus"
	ActionSetStudents       CommercialAction = "setStudents"
	ActionSetOverride       CommercialAction = "setOverride"
	ActionClearOverride     CommercialAction = "clearOverride"
)

// ApplyCommercial runs one action. Override actions need a master actor.
func ApplyCommercial(c pricing.Commercial, actor Actor, action CommercialAction, field pricing.OverrideField, value float64) (pricing.Commercial, error) {
	c = c.Normalize()
	switch action {
	case ActionToggleContract:
		return c.ToggleContract(), nil
	case ActionToggleMarketplace:
		return c.ToggleMarketplace(), nil
	case ActionToggleInfraBonus:
		return c.ToggleInfraBonus(), nil
	case ActionSetStudents:
		return c.SetStudents(pricing.StudentCount(value)), nil
	case ActionSetOverride:
		return c.SetOverride(field, value, actor.Master)
	case ActionClearOverride:
		return c.ClearOverride(field, actor.Master)
	default:
		return c, fmt.Errorf("%w: unknown action %q", ErrInvalidProposal, action)
	}
}
