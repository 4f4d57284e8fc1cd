package proposal

import (
	"errors"
	"strings"
	"time"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/pricing"
	"github.com/littlemaker/configurador/internal/selection"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrForbidden        = errors.New("operation not allowed for this user")
	ErrInvalidProposal  = errors.New("invalid proposal")
)

const (
	DefaultStudents = 50
	untitled        = "Sem nome"
	copySuffix      = " (Cópia)"
)

// Client identifies the school the proposal is addressed to.
type Client struct {
	SchoolName  string   `json:"schoolName"`
	ContactName string   `json:"contactName"`
	Date        string   `json:"date"`
	State       string   `json:"state"`
	Segments    []string `json:"segments"`
}

// State is everything the consultant edits while building a proposal.
type State struct {
	Client     Client             `json:"client"`
	RegionID   string             `json:"regionId"`
	Selection  selection.Set      `json:"selectedInfraIds"`
	Commercial pricing.Commercial `json:"commercial"`
}

// NewState returns the blank editor state dated at now.
func NewState(now time.Time) State {
	return State{
		Client: Client{
			Date:     now.Format("2006-01-02"),
			Segments: []string{},
		},
		RegionID:  catalog.DefaultRegionID,
		Selection: selection.Set{},
		Commercial: pricing.Commercial{
			TotalStudents:    DefaultStudents,
			ContractDuration: pricing.OneYear,
		},
	}
}

// Normalize coerces a decoded state into a consistent one against settings:
// unknown items are dropped, the region falls back to the first one, and
// numeric fields are clamped.
func (s State) Normalize(settings catalog.Settings) State {
	s.Client.State = strings.ToUpper(strings.TrimSpace(s.Client.State))
	if s.Client.Segments == nil {
		s.Client.Segments = []string{}
	}
	s.RegionID = settings.Region(s.RegionID).ID
	s.Selection = selection.Normalize(s.Selection, settings.Catalog())
	s.Commercial = s.Commercial.Clone().Normalize()
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Client.Segments = append([]string{}, s.Client.Segments...)
	s.Selection = s.Selection.Clone()
	s.Commercial = s.Commercial.Clone()
	return s
}

// Proposal is a saved state with its ownership metadata.
type Proposal struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"userId"`
	OwnerEmail string    `json:"userEmail"`
	SchoolName string    `json:"schoolName"`
	State      State     `json:"data"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Email  string
	Master bool
}

func (a Actor) owns(p Proposal) bool {
	return a.UserID != "" && a.UserID == p.OwnerID
}

func schoolName(s State) string {
	if name := strings.TrimSpace(s.Client.SchoolName); name != "" {
		return name
	}
	return untitled
}
