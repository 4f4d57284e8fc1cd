package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/pricing"
	"github.com/littlemaker/configurador/internal/proposal"
	"github.com/littlemaker/configurador/internal/recommend"
	"github.com/littlemaker/configurador/internal/selection"
	"github.com/littlemaker/configurador/internal/users"
)

var errInvalidPayload = errors.New("invalid payload")

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapError(err error) (int, apiError) {
	switch {
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, apiError{"UNAUTHENTICATED", "Authentication required"}
	case errors.Is(err, errInvalidPayload), errors.Is(err, proposal.ErrInvalidProposal),
		errors.Is(err, pricing.ErrUnknownOverride), errors.Is(err, users.ErrInvalidRole):
		return http.StatusBadRequest, apiError{"INVALID_REQUEST", "Invalid request"}
	case errors.Is(err, users.ErrInvalidEmail):
		return http.StatusBadRequest, apiError{"INVALID_EMAIL", "Invalid email"}
	case errors.Is(err, proposal.ErrForbidden), errors.Is(err, pricing.ErrNotPrivileged):
		return http.StatusForbidden, apiError{"FORBIDDEN", "Operation not allowed"}
	case errors.Is(err, users.ErrProtectedUser):
		return http.StatusForbidden, apiError{"PROTECTED_USER", "Super admin role cannot be changed"}
	case errors.Is(err, proposal.ErrProposalNotFound):
		return http.StatusNotFound, apiError{"PROPOSAL_NOT_FOUND", "Proposal not found"}
	case errors.Is(err, users.ErrUserNotFound):
		return http.StatusNotFound, apiError{"USER_NOT_FOUND", "User not found"}
	case errors.Is(err, users.ErrUserExists):
		return http.StatusConflict, apiError{"USER_ALREADY_EXISTS", "User already exists"}
	default:
		log.Printf("[http] internal error: %v", err)
		return http.StatusInternalServerError, apiError{"INTERNAL_ERROR", "An internal error occurred"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, body := mapError(err)
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidPayload
	}
	return nil
}

// parseCount reads a JSON number or numeric string. Anything else is 0.
func parseCount(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return pricing.StudentCount(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return pricing.StudentCount(f)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentSession(r).User)
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	in := catalog.Settings{Variables: catalog.DefaultVariables()}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	saved, err := s.settings.Save(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[settings][handler] updated by=%s", currentSession(r).Actor.Email)
	writeJSON(w, http.StatusOK, saved)
}

type startRequest struct {
	ProposalID string         `json:"proposalId"`
	State      proposal.State `json:"state"`
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	var in startRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.proposals.Start(r.Context(), in.ProposalID, in.State)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var st proposal.State
	if err := decodeJSON(r, &st); err != nil {
		writeError(w, err)
		return
	}
	q, err := s.proposals.Quote(r.Context(), st)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type toggleRequest struct {
	Selection selection.Set `json:"selection"`
	ItemID    string        `json:"itemId"`
}

type selectionResponse struct {
	Selection selection.Set `json:"selection"`
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var in toggleRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	st, err := s.proposals.ToggleItem(r.Context(), proposal.State{Selection: in.Selection}, in.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Selection: st.Selection})
}

type recommendationRequest struct {
	Students json.RawMessage `json:"students"`
	Segments []string        `json:"segments"`
}

func (s *server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	var in recommendationRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	settings, err := s.settings.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	set := recommend.Selection(parseCount(in.Students), recommend.ParseSegments(in.Segments))
	writeJSON(w, http.StatusOK, selectionResponse{Selection: selection.Normalize(set, settings.Catalog())})
}

type commercialRequest struct {
	Commercial pricing.Commercial        `json:"commercial"`
	Action     proposal.CommercialAction `json:"action"`
	Field      pricing.OverrideField     `json:"field"`
	Value      float64                   `json:"value"`
}

type commercialResponse struct {
	Commercial pricing.Commercial `json:"commercial"`
}

func (s *server) handleCommercial(w http.ResponseWriter, r *http.Request) {
	var in commercialRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	c, err := proposal.ApplyCommercial(in.Commercial, currentSession(r).Actor, in.Action, in.Field, in.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commercialResponse{Commercial: c})
}

func (s *server) handleProposalsList(w http.ResponseWriter, r *http.Request) {
	list, err := s.proposals.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleProposalsCreate(w http.ResponseWriter, r *http.Request) {
	s.saveProposal(w, r, "", http.StatusCreated)
}

func (s *server) handleProposalUpdate(w http.ResponseWriter, r *http.Request) {
	s.saveProposal(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *server) saveProposal(w http.ResponseWriter, r *http.Request, id string, status int) {
	var st proposal.State
	if err := decodeJSON(r, &st); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.proposals.Save(r.Context(), currentSession(r).Actor, id, st)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, p)
}

func (s *server) handleProposalGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.proposals.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleProposalDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.proposals.Delete(r.Context(), currentSession(r).Actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleProposalCopy(w http.ResponseWriter, r *http.Request) {
	st, err := s.proposals.Copy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleProposalText(w http.ResponseWriter, r *http.Request) {
	txt, err := s.proposals.Text(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(txt))
}

func (s *server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type addUserRequest struct {
	Email string `json:"email"`
}

func (s *server) handleUsersAdd(w http.ResponseWriter, r *http.Request) {
	var in addUserRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	u, err := s.users.Add(r.Context(), in.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *server) handleUsersToggleRole(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.ToggleRole(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
