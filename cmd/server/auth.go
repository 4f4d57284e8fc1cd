package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/littlemaker/configurador/internal/proposal"
	"github.com/littlemaker/configurador/internal/users"
)

var errUnauthenticated = errors.New("missing or invalid bearer token")

type sessionKey struct{}

// session is the authenticated caller attached to the request context.
type session struct {
	User  users.User
	Actor proposal.Actor
}

type authService struct {
	secret []byte
	users  users.IUserUseCase
}

func newAuthService(secret string, u users.IUserUseCase) *authService {
	return &authService{secret: []byte(secret), users: u}
}

// parseToken validates an HS256 token issued by the identity provider and
// returns its subject and email claims.
func (a *authService) parseToken(raw string) (sub, email string, err error) {
	if len(a.secret) == 0 {
		return "", "", fmt.Errorf("%w: no secret configured", errUnauthenticated)
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errUnauthenticated, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errUnauthenticated
	}
	sub, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return "", "", fmt.Errorf("%w: token has no email", errUnauthenticated)
	}
	return sub, email, nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// middleware rejects requests without a valid token and records the login of
// those that carry one.
func (a *authService) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, errUnauthenticated)
			return
		}
		sub, email, err := a.parseToken(raw)
		if err != nil {
			log.Printf("[auth] rejected token: %v", err)
			writeError(w, errUnauthenticated)
			return
		}

		u, err := a.users.Sync(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		if sub == "" {
			sub = u.Email
		}
		sess := session{
			User:  u,
			Actor: proposal.Actor{UserID: sub, Email: u.Email, Master: u.IsMaster()},
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func currentSession(r *http.Request) session {
	sess, _ := r.Context().Value(sessionKey{}).(session)
	return sess
}

// requireMaster lets only master users through.
func requireMaster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !currentSession(r).Actor.Master {
			writeError(w, proposal.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
