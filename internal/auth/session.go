// Package auth carries the caller's session explicitly through a context.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/bednights/internal/common"
)

// Roles known to the API.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// DefaultRole is used when neither the token nor the configuration names a role.
const DefaultRole = RoleViewer

// Session identifies the caller.
type Session struct {
	Token string
	Role  string
	Email string
}

// New builds a session. An empty role falls back to defaultRole, and an empty
// defaultRole to DefaultRole.
func New(token, role, email, defaultRole string) Session {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = strings.ToLower(strings.TrimSpace(defaultRole))
	}
	if role == "" {
		role = DefaultRole
	}
	return Session{
		Token: strings.TrimSpace(token),
		Role:  role,
		Email: strings.TrimSpace(email),
	}
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// CanMutate reports whether the session may create, edit or delete records.
func (s Session) CanMutate() bool {
	return s.Role == RoleAdmin
}

// RequireAdmin returns common.ErrForbidden unless the session may mutate.
func (s Session) RequireAdmin() error {
	if !s.CanMutate() {
		return fmt.Errorf("role %q cannot modify records: %w", s.Role, common.ErrForbidden)
	}
	return nil
}

func (s Session) String() string {
	who := s.Email
	if who == "" {
		who = "anonymous"
	}
	return fmt.Sprintf("%s (%s)", who, s.Role)
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context that carries the session.
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the session, if any.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// RequireAdminContext enforces admin rights for the session carried by ctx.
// A context without a session is forbidden.
func RequireAdminContext(ctx context.Context) error {
	s, ok := FromContext(ctx)
	if !ok {
		return fmt.Errorf("no session: %w", common.ErrForbidden)
	}
	return s.RequireAdmin()
}
