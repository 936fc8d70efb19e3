// Package auth keeps track of the cashier logged in at the till.
// Credential checks happen upstream; this only remembers who is operating.
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// CashierIdentity is what the cart needs to stamp a sale.
type CashierIdentity interface {
	CashierID() string
}

// Session is the cashier identity collaborator.
type Session interface {
	CashierIdentity
	Login(ctx context.Context, user types.User) (types.User, error)
	Logout(ctx context.Context) error
	Current() (types.User, bool)
}

// SessionParams groups dependencies for the session.
type SessionParams struct {
	Store            kvstore.Store
	DefaultCashierID string
	Logger           *logger.Logger
}

type session struct {
	store            kvstore.Store
	defaultCashierID string
	logg             *logger.Logger

	mu   sync.RWMutex
	user *types.User
}

// NewSession restores the previously logged in cashier, if any.
func NewSession(ctx context.Context, params SessionParams) (Session, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	s := &session{
		store:            params.Store,
		defaultCashierID: params.DefaultCashierID,
		logg:             logg,
	}

	user, found, err := kvstore.GetJSON[types.User](ctx, params.Store, kvstore.KeyAuthUser)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cashier session")
	}
	if found && user.ID != "" {
		s.user = &user
	}
	return s, nil
}

// Login replaces the current cashier. Missing ids are generated; missing roles default to CASHIER.
func (s *session) Login(ctx context.Context, user types.User) (types.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return types.User{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = enums.UserRoleCashier
	}
	if !user.Role.IsValid() {
		return types.User{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
			WithDetails(map[string]any{"role": user.Role})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyAuthUser, user); err != nil {
		return types.User{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cashier session")
	}
	s.user = &user
	s.logg.Info(s.logg.WithCashierID(ctx, user.ID), "cashier logged in")
	return user, nil
}

func (s *session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, kvstore.KeyAuthUser); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cashier session")
	}
	if s.user != nil {
		s.logg.Info(s.logg.WithCashierID(ctx, s.user.ID), "cashier logged out")
	}
	s.user = nil
	return nil
}

func (s *session) Current() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return types.User{}, false
	}
	return *s.user, true
}

// CashierID falls back to the terminal's default cashier when nobody is logged in.
func (s *session) CashierID() string {
	if user, ok := s.Current(); ok {
		return user.ID
	}
	return s.defaultCashierID
}
