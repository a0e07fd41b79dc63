package service

import (
	"net/http"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/google/uuid"
)

// Scope is the authenticated caller of an engine operation
type Scope struct {
	ActorID   uuid.UUID
	ActorType enum.ActorType
}

// AdminScope builds the scope of an admin account
func AdminScope(id uuid.UUID) Scope {
	return Scope{ActorID: id, ActorType: enum.ActorTypeAdmin}
}

// StoreScopeOf builds the scope of a store account
func StoreScopeOf(id uuid.UUID) Scope {
	return Scope{ActorID: id, ActorType: enum.ActorTypeStore}
}

func (s Scope) IsAdmin() bool {
	return s.ActorType == enum.ActorTypeAdmin
}

func (s Scope) IsStore() bool {
	return s.ActorType == enum.ActorTypeStore
}

// RequireAdmin fails unless the caller is an admin
func (s Scope) RequireAdmin() error {
	if !s.IsAdmin() {
		return apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Admin access required")
	}
	return nil
}

// RequireStore fails unless the caller is a store, returning its ID
func (s Scope) RequireStore() (uuid.UUID, error) {
	if !s.IsStore() {
		return uuid.Nil, apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Store access required")
	}
	return s.ActorID, nil
}

// RequireStoreOrAdmin allows admins and the given store itself
func (s Scope) RequireStoreOrAdmin(storeID uuid.UUID) error {
	if s.IsAdmin() || (s.IsStore() && s.ActorID == storeID) {
		return nil
	}
	return apperror.ErrForbidden
}

// StoreFilter limits listings to the caller's store; nil means all stores
func (s Scope) StoreFilter() *uuid.UUID {
	if s.IsAdmin() {
		return nil
	}
	id := s.ActorID
	return &id
}

// ResolveStore picks the store an operation acts on. Stores act on
// themselves; admins must name the store.
func (s Scope) ResolveStore(requested *uuid.UUID) (uuid.UUID, error) {
	switch {
	case s.IsStore():
		if requested != nil && *requested != s.ActorID {
			return uuid.Nil, apperror.ErrForbidden
		}
		return s.ActorID, nil
	case s.IsAdmin():
		if requested == nil || *requested == uuid.Nil {
			return uuid.Nil, apperror.NewFieldError("store_id", "store_id is required")
		}
		return *requested, nil
	}
	return uuid.Nil, apperror.ErrUnauthorized
}
