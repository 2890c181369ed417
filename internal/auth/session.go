package auth

import "github.com/google/uuid"

// Session identifies the authenticated member for the duration of one
// request. It is passed explicitly into membership and ledger
// operations; nothing in the portal reads identity from global state.
type Session struct {
	UserID uuid.UUID
	Email  string
}
