package repository

import (
	"context"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
)

// AuthGateway verifies cashier credentials against the store backend and
// returns the bearer token to use on every later backend call.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (token string, cashier *entity.Cashier, err error)
}
