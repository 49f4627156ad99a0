package service

import (
	"context"

	"jona.app/api-server/internal/store"
)

// TxRunner runs a function against stores bound to one transaction.
// Implemented by *store.Store.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(provider store.Provider) error) error
}
