package repository

import (
	"context"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

// Account defines the interface for account persistence.
// Lookups of unknown pseudonyms return domain.ErrAccountNotFound.
type Account interface {
	// CreateAccount inserts acc unless the pseudonym is taken. It reports
	// whether a row was written.
	CreateAccount(ctx context.Context, acc *domain.Account) (bool, error)
	GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SaveAccount(ctx context.Context, acc *domain.Account) error
	DeleteAllAccounts(ctx context.Context) (int64, error)

	BeginTx(ctx context.Context) (AccountTx, error)
}

// Tx is a unit of work that ends in exactly one Commit or Rollback. Rollback
// after Commit returns domain.ErrTxClosed.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// AccountTx is a read-modify-write unit over one or more accounts
type AccountTx interface {
	Tx
	// GetAccountForUpdate loads the account and holds it until the
	// transaction ends
	GetAccountForUpdate(ctx context.Context, pseudonym string) (*domain.Account, error)
	SaveAccount(ctx context.Context, acc *domain.Account) error
}
