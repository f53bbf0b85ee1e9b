// Package memory provides an in-process account store used when no database
// is configured and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/repository"
)

// AccountRepository keeps accounts in a map. Every read and write works on
// copies so callers never share state with the store.
type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

// CreateAccount inserts acc unless the pseudonym is taken
func (r *AccountRepository) CreateAccount(_ context.Context, acc *domain.Account) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acc.Pseudonym]; ok {
		return false, nil
	}
	r.accounts[acc.Pseudonym] = acc.Clone()
	return true, nil
}

// GetAccount returns a copy of the stored account
func (r *AccountRepository) GetAccount(_ context.Context, pseudonym string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(pseudonym)
}

// ListAccounts returns every account ordered by creation time
func (r *AccountRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, *acc.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Pseudonym < out[j].Pseudonym
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SaveAccount overwrites an existing account
func (r *AccountRepository) SaveAccount(_ context.Context, acc *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(acc)
}

// DeleteAllAccounts empties the store
func (r *AccountRepository) DeleteAllAccounts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.accounts))
	r.accounts = make(map[string]*domain.Account)
	return n, nil
}

// BeginTx holds the store until the transaction is committed or rolled back
func (r *AccountRepository) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	return &accountTx{repo: r, pending: make(map[string]*domain.Account)}, nil
}

func (r *AccountRepository) get(pseudonym string) (*domain.Account, error) {
	acc, ok := r.accounts[pseudonym]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, pseudonym)
	}
	return acc.Clone(), nil
}

func (r *AccountRepository) save(acc *domain.Account) error {
	if _, ok := r.accounts[acc.Pseudonym]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, acc.Pseudonym)
	}
	r.accounts[acc.Pseudonym] = acc.Clone()
	return nil
}

// accountTx stages writes and applies them on commit
type accountTx struct {
	repo    *AccountRepository
	pending map[string]*domain.Account
	closed  bool
}

func (tx *accountTx) GetAccountForUpdate(_ context.Context, pseudonym string) (*domain.Account, error) {
	if tx.closed {
		return nil, domain.ErrTxClosed
	}
	if acc, ok := tx.pending[pseudonym]; ok {
		return acc.Clone(), nil
	}
	return tx.repo.get(pseudonym)
}

func (tx *accountTx) SaveAccount(_ context.Context, acc *domain.Account) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	if _, ok := tx.repo.accounts[acc.Pseudonym]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, acc.Pseudonym)
	}
	tx.pending[acc.Pseudonym] = acc.Clone()
	return nil
}

func (tx *accountTx) Commit(_ context.Context) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	for name, acc := range tx.pending {
		tx.repo.accounts[name] = acc
	}
	tx.close()
	return nil
}

func (tx *accountTx) Rollback(_ context.Context) error {
	if tx.closed {
		return domain.ErrTxClosed
	}
	tx.close()
	return nil
}

func (tx *accountTx) close() {
	tx.closed = true
	tx.pending = nil
	tx.repo.mu.Unlock()
}
