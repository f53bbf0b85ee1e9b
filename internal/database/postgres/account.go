package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/repository"
)

const accountColumns = `pseudonym, color, level, dungeon_stage, inventory, equipment, created_at, updated_at`

// AccountRepository implements repository.Account for PostgreSQL.
// Inventory and equipment are stored as JSONB blobs on the account row.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts acc unless the pseudonym is taken
func (r *AccountRepository) CreateAccount(ctx context.Context, acc *domain.Account) (bool, error) {
	inv, eq, err := encodeAccount(acc)
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO accounts (pseudonym, color, level, dungeon_stage, inventory, equipment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (pseudonym) DO NOTHING
	`, acc.Pseudonym, acc.Color, acc.Progress.Level, acc.Progress.DungeonStage, inv, eq, acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertAccount, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetAccount loads one account
func (r *AccountRepository) GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE pseudonym = $1`, pseudonym)
	return scanAccount(row, pseudonym)
}

// ListAccounts returns every account ordered by creation time
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, pseudonym`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows, "")
		if err != nil {
			return nil, err
		}
		out = append(out, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	return out, nil
}

// SaveAccount overwrites an existing account
func (r *AccountRepository) SaveAccount(ctx context.Context, acc *domain.Account) error {
	return saveAccount(ctx, r.db, acc)
}

// DeleteAllAccounts removes every account row
func (r *AccountRepository) DeleteAllAccounts(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteAccounts, err)
	}
	return tag.RowsAffected(), nil
}

// BeginTx starts a transaction for read-modify-write updates
func (r *AccountRepository) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &accountTx{tx: tx}, nil
}

type accountTx struct {
	tx pgx.Tx
}

// GetAccountForUpdate locks the row until the transaction ends
func (t *accountTx) GetAccountForUpdate(ctx context.Context, pseudonym string) (*domain.Account, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE pseudonym = $1 FOR UPDATE`, pseudonym)
	return scanAccount(row, pseudonym)
}

func (t *accountTx) SaveAccount(ctx context.Context, acc *domain.Account) error {
	return saveAccount(ctx, t.tx, acc)
}

func (t *accountTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *accountTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func saveAccount(ctx context.Context, db execer, acc *domain.Account) error {
	inv, eq, err := encodeAccount(acc)
	if err != nil {
		return err
	}

	tag, err := db.Exec(ctx, `
		UPDATE accounts
		SET color = $2, level = $3, dungeon_stage = $4, inventory = $5, equipment = $6, updated_at = NOW()
		WHERE pseudonym = $1
	`, acc.Pseudonym, acc.Color, acc.Progress.Level, acc.Progress.DungeonStage, inv, eq)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, acc.Pseudonym)
	}
	return nil
}

func encodeAccount(acc *domain.Account) ([]byte, []byte, error) {
	items := acc.Inventory
	if items == nil {
		items = []domain.Item{}
	}
	inv, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalInventory, err)
	}

	slots := acc.Equipment
	if slots == nil {
		slots = map[domain.ItemType]string{}
	}
	eq, err := json.Marshal(slots)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEquipment, err)
	}
	return inv, eq, nil
}

func scanAccount(row pgx.Row, pseudonym string) (*domain.Account, error) {
	var acc domain.Account
	var inv, eq []byte
	err := row.Scan(&acc.Pseudonym, &acc.Color, &acc.Progress.Level, &acc.Progress.DungeonStage,
		&inv, &eq, &acc.CreatedAt, &acc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, pseudonym)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}

	if err := json.Unmarshal(inv, &acc.Inventory); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalInventory, err)
	}
	if err := json.Unmarshal(eq, &acc.Equipment); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalEquipment, err)
	}
	acc.Normalize()
	return &acc, nil
}
