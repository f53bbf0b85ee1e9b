package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/KubeRPG_Go/internal/database"
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupDatabase(ctx context.Context) (*pgxpool.Pool, func()) {
	// testcontainers panics when no docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("kuberpg"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate := func() { _ = pgContainer.Terminate(ctx) }

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return nil, nil
	}

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(connStr, 8))
	if err != nil {
		terminate()
		return nil, nil
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		terminate()
		return nil, nil
	}
	return pool, terminate
}

func newTestRepo(t *testing.T) *AccountRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	repo := NewAccountRepository(testPool)
	_, err := repo.DeleteAllAccounts(context.Background())
	require.NoError(t, err)
	return repo
}

func TestAccountRepository_Integration(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acc := domain.NewAccount("alice", "#3366ff")
	require.NoError(t, acc.Equip(acc.Inventory[0].ID))

	created, err := repo.CreateAccount(ctx, acc)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateAccount(ctx, domain.NewAccount("alice", "#000000"))
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "#3366ff", got.Color)
	assert.Equal(t, 1, got.Progress.Level)
	require.Len(t, got.Inventory, 2)
	assert.Equal(t, acc.Inventory[0].ID, got.Equipment[domain.ItemTypeSword])
	assert.True(t, got.Inventory[0].Equipped)
	assert.False(t, got.Inventory[1].Equipped)

	got.Progress.DungeonStage = 4
	got.Inventory = append(got.Inventory, domain.NewItem(domain.ItemTypeOrbe, domain.RarityEpic, 9))
	require.NoError(t, repo.SaveAccount(ctx, got))

	again, err := repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, again.Progress.DungeonStage)
	assert.Len(t, again.Inventory, 3)
	assert.Equal(t, domain.RarityEpic, again.Inventory[2].Rarity)

	_, err = repo.GetAccount(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, repo.SaveAccount(ctx, domain.NewAccount("nobody", "")), domain.ErrAccountNotFound)
}

func TestAccountRepository_ListAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"zed", "amy"} {
		acc := domain.NewAccount(name, "")
		acc.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.CreateAccount(ctx, acc)
		require.NoError(t, err)
	}

	list, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "zed", list[0].Pseudonym)

	n, err := repo.DeleteAllAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAccountRepository_ConcurrentInventoryAppends(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.CreateAccount(ctx, domain.NewAccount("alice", ""))
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := repo.BeginTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer repository.SafeRollback(ctx, tx)

			acc, err := tx.GetAccountForUpdate(ctx, "alice")
			if !assert.NoError(t, err) {
				return
			}
			acc.Inventory = append(acc.Inventory, domain.NewItem(domain.ItemTypeHalo, domain.RarityRare, 2))
			assert.NoError(t, tx.SaveAccount(ctx, acc))
			assert.NoError(t, tx.Commit(ctx))
		}()
	}
	wg.Wait()

	acc, err := repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, acc.Inventory, 2+writers)
}
