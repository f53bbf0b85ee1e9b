package dungeon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/testing/fakerand"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// MockAccountStore
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error) {
	args := m.Called(ctx, pseudonym)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountStore) ApplyInventoryDelta(ctx context.Context, pseudonym string, items []domain.Item) error {
	args := m.Called(ctx, pseudonym, items)
	return args.Error(0)
}

func (m *MockAccountStore) RaiseDungeonStage(ctx context.Context, pseudonym string, stage int) error {
	args := m.Called(ctx, pseudonym, stage)
	return args.Error(0)
}

func bareAccount(pseudonym string) *domain.Account {
	return &domain.Account{
		Pseudonym: pseudonym,
		Progress:  domain.Progress{Level: 1},
		Equipment: map[domain.ItemType]string{},
	}
}

// playUntilSettled ticks until the wave leaves the fighting state
func playUntilSettled(t *testing.T, e *Engine) *TickResult {
	t.Helper()
	for i := 0; i < 100; i++ {
		res, err := e.Tick(context.Background())
		require.NoError(t, err)
		if res.Status != domain.DungeonFighting {
			return res
		}
	}
	t.Fatal("wave did not settle")
	return nil
}

func TestStart_SingleEnemyWhenDrawsForcedToZero(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)

	rng := fakerand.New()
	e := NewEngine(DefaultConfig(), []string{"alice"}, store, rng)

	start, err := e.Start(context.Background())
	require.NoError(t, err)

	require.Len(t, start.Enemies, 1)
	enemy := start.Enemies[0]
	assert.Equal(t, 1, enemy.Level)
	assert.Equal(t, 15, enemy.HP)
	assert.Equal(t, 15, enemy.MaxHP)
	assert.Equal(t, 4, enemy.Damage)
	assert.Equal(t, 0, enemy.Defense)
	assert.Equal(t, "Skeleton L1", enemy.Name)
	assert.Equal(t, domain.Position{X: 7, Y: 0}, enemy.Pos)

	assert.Equal(t, []int{2, 2}, rng.IntnCalls, "count draw then level draw")
	assert.Equal(t, 1, e.Wave())
	assert.Equal(t, domain.DungeonFighting, e.Status())
	assert.Equal(t, []string{"alice"}, e.Fighters())
}

func TestStart_EmptyParty(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, new(MockAccountStore), fakerand.New())

	_, err := e.Start(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyParty)
	assert.Equal(t, 0, e.Wave())
}

func TestStart_NoAccountLoads(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

	e := NewEngine(DefaultConfig(), []string{"ghost"}, store, fakerand.New())
	_, err := e.Start(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoPlayersSpawned)
	assert.True(t, domain.IsPrecondition(err))
	assert.Nil(t, e.Encounter())

	_, err = e.Tick(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveDungeon)
}

func TestStart_SkipsAccountsThatFailToLoad(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "ghost").Return(nil, errors.New("connection reset"))
	store.On("GetAccount", mock.Anything, "bob").Return(bareAccount("bob"), nil)

	e := NewEngine(DefaultConfig(), []string{"ghost", "bob"}, store, fakerand.New())
	start, err := e.Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, start.Skipped)
	assert.Equal(t, []string{"bob"}, e.Fighters())
	assert.Equal(t, []string{"ghost", "bob"}, e.Party())

	players := e.Encounter().Faction(domain.FactionPlayer)
	require.Len(t, players, 1)
	assert.Equal(t, "player-bob", players[0].ID)
	assert.Equal(t, domain.Position{X: 0, Y: 0}, players[0].Pos)
}

func TestStart_Twice(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)

	e := NewEngine(DefaultConfig(), []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	_, err = e.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrDungeonActive)
}

func TestTick_WaveVictoryDeliversLootToReceiver(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
	store.On("ApplyInventoryDelta", mock.Anything, "alice", mock.MatchedBy(func(items []domain.Item) bool {
		return len(items) == 1 && items[0].Type == domain.ItemTypeSword && items[0].Power == 2
	})).Return(nil).Once()
	store.On("RaiseDungeonStage", mock.Anything, "alice", 1).Return(nil).Once()

	// all draws 0: one L1 enemy; one Common Sword with the minimum power factor
	e := NewEngine(DefaultConfig(), []string{"ghost", "alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res := playUntilSettled(t, e)

	assert.Equal(t, domain.CombatVictory, res.State)
	assert.Equal(t, domain.DungeonAwaitingDecision, res.Status)
	assert.Equal(t, 7, res.Snapshot.Round)
	require.NotNil(t, res.Completed)
	assert.Equal(t, "alice", res.Completed.Receiver)
	assert.True(t, res.Completed.Delivered)
	require.Len(t, res.Completed.Rewards, 1)
	assert.NoError(t, res.TransferErr)

	last := res.Events[len(res.Events)-1]
	assert.Equal(t, domain.CombatEventVictory, last.Kind)

	sum := e.Summary()
	assert.Equal(t, 1, sum.TotalLoot)
	assert.Equal(t, res.Completed, sum.LastWave)
	assert.Equal(t, 1, e.WavesWon())

	store.AssertExpectations(t)
}

func TestTick_AwaitingDecisionRefusesRounds(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
	store.On("ApplyInventoryDelta", mock.Anything, "alice", mock.Anything).Return(nil)
	store.On("RaiseDungeonStage", mock.Anything, "alice", mock.Anything).Return(nil)

	e := NewEngine(DefaultConfig(), []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)
	playUntilSettled(t, e)

	_, err = e.Tick(context.Background())
	assert.ErrorIs(t, err, domain.ErrAwaitingDecision)
	assert.Equal(t, domain.DungeonAwaitingDecision, e.Status())
}

func TestTick_TransferFailureStillSettlesWave(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
	store.On("ApplyInventoryDelta", mock.Anything, "alice", mock.Anything).Return(errors.New("disk full"))

	e := NewEngine(DefaultConfig(), []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res := playUntilSettled(t, e)

	assert.Equal(t, domain.DungeonAwaitingDecision, res.Status)
	require.NotNil(t, res.Completed)
	assert.False(t, res.Completed.Delivered)
	assert.ErrorIs(t, res.TransferErr, domain.ErrRewardTransferFailed)
	assert.Equal(t, 0, e.Summary().TotalLoot)
	store.AssertNotCalled(t, "RaiseDungeonStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_NoDropsStillRaisesStage(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
	store.On("RaiseDungeonStage", mock.Anything, "alice", 1).Return(nil).Once()

	rng := fakerand.New()
	rng.DefaultFloat = 0.99 // every count roll lands in the no-drop band
	e := NewEngine(DefaultConfig(), []string{"alice"}, store, rng)
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res := playUntilSettled(t, e)

	require.NotNil(t, res.Completed)
	assert.Empty(t, res.Completed.Rewards)
	assert.True(t, res.Completed.Delivered)
	store.AssertNotCalled(t, "ApplyInventoryDelta", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestTick_DefeatEndsRun(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)

	cfg := DefaultConfig()
	cfg.Waves.EnemyDamageBase = 100

	e := NewEngine(cfg, []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res := playUntilSettled(t, e)

	assert.Equal(t, domain.CombatDefeat, res.State)
	assert.Equal(t, domain.DungeonFailed, res.Status)
	assert.Nil(t, res.Completed)

	_, err = e.Tick(context.Background())
	assert.ErrorIs(t, err, domain.ErrDungeonFinished)
	_, err = e.Continue(context.Background(), true)
	assert.ErrorIs(t, err, domain.ErrDungeonFinished)
	store.AssertNotCalled(t, "ApplyInventoryDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_RoundLimitCountsAsDefeat(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)

	cfg := DefaultConfig()
	cfg.Waves.MaxRounds = 2

	e := NewEngine(cfg, []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res, err := e.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DungeonFighting, res.Status)

	res, err = e.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CombatDefeat, res.State)
	assert.Equal(t, domain.DungeonFailed, res.Status)
	assert.Equal(t, domain.CombatEventDefeat, res.Events[len(res.Events)-1].Kind)
}

func TestContinue(t *testing.T) {
	newWonEngine := func(t *testing.T) (*Engine, *MockAccountStore) {
		store := new(MockAccountStore)
		store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
		store.On("ApplyInventoryDelta", mock.Anything, "alice", mock.Anything).Return(nil)
		store.On("RaiseDungeonStage", mock.Anything, "alice", mock.Anything).Return(nil)

		e := NewEngine(DefaultConfig(), []string{"alice"}, store, fakerand.New())
		_, err := e.Start(context.Background())
		require.NoError(t, err)
		playUntilSettled(t, e)
		return e, store
	}

	t.Run("yes spawns the next wave with full hp", func(t *testing.T) {
		e, store := newWonEngine(t)

		start, err := e.Continue(context.Background(), true)

		require.NoError(t, err)
		assert.Equal(t, 2, start.Wave)
		assert.Equal(t, 2, e.Wave())
		assert.Equal(t, domain.DungeonFighting, e.Status())
		require.Len(t, start.Enemies, 1)
		assert.Equal(t, 2, start.Enemies[0].Level)
		assert.Equal(t, "w2-e1", start.Enemies[0].ID)

		players := e.Encounter().Faction(domain.FactionPlayer)
		require.Len(t, players, 1)
		assert.Equal(t, players[0].MaxHP, players[0].HP)
		store.AssertNumberOfCalls(t, "GetAccount", 2)
	})

	t.Run("no completes the run", func(t *testing.T) {
		e, store := newWonEngine(t)

		start, err := e.Continue(context.Background(), false)

		require.NoError(t, err)
		assert.Nil(t, start)
		assert.Equal(t, domain.DungeonCompleted, e.Status())
		store.AssertNumberOfCalls(t, "ApplyInventoryDelta", 1)
		store.AssertNumberOfCalls(t, "GetAccount", 1)
		_, err = e.Continue(context.Background(), true)
		assert.ErrorIs(t, err, domain.ErrDungeonFinished)
	})

	t.Run("while fighting", func(t *testing.T) {
		store := new(MockAccountStore)
		store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
		e := NewEngine(DefaultConfig(), []string{"alice"}, store, fakerand.New())
		_, err := e.Start(context.Background())
		require.NoError(t, err)

		_, err = e.Continue(context.Background(), true)

		assert.ErrorIs(t, err, domain.ErrNotAwaitingDecision)
		assert.ErrorIs(t, err, domain.ErrWaveInProgress)
		assert.Equal(t, 1, e.Wave())
	})

	t.Run("before start", func(t *testing.T) {
		e := NewEngine(DefaultConfig(), []string{"alice"}, new(MockAccountStore), fakerand.New())
		_, err := e.Continue(context.Background(), true)
		assert.ErrorIs(t, err, domain.ErrNoActiveDungeon)
	})
}

func TestEngine_SeededRunIsReproducible(t *testing.T) {
	run := func() []domain.CombatEvent {
		store := new(MockAccountStore)
		store.On("GetAccount", mock.Anything, mock.Anything).Return(bareAccount("alice"), nil)
		store.On("ApplyInventoryDelta", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		store.On("RaiseDungeonStage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := NewEngine(DefaultConfig(), []string{"alice", "bob"}, store, utils.NewRandom(99))
		_, err := e.Start(context.Background())
		require.NoError(t, err)

		var all []domain.CombatEvent
		for i := 0; i < 100 && e.Status() == domain.DungeonFighting; i++ {
			res, err := e.Tick(context.Background())
			require.NoError(t, err)
			all = append(all, res.Events...)
		}
		return all
	}

	assert.Equal(t, run(), run())
}

func TestRollEnemies_CountAndLevelBounds(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil, nil, utils.NewRandom(7))

	for wave := 1; wave <= 10; wave++ {
		for i := 0; i < 50; i++ {
			enemies := e.rollEnemies(wave)
			assert.GreaterOrEqual(t, len(enemies), 1)
			assert.LessOrEqual(t, len(enemies), 2+wave/2)
			for _, en := range enemies {
				assert.GreaterOrEqual(t, en.Level, wave)
				assert.Less(t, en.Level, wave+EnemyLevelSpread)
				assert.Equal(t, en.Level/EnemyDefenseDivisor, en.Defense)
			}
		}
	}
}

func TestTick_LootUsesStatRarityTable(t *testing.T) {
	store := new(MockAccountStore)
	store.On("GetAccount", mock.Anything, "alice").Return(bareAccount("alice"), nil)
	store.On("ApplyInventoryDelta", mock.Anything, "alice", mock.Anything).Return(nil)
	store.On("RaiseDungeonStage", mock.Anything, "alice", 1).Return(nil)

	cfg := DefaultConfig()
	cfg.Stats.RarityMultipliers = map[domain.Rarity]float64{domain.RarityCommon: 3}
	e := NewEngine(cfg, []string{"alice"}, store, fakerand.New())
	_, err := e.Start(context.Background())
	require.NoError(t, err)

	res := playUntilSettled(t, e)

	require.NotNil(t, res.Completed)
	require.Len(t, res.Completed.Rewards, 1)
	drop := res.Completed.Rewards[0]
	assert.Equal(t, domain.RarityCommon, drop.Rarity)
	assert.Equal(t, 6, drop.Power, "level 1 base power 2, tripled by the stat table")
}

func TestRollEnemies_CustomCountFormula(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Waves.EnemyCountBase = 3
	cfg.Waves.EnemyCountSpread = 0
	cfg.Waves.EnemyCountWaveDivisor = 100
	require.NoError(t, cfg.Validate())

	rng := fakerand.New()
	e := NewEngine(cfg, nil, nil, rng)

	enemies := e.rollEnemies(1)

	require.Len(t, enemies, 3)
	assert.Equal(t, []int{2, 2, 2}, rng.IntnCalls, "a zero-width count range draws nothing")

	cfg.Waves.EnemyCountSpread = 2
	cfg.Waves.EnemyCountWaveDivisor = 1
	rng = fakerand.New()
	e = NewEngine(cfg, nil, nil, rng)

	enemies = e.rollEnemies(4)

	require.Len(t, enemies, 3)
	assert.Equal(t, 7, rng.IntnCalls[0], "count range is [0, spread + wave/divisor]")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"single tile grid", func(c *Config) { c.Waves.Cols, c.Waves.Rows = 1, 1 }, domain.ErrInvalidGrid},
		{"zero rounds", func(c *Config) { c.Waves.MaxRounds = 0 }, domain.ErrInvalidInput},
		{"zero divisor", func(c *Config) { c.Waves.EnemyDefenseDivisor = 0 }, domain.ErrInvalidInput},
		{"zero spread", func(c *Config) { c.Waves.EnemyLevelSpread = 0 }, domain.ErrInvalidInput},
		{"zero count base", func(c *Config) { c.Waves.EnemyCountBase = 0 }, domain.ErrInvalidInput},
		{"negative count spread", func(c *Config) { c.Waves.EnemyCountSpread = -1 }, domain.ErrInvalidInput},
		{"zero count divisor", func(c *Config) { c.Waves.EnemyCountWaveDivisor = 0 }, domain.ErrInvalidInput},
		{"inverted drop thresholds", func(c *Config) { c.Loot.DoubleDropThreshold = 0.5 }, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
