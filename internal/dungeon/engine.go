package dungeon

import (
	"context"
	"fmt"

	"github.com/osse101/KubeRPG_Go/internal/combat"
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/loot"
	"github.com/osse101/KubeRPG_Go/internal/stats"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// AccountStore is what the engine needs from account storage
type AccountStore interface {
	GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error)
	ApplyInventoryDelta(ctx context.Context, pseudonym string, items []domain.Item) error
	RaiseDungeonStage(ctx context.Context, pseudonym string, stage int) error
}

// WaveStart describes a freshly spawned wave
type WaveStart struct {
	Wave     int
	Enemies  []*domain.CombatUnit
	Skipped  []string
	Snapshot domain.GridSnapshot
}

// TickResult is the outcome of one round
type TickResult struct {
	Events   []domain.CombatEvent
	Snapshot domain.GridSnapshot
	State    domain.CombatState
	Status   domain.DungeonStatus

	// Set when the round ended the wave in victory
	Completed *domain.WaveCompleted

	// Reward transfer failure, if any. The wave is settled either way.
	TransferErr error
}

// Engine runs a dungeon: waves of enemies fought one round per Tick, with a
// continue decision between waves. It performs no I/O besides the account
// store and is not safe for concurrent use.
type Engine struct {
	cfg     Config
	party   []string
	store   AccountStore
	rng     utils.Random
	deriver *stats.Deriver
	loot    *loot.Generator

	wave      int
	status    domain.DungeonStatus
	started   bool
	encounter *combat.Encounter
	fighters  []string
	skipped   []string
	lastWave  *domain.WaveCompleted
	totalLoot int
	wavesWon  int
}

// NewEngine creates an engine for party. The same random source feeds
// enemy spawns and loot so a seeded run is fully reproducible.
func NewEngine(cfg Config, party []string, store AccountStore, rng utils.Random) *Engine {
	deriver := stats.NewDeriver(cfg.Stats)
	return &Engine{
		cfg:     cfg,
		party:   append([]string(nil), party...),
		store:   store,
		rng:     rng,
		deriver: deriver,
		loot:    loot.NewGenerator(cfg.Loot, deriver, rng),
	}
}

// Start spawns wave 1. An empty party, or one where no account could be
// loaded, is refused without changing state.
func (e *Engine) Start(ctx context.Context) (*WaveStart, error) {
	if e.started {
		return nil, domain.ErrDungeonActive
	}
	if len(e.party) == 0 {
		return nil, domain.ErrEmptyParty
	}

	start, err := e.spawnWave(ctx, 1)
	if err != nil {
		return nil, err
	}
	e.started = true
	logger.FromContext(ctx).Info(LogMsgDungeonStarted, LogFieldPlayers, len(e.fighters), LogFieldEnemies, len(start.Enemies))
	return start, nil
}

// Tick plays one round of the current wave
func (e *Engine) Tick(ctx context.Context) (*TickResult, error) {
	switch {
	case !e.started:
		return nil, domain.ErrNoActiveDungeon
	case e.status.Terminal():
		return nil, domain.ErrDungeonFinished
	case e.status == domain.DungeonAwaitingDecision:
		return nil, domain.ErrAwaitingDecision
	}

	events, state := e.encounter.Advance()
	res := &TickResult{
		Events:   events,
		Snapshot: e.encounter.Snapshot(),
		State:    state,
	}

	if !state.Terminal() && e.encounter.Round >= e.cfg.Waves.MaxRounds {
		// stalemate guard: an unresolvable wave counts as a loss
		state = domain.CombatDefeat
		e.encounter.State = state
		res.State = state
		res.Events = append(res.Events, domain.CombatEvent{Kind: domain.CombatEventDefeat, Round: e.encounter.Round})
	}

	switch state {
	case domain.CombatVictory:
		res.Completed, res.TransferErr = e.settleVictory(ctx)
	case domain.CombatDefeat:
		e.status = domain.DungeonFailed
		logger.FromContext(ctx).Info(LogMsgWaveLost, LogFieldWave, e.wave, LogFieldRound, e.encounter.Round)
	}
	res.Status = e.status
	return res, nil
}

// Continue resolves the decision after a won wave: yes spawns the next wave,
// no ends the run as completed.
func (e *Engine) Continue(ctx context.Context, yes bool) (*WaveStart, error) {
	switch {
	case !e.started:
		return nil, domain.ErrNoActiveDungeon
	case e.status.Terminal():
		return nil, domain.ErrDungeonFinished
	case e.status == domain.DungeonFighting:
		return nil, fmt.Errorf("%w: %w", domain.ErrNotAwaitingDecision, domain.ErrWaveInProgress)
	}

	if !yes {
		e.status = domain.DungeonCompleted
		logger.FromContext(ctx).Info(LogMsgDungeonLeft, LogFieldWave, e.wave)
		return nil, nil
	}
	return e.spawnWave(ctx, e.wave+1)
}

// Status returns the run's lifecycle state
func (e *Engine) Status() domain.DungeonStatus {
	return e.status
}

// Wave returns the current wave number, 0 before Start
func (e *Engine) Wave() int {
	return e.wave
}

// Party returns the requested party in order
func (e *Engine) Party() []string {
	return append([]string(nil), e.party...)
}

// Fighters returns the pseudonyms that were spawned into the current wave
func (e *Engine) Fighters() []string {
	return append([]string(nil), e.fighters...)
}

// Encounter exposes the current wave's grid, nil before Start
func (e *Engine) Encounter() *combat.Encounter {
	return e.encounter
}

// Summary reports the run for callers
func (e *Engine) Summary() domain.DungeonSummary {
	sum := domain.DungeonSummary{
		Party:     e.Party(),
		Wave:      e.wave,
		Status:    e.status,
		LastWave:  e.lastWave,
		Skipped:   append([]string(nil), e.skipped...),
		TotalLoot: e.totalLoot,
	}
	if e.encounter != nil {
		sum.Combat = e.encounter.State
		snap := e.encounter.Snapshot()
		sum.Snapshot = &snap
	}
	return sum
}

// WavesWon returns how many waves the party has cleared
func (e *Engine) WavesWon() int {
	return e.wavesWon
}

// spawnWave builds wave n. On failure the engine state is unchanged.
func (e *Engine) spawnWave(ctx context.Context, n int) (*WaveStart, error) {
	log := logger.FromContext(ctx)
	w := e.cfg.Waves

	var players []*domain.CombatUnit
	var fighters, skipped []string
	for _, pseudonym := range e.party {
		acc, err := e.store.GetAccount(ctx, pseudonym)
		if err != nil || acc == nil {
			log.Warn(LogMsgAccountSkipped, LogFieldPseudonym, pseudonym, LogFieldError, err)
			skipped = append(skipped, pseudonym)
			continue
		}
		players = append(players, e.playerUnit(acc))
		fighters = append(fighters, pseudonym)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: wave %d", domain.ErrNoPlayersSpawned, n)
	}

	enemies := e.rollEnemies(n)

	combat.PlaceEdge(players, 0, w.Rows)
	combat.PlaceEdge(enemies, w.Cols-1, w.Rows)
	units := make([]*domain.CombatUnit, 0, len(players)+len(enemies))
	units = append(units, players...)
	units = append(units, enemies...)

	enc, err := combat.NewEncounter(w.Cols, w.Rows, units)
	if err != nil {
		return nil, err
	}

	e.wave = n
	e.status = domain.DungeonFighting
	e.encounter = enc
	e.fighters = fighters
	e.skipped = skipped

	log.Info(LogMsgWaveSpawned, LogFieldWave, n, LogFieldPlayers, len(players), LogFieldEnemies, len(enemies))
	return &WaveStart{
		Wave:     n,
		Enemies:  enemies,
		Skipped:  skipped,
		Snapshot: enc.Snapshot(),
	}, nil
}

// rollEnemies draws the count, then each enemy's level, in roster order
func (e *Engine) rollEnemies(n int) []*domain.CombatUnit {
	w := e.cfg.Waves
	count := w.EnemyCountBase + utils.UniformInt(e.rng, 0, w.EnemyCountSpread+n/w.EnemyCountWaveDivisor)
	enemies := make([]*domain.CombatUnit, 0, count)
	for i := 0; i < count; i++ {
		level := n + e.rng.Intn(w.EnemyLevelSpread)
		hp := w.EnemyHPBase + w.EnemyHPPerLevel*level
		enemies = append(enemies, &domain.CombatUnit{
			ID:      fmt.Sprintf(EnemyUnitFormat, n, i+1),
			Faction: domain.FactionEnemy,
			HP:      hp,
			MaxHP:   hp,
			Damage:  w.EnemyDamageBase + w.EnemyDamagePerLevel*level,
			Defense: level / w.EnemyDefenseDivisor,
			Name:    fmt.Sprintf(EnemyNameFormat, level),
			Level:   level,
		})
	}
	return enemies
}

func (e *Engine) playerUnit(acc *domain.Account) *domain.CombatUnit {
	s := e.deriver.Derive(acc)
	return &domain.CombatUnit{
		ID:      PlayerUnitPrefix + acc.Pseudonym,
		Faction: domain.FactionPlayer,
		HP:      s.HP,
		MaxHP:   s.HP,
		Damage:  s.Damage,
		Defense: s.Defense,
		Account: acc.Pseudonym,
	}
}

// settleVictory rolls loot and hands it to the receiver in one transfer.
// A failed transfer leaves the wave settled with the rewards undelivered.
func (e *Engine) settleVictory(ctx context.Context) (*domain.WaveCompleted, error) {
	log := logger.FromContext(ctx)

	rewards := e.loot.Roll(e.encounter.Faction(domain.FactionEnemy))
	receiver := e.fighters[0]
	done := &domain.WaveCompleted{Wave: e.wave, Receiver: receiver, Rewards: rewards}

	var transferErr error
	if len(rewards) > 0 {
		if err := e.store.ApplyInventoryDelta(ctx, receiver, rewards); err != nil {
			transferErr = fmt.Errorf("%w: %w", domain.ErrRewardTransferFailed, err)
			log.Error(LogMsgRewardTransferFailed, LogFieldReceiver, receiver, LogFieldWave, e.wave, LogFieldError, err)
		}
	}
	if transferErr == nil {
		done.Delivered = true
		e.totalLoot += len(rewards)
		if err := e.store.RaiseDungeonStage(ctx, receiver, e.wave); err != nil {
			log.Error(LogMsgStageUpdateFailed, LogFieldReceiver, receiver, LogFieldWave, e.wave, LogFieldError, err)
		}
	}

	e.status = domain.DungeonAwaitingDecision
	e.lastWave = done
	e.wavesWon++
	log.Info(LogMsgWaveWon, LogFieldWave, e.wave, LogFieldReceiver, receiver, LogFieldRewards, len(rewards))
	return done, transferErr
}
