package dungeon

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/metrics"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// Service runs at most one dungeon at a time and publishes everything that
// happens in it
type Service interface {
	Start(ctx context.Context, party []string) (*domain.DungeonSummary, error)
	Advance(ctx context.Context) (*RoundReport, error)
	Continue(ctx context.Context, yes bool) (*domain.DungeonSummary, error)
	Status(ctx context.Context) (*domain.DungeonSummary, error)
	AutoAdvance(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Staging moves party members back to the village staging point. hp holds
// the remaining hit points of every member that fought.
type Staging interface {
	ReturnToStaging(ctx context.Context, pseudonyms []string, hp map[string]int)
}

// RandomFactory supplies the random source for a new run
type RandomFactory func() utils.Random

// RoundReport is the result of one Advance call
type RoundReport struct {
	Events        []domain.CombatEvent  `json:"events"`
	Summary       domain.DungeonSummary `json:"summary"`
	TransferError string                `json:"transfer_error,omitempty"`
}

type service struct {
	cfg       Config
	store     AccountStore
	eventBus  event.Bus
	publisher EventPublisher
	staging   Staging
	newRandom RandomFactory

	mu        sync.Mutex
	engine    *Engine
	dungeonID string
}

// NewService creates a new dungeon service. publisher and staging may be nil.
func NewService(
	cfg Config,
	store AccountStore,
	eventBus event.Bus,
	publisher EventPublisher,
	staging Staging,
	newRandom RandomFactory,
) Service {
	if newRandom == nil {
		newRandom = func() utils.Random { return utils.NewRandom(time.Now().UnixNano()) }
	}
	return &service{
		cfg:       cfg,
		store:     store,
		eventBus:  eventBus,
		publisher: publisher,
		staging:   staging,
		newRandom: newRandom,
	}
}

// Start begins a run with the given party
func (s *service) Start(ctx context.Context, party []string) (*domain.DungeonSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil && !s.engine.Status().Terminal() {
		return nil, domain.ErrDungeonActive
	}

	dungeonID := uuid.NewString()
	ctx = logger.WithDungeonID(ctx, dungeonID)

	engine := NewEngine(s.cfg, party, s.store, s.newRandom())
	start, err := engine.Start(ctx)
	if err != nil {
		return nil, err
	}

	s.engine = engine
	s.dungeonID = dungeonID
	metrics.DungeonsStarted.Inc()
	metrics.DungeonActive.Set(1)

	logger.FromContext(ctx).Info(LogMsgDungeonStarted, LogFieldPlayers, engine.Fighters())
	s.publishWaveStarted(ctx, start)
	return s.summaryLocked(), nil
}

// Advance plays one round of the current wave
func (s *service) Advance(ctx context.Context) (*RoundReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, domain.ErrNoActiveDungeon
	}
	return s.advanceLocked(ctx)
}

// AutoAdvance plays a round only while a wave is being fought. It is the
// entry point for the pacing job.
func (s *service) AutoAdvance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil || s.engine.Status() != domain.DungeonFighting {
		return nil
	}
	_, err := s.advanceLocked(ctx)
	return err
}

// Continue resolves the decision after a won wave
func (s *service) Continue(ctx context.Context, yes bool) (*domain.DungeonSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, domain.ErrNoActiveDungeon
	}
	ctx = logger.WithDungeonID(ctx, s.dungeonID)

	start, err := s.engine.Continue(ctx, yes)
	if err != nil {
		return nil, err
	}
	if start != nil {
		s.publishWaveStarted(ctx, start)
	} else {
		s.finishLocked(ctx)
	}
	return s.summaryLocked(), nil
}

// Status reports the current or most recent run
func (s *service) Status(ctx context.Context) (*domain.DungeonSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, domain.ErrNoActiveDungeon
	}
	return s.summaryLocked(), nil
}

// Shutdown waits for the in-flight operation, if any, to release the
// service. On ctx expiry the waiting goroutine exits once that operation ends.
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) advanceLocked(ctx context.Context) (*RoundReport, error) {
	ctx = logger.WithDungeonID(ctx, s.dungeonID)

	started := time.Now()
	res, err := s.engine.Tick(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RoundDuration.Observe(time.Since(started).Seconds())

	wave := s.engine.Wave()
	for _, ev := range res.Events {
		if evt, ok := event.NewCombatEvent(s.dungeonID, wave, ev); ok {
			s.publish(ctx, evt)
		}
	}
	s.publish(ctx, event.NewSnapshotEvent(s.dungeonID, wave, res.Snapshot))

	report := &RoundReport{Events: res.Events}
	switch {
	case res.Completed != nil:
		s.returnToStaging(ctx)
		s.publishReliable(ctx, event.NewWaveCompletedEvent(s.dungeonID, *res.Completed))
		if res.TransferErr != nil {
			report.TransferError = res.TransferErr.Error()
		}
	case res.Status == domain.DungeonFailed:
		s.publishReliable(ctx, event.NewDefeatEvent(s.dungeonID, wave))
		s.finishLocked(ctx)
	}

	report.Summary = *s.summaryLocked()
	return report, nil
}

// finishLocked publishes the end of the run and releases the party
func (s *service) finishLocked(ctx context.Context) {
	s.returnToStaging(ctx)
	metrics.DungeonActive.Set(0)

	round := 0
	if enc := s.engine.Encounter(); enc != nil {
		round = enc.Round
	}
	sum := s.engine.Summary()
	s.publishReliable(ctx, event.NewDungeonEndedEvent(domain.DungeonEndedPayload{
		DungeonID:  s.dungeonID,
		Party:      sum.Party,
		Status:     sum.Status,
		WavesWon:   s.engine.WavesWon(),
		TotalLoot:  sum.TotalLoot,
		FinalRound: round,
	}))
}

func (s *service) returnToStaging(ctx context.Context) {
	if s.staging == nil {
		return
	}
	hp := make(map[string]int)
	if enc := s.engine.Encounter(); enc != nil {
		for _, u := range enc.Faction(domain.FactionPlayer) {
			hp[u.Account] = u.DisplayHP()
		}
	}
	s.staging.ReturnToStaging(ctx, s.engine.Party(), hp)
}

func (s *service) publishWaveStarted(ctx context.Context, start *WaveStart) {
	enemies := make([]domain.UnitView, 0, len(start.Enemies))
	for _, view := range start.Snapshot.Units {
		if view.Faction == domain.FactionEnemy {
			enemies = append(enemies, view)
		}
	}
	s.publish(ctx, event.NewWaveStartedEvent(domain.WaveStartedPayload{
		DungeonID: s.dungeonID,
		Wave:      start.Wave,
		Enemies:   enemies,
		Skipped:   start.Skipped,
		Snapshot:  start.Snapshot,
	}))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, LogFieldEventType, evt.Type, LogFieldError, err)
	}
}

// publishReliable routes outcome events through the retrying publisher when
// one is configured
func (s *service) publishReliable(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
		return
	}
	s.publish(ctx, evt)
}

func (s *service) summaryLocked() *domain.DungeonSummary {
	sum := s.engine.Summary()
	sum.ID = s.dungeonID
	return &sum
}
