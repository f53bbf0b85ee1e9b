package account

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/osse101/KubeRPG_Go/internal/concurrency"
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/repository"
	"github.com/osse101/KubeRPG_Go/internal/stats"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, pseudonym, color string) (*domain.Account, bool, error)
	GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	Stats(ctx context.Context, pseudonym string) (domain.DerivedStats, error)

	// Equipment
	Equip(ctx context.Context, pseudonym, itemID string) (*domain.Account, error)
	Unequip(ctx context.Context, pseudonym string, slot domain.ItemType) (*domain.Account, error)
	ToggleEquip(ctx context.Context, pseudonym, itemID string) (*domain.Account, error)

	// Forge upgrades one item. An empty itemID picks a random inventory item.
	Forge(ctx context.Context, pseudonym, itemID string) (*domain.Item, error)

	// Dungeon settlement
	ApplyInventoryDelta(ctx context.Context, pseudonym string, items []domain.Item) error
	RaiseDungeonStage(ctx context.Context, pseudonym string, stage int) error

	Save(ctx context.Context, pseudonym string) error
	Reset(ctx context.Context) (int64, error)
	GetCacheStats() CacheStats
}

type service struct {
	repo     repository.Account
	eventBus event.Bus
	deriver  *stats.Deriver
	rng      utils.Random
	locks    *concurrency.LockManager
	cache    *accountCache

	// serializes Reset against every per-account mutation
	resetMu sync.RWMutex
}

// NewService creates a new account service. eventBus may be nil.
func NewService(repo repository.Account, eventBus event.Bus, statsCfg stats.Config, rng utils.Random, cacheCfg CacheConfig) Service {
	if rng == nil {
		rng = utils.NewLockedRandom(utils.GlobalRandom())
	}
	return &service{
		repo:     repo,
		eventBus: eventBus,
		deriver:  stats.NewDeriver(statsCfg),
		rng:      rng,
		locks:    concurrency.NewLockManager(),
		cache:    newAccountCache(cacheCfg),
	}
}

// Register creates the account with its starter items. Registering a taken
// pseudonym returns the stored account unchanged with created=false.
func (s *service) Register(ctx context.Context, pseudonym, color string) (*domain.Account, bool, error) {
	pseudonym = strings.TrimSpace(pseudonym)
	if pseudonym == "" || len(pseudonym) > MaxPseudonymLength {
		return nil, false, fmt.Errorf("%w: pseudonym must be 1-%d characters", domain.ErrInvalidInput, MaxPseudonymLength)
	}

	s.resetMu.RLock()
	defer s.resetMu.RUnlock()

	acc := domain.NewAccount(pseudonym, color)
	created, err := s.repo.CreateAccount(ctx, acc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register account: %w", err)
	}
	if !created {
		existing, err := s.GetAccount(ctx, pseudonym)
		return existing, false, err
	}

	s.cache.Set(acc)
	logger.FromContext(ctx).Info(LogMsgAccountRegistered, LogFieldPseudonym, pseudonym)
	s.publish(ctx, event.NewAccountRegisteredEvent(pseudonym, color))
	return acc, true, nil
}

// GetAccount loads an account, served from cache when fresh
func (s *service) GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error) {
	if acc, ok := s.cache.Get(pseudonym); ok {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, LogFieldPseudonym, pseudonym)
		return acc, nil
	}

	acc, err := s.repo.GetAccount(ctx, pseudonym)
	if err != nil {
		return nil, err
	}
	acc.Normalize()
	s.cache.Set(acc)
	return acc, nil
}

// ListAccounts returns every account in creation order
func (s *service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Stats derives the account's effective combat stats
func (s *service) Stats(ctx context.Context, pseudonym string) (domain.DerivedStats, error) {
	acc, err := s.GetAccount(ctx, pseudonym)
	if err != nil {
		return domain.DerivedStats{}, err
	}
	return s.deriver.Derive(acc), nil
}

// Equip puts an inventory item into its slot, displacing the previous item
func (s *service) Equip(ctx context.Context, pseudonym, itemID string) (*domain.Account, error) {
	var equipped domain.Item
	acc, err := s.update(ctx, pseudonym, func(acc *domain.Account) error {
		if err := acc.Equip(itemID); err != nil {
			return fmt.Errorf("%w: %s", err, itemID)
		}
		equipped = acc.Inventory[acc.FindItem(itemID)]
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemEquipped, LogFieldPseudonym, pseudonym, LogFieldItemID, itemID)
	s.publish(ctx, event.NewItemEquippedEvent(pseudonym, equipped.Type, &equipped, true))
	return acc, nil
}

// Unequip empties a slot. Unequipping an empty slot is a no-op.
func (s *service) Unequip(ctx context.Context, pseudonym string, slot domain.ItemType) (*domain.Account, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidInput, slot)
	}

	var removed *domain.Item
	acc, err := s.update(ctx, pseudonym, func(acc *domain.Account) error {
		if it, ok := acc.EquippedItem(slot); ok {
			removed = &it
		}
		acc.Unequip(slot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed != nil {
		removed.Equipped = false
		logger.FromContext(ctx).Info(LogMsgItemUnequipped, LogFieldPseudonym, pseudonym, LogFieldSlot, slot)
		s.publish(ctx, event.NewItemEquippedEvent(pseudonym, slot, removed, false))
	}
	return acc, nil
}

// ToggleEquip unequips the item if it is equipped, otherwise equips it
func (s *service) ToggleEquip(ctx context.Context, pseudonym, itemID string) (*domain.Account, error) {
	acc, err := s.GetAccount(ctx, pseudonym)
	if err != nil {
		return nil, err
	}
	idx := acc.FindItem(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if acc.Inventory[idx].Equipped {
		return s.Unequip(ctx, pseudonym, acc.Inventory[idx].Type)
	}
	return s.Equip(ctx, pseudonym, itemID)
}

// Forge upgrades one item's power
func (s *service) Forge(ctx context.Context, pseudonym, itemID string) (*domain.Item, error) {
	var forged domain.Item
	var oldPower int
	_, err := s.update(ctx, pseudonym, func(acc *domain.Account) error {
		if len(acc.Inventory) == 0 {
			return domain.ErrInventoryEmpty
		}

		var idx int
		if itemID == "" {
			idx = s.rng.Intn(len(acc.Inventory))
		} else if idx = acc.FindItem(itemID); idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}

		oldPower = acc.Inventory[idx].Power
		acc.Inventory[idx].Power = ForgedPower(oldPower)
		forged = acc.Inventory[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemForged,
		LogFieldPseudonym, pseudonym, LogFieldItemID, forged.ID, LogFieldOldPower, oldPower, LogFieldPower, forged.Power)
	s.publish(ctx, event.NewItemForgedEvent(pseudonym, forged, oldPower))
	return &forged, nil
}

// ApplyInventoryDelta appends items to the account's inventory in one
// transaction. New items are always unequipped.
func (s *service) ApplyInventoryDelta(ctx context.Context, pseudonym string, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	_, err := s.update(ctx, pseudonym, func(acc *domain.Account) error {
		for _, it := range items {
			it.Equipped = false
			acc.Inventory = append(acc.Inventory, it)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgInventoryDelta, LogFieldPseudonym, pseudonym, LogFieldCount, len(items))
	return nil
}

// RaiseDungeonStage records stage as the highest cleared wave if it beats
// the current record
func (s *service) RaiseDungeonStage(ctx context.Context, pseudonym string, stage int) error {
	raised := false
	_, err := s.update(ctx, pseudonym, func(acc *domain.Account) error {
		if stage > acc.Progress.DungeonStage {
			acc.Progress.DungeonStage = stage
			raised = true
		}
		return nil
	})
	if err == nil && raised {
		logger.FromContext(ctx).Info(LogMsgDungeonStageRaised, LogFieldPseudonym, pseudonym, LogFieldStage, stage)
	}
	return err
}

// Save writes the account back through the repository
func (s *service) Save(ctx context.Context, pseudonym string) error {
	_, err := s.update(ctx, pseudonym, func(*domain.Account) error { return nil })
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgAccountSaved, LogFieldPseudonym, pseudonym)
	return nil
}

// Reset deletes every account
func (s *service) Reset(ctx context.Context) (int64, error) {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	n, err := s.repo.DeleteAllAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset accounts: %w", err)
	}
	s.cache.Clear()
	s.locks.Clear()
	logger.FromContext(ctx).Warn(LogMsgAccountsReset, LogFieldCount, n)
	return n, nil
}

// GetCacheStats reports account cache effectiveness
func (s *service) GetCacheStats() CacheStats {
	return s.cache.GetStats()
}

// update runs fn against the stored account under the per-account lock and
// a repository transaction. Nothing is written when fn fails.
func (s *service) update(ctx context.Context, pseudonym string, fn func(*domain.Account) error) (*domain.Account, error) {
	s.resetMu.RLock()
	defer s.resetMu.RUnlock()

	var updated *domain.Account
	err := s.locks.WithLock(pseudonym, func() error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return err
		}
		defer repository.SafeRollback(ctx, tx)

		acc, err := tx.GetAccountForUpdate(ctx, pseudonym)
		if err != nil {
			return err
		}
		acc.Normalize()

		if err := fn(acc); err != nil {
			return err
		}
		if err := tx.SaveAccount(ctx, acc); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		s.cache.Set(acc)
		updated = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, LogFieldEventType, evt.Type, LogFieldError, err)
	}
}

// ForgedPower is the power of an item after one forge pass
func ForgedPower(power int) int {
	return utils.CeilStat(float64(power)*ForgeMultiplier + ForgeBonus)
}
