package account

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Forge
// ============================================================================

// Forged power = ceil(power * ForgeMultiplier + ForgeBonus)
const (
	ForgeMultiplier = 1.2
	ForgeBonus      = 1.0
)

// ============================================================================
// Validation
// ============================================================================

// MaxPseudonymLength bounds pseudonyms to what the account table stores
const MaxPseudonymLength = 64

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAccountRegistered  = "Account registered"
	LogMsgAccountSaved       = "Account saved"
	LogMsgItemEquipped       = "Item equipped"
	LogMsgItemUnequipped     = "Item unequipped"
	LogMsgItemForged         = "Item forged"
	LogMsgInventoryDelta     = "Items added to inventory"
	LogMsgDungeonStageRaised = "Dungeon stage raised"
	LogMsgEventPublishFailed = "Failed to publish account event"
	LogMsgAccountsReset      = "All accounts deleted"
	LogMsgCacheHit           = "Account cache hit"
)

// Log field keys for structured logging
const (
	LogFieldPseudonym = "pseudonym"
	LogFieldItemID    = "item_id"
	LogFieldSlot      = "slot"
	LogFieldPower     = "power"
	LogFieldOldPower  = "old_power"
	LogFieldCount     = "count"
	LogFieldStage     = "stage"
	LogFieldError     = "error"
	LogFieldEventType = "event_type"
)
