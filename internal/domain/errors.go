package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound   = "account not found"
	ErrMsgAccountExists     = "account already exists"
	ErrMsgNoAccountSelected = "no account selected"

	// Item errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgInventoryEmpty = "inventory is empty"

	// Party errors
	ErrMsgEmptyParty        = "party is empty"
	ErrMsgNotInParty        = "account is not in the party"
	ErrMsgNoPlayersSpawned  = "no party member could be spawned"
	ErrMsgUnknownBuilding   = "unknown building"
	ErrMsgNothingToInteract = "no building at that position"

	// Dungeon errors
	ErrMsgDungeonActive        = "a dungeon run is already active"
	ErrMsgNoActiveDungeon      = "no active dungeon run"
	ErrMsgNotAwaitingDecision  = "dungeon is not waiting for a decision"
	ErrMsgDungeonFinished      = "dungeon run has ended"
	ErrMsgWaveInProgress       = "wave is still in progress"
	ErrMsgAwaitingDecision     = "dungeon is waiting for a continue decision"
	ErrMsgRewardTransferFailed = "reward transfer failed"

	// Combat errors
	ErrMsgInvalidGrid = "invalid grid dimensions"
	ErrMsgRoundLimit  = "round limit reached"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Storage errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)
	ErrAccountExists     = errors.New(ErrMsgAccountExists)
	ErrNoAccountSelected = errors.New(ErrMsgNoAccountSelected)

	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrInventoryEmpty = errors.New(ErrMsgInventoryEmpty)

	ErrEmptyParty        = errors.New(ErrMsgEmptyParty)
	ErrNotInParty        = errors.New(ErrMsgNotInParty)
	ErrNoPlayersSpawned  = errors.New(ErrMsgNoPlayersSpawned)
	ErrUnknownBuilding   = errors.New(ErrMsgUnknownBuilding)
	ErrNothingToInteract = errors.New(ErrMsgNothingToInteract)

	ErrDungeonActive        = errors.New(ErrMsgDungeonActive)
	ErrNoActiveDungeon      = errors.New(ErrMsgNoActiveDungeon)
	ErrNotAwaitingDecision  = errors.New(ErrMsgNotAwaitingDecision)
	ErrDungeonFinished      = errors.New(ErrMsgDungeonFinished)
	ErrWaveInProgress       = errors.New(ErrMsgWaveInProgress)
	ErrAwaitingDecision     = errors.New(ErrMsgAwaitingDecision)
	ErrRewardTransferFailed = errors.New(ErrMsgRewardTransferFailed)

	ErrInvalidGrid = errors.New(ErrMsgInvalidGrid)
	ErrRoundLimit  = errors.New(ErrMsgRoundLimit)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrTxClosed = errors.New(ErrMsgTxClosed)
)

// preconditionErrors are rejected before any state changes
var preconditionErrors = []error{
	ErrAccountNotFound,
	ErrNoAccountSelected,
	ErrEmptyParty,
	ErrNotInParty,
	ErrNoPlayersSpawned,
	ErrDungeonActive,
	ErrNoActiveDungeon,
	ErrNotAwaitingDecision,
	ErrDungeonFinished,
	ErrWaveInProgress,
	ErrAwaitingDecision,
	ErrInventoryEmpty,
}

// IsPrecondition reports whether err is a precondition failure: the
// operation was refused and nothing was changed.
func IsPrecondition(err error) bool {
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
