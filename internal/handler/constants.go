package handler

import "time"

// ============================================================================
// Client Error Messages
// ============================================================================

// Generic HTTP error messages for client responses. They never carry
// internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgAccountNotFoundError   = "Account not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgInventoryEmptyError    = "Inventory is empty"
	ErrMsgNoAccountSelectedError = "Select an account first"
	ErrMsgEmptyPartyError        = "The party is empty"
	ErrMsgNotInPartyError        = "That account is not in the party"
	ErrMsgNoPlayersSpawnedError  = "No party member could enter the dungeon"
	ErrMsgUnknownBuildingError   = "Unknown building"
	ErrMsgNothingToInteractError = "There is nothing to interact with here"
	ErrMsgDungeonActiveError     = "A dungeon run is already in progress"
	ErrMsgNoActiveDungeonError   = "No dungeon run is active"
	ErrMsgNotAwaitingError       = "The dungeon is not waiting for a decision"
	ErrMsgDungeonFinishedError   = "The dungeon run has ended"
	ErrMsgAwaitingDecisionError  = "Decide whether to continue first"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
)

// ============================================================================
// Validation Messages
// ============================================================================

const (
	ValidationMsgRequired = "This field is required"
	ValidationMsgMax      = "Must be at most %s"
	ValidationMsgMin      = "Must be at least %s"
	ValidationMsgColor    = "Must be a color name or #rrggbb"
	ValidationMsgSlot     = "Must be one of Sword, Orbe, Halo"
	ValidationMsgBuilding = "Must be one of forge, house, bar, donjon"
	ValidationMsgInvalid  = "Invalid value"
	ValidationMsgFormat   = "Invalid request format"
)

// ============================================================================
// Health
// ============================================================================

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStorageFailed  = "storage unreachable"
	ReadinessTimeout        = 2 * time.Second
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestInvalid    = "Request failed validation"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceError      = "Service call failed"
	LogMsgRequestRejected   = "Request rejected"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgAccountRegistered = "Account registered via API"
	LogMsgDungeonStarted    = "Dungeon started via API"
	LogMsgDungeonDecision   = "Dungeon continue decision"
)

// Log field keys
const (
	LogFieldAction    = "action"
	LogFieldError     = "error"
	LogFieldStatus    = "status"
	LogFieldPseudonym = "pseudonym"
	LogFieldCreated   = "created"
	LogFieldPartySize = "party_size"
	LogFieldContinue  = "continue"
)

// ============================================================================
// Routing
// ============================================================================

// URL parameter names
const (
	ParamPseudonym = "pseudonym"
)

// Action names used in logs
const (
	ActionRegister     = "Register account"
	ActionListAccounts = "List accounts"
	ActionGetAccount   = "Get account"
	ActionStats        = "Account stats"
	ActionEquip        = "Equip item"
	ActionUnequip      = "Unequip slot"
	ActionForge        = "Forge item"
	ActionVillage      = "Village command"
	ActionStartDungeon = "Start dungeon"
	ActionAdvance      = "Advance dungeon"
	ActionContinue     = "Continue dungeon"
	ActionDungeon      = "Dungeon status"
)
