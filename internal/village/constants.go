package village

// ============================================================================
// Map
// ============================================================================

// Village canvas size in pixels. Positions are clamped to it.
const (
	MapWidth  = 800.0
	MapHeight = 600.0
)

// MoveStep is the distance one Move step covers, in pixels
const MoveStep = 8.0

// SpawnJitter is the maximum offset from the staging point on each axis
// when a player joins the party
const SpawnJitter = 20.0

// ============================================================================
// Building Names
// ============================================================================

const (
	BuildingNameForge  = "forge"
	BuildingNameHouse  = "maison"
	BuildingNameBar    = "bar"
	BuildingNameDonjon = "donjon"
)

// ============================================================================
// Command Names
// ============================================================================

const (
	CommandSelectAccount = "select_account"
	CommandJoinParty     = "join_party"
	CommandLeaveParty    = "leave_party"
	CommandMove          = "move"
	CommandInteract      = "interact"
	CommandEquipItem     = "equip_item"
)

// Metric outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAccountSelected  = "Village account selected"
	LogMsgPartyJoined      = "Player joined the party"
	LogMsgPartyLeft        = "Player left the party"
	LogMsgPartyHealed      = "Party healed at the bar"
	LogMsgReturnedStaging  = "Party returned to staging"
	LogMsgBuildingUsed     = "Building used"
	LogMsgCommandFailed    = "Village command failed"
	LogMsgCommandRejected  = "Village command rejected"
	LogMsgCommandCompleted = "Village command completed"
	LogMsgHealSkipped      = "Could not derive stats, member not healed"
)

// Log field keys for structured logging
const (
	LogFieldPseudonym = "pseudonym"
	LogFieldBuilding  = "building"
	LogFieldCommand   = "command"
	LogFieldPartySize = "party_size"
	LogFieldError     = "error"
	LogFieldDuration  = "duration"
)
