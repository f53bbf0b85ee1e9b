package village

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/metrics"
)

// Command is one player action against the village
type Command interface {
	Name() string
	Execute(ctx context.Context, s *Session) (any, error)
}

// SelectAccount makes an account the target of village actions
type SelectAccount struct {
	Pseudonym string `json:"pseudonym" validate:"required,max=64"`
}

func (SelectAccount) Name() string { return CommandSelectAccount }

func (c SelectAccount) Execute(ctx context.Context, s *Session) (any, error) {
	return nil, s.Select(ctx, c.Pseudonym)
}

// JoinParty adds the selected account to the party
type JoinParty struct{}

func (JoinParty) Name() string { return CommandJoinParty }

func (JoinParty) Execute(ctx context.Context, s *Session) (any, error) {
	return s.JoinParty(ctx)
}

// LeaveParty removes a member from the party
type LeaveParty struct {
	Pseudonym string `json:"pseudonym" validate:"required,max=64"`
}

func (LeaveParty) Name() string { return CommandLeaveParty }

func (c LeaveParty) Execute(ctx context.Context, s *Session) (any, error) {
	return nil, s.LeaveParty(ctx, c.Pseudonym)
}

// Move walks the selected member by whole steps
type Move struct {
	DX int `json:"dx" validate:"min=-10,max=10"`
	DY int `json:"dy" validate:"min=-10,max=10"`
}

func (Move) Name() string { return CommandMove }

func (c Move) Execute(ctx context.Context, s *Session) (any, error) {
	return s.Move(ctx, c.DX, c.DY)
}

// InteractWithBuilding uses a building, named directly or found under At
type InteractWithBuilding struct {
	Building domain.BuildingID `json:"building,omitempty"`
	At       *domain.Point     `json:"at,omitempty"`
}

func (InteractWithBuilding) Name() string { return CommandInteract }

func (c InteractWithBuilding) Execute(ctx context.Context, s *Session) (any, error) {
	if c.Building == "" && c.At != nil {
		return s.InteractAt(ctx, *c.At)
	}
	return s.Interact(ctx, c.Building)
}

// EquipItem toggles an item of the selected account
type EquipItem struct {
	ItemID string `json:"item_id" validate:"required"`
}

func (EquipItem) Name() string { return CommandEquipItem }

func (c EquipItem) Execute(ctx context.Context, s *Session) (any, error) {
	return s.EquipItem(ctx, c.ItemID)
}

// Result is what a dispatched command produced along with the village
// state after it ran
type Result struct {
	Command string `json:"command"`
	Output  any    `json:"output,omitempty"`
	View    View   `json:"village"`
}

// Dispatcher runs commands against one session
type Dispatcher struct {
	session *Session
}

// NewDispatcher creates a dispatcher for session
func NewDispatcher(session *Session) *Dispatcher {
	return &Dispatcher{session: session}
}

// Session returns the session commands run against
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Dispatch executes cmd, logging and counting the outcome
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (*Result, error) {
	log := logger.FromContext(ctx)
	started := time.Now()

	out, err := cmd.Execute(ctx, d.session)
	switch {
	case err == nil:
		metrics.VillageCommands.WithLabelValues(cmd.Name(), OutcomeOK).Inc()
		log.Debug(LogMsgCommandCompleted, LogFieldCommand, cmd.Name(), LogFieldDuration, time.Since(started))
	case rejected(err):
		metrics.VillageCommands.WithLabelValues(cmd.Name(), OutcomeRejected).Inc()
		log.Info(LogMsgCommandRejected, LogFieldCommand, cmd.Name(), LogFieldError, err)
		return nil, err
	default:
		metrics.VillageCommands.WithLabelValues(cmd.Name(), OutcomeError).Inc()
		log.Error(LogMsgCommandFailed, LogFieldCommand, cmd.Name(), LogFieldError, err)
		return nil, err
	}

	return &Result{Command: cmd.Name(), Output: out, View: d.session.Snapshot()}, nil
}

// rejected reports errors caused by the request rather than the system
func rejected(err error) bool {
	return domain.IsPrecondition(err) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrItemNotFound) ||
		errors.Is(err, domain.ErrUnknownBuilding) ||
		errors.Is(err, domain.ErrNothingToInteract)
}
