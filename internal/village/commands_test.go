package village

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/metrics"
	"github.com/osse101/KubeRPG_Go/internal/testing/fakerand"
)

func TestDispatch_PartyFlow(t *testing.T) {
	accounts := knownAccounts("alice")
	accounts.On("Save", mock.Anything, "alice").Return(nil)
	d := NewDispatcher(NewSession(accounts, nil, fakerand.New()))
	ctx := context.Background()

	res, err := d.Dispatch(ctx, SelectAccount{Pseudonym: "alice"})
	require.NoError(t, err)
	assert.Equal(t, CommandSelectAccount, res.Command)
	assert.Equal(t, "alice", res.View.Selected)

	res, err = d.Dispatch(ctx, JoinParty{})
	require.NoError(t, err)
	require.Len(t, res.View.Party, 1)
	assert.IsType(t, &Player{}, res.Output)

	res, err = d.Dispatch(ctx, Move{DX: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.Point{X: 388, Y: 480}, res.Output)

	res, err = d.Dispatch(ctx, InteractWithBuilding{At: &domain.Point{X: 700, Y: 500}})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Output.(*Interaction).Saved)

	res, err = d.Dispatch(ctx, LeaveParty{Pseudonym: "alice"})
	require.NoError(t, err)
	assert.Empty(t, res.View.Party)
	assert.Len(t, res.View.Buildings, len(Buildings))
}

func TestDispatch_EquipItem(t *testing.T) {
	accounts := knownAccounts("alice")
	acc := domain.NewAccount("alice", "red")
	accounts.On("ToggleEquip", mock.Anything, "alice", "sword-1").Return(acc, nil)
	d := NewDispatcher(NewSession(accounts, nil, nil))
	_, err := d.Dispatch(context.Background(), SelectAccount{Pseudonym: "alice"})
	require.NoError(t, err)

	res, err := d.Dispatch(context.Background(), EquipItem{ItemID: "sword-1"})

	require.NoError(t, err)
	assert.Same(t, acc, res.Output)
}

func TestDispatch_CountsOutcomes(t *testing.T) {
	accounts := new(MockAccounts)
	accounts.On("Forge", mock.Anything, "alice", "").Return(nil, assert.AnError)
	accounts.On("GetAccount", mock.Anything, "alice").Return(domain.NewAccount("alice", ""), nil)
	d := NewDispatcher(NewSession(accounts, nil, nil))

	rejectedBefore := testutil.ToFloat64(metrics.VillageCommands.WithLabelValues(CommandLeaveParty, OutcomeRejected))
	failedBefore := testutil.ToFloat64(metrics.VillageCommands.WithLabelValues(CommandInteract, OutcomeError))

	_, err := d.Dispatch(context.Background(), LeaveParty{Pseudonym: "nobody"})
	assert.ErrorIs(t, err, domain.ErrNotInParty)

	_, err = d.Dispatch(context.Background(), SelectAccount{Pseudonym: "alice"})
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), InteractWithBuilding{Building: domain.BuildingForge})
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(metrics.VillageCommands.WithLabelValues(CommandLeaveParty, OutcomeRejected)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.VillageCommands.WithLabelValues(CommandInteract, OutcomeError)))
}
