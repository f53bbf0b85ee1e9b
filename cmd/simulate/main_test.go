package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

func TestSimulate_Reproducible(t *testing.T) {
	opts := options{seed: 42, party: []string{"alice", "bob"}, waves: 2}

	first, err := simulate(context.Background(), opts)
	require.NoError(t, err)
	second, err := simulate(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, first.Summary.Status.Terminal())
	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, first.WavesWon, second.WavesWon)
	assert.Equal(t, first.Summary.Status, second.Summary.Status)
	assert.Equal(t, first.Summary.TotalLoot, second.Summary.TotalLoot)
	assert.LessOrEqual(t, first.WavesWon, opts.waves)
	assert.Len(t, first.Accounts, 2)
}

func TestSimulate_EmptyParty(t *testing.T) {
	_, err := simulate(context.Background(), options{seed: 1})

	assert.ErrorIs(t, err, domain.ErrEmptyParty)
}

func TestSplitParty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitParty(" a, ,b,"))
	assert.Empty(t, splitParty(""))
}

func TestReport_RoundTripsThroughFile(t *testing.T) {
	rep, err := simulate(context.Background(), options{seed: 7, party: []string{"alice"}, waves: 1})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, utils.SaveJSON(path, rep))

	var loaded report
	require.NoError(t, utils.LoadJSON(path, &loaded))
	assert.Equal(t, rep.Rounds, loaded.Rounds)
	assert.Equal(t, rep.Summary.Status, loaded.Summary.Status)
}
