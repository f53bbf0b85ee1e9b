package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/dungeon"
)

// MockDungeonService mocks dungeon.Service
type MockDungeonService struct {
	mock.Mock
}

func (m *MockDungeonService) Start(ctx context.Context, party []string) (*domain.DungeonSummary, error) {
	args := m.Called(ctx, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DungeonSummary), args.Error(1)
}

func (m *MockDungeonService) Advance(ctx context.Context) (*dungeon.RoundReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dungeon.RoundReport), args.Error(1)
}

func (m *MockDungeonService) Continue(ctx context.Context, yes bool) (*domain.DungeonSummary, error) {
	args := m.Called(ctx, yes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DungeonSummary), args.Error(1)
}

func (m *MockDungeonService) Status(ctx context.Context) (*domain.DungeonSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DungeonSummary), args.Error(1)
}

func (m *MockDungeonService) AutoAdvance(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDungeonService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type staticParty []string

func (p staticParty) Party() []string { return p }

func dungeonRouter(svc dungeon.Service, party PartySource) http.Handler {
	r := chi.NewRouter()
	r.Get("/dungeon", HandleGetDungeon(svc))
	r.Post("/dungeon/start", HandleStartDungeon(svc, party))
	r.Post("/dungeon/advance", HandleAdvanceDungeon(svc))
	r.Post("/dungeon/continue", HandleContinueDungeon(svc))
	return r
}

func TestHandleStartDungeon(t *testing.T) {
	fighting := &domain.DungeonSummary{ID: "d1", Party: []string{"alice"}, Wave: 1, Status: domain.DungeonFighting}

	t.Run("village party", func(t *testing.T) {
		svc := new(MockDungeonService)
		svc.On("Start", mock.Anything, []string{"alice"}).Return(fighting, nil)

		w := do(t, dungeonRouter(svc, staticParty{"alice"}), http.MethodPost, "/dungeon/start", "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "d1", decodeBody[domain.DungeonSummary](t, w).ID)
		svc.AssertExpectations(t)
	})

	t.Run("explicit party", func(t *testing.T) {
		svc := new(MockDungeonService)
		svc.On("Start", mock.Anything, []string{"bob", "carol"}).Return(fighting, nil)

		w := do(t, dungeonRouter(svc, staticParty{"alice"}), http.MethodPost, "/dungeon/start", `{"party":["bob","carol"]}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("already running", func(t *testing.T) {
		svc := new(MockDungeonService)
		svc.On("Start", mock.Anything, mock.Anything).Return(nil, domain.ErrDungeonActive)

		w := do(t, dungeonRouter(svc, staticParty{"alice"}), http.MethodPost, "/dungeon/start", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgDungeonActiveError)
	})
}

func TestHandleAdvanceDungeon(t *testing.T) {
	svc := new(MockDungeonService)
	report := &dungeon.RoundReport{
		Events:  []domain.CombatEvent{{Kind: domain.CombatEventRound, Round: 1}},
		Summary: domain.DungeonSummary{ID: "d1", Status: domain.DungeonFighting},
	}
	svc.On("Advance", mock.Anything).Return(report, nil).Once()
	svc.On("Advance", mock.Anything).Return(nil, fmt.Errorf("advance: %w", domain.ErrAwaitingDecision)).Once()
	h := dungeonRouter(svc, staticParty{})

	w := do(t, h, http.MethodPost, "/dungeon/advance", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[dungeon.RoundReport](t, w).Events, 1)

	w = do(t, h, http.MethodPost, "/dungeon/advance", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgAwaitingDecisionError)
}

func TestHandleContinueDungeon(t *testing.T) {
	svc := new(MockDungeonService)
	svc.On("Continue", mock.Anything, false).Return(&domain.DungeonSummary{ID: "d1", Status: domain.DungeonCompleted}, nil)
	h := dungeonRouter(svc, staticParty{})

	w := do(t, h, http.MethodPost, "/dungeon/continue", `{"continue":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.DungeonCompleted, decodeBody[domain.DungeonSummary](t, w).Status)

	// the decision is required, false is not assumed
	w = do(t, h, http.MethodPost, "/dungeon/continue", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "Continue", 1)
}

func TestHandleGetDungeon(t *testing.T) {
	svc := new(MockDungeonService)
	svc.On("Status", mock.Anything).Return(nil, domain.ErrNoActiveDungeon)

	w := do(t, dungeonRouter(svc, staticParty{}), http.MethodGet, "/dungeon", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgNoActiveDungeonError)
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", domain.ErrItemNotFound), http.StatusNotFound},
		{domain.ErrEmptyParty, http.StatusConflict},
		{domain.ErrNotAwaitingDecision, http.StatusConflict},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrNothingToInteract, http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		code, msg := mapServiceError(tt.err)
		assert.Equal(t, tt.code, code, "%v", tt.err)
		assert.NotEmpty(t, msg)
	}
}
