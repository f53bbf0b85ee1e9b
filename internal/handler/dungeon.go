package handler

import (
	"net/http"

	"github.com/osse101/KubeRPG_Go/internal/dungeon"
	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// PartySource supplies the village party
type PartySource interface {
	Party() []string
}

// StartDungeonRequest may name the party explicitly; otherwise the village
// party enters
type StartDungeonRequest struct {
	Party []string `json:"party,omitempty" validate:"max=8,dive,required,max=64"`
}

// ContinueRequest is the decision after a won wave
type ContinueRequest struct {
	Continue *bool `json:"continue" validate:"required"`
}

// HandleStartDungeon starts a run
// @Summary Start dungeon
// @Tags dungeon
// @Accept json
// @Produce json
// @Param request body StartDungeonRequest false "Party override"
// @Success 201 {object} domain.DungeonSummary
// @Failure 409 {object} ErrorResponse
// @Router /dungeon/start [post]
func HandleStartDungeon(svc dungeon.Service, party PartySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartDungeonRequest
		if err := DecodeOptionalRequest(r, w, &req, ActionStartDungeon); err != nil {
			return
		}
		members := req.Party
		if len(members) == 0 {
			members = party.Party()
		}

		sum, err := svc.Start(r.Context(), members)
		if err != nil {
			respondServiceError(w, r, ActionStartDungeon, err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgDungeonStarted, LogFieldPartySize, len(members))
		respondJSON(w, http.StatusCreated, sum)
	}
}

// HandleAdvanceDungeon plays one round
// @Summary Advance one round
// @Tags dungeon
// @Produce json
// @Success 200 {object} dungeon.RoundReport
// @Failure 409 {object} ErrorResponse
// @Router /dungeon/advance [post]
func HandleAdvanceDungeon(svc dungeon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Advance(r.Context())
		if err != nil {
			respondServiceError(w, r, ActionAdvance, err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleContinueDungeon resolves the continue/stop decision
// @Summary Continue or leave
// @Tags dungeon
// @Accept json
// @Produce json
// @Param request body ContinueRequest true "Decision"
// @Success 200 {object} domain.DungeonSummary
// @Failure 409 {object} ErrorResponse
// @Router /dungeon/continue [post]
func HandleContinueDungeon(svc dungeon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContinueRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionContinue); err != nil {
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgDungeonDecision, LogFieldContinue, *req.Continue)

		sum, err := svc.Continue(r.Context(), *req.Continue)
		if err != nil {
			respondServiceError(w, r, ActionContinue, err)
			return
		}
		respondJSON(w, http.StatusOK, sum)
	}
}

// HandleGetDungeon reports the current or last run
// @Summary Dungeon status
// @Tags dungeon
// @Produce json
// @Success 200 {object} domain.DungeonSummary
// @Failure 409 {object} ErrorResponse
// @Router /dungeon [get]
func HandleGetDungeon(svc dungeon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Status(r.Context())
		if err != nil {
			respondServiceError(w, r, ActionDungeon, err)
			return
		}
		respondJSON(w, http.StatusOK, sum)
	}
}
