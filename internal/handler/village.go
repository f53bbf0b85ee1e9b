package handler

import (
	"net/http"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/village"
)

// InteractRequest names a building, or a position to look one up at
type InteractRequest struct {
	Building string   `json:"building,omitempty" validate:"required_without_all=X Y,building"`
	X        *float64 `json:"x,omitempty" validate:"required_with=Y"`
	Y        *float64 `json:"y,omitempty" validate:"required_with=X"`
}

func (req InteractRequest) command() village.InteractWithBuilding {
	cmd := village.InteractWithBuilding{Building: domain.BuildingID(req.Building)}
	if cmd.Building == "" && req.X != nil && req.Y != nil {
		cmd.At = &domain.Point{X: *req.X, Y: *req.Y}
	}
	return cmd
}

// dispatchVillage decodes a command of type C from the body and runs it
func dispatchVillage[C village.Command](d *village.Dispatcher, optionalBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cmd C
		decodeFn := DecodeAndValidateRequest
		if optionalBody {
			decodeFn = DecodeOptionalRequest
		}
		if err := decodeFn(r, w, &cmd, cmd.Name()); err != nil {
			return
		}
		runVillage(w, r, d, cmd)
	}
}

func runVillage(w http.ResponseWriter, r *http.Request, d *village.Dispatcher, cmd village.Command) {
	res, err := d.Dispatch(r.Context(), cmd)
	if err != nil {
		respondServiceError(w, r, ActionVillage, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleSelectAccount makes an account the target of village actions
// @Summary Select account
// @Tags village
// @Accept json
// @Produce json
// @Param request body village.SelectAccount true "Account"
// @Success 200 {object} village.Result
// @Failure 404 {object} ErrorResponse
// @Router /village/select [post]
func HandleSelectAccount(d *village.Dispatcher) http.HandlerFunc {
	return dispatchVillage[village.SelectAccount](d, false)
}

// HandleJoinParty adds the selected account to the party
// @Summary Join party
// @Tags village
// @Produce json
// @Success 200 {object} village.Result
// @Failure 409 {object} ErrorResponse
// @Router /village/join [post]
func HandleJoinParty(d *village.Dispatcher) http.HandlerFunc {
	return dispatchVillage[village.JoinParty](d, true)
}

// HandleLeaveParty removes a member from the party
// @Summary Leave party
// @Tags village
// @Accept json
// @Produce json
// @Param request body village.LeaveParty true "Member"
// @Success 200 {object} village.Result
// @Failure 409 {object} ErrorResponse
// @Router /village/leave [post]
func HandleLeaveParty(d *village.Dispatcher) http.HandlerFunc {
	return dispatchVillage[village.LeaveParty](d, false)
}

// HandleMove walks the selected member
// @Summary Move
// @Tags village
// @Accept json
// @Produce json
// @Param request body village.Move true "Steps on each axis"
// @Success 200 {object} village.Result
// @Failure 409 {object} ErrorResponse
// @Router /village/move [post]
func HandleMove(d *village.Dispatcher) http.HandlerFunc {
	return dispatchVillage[village.Move](d, false)
}

// HandleVillageEquip toggles an item of the selected account
// @Summary Toggle equipment
// @Tags village
// @Accept json
// @Produce json
// @Param request body village.EquipItem true "Item"
// @Success 200 {object} village.Result
// @Failure 404 {object} ErrorResponse
// @Router /village/equip [post]
func HandleVillageEquip(d *village.Dispatcher) http.HandlerFunc {
	return dispatchVillage[village.EquipItem](d, false)
}

// HandleInteract uses a building
// @Summary Interact with a building
// @Description Names a building directly, or gives x/y to use the building at that point
// @Tags village
// @Accept json
// @Produce json
// @Param request body InteractRequest true "Building or position"
// @Success 200 {object} village.Result
// @Failure 422 {object} ErrorResponse
// @Router /village/interact [post]
func HandleInteract(d *village.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InteractRequest
		if err := DecodeAndValidateRequest(r, w, &req, village.CommandInteract); err != nil {
			return
		}
		runVillage(w, r, d, req.command())
	}
}

// HandleGetVillage returns the selection, party and buildings
// @Summary Village state
// @Tags village
// @Produce json
// @Success 200 {object} village.View
// @Router /village [get]
func HandleGetVillage(d *village.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, d.Session().Snapshot())
	}
}
