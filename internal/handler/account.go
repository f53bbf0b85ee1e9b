package handler

import (
	"net/http"

	"github.com/osse101/KubeRPG_Go/internal/account"
	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// RegisterAccountRequest is the body of POST /accounts
type RegisterAccountRequest struct {
	Pseudonym string `json:"pseudonym" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Color     string `json:"color" validate:"required,color"`
}

// RegisterAccountResponse reports whether the account is new
type RegisterAccountResponse struct {
	Account *domain.Account `json:"account"`
	Created bool            `json:"created"`
}

// EquipRequest names an inventory item
type EquipRequest struct {
	ItemID string `json:"item_id" validate:"required,max=64"`
}

// UnequipRequest names an equipment slot
type UnequipRequest struct {
	Slot string `json:"slot" validate:"required,slot"`
}

// ForgeRequest optionally names the item to upgrade
type ForgeRequest struct {
	ItemID string `json:"item_id,omitempty" validate:"max=64"`
}

// HandleRegisterAccount creates an account with the starter items
// @Summary Register account
// @Description Creates an account. Registering an existing pseudonym returns it unchanged.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body RegisterAccountRequest true "Account details"
// @Success 201 {object} RegisterAccountResponse
// @Success 200 {object} RegisterAccountResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /accounts [post]
func HandleRegisterAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionRegister); err != nil {
			return
		}

		acc, created, err := svc.Register(r.Context(), req.Pseudonym, req.Color)
		if err != nil {
			respondServiceError(w, r, ActionRegister, err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgAccountRegistered, LogFieldPseudonym, acc.Pseudonym, LogFieldCreated, created)
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		respondJSON(w, status, RegisterAccountResponse{Account: acc, Created: created})
	}
}

// HandleListAccounts returns every account
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} domain.Account
// @Router /accounts [get]
func HandleListAccounts(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.ListAccounts(r.Context())
		if err != nil {
			respondServiceError(w, r, ActionListAccounts, err)
			return
		}
		if accounts == nil {
			accounts = []domain.Account{}
		}
		respondJSON(w, http.StatusOK, accounts)
	}
}

// HandleGetAccount returns one account
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param pseudonym path string true "Pseudonym"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{pseudonym} [get]
func HandleGetAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pseudonym, ok := pathParam(w, r, ParamPseudonym)
		if !ok {
			return
		}
		acc, err := svc.GetAccount(r.Context(), pseudonym)
		if err != nil {
			respondServiceError(w, r, ActionGetAccount, err)
			return
		}
		respondJSON(w, http.StatusOK, acc)
	}
}

// HandleAccountStats returns the derived combat stats
// @Summary Account stats
// @Tags accounts
// @Produce json
// @Param pseudonym path string true "Pseudonym"
// @Success 200 {object} domain.DerivedStats
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{pseudonym}/stats [get]
func HandleAccountStats(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pseudonym, ok := pathParam(w, r, ParamPseudonym)
		if !ok {
			return
		}
		st, err := svc.Stats(r.Context(), pseudonym)
		if err != nil {
			respondServiceError(w, r, ActionStats, err)
			return
		}
		respondJSON(w, http.StatusOK, st)
	}
}

// HandleEquip puts an item in its slot
// @Summary Equip item
// @Tags accounts
// @Accept json
// @Produce json
// @Param pseudonym path string true "Pseudonym"
// @Param request body EquipRequest true "Item"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{pseudonym}/equip [post]
func HandleEquip(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pseudonym, ok := pathParam(w, r, ParamPseudonym)
		if !ok {
			return
		}
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionEquip); err != nil {
			return
		}
		acc, err := svc.Equip(r.Context(), pseudonym, req.ItemID)
		if err != nil {
			respondServiceError(w, r, ActionEquip, err)
			return
		}
		respondJSON(w, http.StatusOK, acc)
	}
}

// HandleUnequip empties a slot
// @Summary Unequip slot
// @Tags accounts
// @Accept json
// @Produce json
// @Param pseudonym path string true "Pseudonym"
// @Param request body UnequipRequest true "Slot"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ValidationErrorResponse
// @Router /accounts/{pseudonym}/unequip [post]
func HandleUnequip(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pseudonym, ok := pathParam(w, r, ParamPseudonym)
		if !ok {
			return
		}
		var req UnequipRequest
		if err := DecodeAndValidateRequest(r, w, &req, ActionUnequip); err != nil {
			return
		}
		acc, err := svc.Unequip(r.Context(), pseudonym, domain.ItemType(req.Slot))
		if err != nil {
			respondServiceError(w, r, ActionUnequip, err)
			return
		}
		respondJSON(w, http.StatusOK, acc)
	}
}

// HandleForge upgrades an item, a random one when item_id is omitted
// @Summary Forge item
// @Tags accounts
// @Accept json
// @Produce json
// @Param pseudonym path string true "Pseudonym"
// @Param request body ForgeRequest false "Item"
// @Success 200 {object} domain.Item
// @Failure 409 {object} ErrorResponse
// @Router /accounts/{pseudonym}/forge [post]
func HandleForge(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pseudonym, ok := pathParam(w, r, ParamPseudonym)
		if !ok {
			return
		}
		var req ForgeRequest
		if err := DecodeOptionalRequest(r, w, &req, ActionForge); err != nil {
			return
		}
		item, err := svc.Forge(r.Context(), pseudonym, req.ItemID)
		if err != nil {
			respondServiceError(w, r, ActionForge, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}
