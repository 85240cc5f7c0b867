package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	app_errors "github.com/rileyblackwell/imagi-oasis/internal/errors"
	"github.com/rileyblackwell/imagi-oasis/internal/interfaces"
)

// CreditHandler handles HTTP requests for credit balances and grants.
type CreditHandler struct {
	ledger interfaces.CreditLedger
}

func NewCreditHandler(ledger interfaces.CreditLedger) *CreditHandler {
	return &CreditHandler{ledger: ledger}
}

// BalanceResponse reports a user's current credit balance.
type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// GrantRequest is the DTO for adding credits to a user's balance. Amounts are
// decimal strings so fractional credits survive the JSON round trip exactly.
type GrantRequest struct {
	Amount string `json:"amount" validate:"required" example:"5.00"`
}

// HandleGetBalance godoc
// @Summary      Get credit balance
// @Description  Returns the user's current credit balance. Users without a balance row have zero credits.
// @Tags         Credits
// @Produce      json
// @Success      200  {object}  BalanceResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/credits/balance [get]
func (h *CreditHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	balance, err := h.ledger.Balance(r.Context(), uid)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BalanceResponse{UserID: uid, Balance: balance})
}

// HandleGrantCredits godoc
// @Summary      Grant credits
// @Description  Adds credits to the user's balance, creating the balance row on first grant.
// @Tags         Credits
// @Accept       json
// @Produce      json
// @Param        request  body      GrantRequest  true  "Grant amount"
// @Success      200      {object}  BalanceResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/credits/grant [post]
func (h *CreditHandler) HandleGrantCredits(w http.ResponseWriter, r *http.Request) {
	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: amount must be a decimal number", app_errors.ErrValidation))
		return
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		respondWithError(w, fmt.Errorf("%w: amount must be positive", app_errors.ErrValidation))
		return
	}

	uid := userID(r)
	if err := h.ledger.Grant(r.Context(), uid, amount); err != nil {
		respondWithError(w, err)
		return
	}
	balance, err := h.ledger.Balance(r.Context(), uid)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BalanceResponse{UserID: uid, Balance: balance})
}
