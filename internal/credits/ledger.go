// Package credits gates every generation call on the user's balance.
package credits

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rileyblackwell/imagi-oasis/internal/registry"
	"github.com/rileyblackwell/imagi-oasis/internal/repository"
)

// Ledger reads and adjusts per-user credit balances. The actual deduction of
// a successful generation happens inside the repository's exchange
// transaction; the ledger's Check is the pre-dispatch gate and DebitFor
// describes the deduction for that transaction.
type Ledger struct {
	repo repository.Repository
}

func NewLedger(repo repository.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Check reports whether the user's balance covers one request with the given
// model, along with the required amount. The required amount is returned
// either way so an insufficient result can tell the user what to top up.
func (l *Ledger) Check(ctx context.Context, userID, modelID string) (bool, decimal.Decimal, error) {
	required := registry.GetCost(modelID)
	balance, err := l.repo.GetBalance(ctx, userID)
	if err != nil {
		return false, required, fmt.Errorf("could not read balance: %w", err)
	}
	return balance.GreaterThanOrEqual(required), required, nil
}

// DebitFor builds the conditional deduction instruction for one generation
// with the given model.
func (l *Ledger) DebitFor(userID, modelID string) *repository.CreditDebit {
	return &repository.CreditDebit{UserID: userID, Amount: registry.GetCost(modelID)}
}

// Balance returns the user's current balance. Users without a balance row
// have zero credits.
func (l *Ledger) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return l.repo.GetBalance(ctx, userID)
}

// Grant adds credits to the user's balance, creating the row on first grant.
// This is where the payment flow lands after a completed purchase.
func (l *Ledger) Grant(ctx context.Context, userID string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("grant amount must be positive, got %s", amount)
	}
	return l.repo.GrantCredits(ctx, userID, amount)
}
