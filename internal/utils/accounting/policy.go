package accounting

import (
	"fmt"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Rental policy names accepted by RentalPolicyByName.
const (
	PolicyCashRemainder = "cash_remainder"
	PolicyEnteredAsCash = "entered_as_cash"
)

// RentalPolicy splits the operator-entered rental aggregate across payment methods,
// given the rental sales that were logged individually.
type RentalPolicy interface {
	Allocate(entered decimal.Decimal, logged domain.PaymentSplit) domain.PaymentSplit
	Name() string
}

// CashRemainderPolicy trusts the entered figure for the grand total and the logged detail
// for the non-cash columns: whatever is not logged as GCash or Charge is cash.
type CashRemainderPolicy struct{}

func (CashRemainderPolicy) Allocate(entered decimal.Decimal, logged domain.PaymentSplit) domain.PaymentSplit {
	implied := entered.Sub(logged.GCash.Add(logged.Charge))
	if implied.IsNegative() {
		implied = decimal.Zero
	}
	return domain.PaymentSplit{Cash: implied, GCash: logged.GCash, Charge: logged.Charge}
}

func (CashRemainderPolicy) Name() string { return PolicyCashRemainder }

// EnteredAsCashPolicy treats the whole entered figure as cash and ignores logged method detail.
type EnteredAsCashPolicy struct{}

func (EnteredAsCashPolicy) Allocate(entered decimal.Decimal, _ domain.PaymentSplit) domain.PaymentSplit {
	return domain.PaymentSplit{Cash: entered, GCash: decimal.Zero, Charge: decimal.Zero}
}

func (EnteredAsCashPolicy) Name() string { return PolicyEnteredAsCash }

// RentalPolicyByName resolves a configured policy name.
func RentalPolicyByName(name string) (RentalPolicy, error) {
	switch name {
	case "", PolicyCashRemainder:
		return CashRemainderPolicy{}, nil
	case PolicyEnteredAsCash:
		return EnteredAsCashPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown rental policy '%s'", name)
	}
}
