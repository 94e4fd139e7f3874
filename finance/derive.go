// Package finance derives the monetary breakdown of a reservation from its
// total amount. Values supplied explicitly always win over derived defaults.
package finance

import "github.com/shopspring/decimal"

var (
	CommissionRate = decimal.RequireFromString("0.10")
	TourismFeeRate = decimal.RequireFromString("0.03")
	VATRate        = decimal.RequireFromString("0.05")
	NetToOwnerRate = decimal.RequireFromString("0.82")
	BaseRateRate   = decimal.RequireFromString("0.80")

	DefaultSecurityDeposit = decimal.NewFromInt(100)
)

const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Input is the monetary part of a reservation as stored. A nil field means
// the value was never supplied and will be derived.
type Input struct {
	Amount           decimal.Decimal
	Commission       *decimal.Decimal
	TourismFee       *decimal.Decimal
	VAT              *decimal.Decimal
	NetToOwner       *decimal.Decimal
	BaseRate         *decimal.Decimal
	SecurityDeposit  *decimal.Decimal
	AmountPaid       *decimal.Decimal
	RemainingBalance *decimal.Decimal
}

// Breakdown is the fully populated monetary view of a reservation.
type Breakdown struct {
	Commission       decimal.Decimal `json:"commission"`
	TourismFee       decimal.Decimal `json:"tourismFee"`
	VAT              decimal.Decimal `json:"vat"`
	NetToOwner       decimal.Decimal `json:"netToOwner"`
	BaseRate         decimal.Decimal `json:"baseRate"`
	SecurityDeposit  decimal.Decimal `json:"securityDeposit"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	RemainingBalance decimal.Decimal `json:"remainingAmount"`
}

// Derive fills every absent field of in from in.Amount.
func Derive(in Input) Breakdown {
	amount := in.Amount
	share := func(explicit *decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
		if explicit != nil {
			return *explicit
		}
		return amount.Mul(rate).Round(2)
	}

	paid := decimal.Zero
	if in.AmountPaid != nil {
		paid = *in.AmountPaid
	}

	remaining := amount.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	remaining = remaining.Round(2)
	if in.RemainingBalance != nil {
		remaining = *in.RemainingBalance
	}

	deposit := DefaultSecurityDeposit
	if in.SecurityDeposit != nil {
		deposit = *in.SecurityDeposit
	}

	return Breakdown{
		Commission:       share(in.Commission, CommissionRate),
		TourismFee:       share(in.TourismFee, TourismFeeRate),
		VAT:              share(in.VAT, VATRate),
		NetToOwner:       share(in.NetToOwner, NetToOwnerRate),
		BaseRate:         share(in.BaseRate, BaseRateRate),
		SecurityDeposit:  deposit,
		AmountPaid:       paid,
		RemainingBalance: remaining,
	}
}

// PaymentStatus classifies how much of amount has been paid.
func PaymentStatus(amount, paid decimal.Decimal) string {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(amount):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}
