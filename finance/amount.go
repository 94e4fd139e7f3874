package finance

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a loosely typed value into a decimal. Anything that is
// not a finite number, or a string holding one, becomes zero.
func ParseAmount(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case uint:
		return decimal.NewFromUint64(uint64(n))
	case uint32:
		return decimal.NewFromUint64(uint64(n))
	case uint64:
		return decimal.NewFromUint64(n)
	case json.Number:
		return parseString(string(n))
	case string:
		return parseString(n)
	default:
		return decimal.Zero
	}
}

func parseString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// optional reports the first present, non-empty value among keys as a
// decimal. Both camelCase and snake_case spellings are accepted by callers.
func optional(m map[string]any, keys ...string) *decimal.Decimal {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		d := ParseAmount(v)
		return &d
	}
	return nil
}

// FromMap builds an Input from a reservation record such as a decoded JSON
// body or a row returned by a generic query client.
func FromMap(m map[string]any) Input {
	return Input{
		Amount:           ParseAmount(m["amount"]),
		Commission:       optional(m, "commission"),
		TourismFee:       optional(m, "tourismFee", "tourism_fee"),
		VAT:              optional(m, "vat"),
		NetToOwner:       optional(m, "netToOwner", "net_to_owner"),
		BaseRate:         optional(m, "baseRate", "base_rate"),
		SecurityDeposit:  optional(m, "securityDeposit", "security_deposit"),
		AmountPaid:       optional(m, "amountPaid", "amount_paid"),
		RemainingBalance: optional(m, "pendingAmount", "remainingAmount", "remaining_amount"),
	}
}
