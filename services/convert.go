package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"hotel-ops/finance"
)

// getStringFromMap returns the first present value among keys as a trimmed
// string.
func getStringFromMap(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s, ok2 := v.(string); ok2 {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(fmt.Sprintf("%v", v))
		}
	}
	return ""
}

func getIntFromMap(m map[string]interface{}, def int, keys ...string) int {
	raw := getStringFromMap(m, keys...)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return def
}

func hasAnyKey(m map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decimalPtrFromMap(m map[string]interface{}, keys ...string) *decimal.Decimal {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		d := finance.ParseAmount(v)
		return &d
	}
	return nil
}

// jsonValue stores arbitrary decoded JSON in a datatypes.JSON column.
func jsonValue(v any) datatypes.JSON {
	switch t := v.(type) {
	case nil:
		return nil
	case datatypes.JSON:
		return t
	case string:
		if json.Valid([]byte(t)) {
			return datatypes.JSON(t)
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
