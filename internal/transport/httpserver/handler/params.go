package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// parseAmount accepts rupees as a JSON number or a numeric string.
// Fractions are truncated toward zero. A missing amount parses as zero.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return parseAmountNumber(number)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("invalid amount")
	}
	return parseAmountText(text)
}

func parseAmountNumber(number json.Number) (int64, error) {
	if parsed, err := strconv.ParseInt(number.String(), 10, 64); err == nil {
		return parsed, nil
	}

	value, err := decimal.NewFromString(number.String())
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}
	value = value.Truncate(0)
	if value.GreaterThan(maxAmount) || value.LessThan(minAmount) {
		return 0, fmt.Errorf("invalid amount")
	}
	return value.IntPart(), nil
}

func parseAmountText(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}
	return parsed, nil
}
