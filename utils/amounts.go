package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScaleAmount divides a raw integer amount by 10^decimals.
func ScaleAmount(raw decimal.Decimal, decimals int64) decimal.Decimal {
	pow := decimal.NewFromInt(10).Pow(decimal.NewFromInt(decimals))
	return raw.DivRound(pow, 20)
}

// PrettyAmounts renders raw integer amount strings as "raw (scaled)" pairs.
// Amounts that do not parse are passed through untouched so a malformed
// payload still produces a row.
func PrettyAmounts(raws []string, decimals int64) []string {
	pretty := make([]string, 0, len(raws))
	for _, raw := range raws {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			pretty = append(pretty, raw)
			continue
		}
		pretty = append(pretty, fmt.Sprintf("raw: %s/1e%d = %s", raw, decimals, ScaleAmount(amount, decimals)))
	}
	return pretty
}

// SumAmounts totals raw integer amount strings, ignoring unparseable entries.
func SumAmounts(raws []string) decimal.Decimal {
	total := decimal.Zero
	for _, raw := range raws {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}
