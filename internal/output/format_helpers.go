package output

import (
	"strconv"

	pkgdec "github.com/rpgo/pension-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as a shekel amount with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return pkgdec.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fraction (0.52) as a percentage ("52.00%").
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func boolToString(b bool) string { return strconv.FormatBool(b) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
