package service

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// PrivacyMask replaces every amount when privacy mode is on.
const PrivacyMask = "****"

// twdFormatter renders whole New Taiwan dollars as "$1,234,567".
var twdFormatter = func() *money.Formatter {
	cur := money.New(0, money.TWD).Currency()
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, "$", "$1")
}()

// FormatTWD formats an amount rounded to whole dollars, or the privacy mask.
func FormatTWD(amount float64, privacy bool) string {
	if privacy {
		return PrivacyMask
	}
	return twdFormatter.Format(decimal.NewFromFloat(amount).Round(0).IntPart())
}
