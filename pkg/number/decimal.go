package number

import (
	"math"

	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Sqrt(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	f = math.Sqrt(f)
	return decimal.NewFromFloat(f)
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Pow10 10^exp as a decimal
func Pow10(exp int32) decimal.Decimal {
	return decimal.New(1, exp)
}

// Humanize converts a native integer amount to a human readable
// quantity by shifting out the token's decimal exponent
func Humanize(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(-decimals)
}
