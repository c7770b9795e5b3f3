package burrow

import (
	"github.com/shopspring/decimal"
)

var (
	two    = decimal.NewFromInt(2)
	three  = decimal.NewFromInt(3)
	six    = decimal.NewFromInt(6)
	twelve = decimal.NewFromInt(12)
)

// Exponential approximates (1+x)^n with a four term binomial
// expansion. x is the per-millisecond rate fraction and n the elapsed
// milliseconds; x is small enough that the truncated series stays
// accurate over any realistic elapsed window.
func Exponential(x, n decimal.Decimal) decimal.Decimal {
	n1 := n.Sub(one)
	n2 := n.Sub(two)
	n3 := n.Sub(three)

	c2 := n.Mul(n1).Div(two)
	c3 := n.Mul(n1).Mul(n2).Div(six)
	c4 := n.Mul(n1).Mul(n2).Mul(n3).Div(twelve)

	x2 := x.Mul(x)

	return one.Add(n.Mul(x)).
		Add(c2.Mul(x2)).
		Add(c3.Mul(x2).Mul(x)).
		Add(c4.Mul(x2).Mul(x2))
}
