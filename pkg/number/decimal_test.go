package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestHumanize(t *testing.T) {
	data := map[string]struct {
		decimals int32
		want     string
	}{
		"1000000":                 {6, "1"},
		"1500000000000000000":     {18, "1.5"},
		"123456789":               {8, "1.23456789"},
		"5":                       {0, "5"},
	}

	for k, tc := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, tc.want, Humanize(Decimal(k), tc.decimals).String())
		})
	}
}
