package domain

import "github.com/shopspring/decimal"

func init() {
	// Money is rendered as a JSON number
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseMoney parses a decimal amount, returning ErrInvalidAmount on bad input
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
