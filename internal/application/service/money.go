package service

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// withTax adds percent tax to price, rounded to paise
func withTax(price, taxPercent decimal.Decimal) decimal.Decimal {
	return price.Add(price.Mul(taxPercent).Div(hundred)).Round(2)
}

// coinsFor converts an amount to whole loyalty coins
func coinsFor(amount decimal.Decimal, coinUnit int64) int {
	if coinUnit <= 0 || !amount.IsPositive() {
		return 0
	}
	return int(amount.Div(decimal.NewFromInt(coinUnit)).Floor().IntPart())
}
