package model

// ExchangeRate holds the conversion rate of a currency against USD (units of
// the currency per one USD) and its display symbol.
type ExchangeRate struct {
	Currency string  `db:"currency" json:"currency"`
	Symbol   string  `db:"symbol" json:"symbol"`
	RateUSD  float64 `db:"rate_usd" json:"rate_usd"`
}
