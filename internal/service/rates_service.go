package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"
)

// RatesService formats USD prices in the currencies the storefront displays.
type RatesService struct {
	rates RateStore
}

// NewRatesService creates a new exchange-rate service.
func NewRatesService(rates RateStore) *RatesService {
	return &RatesService{rates: rates}
}

// ListRates returns all known rates.
func (s *RatesService) ListRates() ([]model.ExchangeRate, error) {
	return s.rates.List()
}

// UpsertRate stores or refreshes a currency's conversion rate.
func (s *RatesService) UpsertRate(rate *model.ExchangeRate) error {
	rate.Currency = strings.ToUpper(strings.TrimSpace(rate.Currency))
	if rate.Currency == "" || rate.Symbol == "" || rate.RateUSD <= 0 {
		return errors.New("currency, symbol and a positive rate are required")
	}
	return s.rates.Upsert(rate)
}

// FormatDisplay converts a USD amount to the given currency and renders it
// with the currency's symbol and thousands grouping.
func (s *RatesService) FormatDisplay(amountUSD float64, currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "USD" {
		return "$" + groupThousands(fmt.Sprintf("%.2f", amountUSD)), nil
	}
	rate, err := s.rates.Get(currency)
	if err != nil {
		return "", asNotFound(err)
	}
	value := amountUSD * rate.RateUSD
	return rate.Symbol + " " + groupThousands(fmt.Sprintf("%.2f", value)), nil
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string.
func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if frac != "" {
		out += "." + frac
	}
	return out
}
