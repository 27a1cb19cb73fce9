package repository

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-refactor-sub014/internal/model"

	"github.com/jmoiron/sqlx"
)

// RateRepository provides access to exchange rates used for price display.
type RateRepository struct {
	db *sqlx.DB
}

// NewRateRepository creates a new exchange-rate repository.
func NewRateRepository(db *sqlx.DB) *RateRepository {
	return &RateRepository{db: db}
}

// Get returns the rate for a currency code.
func (r *RateRepository) Get(currency string) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	err := r.db.Get(&rate, "SELECT * FROM exchange_rates WHERE currency=$1", currency)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// List returns all known rates.
func (r *RateRepository) List() ([]model.ExchangeRate, error) {
	rates := []model.ExchangeRate{}
	err := r.db.Select(&rates, "SELECT * FROM exchange_rates ORDER BY currency")
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// Upsert stores or refreshes a rate.
func (r *RateRepository) Upsert(rate *model.ExchangeRate) error {
	_, err := r.db.Exec(`INSERT INTO exchange_rates (currency, symbol, rate_usd) VALUES ($1, $2, $3)
	                     ON CONFLICT (currency) DO UPDATE SET symbol=EXCLUDED.symbol, rate_usd=EXCLUDED.rate_usd`,
		rate.Currency, rate.Symbol, rate.RateUSD)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}
