package domain

import (
	"math"
	"strings"
)

// CountryPricing is the per-dimension fee charged for a New board.
type CountryPricing struct {
	Code     string
	Name     string
	Currency string
	Symbol   string
	Fee      float64
}

var DefaultPricing = CountryPricing{Currency: "USD", Symbol: "$", Fee: 5}

var countries = map[string]CountryPricing{
	"AU": {Code: "AU", Name: "Australia", Currency: "AUD", Symbol: "A$", Fee: 10},
	"BR": {Code: "BR", Name: "Brazil", Currency: "USD", Symbol: "$", Fee: 5},
	"CL": {Code: "CL", Name: "Chile", Currency: "USD", Symbol: "$", Fee: 5},
	"CR": {Code: "CR", Name: "Costa Rica", Currency: "USD", Symbol: "$", Fee: 5},
	"SV": {Code: "SV", Name: "El Salvador", Currency: "USD", Symbol: "$", Fee: 5},
	"FR": {Code: "FR", Name: "France", Currency: "EUR", Symbol: "€", Fee: 5},
	"GT": {Code: "GT", Name: "Guatemala", Currency: "USD", Symbol: "$", Fee: 5},
	"HI": {Code: "HI", Name: "Hawaii", Currency: "USD", Symbol: "$", Fee: 5},
	"ID": {Code: "ID", Name: "Indonesia", Currency: "USD", Symbol: "$", Fee: 5},
	"IE": {Code: "IE", Name: "Ireland", Currency: "EUR", Symbol: "€", Fee: 5},
	"JP": {Code: "JP", Name: "Japan", Currency: "USD", Symbol: "$", Fee: 5},
	"MX": {Code: "MX", Name: "Mexico", Currency: "USD", Symbol: "$", Fee: 5},
	"MA": {Code: "MA", Name: "Morocco", Currency: "USD", Symbol: "$", Fee: 5},
	"NZ": {Code: "NZ", Name: "New Zealand", Currency: "NZD", Symbol: "NZ$", Fee: 10},
	"NI": {Code: "NI", Name: "Nicaragua", Currency: "USD", Symbol: "$", Fee: 5},
	"PK": {Code: "PK", Name: "Pakistan", Currency: "PKR", Symbol: "Rs", Fee: 10},
	"PE": {Code: "PE", Name: "Peru", Currency: "USD", Symbol: "$", Fee: 5},
	"PT": {Code: "PT", Name: "Portugal", Currency: "EUR", Symbol: "€", Fee: 5},
	"ZA": {Code: "ZA", Name: "South Africa", Currency: "USD", Symbol: "$", Fee: 5},
	"ES": {Code: "ES", Name: "Spain", Currency: "EUR", Symbol: "€", Fee: 5},
	"PF": {Code: "PF", Name: "Tahiti", Currency: "USD", Symbol: "$", Fee: 5},
	"GB": {Code: "GB", Name: "United Kingdom", Currency: "EUR", Symbol: "€", Fee: 5},
	"US": {Code: "US", Name: "United States", Currency: "USD", Symbol: "$", Fee: 5},
}

// PricingFor returns the pricing for a country code, falling back to DefaultPricing.
func PricingFor(code string) CountryPricing {
	if p, ok := countries[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return p
	}
	p := DefaultPricing
	p.Code = code
	return p
}

// Charge is an amount owed in a single currency.
type Charge struct {
	Amount   float64
	Currency string
	Symbol   string
	Quantity int
}

// MinorUnits is the amount in cents, as payment processors expect it.
func (c Charge) MinorUnits() int64 {
	return int64(math.Round(c.Amount * 100))
}

// FeeFor is the charge for quantity dimension rows listed from country.
func FeeFor(country string, quantity int) Charge {
	p := PricingFor(country)
	return Charge{
		Amount:   p.Fee * float64(quantity),
		Currency: p.Currency,
		Symbol:   p.Symbol,
		Quantity: quantity,
	}
}
