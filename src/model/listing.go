package model

import "fmt"

const (
	MarketStock  = "stock"
	MarketForex  = "forex"
	MarketCrypto = "crypto"
)

type Listing struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name,omitempty"`
	Exchange      string `json:"exchange,omitempty"`
	Country       string `json:"country,omitempty"`
	CurrencyBase  string `json:"currency_base,omitempty"`
	CurrencyQuote string `json:"currency_quote,omitempty"`
}

// DisplayName falls back to the currency pair description: forex and crypto
// listings only carry currency_base/currency_quote, not a name.
func (l Listing) DisplayName() string {
	if len(l.Name) > 0 {
		return l.Name
	}

	if len(l.CurrencyBase) > 0 && len(l.CurrencyQuote) > 0 {
		return fmt.Sprintf("%s / %s", l.CurrencyBase, l.CurrencyQuote)
	}

	return l.Symbol
}

type ListingResponse struct {
	Data []Listing `json:"data"`
}

func IsMarketSupported(market string) bool {
	return market == MarketStock || market == MarketForex || market == MarketCrypto
}
