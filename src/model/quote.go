package model

type Quote struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name,omitempty"`
	Exchange      string     `json:"exchange,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	Datetime      string     `json:"datetime"`
	Open          PriceValue `json:"open"`
	High          PriceValue `json:"high"`
	Low           PriceValue `json:"low"`
	Close         PriceValue `json:"close"`
	Volume        PriceValue `json:"volume,omitempty"`
	PreviousClose PriceValue `json:"previous_close"`
	Change        PriceValue `json:"change"`
	PercentChange PriceValue `json:"percent_change"`
	IsMarketOpen  bool       `json:"is_market_open"`
}
