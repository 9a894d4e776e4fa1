package model

type SeriesMeta struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Currency string `json:"currency,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Candle struct {
	Datetime string     `json:"datetime"`
	Open     PriceValue `json:"open"`
	High     PriceValue `json:"high"`
	Low      PriceValue `json:"low"`
	Close    PriceValue `json:"close"`
	Volume   PriceValue `json:"volume,omitempty"`
}

type TimeSeries struct {
	Meta   SeriesMeta `json:"meta"`
	Values []Candle   `json:"values"`
	Status string     `json:"status,omitempty"`
}
