package model

import (
	"encoding/json"
	"strconv"
)

type IndicatorMeta struct {
	Symbol        string `json:"symbol"`
	Interval      string `json:"interval"`
	IndicatorName string `json:"indicator_name,omitempty"`
}

// IndicatorPoint holds one datetime row of an indicator response. The value
// columns differ per indicator (rsi, macd + macd_signal + macd_hist, ...),
// so everything except the datetime lands in Values.
type IndicatorPoint struct {
	Datetime string
	Values   map[string]float64
}

func (p *IndicatorPoint) UnmarshalJSON(b []byte) error {
	raw := make(map[string]interface{})
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	p.Values = make(map[string]float64)

	for key, value := range raw {
		if key == "datetime" {
			p.Datetime, _ = value.(string)
			continue
		}

		switch typed := value.(type) {
		case string:
			floatValue, parseErr := strconv.ParseFloat(typed, 64)
			if parseErr == nil {
				p.Values[key] = floatValue
			}
		case float64:
			p.Values[key] = typed
		}
	}

	return nil
}

func (p IndicatorPoint) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(p.Values)+1)
	raw["datetime"] = p.Datetime
	for key, value := range p.Values {
		raw[key] = value
	}

	return json.Marshal(raw)
}

type IndicatorSeries struct {
	Meta   IndicatorMeta    `json:"meta"`
	Values []IndicatorPoint `json:"values"`
	Status string           `json:"status,omitempty"`
}

// Latest returns the most recent point. The provider sends values newest
// first.
func (s IndicatorSeries) Latest() *IndicatorPoint {
	if len(s.Values) == 0 {
		return nil
	}

	return &s.Values[0]
}

type IndicatorInterpretation struct {
	Indicator string             `json:"indicator"`
	Values    map[string]float64 `json:"values"`
	Signal    string             `json:"signal"`
	Summary   string             `json:"summary"`
}

type ChartData struct {
	Symbol   string               `json:"symbol"`
	Interval string               `json:"interval"`
	Labels   []string             `json:"labels"`
	Price    []float64            `json:"price"`
	Series   map[string][]float64 `json:"series"`
}
