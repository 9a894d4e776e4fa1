package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PriceValue accepts both `"123.45"` and `123.45` on the wire. The market
// data provider returns numeric fields as strings in most endpoints.
type PriceValue float64

func (p *PriceValue) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		floatValue, _ := strconv.ParseFloat(strValue, 64)
		*p = PriceValue(floatValue)
		return nil
	}

	var floatValue float64
	err = json.Unmarshal(b, &floatValue)

	if err == nil {
		*p = PriceValue(floatValue)
		return nil
	}

	return fmt.Errorf("PriceValue: unsupported data type given, %s", err.Error())
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

func (p PriceValue) Value() float64 {
	return float64(p)
}
