package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

const (
	// The provider enforces a small per-minute credit quota. After
	// throttleThreshold successful calls the client waits before issuing
	// the next one instead of running into HTTP 429.
	throttleThreshold = 4
	throttleDelayMs   = 7500
)

var supportedIndicators = map[string]bool{
	"rsi":             true,
	"ema":             true,
	"macd":            true,
	"bbands":          true,
	"adx":             true,
	"atr":             true,
	"aroon":           true,
	"ichimoku":        true,
	"stoch":           true,
	"cci":             true,
	"mom":             true,
	"pivot_points_hl": true,
	"obv":             true,
	"supertrend":      true,
}

type MarketDataClientInterface interface {
	GetQuote(symbol string) (model.Quote, error)
	GetTimeSeries(symbol string, interval string, outputSize int) (model.TimeSeries, error)
	GetIndicator(name string, symbol string, interval string, params map[string]string) (model.IndicatorSeries, error)
	GetStocks() ([]model.Listing, error)
	GetForexPairs() ([]model.Listing, error)
	GetCryptocurrencies() ([]model.Listing, error)
}

type TwelveData struct {
	ApiKey      string
	BaseURL     string
	HttpClient  HttpClientInterface
	TimeService utils.TimeServiceInterface
	RetryPolicy RetryPolicy
	Lock        *sync.Mutex

	callCounter int64
}

// providerStatus is the envelope the provider wraps errors in. Quota
// exhaustion arrives as HTTP 200 with code 429 in the body.
type providerStatus struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (t *TwelveData) GetQuote(symbol string) (model.Quote, error) {
	var quote model.Quote

	body, err := t.request("/quote", map[string]string{"symbol": symbol})
	if err != nil {
		return quote, err
	}

	err = json.Unmarshal(body, &quote)

	return quote, err
}

func (t *TwelveData) GetTimeSeries(symbol string, interval string, outputSize int) (model.TimeSeries, error) {
	var series model.TimeSeries

	body, err := t.request("/time_series", map[string]string{
		"symbol":     symbol,
		"interval":   interval,
		"outputsize": strconv.Itoa(outputSize),
	})
	if err != nil {
		return series, err
	}

	err = json.Unmarshal(body, &series)

	return series, err
}

func (t *TwelveData) GetIndicator(name string, symbol string, interval string, params map[string]string) (model.IndicatorSeries, error) {
	var series model.IndicatorSeries

	endpoint := strings.ToLower(name)
	if !supportedIndicators[endpoint] {
		return series, fmt.Errorf("indicator '%s' is not supported", name)
	}

	query := map[string]string{
		"symbol":   symbol,
		"interval": interval,
	}
	for key, value := range params {
		query[key] = value
	}

	body, err := t.request("/"+endpoint, query)
	if err != nil {
		return series, err
	}

	err = json.Unmarshal(body, &series)
	if err != nil {
		return series, err
	}

	series.Meta.IndicatorName = endpoint

	return series, nil
}

func (t *TwelveData) GetStocks() ([]model.Listing, error) {
	return t.requestListings("/stocks")
}

func (t *TwelveData) GetForexPairs() ([]model.Listing, error) {
	return t.requestListings("/forex_pairs")
}

func (t *TwelveData) GetCryptocurrencies() ([]model.Listing, error) {
	return t.requestListings("/cryptocurrencies")
}

func (t *TwelveData) requestListings(path string) ([]model.Listing, error) {
	body, err := t.request(path, nil)
	if err != nil {
		return nil, err
	}

	var response model.ListingResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, err
	}

	return response.Data, nil
}

func (t *TwelveData) request(path string, params map[string]string) ([]byte, error) {
	if len(t.ApiKey) == 0 {
		return nil, model.ConfigurationError{Variable: "TWELVE_DATA_API_KEY"}
	}

	t.throttle()

	query := url.Values{}
	query.Set("apikey", t.ApiKey)
	for key, value := range params {
		query.Set(key, value)
	}

	body, err := t.HttpClient.GetWithPolicy(
		fmt.Sprintf("%s%s?%s", t.BaseURL, path, query.Encode()),
		nil,
		t.RetryPolicy,
	)
	if err != nil {
		return nil, err
	}

	var status providerStatus
	if json.Unmarshal(body, &status) == nil && status.Status == "error" {
		if status.Code == 429 {
			return nil, model.RateLimitError{Attempts: 1}
		}

		return nil, model.UpstreamError{StatusCode: status.Code, Body: string(body)}
	}

	t.Lock.Lock()
	t.callCounter++
	t.Lock.Unlock()

	return body, nil
}

func (t *TwelveData) throttle() {
	t.Lock.Lock()
	waitNeeded := t.callCounter > throttleThreshold
	if waitNeeded {
		t.callCounter = 0
	}
	t.Lock.Unlock()

	if waitNeeded {
		t.TimeService.WaitMilliseconds(throttleDelayMs)
	}
}
