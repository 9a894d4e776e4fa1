package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/service"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

type MarketDataMock struct {
	mock.Mock
}

func (m *MarketDataMock) GetQuote(symbol string) (model.Quote, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.Quote), args.Error(1)
}

func (m *MarketDataMock) GetTimeSeries(symbol string, interval string, outputSize int) (model.TimeSeries, error) {
	args := m.Called(symbol, interval, outputSize)
	return args.Get(0).(model.TimeSeries), args.Error(1)
}

func (m *MarketDataMock) GetIndicator(name string, symbol string, interval string, params map[string]string) (model.IndicatorSeries, error) {
	args := m.Called(name, symbol, interval, params)
	return args.Get(0).(model.IndicatorSeries), args.Error(1)
}

func (m *MarketDataMock) GetStocks() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MarketDataMock) GetForexPairs() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MarketDataMock) GetCryptocurrencies() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

func newMarketController(marketDataMock *MarketDataMock) *MarketController {
	marketService := &service.MarketService{
		MarketData:       marketDataMock,
		IndicatorService: &service.IndicatorService{Formatter: &utils.Formatter{}},
		Cache:            service.NewResponseCache(),
	}

	return &MarketController{
		MarketService: marketService,
	}
}

func TestGetQuoteAction(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{Symbol: "AAPL", Close: 187.0}, nil)

	req := httptest.NewRequest("GET", "/market/quote?symbol=AAPL", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetQuoteAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var quote model.Quote
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &quote))
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 187.0, quote.Close.Value())
}

func TestGetQuoteActionRequiresSymbol(t *testing.T) {
	marketDataMock := new(MarketDataMock)

	req := httptest.NewRequest("GET", "/market/quote", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetQuoteAction(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	marketDataMock.AssertNotCalled(t, "GetQuote", mock.Anything)
}

func TestGetQuoteActionMapsRateLimitTo429(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{}, model.RateLimitError{Attempts: 3})

	req := httptest.NewRequest("GET", "/market/quote?symbol=AAPL", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetQuoteAction(recorder, req)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestGetQuoteActionMapsConfigurationTo503(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{}, model.ConfigurationError{Variable: "TWELVE_DATA_API_KEY"})

	req := httptest.NewRequest("GET", "/market/quote?symbol=AAPL", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetQuoteAction(recorder, req)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetIndicatorAction(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{Symbol: "AAPL", Close: 187.0}, nil)
	marketDataMock.On("GetIndicator", "rsi", "AAPL", "1day", map[string]string(nil)).Return(model.IndicatorSeries{
		Values: []model.IndicatorPoint{{Datetime: "2024-05-01", Values: map[string]float64{"rsi": 75.0}}},
	}, nil)

	req := httptest.NewRequest("GET", "/market/indicator/rsi?symbol=AAPL", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetIndicatorAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var interpretation model.IndicatorInterpretation
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &interpretation))
	assert.Equal(t, "rsi", interpretation.Indicator)
	assert.Equal(t, "overbought", interpretation.Signal)
}

func TestGetIndicatorActionKeepsPercentInSummary(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{Symbol: "AAPL", Close: 187.0}, nil)
	marketDataMock.On("GetIndicator", "stoch", "AAPL", "1day", map[string]string(nil)).Return(model.IndicatorSeries{
		Values: []model.IndicatorPoint{{Datetime: "2024-05-01", Values: map[string]float64{"slow_k": 91.0}}},
	}, nil)

	req := httptest.NewRequest("GET", "/market/indicator/stoch?symbol=AAPL", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetIndicatorAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var interpretation model.IndicatorInterpretation
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &interpretation))
	assert.Equal(t, "Stochastic %K at 91.00, overbought", interpretation.Summary)
}

func TestGetListingsActionRejectsUnknownMarket(t *testing.T) {
	marketDataMock := new(MarketDataMock)

	req := httptest.NewRequest("GET", "/market/listings/bonds", nil)
	recorder := httptest.NewRecorder()

	controller := newMarketController(marketDataMock)
	controller.ListingService = &service.ListingService{}

	controller.GetListingsAction(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetChartAction(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetTimeSeries", "AAPL", "1day", defaultOutputSize).Return(model.TimeSeries{
		Meta: model.SeriesMeta{Symbol: "AAPL", Interval: "1day"},
		Values: []model.Candle{
			{Datetime: "2024-05-02", Close: 185.0},
			{Datetime: "2024-05-01", Close: 183.0},
		},
	}, nil)
	marketDataMock.On("GetIndicator", "rsi", "AAPL", "1day", map[string]string(nil)).Return(model.IndicatorSeries{
		Values: []model.IndicatorPoint{
			{Datetime: "2024-05-02", Values: map[string]float64{"rsi": 58.0}},
			{Datetime: "2024-05-01", Values: map[string]float64{"rsi": 55.0}},
		},
	}, nil)

	req := httptest.NewRequest("GET", "/market/chart?symbol=AAPL&indicators=rsi", nil)
	recorder := httptest.NewRecorder()

	newMarketController(marketDataMock).GetChartAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var chart model.ChartData
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &chart))
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, chart.Labels)
	assert.Equal(t, []float64{55.0, 58.0}, chart.Series["rsi"])
}

func dialStream(t *testing.T, marketDataMock *MarketDataMock) (*websocket.Conn, func()) {
	server := httptest.NewServer(http.HandlerFunc(newMarketController(marketDataMock).GetStreamAction))

	connection, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"?symbol=AAPL", nil)
	assert.NoError(t, err)

	return connection, func() {
		connection.Close()
		server.Close()
	}
}

func TestGetStreamActionPushesQuote(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{Symbol: "AAPL", Close: 187.0}, nil)

	connection, teardown := dialStream(t, marketDataMock)
	defer teardown()

	_ = connection.SetReadDeadline(time.Now().Add(time.Second * 5))
	_, message, err := connection.ReadMessage()

	assert.NoError(t, err)
	assert.Contains(t, string(message), "AAPL")
}

func TestGetStreamActionPingsWhileQuoteFails(t *testing.T) {
	marketDataMock := new(MarketDataMock)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{}, model.UpstreamError{StatusCode: 500, Body: "down"})

	connection, teardown := dialStream(t, marketDataMock)
	defer teardown()

	pinged := make(chan struct{}, 1)
	connection.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})

	go func() {
		_ = connection.SetReadDeadline(time.Now().Add(time.Second * 5))
		for {
			if _, _, readErr := connection.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	select {
	case <-pinged:
	case <-time.After(time.Second * 5):
		t.Fatal("expected a ping while the quote fetch keeps failing")
	}
}
