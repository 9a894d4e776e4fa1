package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/service"
)

const defaultOutputSize = 120

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type MarketController struct {
	MarketService  *service.MarketService
	ListingService *service.ListingService
}

func (m *MarketController) GetQuoteAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	symbol := req.URL.Query().Get("symbol")
	if len(symbol) == 0 {
		http.Error(w, "Symbol should not be empty", http.StatusBadRequest)

		return
	}

	quote, err := m.MarketService.GetQuoteCached(symbol)
	if err != nil {
		writeFetchError(w, err)

		return
	}

	encoded, _ := json.Marshal(quote)
	_, _ = w.Write(encoded)
}

func (m *MarketController) GetTimeSeriesAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	symbol := req.URL.Query().Get("symbol")
	if len(symbol) == 0 {
		http.Error(w, "Symbol should not be empty", http.StatusBadRequest)

		return
	}

	interval := req.URL.Query().Get("interval")
	if len(interval) == 0 {
		interval = "1day"
	}

	outputSize := defaultOutputSize
	if value, err := strconv.Atoi(req.URL.Query().Get("outputsize")); err == nil && value > 0 {
		outputSize = value
	}

	series, err := m.MarketService.GetTimeSeriesCached(symbol, interval, outputSize)
	if err != nil {
		writeFetchError(w, err)

		return
	}

	encoded, _ := json.Marshal(series)
	_, _ = w.Write(encoded)
}

func (m *MarketController) GetIndicatorAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	name := strings.TrimPrefix(req.URL.Path, "/market/indicator/")
	symbol := req.URL.Query().Get("symbol")

	if len(name) == 0 || len(symbol) == 0 {
		http.Error(w, "Indicator name and symbol should not be empty", http.StatusBadRequest)

		return
	}

	interval := req.URL.Query().Get("interval")
	if len(interval) == 0 {
		interval = "1day"
	}

	interpretation, err := m.MarketService.GetInterpretation(name, symbol, interval)
	if err != nil {
		writeFetchError(w, err)

		return
	}

	encoded, _ := json.Marshal(interpretation)
	_, _ = w.Write(encoded)
}

func (m *MarketController) GetChartAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	symbol := req.URL.Query().Get("symbol")
	if len(symbol) == 0 {
		http.Error(w, "Symbol should not be empty", http.StatusBadRequest)

		return
	}

	interval := req.URL.Query().Get("interval")
	if len(interval) == 0 {
		interval = "1day"
	}

	indicators := make([]string, 0)
	if raw := req.URL.Query().Get("indicators"); len(raw) > 0 {
		indicators = strings.Split(raw, ",")
	}

	chart, err := m.MarketService.GetChart(symbol, interval, indicators, defaultOutputSize)
	if err != nil {
		writeFetchError(w, err)

		return
	}

	encoded, _ := json.Marshal(chart)
	_, _ = w.Write(encoded)
}

func (m *MarketController) GetListingsAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	market := strings.TrimPrefix(req.URL.Path, "/market/listings/")
	if !model.IsMarketSupported(market) {
		http.Error(w, fmt.Sprintf("market '%s' is not supported", market), http.StatusBadRequest)

		return
	}

	listings, err := m.ListingService.GetListings(market)
	if err != nil && len(listings) == 0 {
		writeFetchError(w, err)

		return
	}

	encoded, _ := json.Marshal(model.ListingResponse{Data: listings})
	_, _ = w.Write(encoded)
}

// GetStreamAction pushes the cached quote for one symbol on a fixed tick.
// The cache TTL keeps the upstream call rate bounded no matter how many
// clients subscribe to the same symbol.
func (m *MarketController) GetStreamAction(w http.ResponseWriter, req *http.Request) {
	symbol := req.URL.Query().Get("symbol")
	if len(symbol) == 0 {
		http.Error(w, "Symbol should not be empty", http.StatusBadRequest)

		return
	}

	connection, err := streamUpgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("[stream] upgrade failed: %s", err.Error())

		return
	}

	go func(connection *websocket.Conn, symbol string) {
		defer connection.Close()

		ticker := time.NewTicker(time.Second * 15)
		defer ticker.Stop()

		for {
			quote, quoteErr := m.MarketService.GetQuoteCached(symbol)
			if quoteErr != nil {
				log.Printf("[stream] %s quote failed: %s", symbol, quoteErr.Error())

				// ping so a gone client still ends the loop
				if connection.WriteMessage(websocket.PingMessage, nil) != nil {
					return
				}
			} else {
				serialized, _ := json.Marshal(quote)
				if connection.WriteMessage(websocket.TextMessage, serialized) != nil {
					return
				}
			}

			<-ticker.C
		}
	}(connection, symbol)
}

func writeFetchError(w http.ResponseWriter, err error) {
	var rateLimitError model.RateLimitError
	if errors.As(err, &rateLimitError) {
		http.Error(w, err.Error(), http.StatusTooManyRequests)

		return
	}

	var configurationError model.ConfigurationError
	if errors.As(err, &configurationError) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)

		return
	}

	var upstreamError model.UpstreamError
	if errors.As(err, &upstreamError) {
		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
