package service

import (
	"strings"

	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

// MarketService is the cached fetch path every page and advisor goes
// through. A cache hit never touches the network; a miss fetches once and
// overwrites the entry.
type MarketService struct {
	MarketData       client.MarketDataClientInterface
	IndicatorService *IndicatorService
	Cache            *ResponseCache
}

func (s *MarketService) GetQuoteCached(symbol string) (model.Quote, error) {
	cacheKey := CacheKey("quote", symbol)

	cached, hit := s.Cache.Get(cacheKey, QuoteTTL)
	if hit {
		return cached.(model.Quote), nil
	}

	quote, err := s.MarketData.GetQuote(symbol)
	if err != nil {
		return quote, err
	}

	s.Cache.Set(cacheKey, quote)

	return quote, nil
}

func (s *MarketService) GetTimeSeriesCached(symbol string, interval string, outputSize int) (model.TimeSeries, error) {
	cacheKey := CacheKey("series_"+interval, symbol)

	cached, hit := s.Cache.Get(cacheKey, SeriesTTL)
	if hit {
		return cached.(model.TimeSeries), nil
	}

	series, err := s.MarketData.GetTimeSeries(symbol, interval, outputSize)
	if err != nil {
		return series, err
	}

	s.Cache.Set(cacheKey, series)

	return series, nil
}

func (s *MarketService) GetIndicatorCached(name string, symbol string, interval string) (model.IndicatorSeries, error) {
	name = strings.ToLower(name)
	cacheKey := CacheKey(name+"_"+interval, symbol)

	ttl := SeriesTTL
	if interval == "1day" {
		ttl = DailyIndicatorTTL
	}

	cached, hit := s.Cache.Get(cacheKey, ttl)
	if hit {
		return cached.(model.IndicatorSeries), nil
	}

	series, err := s.MarketData.GetIndicator(name, symbol, interval, nil)
	if err != nil {
		return series, err
	}

	s.Cache.Set(cacheKey, series)

	return series, nil
}

// GetInterpretation pairs the latest indicator row with the current quote.
func (s *MarketService) GetInterpretation(name string, symbol string, interval string) (model.IndicatorInterpretation, error) {
	var interpretation model.IndicatorInterpretation

	series, err := s.GetIndicatorCached(name, symbol, interval)
	if err != nil {
		return interpretation, err
	}

	latest := series.Latest()
	if latest == nil {
		return interpretation, model.UpstreamError{StatusCode: 200, Body: "indicator response contains no values"}
	}

	lastPrice := 0.0
	quote, err := s.GetQuoteCached(symbol)
	if err == nil {
		lastPrice = quote.Close.Value()
	}

	return s.IndicatorService.Interpret(strings.ToLower(name), *latest, lastPrice), nil
}

func (s *MarketService) GetChart(symbol string, interval string, indicatorNames []string, outputSize int) (model.ChartData, error) {
	series, err := s.GetTimeSeriesCached(symbol, interval, outputSize)
	if err != nil {
		return model.ChartData{}, err
	}

	indicators := make(map[string]model.IndicatorSeries)
	for _, name := range indicatorNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) == 0 {
			continue
		}

		indicator, indicatorErr := s.GetIndicatorCached(name, symbol, interval)
		if indicatorErr != nil {
			// chart stays usable without the failed overlay
			continue
		}

		indicators[name] = indicator
	}

	return s.IndicatorService.BuildDataset(series, indicators), nil
}
