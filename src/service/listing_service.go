package service

import (
	"fmt"
	"log"

	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/repository"
)

type ListingProviderInterface interface {
	GetListings(market string) ([]model.Listing, error)
}

// ListingService loads the universe of valid symbols once per TTL window:
// memory first, then the shared redis copy, then the upstream endpoint.
// On upstream failure it returns an empty list together with the error so
// callers can continue in degraded mode (symbol validation skipped).
type ListingService struct {
	MarketData       client.MarketDataClientInterface
	MarketRepository repository.MarketStorageInterface
	Cache            *ResponseCache
}

func (l *ListingService) GetListings(market string) ([]model.Listing, error) {
	cacheKey := CacheKey("listings", market)

	cached, hit := l.Cache.Get(cacheKey, ListingsTTL)
	if hit {
		return cached.([]model.Listing), nil
	}

	shared := l.MarketRepository.GetListingsCached(market)
	if len(shared) > 0 {
		l.Cache.Set(cacheKey, shared)

		return shared, nil
	}

	listings, err := l.fetch(market)
	if err != nil {
		log.Printf("[listings] %s fetch failed: %s", market, err.Error())

		return make([]model.Listing, 0), err
	}

	l.Cache.Set(cacheKey, listings)
	l.MarketRepository.SaveListings(market, listings)

	return listings, nil
}

func (l *ListingService) fetch(market string) ([]model.Listing, error) {
	switch market {
	case model.MarketStock:
		return l.MarketData.GetStocks()
	case model.MarketForex:
		return l.MarketData.GetForexPairs()
	case model.MarketCrypto:
		return l.MarketData.GetCryptocurrencies()
	}

	return nil, fmt.Errorf("market '%s' is not supported", market)
}
