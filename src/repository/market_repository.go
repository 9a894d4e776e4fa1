package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type MarketStorageInterface interface {
	SaveListings(market string, listings []model.Listing)
	GetListingsCached(market string) []model.Listing
}

// MarketRepository keeps the symbol universe in redis so every process (and
// restart) shares one upstream listings fetch per day.
type MarketRepository struct {
	RDB *redis.Client
	Ctx *context.Context
}

func (m *MarketRepository) SaveListings(market string, listings []model.Listing) {
	encoded, err := json.Marshal(listings)
	if err != nil {
		return
	}

	m.RDB.Set(*m.Ctx, m.getListingsCacheKey(market), string(encoded), time.Hour*24)
}

func (m *MarketRepository) GetListingsCached(market string) []model.Listing {
	res := m.RDB.Get(*m.Ctx, m.getListingsCacheKey(market)).Val()

	if len(res) == 0 {
		return nil
	}

	var listings []model.Listing
	err := json.Unmarshal([]byte(res), &listings)
	if err != nil {
		return nil
	}

	return listings
}

func (m *MarketRepository) getListingsCacheKey(market string) string {
	return fmt.Sprintf("listings-%s", market)
}
