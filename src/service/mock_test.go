package service

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type MarketDataClientMock struct {
	mock.Mock
}

func (m *MarketDataClientMock) GetQuote(symbol string) (model.Quote, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.Quote), args.Error(1)
}

func (m *MarketDataClientMock) GetTimeSeries(symbol string, interval string, outputSize int) (model.TimeSeries, error) {
	args := m.Called(symbol, interval, outputSize)
	return args.Get(0).(model.TimeSeries), args.Error(1)
}

func (m *MarketDataClientMock) GetIndicator(name string, symbol string, interval string, params map[string]string) (model.IndicatorSeries, error) {
	args := m.Called(name, symbol, interval, params)
	return args.Get(0).(model.IndicatorSeries), args.Error(1)
}

func (m *MarketDataClientMock) GetStocks() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MarketDataClientMock) GetForexPairs() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MarketDataClientMock) GetCryptocurrencies() ([]model.Listing, error) {
	args := m.Called()
	return args.Get(0).([]model.Listing), args.Error(1)
}

type MarketStorageMock struct {
	mock.Mock
}

func (m *MarketStorageMock) SaveListings(market string, listings []model.Listing) {
	m.Called(market, listings)
}

func (m *MarketStorageMock) GetListingsCached(market string) []model.Listing {
	args := m.Called(market)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Listing)
}

type ChatStorageMock struct {
	mock.Mock

	appended []model.ChatMessage
}

func (m *ChatStorageMock) GetSession(uuid string) (model.ChatSession, error) {
	args := m.Called(uuid)
	return args.Get(0).(model.ChatSession), args.Error(1)
}

func (m *ChatStorageMock) GetOrCreateSession(uuid string, market string) (model.ChatSession, error) {
	args := m.Called(uuid, market)
	return args.Get(0).(model.ChatSession), args.Error(1)
}

func (m *ChatStorageMock) GetMessages(sessionId int64, limit int64) []model.ChatMessage {
	args := m.Called(sessionId, limit)
	return args.Get(0).([]model.ChatMessage)
}

func (m *ChatStorageMock) AppendMessage(sessionId int64, message model.ChatMessage) error {
	m.appended = append(m.appended, message)
	args := m.Called(sessionId, message)
	return args.Error(0)
}

func (m *ChatStorageMock) ClearSession(sessionId int64) error {
	args := m.Called(sessionId)
	return args.Error(0)
}

type ChatCompletionMock struct {
	mock.Mock
}

func (m *ChatCompletionMock) CompleteChat(systemPrompt string, history []model.ChatMessage, userText string) (string, error) {
	args := m.Called(systemPrompt, history, userText)
	return args.String(0), args.Error(1)
}
