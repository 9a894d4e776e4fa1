package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

func newAdvisorFixture(marketDataMock *MarketDataClientMock, chatMock *ChatStorageMock, aiMock *ChatCompletionMock) *AdvisorService {
	storageMock := new(MarketStorageMock)
	storageMock.On("GetListingsCached", mock.Anything).Return(nil)
	storageMock.On("SaveListings", mock.Anything, mock.Anything)

	cache := NewResponseCache()

	return &AdvisorService{
		ListingService: &ListingService{
			MarketData:       marketDataMock,
			MarketRepository: storageMock,
			Cache:            cache,
		},
		Resolver: &SymbolResolver{
			Text:            &utils.TextHelper{},
			MaxEditDistance: 2,
		},
		MarketService: &MarketService{
			MarketData:       marketDataMock,
			IndicatorService: newIndicatorService(),
			Cache:            cache,
		},
		Ai:             aiMock,
		ChatRepository: chatMock,
	}
}

func TestProcessMessageAnswersWithMarketContext(t *testing.T) {
	marketDataMock := new(MarketDataClientMock)
	chatMock := new(ChatStorageMock)
	aiMock := new(ChatCompletionMock)

	session := model.ChatSession{Id: 7, Uuid: "session-uuid", Market: "stock"}
	chatMock.On("GetOrCreateSession", "session-uuid", "stock").Return(session, nil)
	chatMock.On("GetMessages", int64(7), int64(50)).Return([]model.ChatMessage{})
	chatMock.On("AppendMessage", int64(7), mock.Anything).Return(nil)

	marketDataMock.On("GetStocks").Return([]model.Listing{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{Symbol: "AAPL", Close: 187.0}, nil)
	marketDataMock.On("GetIndicator", mock.Anything, "AAPL", "1day", map[string]string(nil)).Return(model.IndicatorSeries{
		Values: []model.IndicatorPoint{{Datetime: "2024-05-01", Values: map[string]float64{"rsi": 55.0}}},
	}, nil)

	aiMock.On("CompleteChat", mock.Anything, mock.Anything, mock.Anything).Return("AAPL looks stable around 187.", nil)

	advisor := newAdvisorFixture(marketDataMock, chatMock, aiMock)

	response, err := advisor.ProcessMessage("stock", "session-uuid", "How is AAPL doing?")

	assert.NoError(t, err)
	assert.Equal(t, "session-uuid", response.SessionUuid)
	assert.Equal(t, model.RoleAssistant, response.Message.Role)
	assert.Equal(t, "AAPL", response.Message.Symbol)
	assert.Equal(t, "AAPL looks stable around 187.", response.Message.Content)
	assert.Empty(t, response.Error)

	// both the user turn and the assistant turn are persisted
	assert.Len(t, chatMock.appended, 2)
	assert.Equal(t, model.RoleUser, chatMock.appended[0].Role)
	assert.Equal(t, "AAPL", chatMock.appended[0].Symbol)

	// the prompt carries the market context, the stored user turn does not
	prompt := aiMock.Calls[0].Arguments.String(2)
	assert.Contains(t, prompt, "Market data (JSON)")
	assert.NotContains(t, chatMock.appended[0].Content, "Market data (JSON)")
}

func TestProcessMessageAsksForClarification(t *testing.T) {
	marketDataMock := new(MarketDataClientMock)
	chatMock := new(ChatStorageMock)
	aiMock := new(ChatCompletionMock)

	session := model.ChatSession{Id: 3, Uuid: "session-uuid", Market: "stock"}
	chatMock.On("GetOrCreateSession", "session-uuid", "stock").Return(session, nil)
	chatMock.On("GetMessages", int64(3), int64(50)).Return([]model.ChatMessage{})
	chatMock.On("AppendMessage", int64(3), mock.Anything).Return(nil)

	marketDataMock.On("GetStocks").Return([]model.Listing{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)

	advisor := newAdvisorFixture(marketDataMock, chatMock, aiMock)

	response, err := advisor.ProcessMessage("stock", "session-uuid", "hello there")

	assert.NoError(t, err)
	assert.Contains(t, response.Message.Content, "couldn't identify a symbol")
	assert.Empty(t, response.Message.Symbol)

	aiMock.AssertNotCalled(t, "CompleteChat", mock.Anything, mock.Anything, mock.Anything)
	marketDataMock.AssertNotCalled(t, "GetQuote", mock.Anything)
}

func TestProcessMessageDegradesOnRateLimit(t *testing.T) {
	marketDataMock := new(MarketDataClientMock)
	chatMock := new(ChatStorageMock)
	aiMock := new(ChatCompletionMock)

	session := model.ChatSession{Id: 5, Uuid: "session-uuid", Market: "stock"}
	chatMock.On("GetOrCreateSession", "session-uuid", "stock").Return(session, nil)
	chatMock.On("GetMessages", int64(5), int64(50)).Return([]model.ChatMessage{})
	chatMock.On("AppendMessage", int64(5), mock.Anything).Return(nil)

	marketDataMock.On("GetStocks").Return([]model.Listing{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)
	marketDataMock.On("GetQuote", "AAPL").Return(model.Quote{}, model.RateLimitError{Attempts: 3})

	advisor := newAdvisorFixture(marketDataMock, chatMock, aiMock)

	response, err := advisor.ProcessMessage("stock", "session-uuid", "How is AAPL doing?")

	assert.NoError(t, err)
	assert.Contains(t, response.Message.Content, "too many requests")
	assert.NotEmpty(t, response.Error)

	aiMock.AssertNotCalled(t, "CompleteChat", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessMessageDegradesWithoutListings(t *testing.T) {
	marketDataMock := new(MarketDataClientMock)
	chatMock := new(ChatStorageMock)
	aiMock := new(ChatCompletionMock)

	session := model.ChatSession{Id: 9, Uuid: "session-uuid", Market: "stock"}
	chatMock.On("GetOrCreateSession", "session-uuid", "stock").Return(session, nil)
	chatMock.On("GetMessages", int64(9), int64(50)).Return([]model.ChatMessage{
		{Role: model.RoleUser, Content: "how is TSLA?", Symbol: "TSLA"},
	})
	chatMock.On("AppendMessage", int64(9), mock.Anything).Return(nil)

	marketDataMock.On("GetStocks").Return([]model.Listing{}, model.UpstreamError{StatusCode: 500, Body: "down"})
	marketDataMock.On("GetQuote", "TSLA").Return(model.Quote{Symbol: "TSLA", Close: 250.0}, nil)
	marketDataMock.On("GetIndicator", mock.Anything, "TSLA", "1day", map[string]string(nil)).Return(model.IndicatorSeries{
		Values: []model.IndicatorPoint{{Datetime: "2024-05-01", Values: map[string]float64{"rsi": 48.0}}},
	}, nil)

	aiMock.On("CompleteChat", mock.Anything, mock.Anything, mock.Anything).Return("TSLA is holding its range.", nil)

	advisor := newAdvisorFixture(marketDataMock, chatMock, aiMock)

	// listings are unavailable, the history strategy still resolves the symbol
	response, err := advisor.ProcessMessage("stock", "session-uuid", "and what about tomorrow?")

	assert.NoError(t, err)
	assert.Equal(t, "TSLA", response.Message.Symbol)
	assert.Empty(t, response.Error)
}
