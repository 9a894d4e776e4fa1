package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/repository"
)

const (
	// conversation turns handed to the model, older turns are dropped
	promptHistoryLimit = 10
	// upper bound for the serialized market context inside the prompt
	promptContextLimit = 4000
)

var advisorIndicators = map[string][]string{
	model.MarketStock:  {"rsi", "macd", "ema"},
	model.MarketForex:  {"rsi", "ema"},
	model.MarketCrypto: {"rsi", "macd"},
}

var advisorSystemPrompts = map[string]string{
	model.MarketStock:  "You are a stock market advisor. Ground every statement in the market data JSON attached to the user message. Mention concrete numbers, stay concise, and never present the answer as guaranteed investment advice.",
	model.MarketForex:  "You are a forex advisor. Ground every statement in the market data JSON attached to the user message. Quote pairs as base/quote, mention concrete numbers, and never present the answer as guaranteed investment advice.",
	model.MarketCrypto: "You are a cryptocurrency advisor. Ground every statement in the market data JSON attached to the user message. Mention concrete numbers, note that crypto is volatile, and never present the answer as guaranteed investment advice.",
}

// AdvisorService drives one advisor chat turn: resolve the symbol from free
// text, fetch cached market context through the throttled client, assemble
// a bounded prompt, call the model and persist both turns. Every failure
// path degrades into an in-chat assistant message, the page never crashes.
type AdvisorService struct {
	ListingService *ListingService
	Resolver       *SymbolResolver
	MarketService  *MarketService
	Ai             client.ChatCompletionInterface
	ChatRepository repository.ChatStorageInterface
}

func (a *AdvisorService) ProcessMessage(market string, sessionUuid string, text string) (model.ChatResponse, error) {
	var response model.ChatResponse

	session, err := a.ChatRepository.GetOrCreateSession(sessionUuid, market)
	if err != nil {
		return response, err
	}
	response.SessionUuid = session.Uuid

	history := a.ChatRepository.GetMessages(session.Id, 50)

	listings, err := a.ListingService.GetListings(market)
	if err != nil {
		// degraded mode: resolver falls back to conversation history
		log.Printf("[advisor] %s listings unavailable: %s", market, err.Error())
	}

	resolution := a.Resolver.Resolve(text, history, listings)

	userMessage := model.ChatMessage{Role: model.RoleUser, Content: text}
	if resolution != nil {
		userMessage.Symbol = resolution.Symbol
	}

	err = a.ChatRepository.AppendMessage(session.Id, userMessage)
	if err != nil {
		return response, err
	}

	if resolution == nil {
		return a.reply(session, response, model.ChatMessage{
			Role:    model.RoleAssistant,
			Content: "I couldn't identify a symbol in your message. Which instrument do you mean? You can use a ticker like AAPL or a pair like EUR/USD.",
		}, "")
	}

	quote, interpretations, err := a.collectContext(market, resolution.Symbol)
	if err != nil {
		return a.reply(session, response, model.ChatMessage{
			Role:    model.RoleAssistant,
			Symbol:  resolution.Symbol,
			Content: a.marketDataErrorText(err),
		}, err.Error())
	}

	prompt := a.buildPrompt(text, resolution, quote, interpretations)

	recent := history
	if len(recent) > promptHistoryLimit {
		recent = recent[len(recent)-promptHistoryLimit:]
	}

	reply, err := a.Ai.CompleteChat(advisorSystemPrompts[market], recent, prompt)
	if err != nil {
		return a.reply(session, response, model.ChatMessage{
			Role:    model.RoleAssistant,
			Symbol:  resolution.Symbol,
			Content: a.completionErrorText(err),
		}, err.Error())
	}

	return a.reply(session, response, model.ChatMessage{
		Role:    model.RoleAssistant,
		Symbol:  resolution.Symbol,
		Content: reply,
		AttachedData: model.AttachedData{
			"symbol":     resolution.Symbol,
			"resolution": resolution,
			"quote":      quote,
			"indicators": interpretations,
		},
	}, "")
}

func (a *AdvisorService) collectContext(market string, symbol string) (model.Quote, []model.IndicatorInterpretation, error) {
	quote, err := a.MarketService.GetQuoteCached(symbol)
	if err != nil {
		return quote, nil, err
	}

	interpretations := make([]model.IndicatorInterpretation, 0)

	for _, name := range advisorIndicators[market] {
		interpretation, indicatorErr := a.MarketService.GetInterpretation(name, symbol, "1day")
		if indicatorErr != nil {
			// a missing indicator reduces context quality, it does not
			// block the answer
			log.Printf("[advisor] %s %s unavailable: %s", symbol, name, indicatorErr.Error())
			continue
		}

		interpretations = append(interpretations, interpretation)
	}

	return quote, interpretations, nil
}

// buildPrompt is pure concatenation: user text plus bounded context JSON.
func (a *AdvisorService) buildPrompt(text string, resolution *Resolution, quote model.Quote, interpretations []model.IndicatorInterpretation) string {
	contextJSON := "{}"

	encoded, err := json.Marshal(map[string]interface{}{
		"symbol":     resolution.Symbol,
		"resolvedBy": resolution.Strategy,
		"quote":      quote,
		"indicators": interpretations,
	})
	if err == nil {
		contextJSON = string(encoded)
	}

	if len(contextJSON) > promptContextLimit {
		contextJSON = contextJSON[:promptContextLimit]
	}

	return fmt.Sprintf("%s\n\nMarket data (JSON):\n%s", text, contextJSON)
}

func (a *AdvisorService) reply(session model.ChatSession, response model.ChatResponse, message model.ChatMessage, errorText string) (model.ChatResponse, error) {
	err := a.ChatRepository.AppendMessage(session.Id, message)
	if err != nil {
		return response, err
	}

	response.Message = message
	response.Error = errorText

	return response, nil
}

func (a *AdvisorService) marketDataErrorText(err error) string {
	var rateLimit model.RateLimitError
	if errors.As(err, &rateLimit) {
		return "The market data service is receiving too many requests right now. Please try again in a minute."
	}

	var configuration model.ConfigurationError
	if errors.As(err, &configuration) {
		return "Market data is not configured on this server, so I can't look up live prices."
	}

	return "I couldn't fetch market data for that symbol right now. Please try again."
}

func (a *AdvisorService) completionErrorText(err error) string {
	var configuration model.ConfigurationError
	if errors.As(err, &configuration) {
		return "The advisor is not configured on this server, so I can't generate an answer."
	}

	return "I couldn't generate an answer right now. Please try again."
}
