package service

import (
	"regexp"
	"strings"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

type ResolutionStrategy string

const (
	ResolutionExactMatch   ResolutionStrategy = "exact_match"
	ResolutionNameContains ResolutionStrategy = "name_contains"
	ResolutionEditDistance ResolutionStrategy = "edit_distance"
	ResolutionHistory      ResolutionStrategy = "history"
)

type Resolution struct {
	Symbol     string             `json:"symbol"`
	Strategy   ResolutionStrategy `json:"strategy"`
	Confidence float64            `json:"confidence"`
}

var pairTokenRegexp = regexp.MustCompile(`\b[A-Z]{2,5}/[A-Z]{2,5}\b`)
var tickerTokenRegexp = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// Uppercase words that look like tickers but almost never are one. Keeping
// the guard small is deliberate: a symbol the user typed in caps should win
// over false-positive paranoia.
var commonUppercaseWords = map[string]bool{
	"A": true, "I": true, "OK": true, "AND": true, "THE": true, "FOR": true,
	"HOW": true, "WHAT": true, "WHY": true, "IS": true, "IT": true, "TO": true,
	"OF": true, "ON": true, "IN": true, "AT": true, "DO": true, "MY": true,
	"ME": true, "NO": true, "OR": true, "SO": true, "UP": true, "AN": true,
	"AS": true, "BY": true, "GO": true, "IF": true, "CEO": true, "USA": true,
	"ETF": true, "API": true, "NOW": true, "NOT": true, "CAN": true,
	"PLEASE": true, "TELL": true,
}

// Words dropped from the free text before name matching.
var nameStopWords = map[string]bool{
	"stock": true, "stocks": true, "forex": true, "pair": true, "crypto": true,
	"cryptocurrency": true, "coin": true, "price": true, "chart": true,
	"the": true, "a": true, "an": true, "is": true, "are": true, "how": true,
	"hows": true, "whats": true, "what": true, "of": true, "for": true,
	"about": true, "today": true, "now": true, "doing": true, "going": true,
	"trading": true, "me": true, "tell": true, "show": true, "and": true,
	"analysis": true, "analyze": true, "please": true, "it": true, "on": true,
	"in": true, "to": true, "with": true, "my": true, "i": true, "you": true,
	"think": true, "will": true, "up": true, "down": true, "buy": true,
	"sell": true, "should": true,
}

// SymbolResolver maps free user text to a canonical listing symbol through a
// ranked strategy chain. Each strategy tags its result so callers (and
// tests) can see which heuristic fired; the first hit wins and the
// confidences are ordered accordingly.
type SymbolResolver struct {
	Text            *utils.TextHelper
	MaxEditDistance int
}

func (r *SymbolResolver) Resolve(userText string, history []model.ChatMessage, listings []model.Listing) *Resolution {
	tokens := r.extractTokens(userText)

	if resolution := r.matchExact(tokens, listings); resolution != nil {
		return resolution
	}

	if resolution := r.matchName(userText, listings); resolution != nil {
		return resolution
	}

	if resolution := r.matchEditDistance(tokens, listings); resolution != nil {
		return resolution
	}

	if resolution := r.matchHistory(history); resolution != nil {
		return resolution
	}

	return nil
}

// extractTokens keeps only tokens that statistically look like a symbol:
// slash-delimited pairs or all-caps words of 1-5 letters, minus common
// English words. Matching runs on the raw input on purpose, "apple" in
// lowercase is a fruit, "AAPL" is a ticker.
func (r *SymbolResolver) extractTokens(userText string) []string {
	tokens := make([]string, 0)
	seen := make(map[string]bool)

	for _, token := range pairTokenRegexp.FindAllString(userText, -1) {
		if !seen[token] {
			tokens = append(tokens, token)
			seen[token] = true
		}
	}

	for _, token := range tickerTokenRegexp.FindAllString(userText, -1) {
		if commonUppercaseWords[token] || seen[token] {
			continue
		}

		tokens = append(tokens, token)
		seen[token] = true
	}

	return tokens
}

func (r *SymbolResolver) matchExact(tokens []string, listings []model.Listing) *Resolution {
	for _, token := range tokens {
		for _, listing := range listings {
			if listing.Symbol == token {
				return &Resolution{
					Symbol:     listing.Symbol,
					Strategy:   ResolutionExactMatch,
					Confidence: 1.0,
				}
			}
		}
	}

	return nil
}

func (r *SymbolResolver) matchName(userText string, listings []model.Listing) *Resolution {
	textWords := make(map[string]bool)
	for _, word := range r.Text.Words(userText) {
		if !nameStopWords[word] {
			textWords[word] = true
		}
	}

	if len(textWords) == 0 {
		return nil
	}

	bestScore := 0
	var best *model.Listing

	for i := range listings {
		for _, nameWord := range r.Text.Words(listings[i].DisplayName()) {
			if len(nameWord) < 4 || nameStopWords[nameWord] {
				continue
			}

			if textWords[nameWord] && len(nameWord) > bestScore {
				bestScore = len(nameWord)
				best = &listings[i]
			}
		}
	}

	if best == nil {
		return nil
	}

	return &Resolution{
		Symbol:     best.Symbol,
		Strategy:   ResolutionNameContains,
		Confidence: 0.8,
	}
}

func (r *SymbolResolver) matchEditDistance(tokens []string, listings []model.Listing) *Resolution {
	bestDistance := r.MaxEditDistance + 1
	var best *model.Listing

	for _, token := range tokens {
		for i := range listings {
			distance := r.Text.Levenshtein(token, strings.ToUpper(listings[i].Symbol))
			if distance < bestDistance {
				bestDistance = distance
				best = &listings[i]
			}

			for _, nameWord := range r.Text.Words(listings[i].DisplayName()) {
				distance = r.Text.Levenshtein(strings.ToLower(token), nameWord)
				if distance < bestDistance {
					bestDistance = distance
					best = &listings[i]
				}
			}
		}
	}

	if best == nil || bestDistance > r.MaxEditDistance {
		return nil
	}

	return &Resolution{
		Symbol:     best.Symbol,
		Strategy:   ResolutionEditDistance,
		Confidence: 0.6,
	}
}

func (r *SymbolResolver) matchHistory(history []model.ChatMessage) *Resolution {
	for i := len(history) - 1; i >= 0; i-- {
		if len(history[i].Symbol) > 0 {
			return &Resolution{
				Symbol:     history[i].Symbol,
				Strategy:   ResolutionHistory,
				Confidence: 0.4,
			}
		}
	}

	return nil
}
