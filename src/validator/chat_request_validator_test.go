package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

func TestValidateAcceptsSupportedMarkets(t *testing.T) {
	validator := ChatRequestValidator{}

	for _, market := range []string{"stock", "forex", "crypto"} {
		err := validator.Validate(market, model.ChatRequest{Message: "How is AAPL doing?"})
		assert.NoError(t, err)
	}
}

func TestValidateRejectsUnknownMarket(t *testing.T) {
	validator := ChatRequestValidator{}

	err := validator.Validate("bonds", model.ChatRequest{Message: "How is AAPL doing?"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bonds")
}

func TestValidateRejectsEmptyMessage(t *testing.T) {
	validator := ChatRequestValidator{}

	err := validator.Validate("stock", model.ChatRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateRejectsOversizedMessage(t *testing.T) {
	validator := ChatRequestValidator{}

	err := validator.Validate("stock", model.ChatRequest{Message: strings.Repeat("a", 2001)})
	assert.Error(t, err)

	err = validator.Validate("stock", model.ChatRequest{Message: strings.Repeat("a", 2000)})
	assert.NoError(t, err)
}
