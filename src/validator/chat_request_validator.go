package validator

import (
	"errors"
	"fmt"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

const maxMessageLength = 2000

type ChatRequestValidator struct {
}

func (v *ChatRequestValidator) Validate(market string, request model.ChatRequest) error {
	if !model.IsMarketSupported(market) {
		return fmt.Errorf("market '%s' is not supported", market)
	}

	if len(request.Message) == 0 {
		return errors.New("message should not be empty")
	}

	if len(request.Message) > maxMessageLength {
		return fmt.Errorf("message should not be longer than %d characters", maxMessageLength)
	}

	return nil
}
