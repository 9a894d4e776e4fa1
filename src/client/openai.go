package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type ChatCompletionInterface interface {
	CompleteChat(systemPrompt string, history []model.ChatMessage, userText string) (string, error)
}

type OpenAi struct {
	ApiKey     string
	BaseURL    string
	Model      string
	HttpClient HttpClientInterface
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAi) CompleteChat(systemPrompt string, history []model.ChatMessage, userText string) (string, error) {
	if len(o.ApiKey) == 0 {
		return "", model.ConfigurationError{Variable: "OPENAI_API_KEY"}
	}

	messages := make([]completionMessage, 0, len(history)+2)
	messages = append(messages, completionMessage{Role: model.RoleSystem, Content: systemPrompt})

	for _, turn := range history {
		messages = append(messages, completionMessage{Role: turn.Role, Content: turn.Content})
	}

	messages = append(messages, completionMessage{Role: model.RoleUser, Content: userText})

	encoded, err := json.Marshal(completionRequest{
		Model:    o.Model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	body, err := o.HttpClient.Post(o.BaseURL+"/v1/chat/completions", encoded, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", o.ApiKey),
	})
	if err != nil {
		return "", err
	}

	var response completionResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 || len(response.Choices[0].Message.Content) == 0 {
		return "", errors.New("chat completion returned no content")
	}

	return response.Choices[0].Message.Content, nil
}
