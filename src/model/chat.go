package model

import (
	"database/sql/driver"
	"encoding/json"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type AttachedData map[string]interface{}

func (a *AttachedData) Scan(src interface{}) error {
	if src == nil {
		return nil
	}

	return json.Unmarshal(src.([]byte), &a)
}

func (a AttachedData) Value() (driver.Value, error) {
	jsonV, err := json.Marshal(a)
	return string(jsonV), err
}

type ChatMessage struct {
	Id           int64        `json:"id"`
	Role         string       `json:"role"`
	Content      string       `json:"content"`
	Symbol       string       `json:"symbol,omitempty"`
	AttachedData AttachedData `json:"attachedData,omitempty"`
	CreatedAt    string       `json:"createdAt"`
}

type ChatSession struct {
	Id        int64  `json:"id"`
	Uuid      string `json:"uuid"`
	Market    string `json:"market"`
	CreatedAt string `json:"createdAt"`
}

type ChatRequest struct {
	SessionUuid string `json:"sessionUuid"`
	Message     string `json:"message"`
}

type ChatResponse struct {
	SessionUuid string      `json:"sessionUuid"`
	Message     ChatMessage `json:"message"`
	Error       string      `json:"error,omitempty"`
}
