package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type ChatStorageInterface interface {
	GetSession(uuid string) (model.ChatSession, error)
	GetOrCreateSession(uuid string, market string) (model.ChatSession, error)
	GetMessages(sessionId int64, limit int64) []model.ChatMessage
	AppendMessage(sessionId int64, message model.ChatMessage) error
	ClearSession(sessionId int64) error
}

type ChatRepository struct {
	DB  *sql.DB
	RDB *redis.Client
	Ctx *context.Context
}

func (c *ChatRepository) InitSchema() error {
	_, err := c.DB.Exec(`
		CREATE TABLE IF NOT EXISTS chat_sessions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			uuid VARCHAR(36) NOT NULL UNIQUE,
			market VARCHAR(16) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return err
	}

	_, err = c.DB.Exec(`
		CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			session_id BIGINT NOT NULL,
			role VARCHAR(16) NOT NULL,
			content TEXT NOT NULL,
			symbol VARCHAR(32) NOT NULL DEFAULT '',
			attached_data JSON,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX chat_messages_session (session_id)
		)`)

	return err
}

func (c *ChatRepository) GetSession(uuid string) (model.ChatSession, error) {
	var session model.ChatSession

	err := c.DB.QueryRow(`
		SELECT
			cs.id as Id,
			cs.uuid as Uuid,
			cs.market as Market,
			cs.created_at as CreatedAt
		FROM chat_sessions cs
		WHERE cs.uuid = ?`, uuid,
	).Scan(
		&session.Id,
		&session.Uuid,
		&session.Market,
		&session.CreatedAt,
	)

	return session, err
}

func (c *ChatRepository) GetOrCreateSession(uuid string, market string) (model.ChatSession, error) {
	session, err := c.GetSession(uuid)
	if err == nil {
		return session, nil
	}

	if err != sql.ErrNoRows {
		return session, err
	}

	_, err = c.DB.Exec(
		"INSERT INTO chat_sessions SET uuid = ?, market = ?",
		uuid,
		market,
	)
	if err != nil {
		return session, err
	}

	return c.GetSession(uuid)
}

func (c *ChatRepository) GetMessages(sessionId int64, limit int64) []model.ChatMessage {
	cached := c.RDB.Get(*c.Ctx, c.getMessagesCacheKey(sessionId, limit)).Val()
	if len(cached) > 0 {
		var messages []model.ChatMessage
		err := json.Unmarshal([]byte(cached), &messages)
		if err == nil {
			return messages
		}
	}

	messages := make([]model.ChatMessage, 0)

	res, err := c.DB.Query(`
		SELECT
			cm.id as Id,
			cm.role as Role,
			cm.content as Content,
			cm.symbol as Symbol,
			cm.attached_data as AttachedData,
			cm.created_at as CreatedAt
		FROM chat_messages cm
		WHERE cm.session_id = ?
		ORDER BY cm.id DESC
		LIMIT ?`, sessionId, limit,
	)
	if err != nil {
		log.Printf("[chat] GetMessages error: %s", err.Error())

		return messages
	}
	defer res.Close()

	for res.Next() {
		var message model.ChatMessage
		err := res.Scan(
			&message.Id,
			&message.Role,
			&message.Content,
			&message.Symbol,
			&message.AttachedData,
			&message.CreatedAt,
		)
		if err != nil {
			log.Printf("[chat] GetMessages scan error: %s", err.Error())
			continue
		}

		messages = append(messages, message)
	}

	// rows arrive newest first, conversation order is oldest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	encoded, err := json.Marshal(messages)
	if err == nil {
		c.RDB.Set(*c.Ctx, c.getMessagesCacheKey(sessionId, limit), string(encoded), time.Minute)
	}

	return messages
}

func (c *ChatRepository) AppendMessage(sessionId int64, message model.ChatMessage) error {
	_, err := c.DB.Exec(
		"INSERT INTO chat_messages SET session_id = ?, role = ?, content = ?, symbol = ?, attached_data = ?",
		sessionId,
		message.Role,
		message.Content,
		message.Symbol,
		message.AttachedData,
	)
	if err != nil {
		return err
	}

	c.invalidateMessagesCache(sessionId)

	return nil
}

func (c *ChatRepository) ClearSession(sessionId int64) error {
	_, err := c.DB.Exec("DELETE FROM chat_messages WHERE session_id = ?", sessionId)
	if err != nil {
		return err
	}

	c.invalidateMessagesCache(sessionId)

	return nil
}

func (c *ChatRepository) invalidateMessagesCache(sessionId int64) {
	iterator := c.RDB.Scan(*c.Ctx, 0, fmt.Sprintf("chat-messages-%d-*", sessionId), 100).Iterator()
	for iterator.Next(*c.Ctx) {
		c.RDB.Del(*c.Ctx, iterator.Val())
	}
}

func (c *ChatRepository) getMessagesCacheKey(sessionId int64, limit int64) string {
	return fmt.Sprintf("chat-messages-%d-%d", sessionId, limit)
}
