package controller

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/validator"
)

type ChatStorageMock struct {
	mock.Mock
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
	args := m.Called(sessionId, message)
	return args.Error(0)
}

func (m *ChatStorageMock) ClearSession(sessionId int64) error {
	args := m.Called(sessionId)
	return args.Error(0)
}

func TestGetHistoryAction(t *testing.T) {
	chatMock := new(ChatStorageMock)
	chatMock.On("GetSession", "session-uuid").Return(model.ChatSession{Id: 4, Uuid: "session-uuid", Market: "stock"}, nil)
	chatMock.On("GetMessages", int64(4), int64(100)).Return([]model.ChatMessage{
		{Role: model.RoleUser, Content: "How is AAPL doing?", Symbol: "AAPL"},
		{Role: model.RoleAssistant, Content: "AAPL looks stable.", Symbol: "AAPL"},
	})

	controller := AdvisorController{ChatRepository: chatMock}

	req := httptest.NewRequest("GET", "/advisor/history/session-uuid", nil)
	recorder := httptest.NewRecorder()

	controller.GetHistoryAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "AAPL looks stable.")
}

func TestGetHistoryActionUnknownSession(t *testing.T) {
	chatMock := new(ChatStorageMock)
	chatMock.On("GetSession", "missing").Return(model.ChatSession{}, sql.ErrNoRows)

	controller := AdvisorController{ChatRepository: chatMock}

	req := httptest.NewRequest("GET", "/advisor/history/missing", nil)
	recorder := httptest.NewRecorder()

	controller.GetHistoryAction(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPostClearAction(t *testing.T) {
	chatMock := new(ChatStorageMock)
	chatMock.On("GetSession", "session-uuid").Return(model.ChatSession{Id: 4, Uuid: "session-uuid"}, nil)
	chatMock.On("ClearSession", int64(4)).Return(nil)

	controller := AdvisorController{ChatRepository: chatMock}

	req := httptest.NewRequest("POST", "/advisor/clear/session-uuid", nil)
	recorder := httptest.NewRecorder()

	controller.PostClearAction(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cleared")
	chatMock.AssertCalled(t, "ClearSession", int64(4))
}

func TestPostChatActionValidatesRequest(t *testing.T) {
	controller := AdvisorController{Validator: &validator.ChatRequestValidator{}}

	req := httptest.NewRequest("POST", "/advisor/chat/bonds", nil)
	recorder := httptest.NewRecorder()

	controller.PostChatAction(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPostChatActionMethodGuard(t *testing.T) {
	controller := AdvisorController{}

	req := httptest.NewRequest("DELETE", "/advisor/chat/stock", nil)
	recorder := httptest.NewRecorder()

	controller.PostChatAction(recorder, req)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
