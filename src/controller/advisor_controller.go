package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/repository"
	"gitlab.com/open-soft/go-fin-advisor/src/service"
	"gitlab.com/open-soft/go-fin-advisor/src/validator"
)

type AdvisorController struct {
	AdvisorService *service.AdvisorService
	ChatRepository repository.ChatStorageInterface
	Validator      *validator.ChatRequestValidator
}

func (a *AdvisorController) PostChatAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	market := strings.TrimPrefix(req.URL.Path, "/advisor/chat/")

	var chatRequest model.ChatRequest

	err := json.NewDecoder(req.Body).Decode(&chatRequest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	err = a.Validator.Validate(market, chatRequest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if len(chatRequest.SessionUuid) == 0 {
		chatRequest.SessionUuid = uuid.New().String()
	}

	response, err := a.AdvisorService.ProcessMessage(market, chatRequest.SessionUuid, chatRequest.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	encoded, _ := json.Marshal(response)
	_, _ = w.Write(encoded)
}

func (a *AdvisorController) GetHistoryAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	sessionUuid := strings.TrimPrefix(req.URL.Path, "/advisor/history/")
	if len(sessionUuid) == 0 {
		http.Error(w, "Session uuid should not be empty", http.StatusBadRequest)

		return
	}

	session, err := a.ChatRepository.GetSession(sessionUuid)
	if err != nil {
		http.Error(w, "Session is not found", http.StatusNotFound)

		return
	}

	messages := a.ChatRepository.GetMessages(session.Id, 100)

	encoded, _ := json.Marshal(messages)
	_, _ = w.Write(encoded)
}

// PostClearAction resets chat-local state only. The shared market data
// caches stay untouched.
func (a *AdvisorController) PostClearAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	sessionUuid := strings.TrimPrefix(req.URL.Path, "/advisor/clear/")
	if len(sessionUuid) == 0 {
		http.Error(w, "Session uuid should not be empty", http.StatusBadRequest)

		return
	}

	session, err := a.ChatRepository.GetSession(sessionUuid)
	if err != nil {
		http.Error(w, "Session is not found", http.StatusNotFound)

		return
	}

	err = a.ChatRepository.ClearSession(session.Id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	fmt.Fprintf(w, `{"status": "cleared"}`)
}
