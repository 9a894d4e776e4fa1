package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/service"
)

const maxUploadBytes = 32 << 20

// AnalysisController proxies the analysis backend. Every route answers
// HTTP 200: when the backend call fails the response is synthesized by
// the FallbackService instead of surfacing the failure to the UI.
type AnalysisController struct {
	Backend         client.AnalysisBackendInterface
	FallbackService *service.FallbackService
}

func (a *AnalysisController) PostSecAnalysisAction(w http.ResponseWriter, req *http.Request) {
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

	var analysisRequest model.SecAnalysisRequest

	err := json.NewDecoder(req.Body).Decode(&analysisRequest)
	if err != nil || len(analysisRequest.Ticker) == 0 {
		http.Error(w, "Ticker should not be empty", http.StatusBadRequest)

		return
	}

	responseBody, err := a.Backend.AnalyzeCompany(analysisRequest.Ticker)
	if err != nil {
		log.Printf("[analysis] sec-analysis backend failed: %s", err.Error())

		encoded, _ := json.Marshal(a.FallbackService.MockSecAnalysis(analysisRequest.Ticker))
		_, _ = w.Write(encoded)

		return
	}

	_, _ = w.Write(responseBody)
}

func (a *AnalysisController) PostSecChatAction(w http.ResponseWriter, req *http.Request) {
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

	var chatRequest model.SecChatRequest

	err := json.NewDecoder(req.Body).Decode(&chatRequest)
	if err != nil || len(chatRequest.Query) == 0 {
		http.Error(w, "Query should not be empty", http.StatusBadRequest)

		return
	}

	responseBody, err := a.Backend.CompanyChat(chatRequest.Query, chatRequest.CompanySymbol, chatRequest.CompanyContext)
	if err != nil {
		log.Printf("[analysis] sec-chat backend failed: %s", err.Error())

		encoded, _ := json.Marshal(model.ChatQueryResponse{
			Response: a.FallbackService.MockSecChatResponse(chatRequest.Query, chatRequest.CompanySymbol),
		})
		_, _ = w.Write(encoded)

		return
	}

	_, _ = w.Write(responseBody)
}

func (a *AnalysisController) PostChatQueryAction(w http.ResponseWriter, req *http.Request) {
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

	var queryRequest model.ChatQueryRequest

	err := json.NewDecoder(req.Body).Decode(&queryRequest)
	if err != nil || len(queryRequest.Query) == 0 {
		http.Error(w, "Query should not be empty", http.StatusBadRequest)

		return
	}

	responseBody, err := a.Backend.ChatQuery(queryRequest.Query, queryRequest.Context)
	if err != nil {
		log.Printf("[analysis] chat-query backend failed: %s", err.Error())

		encoded, _ := json.Marshal(model.ChatQueryResponse{
			Response: a.FallbackService.MockChatQueryResponse(queryRequest.Query),
		})
		_, _ = w.Write(encoded)

		return
	}

	_, _ = w.Write(responseBody)
}

func (a *AnalysisController) PostDocumentAnalysisAction(w http.ResponseWriter, req *http.Request) {
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

	err := req.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		http.Error(w, "File should be attached in the 'file' field", http.StatusBadRequest)

		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		http.Error(w, "File should be attached in the 'file' field", http.StatusBadRequest)

		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	contentType := header.Header.Get("Content-Type")

	responseBody, err := a.Backend.AnalyzeDocument(header.Filename, content, contentType)
	if err != nil {
		log.Printf("[analysis] document backend failed: %s", err.Error())

		encoded, _ := json.Marshal(a.FallbackService.MockDocumentAnalysis(header.Filename, header.Size, contentType))
		_, _ = w.Write(encoded)

		return
	}

	_, _ = w.Write(responseBody)
}
