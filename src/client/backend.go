package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type AnalysisBackendInterface interface {
	AnalyzeCompany(ticker string) ([]byte, error)
	CompanyChat(query string, symbol string, companyContext map[string]interface{}) ([]byte, error)
	ChatQuery(query string, queryContext map[string]interface{}) ([]byte, error)
	AnalyzeDocument(filename string, content []byte, contentType string) ([]byte, error)
	Health() ([]byte, error)
}

// AnalysisBackend proxies the optional Python analysis service. Every call
// carries a deadline, a hung backend must not stall the calling route: the
// routes fall back to mock payloads instead.
type AnalysisBackend struct {
	BaseURL    string
	Timeout    time.Duration
	HttpClient *http.Client
}

func (b *AnalysisBackend) AnalyzeCompany(ticker string) ([]byte, error) {
	return b.postJson("/api/sec-analysis", model.SecAnalysisRequest{Ticker: ticker})
}

func (b *AnalysisBackend) CompanyChat(query string, symbol string, companyContext map[string]interface{}) ([]byte, error) {
	return b.postJson("/api/sec-chat", model.SecChatRequest{
		Query:          query,
		CompanySymbol:  symbol,
		CompanyContext: companyContext,
	})
}

func (b *AnalysisBackend) ChatQuery(query string, queryContext map[string]interface{}) ([]byte, error) {
	return b.postJson("/chat-query", model.ChatQueryRequest{
		Query:   query,
		Context: queryContext,
	})
}

func (b *AnalysisBackend) AnalyzeDocument(filename string, content []byte, contentType string) ([]byte, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}

	_, err = part.Write(content)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", b.BaseURL+"/api/enhanced-document-analysis", buffer)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return b.do(req)
}

func (b *AnalysisBackend) Health() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", b.BaseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	return b.do(req)
}

func (b *AnalysisBackend) postJson(path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", b.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return b.do(req)
}

func (b *AnalysisBackend) do(req *http.Request) ([]byte, error) {
	res, err := b.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}

	responseBody, err := io.ReadAll(res.Body)
	defer res.Body.Close()

	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		return nil, model.UpstreamError{StatusCode: res.StatusCode, Body: string(responseBody)}
	}

	return responseBody, nil
}
