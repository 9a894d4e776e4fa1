package client

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
)

type HttpClientInterface interface {
	Get(url string, headers map[string]string) ([]byte, error)
	Post(url string, message []byte, headers map[string]string) ([]byte, error)
	GetWithPolicy(url string, headers map[string]string, policy RetryPolicy) ([]byte, error)
}

// RetryPolicy decides how GetWithPolicy behaves under quota limits. The
// backoff is linear: BaseDelay * attempt.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Retryable  func(statusCode int) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

type HttpClient struct {
}

func (h *HttpClient) Get(url string, headers map[string]string) ([]byte, error) {
	body, statusCode, err := h.request("GET", url, nil, headers)
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, model.UpstreamError{StatusCode: statusCode, Body: string(body)}
	}

	return body, nil
}

func (h *HttpClient) Post(url string, message []byte, headers map[string]string) ([]byte, error) {
	body, statusCode, err := h.request("POST", url, message, headers)
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, model.UpstreamError{StatusCode: statusCode, Body: string(body)}
	}

	return body, nil
}

// GetWithPolicy performs at most policy.MaxRetries attempts. Retryable
// statuses (HTTP 429 unless overridden) wait and retry, everything else
// fails immediately with the response body attached.
func (h *HttpClient) GetWithPolicy(url string, headers map[string]string, policy RetryPolicy) ([]byte, error) {
	retryable := policy.Retryable
	if retryable == nil {
		retryable = func(statusCode int) bool {
			return statusCode == http.StatusTooManyRequests
		}
	}

	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		body, statusCode, err := h.request("GET", url, nil, headers)
		if err != nil {
			return nil, err
		}

		if statusCode < 400 {
			return body, nil
		}

		if !retryable(statusCode) {
			return nil, model.UpstreamError{StatusCode: statusCode, Body: string(body)}
		}

		if attempt < policy.MaxRetries {
			time.Sleep(policy.BaseDelay * time.Duration(attempt))
		}
	}

	return nil, model.RateLimitError{Attempts: policy.MaxRetries}
}

func (h *HttpClient) request(method string, url string, message []byte, headers map[string]string) ([]byte, int, error) {
	var reader io.Reader
	if message != nil {
		reader = bytes.NewReader(message)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	client := &http.Client{
		Timeout: 20 * time.Second,
	}

	res, err := client.Do(req)

	if err != nil {
		return nil, 0, err
	}

	responseBody, err := io.ReadAll(res.Body)
	defer res.Body.Close()

	if err != nil {
		return nil, res.StatusCode, err
	}

	return responseBody, res.StatusCode, nil
}
