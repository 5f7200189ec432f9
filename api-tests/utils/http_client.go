// Package utils cung cấp HTTP client dùng chung cho các test tích hợp API.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient bọc http.Client với base URL và header định danh người thao tác.
type HTTPClient struct {
	baseURL string
	actorID string
	client  *http.Client
}

// NewHTTPClient tạo client mới với timeout tính bằng giây.
func NewHTTPClient(baseURL string, timeoutSeconds int) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// SetActorID đặt header X-Actor-ID cho mọi request tiếp theo.
func (c *HTTPClient) SetActorID(actorID string) {
	c.actorID = actorID
}

// do thực hiện request và trả về response + body đã đọc.
func (c *HTTPClient) do(method, path string, payload interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.actorID != "" {
		req.Header.Set("X-Actor-ID", c.actorID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// GET thực hiện GET request.
func (c *HTTPClient) GET(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST thực hiện POST request với payload JSON (nil = không có body).
func (c *HTTPClient) POST(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPost, path, payload)
}

// PUT thực hiện PUT request với payload JSON.
func (c *HTTPClient) PUT(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPut, path, payload)
}

// DELETE thực hiện DELETE request.
func (c *HTTPClient) DELETE(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodDelete, path, nil)
}

// ParseData unmarshal body và trả về field "data" dạng map (nil nếu không phải object).
func ParseData(body []byte) map[string]interface{} {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil
	}
	if data, ok := result["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

// ParseDataList unmarshal body và trả về field "data" dạng slice (nil nếu không phải array).
func ParseDataList(body []byte) []interface{} {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil
	}
	if data, ok := result["data"].([]interface{}); ok {
		return data
	}
	return nil
}
