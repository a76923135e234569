// Package mmrapi implements the HTTP client for a remote license-plate
// recognition REST service exposing the info and recognition endpoints.
package mmrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/platevision/mmrclient/pkg/imagesource"
	"github.com/platevision/mmrclient/pkg/types"
)

const (
	infoPath        = "info"
	recognitionPath = "recognition"

	// apiKeyHeader is the single canonical header casing used for both
	// endpoints. HTTP header names are case-insensitive, so picking one
	// spelling costs nothing and avoids relying on server-side leniency.
	apiKeyHeader = "apiKey"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 60 * time.Second

// Client talks to one recognition server. The zero-value is not usable;
// construct it with NewClient. A Client is safe for concurrent use because
// the underlying http.Client is.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at serverAddress. The address is
// stored verbatim; it must end with a trailing slash so the endpoint paths
// concatenate correctly (e.g. "https://trafficeye.ai/").
func NewClient(serverAddress string) *Client {
	return &Client{
		baseURL: serverAddress,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// HTTPClient exposes the underlying transport, e.g. for fetching remote
// images with the same timeout policy as the API calls.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Info queries the server status. The result map is the decoded JSON body,
// passed through without interpretation.
func (c *Client) Info(ctx context.Context, apiKey string) (types.InfoResult, error) {
	ctx, cancel := ensureDeadline(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+infoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		reason := reasonPhrase(resp)
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    reason,
			Body:       string(body),
		}
	}

	var result types.InfoResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Op: "info", Err: err}
	}
	return result, nil
}

// Recognize classifies source as a local file or remote URL, obtains its
// bytes, and submits them for recognition. A nil req means the server
// defaults (all tasks, global OCR module, plate text kept).
func (c *Client) Recognize(ctx context.Context, apiKey, source string, req *types.RecognitionRequest) (types.RecognitionResult, error) {
	src, err := imagesource.Classify(source)
	if err != nil {
		return nil, err
	}

	ctx, cancel := ensureDeadline(ctx)
	defer cancel()

	buf, err := src.Resolve(ctx, c.httpClient)
	if err != nil {
		return nil, err
	}

	return c.RecognizeBytes(ctx, apiKey, source, buf, req)
}

// RecognizeBytes submits an already-loaded image buffer for recognition.
// filename is what the server records as the uploaded file name; Recognize
// passes the original source string here.
func (c *Client) RecognizeBytes(ctx context.Context, apiKey, filename string, image []byte, req *types.RecognitionRequest) (types.RecognitionResult, error) {
	ctx, cancel := ensureDeadline(ctx)
	defer cancel()

	r := types.DefaultRecognitionRequest()
	if req != nil {
		r = *req
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recognition request: %w", err)
	}

	requestJSON, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %v", err)
	}
	if err := writer.WriteField("request", string(requestJSON)); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %v", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+recognitionPath, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorDetail(respBody, resp),
			Body:       string(respBody),
		}
	}

	var result types.RecognitionResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &DecodeError{Op: "recognition", Err: err}
	}
	return result, nil
}

// ensureDeadline applies the default timeout when the caller's context does
// not already carry one.
func ensureDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}

// errorDetail extracts the server-provided errorMessage from an error body.
// A missing, empty, or malformed body falls back to the HTTP reason phrase so
// a secondary decode failure never masks the original HTTP error.
func errorDetail(body []byte, resp *http.Response) string {
	var parsed struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.ErrorMessage != "" {
			return parsed.ErrorMessage
		}
	}
	return reasonPhrase(resp)
}

// reasonPhrase returns the human-readable part of the status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
