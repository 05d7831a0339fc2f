package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"
)

type tokenKey struct{}

// WithToken attaches the bearer token used for requests made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
	// Log receives items dropped from list responses.
	Log *logger.Logger
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	return &HttpClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Log: logger.Nop(),
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PATCH(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPatch, path, body)
}

func (c *HttpClient) DELETE(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	return c.do(ctx, method, path, reqBody, body != nil)
}

// do sends the request and reads the whole body. Transport failures come
// back as AppErrors; HTTP error statuses are left to the caller.
func (c *HttpClient) do(ctx context.Context, method, path string, reqBody io.Reader, hasBody bool) (*Response, error) {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var timeoutErr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeoutErr) && timeoutErr.Timeout()) {
			return nil, apperrors.Timeout("booking API did not respond in time")
		}
		return nil, apperrors.Upstream("", 0, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

// send performs the request and turns any non-2xx answer into an AppError.
func (c *HttpClient) send(ctx context.Context, method, path string, body any) (*Response, error) {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, ResponseError(resp)
	}
	return resp, nil
}

// getJSON fetches path and decodes a successful answer into target.
func (c *HttpClient) getJSON(ctx context.Context, path string, target any) error {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := resp.DecodeJSON(target); err != nil {
		return apperrors.Upstream("", resp.StatusCode, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

// ResponseError maps a failed response to an AppError carrying the
// backend's own message when it sent one.
func ResponseError(resp *Response) error {
	message := GetErrorMessage(resp)
	if resp.StatusCode == http.StatusUnauthorized {
		if message == "" {
			message = "session expired, please log in again"
		}
		return apperrors.Unauthorized(message)
	}
	return apperrors.Upstream(message, resp.StatusCode, fmt.Errorf("%s %s: status %d",
		resp.Request.Method, resp.Request.URL.Path, resp.StatusCode))
}

// GetErrorMessage pulls a human-readable message out of an error body. The
// backend answers with a bare string, a list of exceptions or a
// message/error/title object. An empty result means none was found.
func GetErrorMessage(resp *Response) string {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(resp.Body, &plain); err == nil {
		return plain
	}

	var errResp struct {
		Exceptions []struct {
			Message string `json:"message"`
		} `json:"exceptions"`
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
			return strings.TrimSpace(string(resp.Body))
		}
		return ""
	}

	switch {
	case len(errResp.Exceptions) > 0 && errResp.Exceptions[0].Message != "":
		return errResp.Exceptions[0].Message
	case errResp.Message != "":
		return errResp.Message
	case errResp.Error != "":
		return errResp.Error
	default:
		return errResp.Title
	}
}
