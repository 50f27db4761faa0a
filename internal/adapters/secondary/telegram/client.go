package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIURL = "https://api.telegram.org"
	apiTimeout    = 30 * time.Second
	// maxRetryAfter дольше ждать flood control не имеет смысла, пользователь уже ушёл
	maxRetryAfter    = 5 * time.Second
	maxResponseBytes = 1 << 20
)

// Client тонкий клиент Bot API поверх net/http: POST JSON, ответ {ok, result}
type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg *Config, log *slog.Logger) *Client {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		http:    &http.Client{Timeout: apiTimeout},
		baseURL: apiURL + "/bot" + cfg.BotToken,
		log:     log,
		sleep:   wait,
	}
}

// call вызывает метод Bot API и кладёт result в out (если out != nil).
// На 429 с коротким retry_after делает одну повторную попытку.
func (c *Client) call(ctx context.Context, method string, req any, out any) error {
	err := c.do(ctx, method, req, out)

	apiErr, ok := asAPIError(err)
	if !ok || apiErr.RetryAfter <= 0 || apiErr.RetryAfter > maxRetryAfter {
		return err
	}

	c.log.Warn("telegram flood control, retrying", "method", method, "retry_after", apiErr.RetryAfter)
	if err := c.sleep(ctx, apiErr.RetryAfter); err != nil {
		return apiErr
	}
	return c.do(ctx, method, req, out)
}

func (c *Client) do(ctx context.Context, method string, req any, out any) error {
	body := io.Reader(http.NoBody)
	if req != nil {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", method, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		// в тексте ошибки net/http есть URL, а в нём токен бота
		return fmt.Errorf("telegram %s: request failed: %w", method, redact(err, c.baseURL))
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram %s: decode response (status %d): %w", method, resp.StatusCode, err)
	}

	if !apiResp.OK {
		apiErr := &APIError{Method: method, Code: apiResp.ErrorCode, Description: apiResp.Description}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = time.Duration(apiResp.Parameters.RetryAfter) * time.Second
		}
		c.log.Debug("telegram API error", "method", method, "code", apiErr.Code, "description", apiErr.Description)
		return apiErr
	}

	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("telegram %s: decode result: %w", method, err)
		}
	}
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, baseURL string) error {
	return &redactedError{msg: strings.ReplaceAll(err.Error(), baseURL, "<bot-api>"), err: err}
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
