package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the push gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Gateway delivers a notification to a set of device tokens. It returns the
// tokens the gateway reported as no longer registered so the caller can
// prune them.
type Gateway interface {
	Send(ctx context.Context, tokens []string, n *model.Notification) ([]string, error)
}

// HTTPClient implements Gateway against an Expo-compatible push API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// message mirrors one entry of the gateway's send payload.
type message struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  model.NotificationData `json:"data"`
}

// ticket mirrors one entry of the gateway's send response. Entries come back
// in the same order as the submitted messages.
type ticket struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Details struct {
		Error string `json:"error,omitempty"`
	} `json:"details,omitempty"`
}

type sendResponse struct {
	Data []ticket `json:"data"`
}

const deviceNotRegistered = "DeviceNotRegistered"

// NewHTTPClient creates HTTP push client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse push gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("push gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send submits one message per token in a single batch request.
func (c *HTTPClient) Send(ctx context.Context, tokens []string, n *model.Notification) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	messages := make([]message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, message{To: token, Title: n.Title, Body: n.Body, Data: n.Data})
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/--/api/v2/push/send")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sendResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}

		var stale []string
		for i, tk := range data.Data {
			if i >= len(tokens) {
				break
			}
			if tk.Status != "ok" && tk.Details.Error == deviceNotRegistered {
				stale = append(stale, tokens[i])
			}
		}
		return stale, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("push request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("push gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
