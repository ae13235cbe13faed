package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	"go.uber.org/zap"
)

const maxResponseBody = 64 << 10

// ExpoClient sends single messages to the Expo push API.
type ExpoClient struct {
	endpoint    string
	accessToken string
	client      *http.Client
	logger      *zap.Logger
}

func NewExpoClient(cfg config.PushConfig, logger *zap.Logger) *ExpoClient {
	return &ExpoClient{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

type expoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type expoResponse struct {
	Data   *domain.PushTicket `json:"data"`
	Errors []expoError        `json:"errors"`
}

// Send implements domain.PushSender. A transport failure, a non-2xx status,
// a request-level error or a ticket with status "error" all fail the send.
func (c *ExpoClient) Send(ctx context.Context, msg domain.PushMessage) (*domain.PushTicket, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.PushLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("push http error: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	var out expoResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrPushRejected, resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode push response: %w", decodeErr)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrPushRejected, out.Errors[0].Code, out.Errors[0].Message)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: empty ticket", domain.ErrPushRejected)
	}
	if out.Data.Status == "error" {
		reason := out.Data.Message
		if code, ok := out.Data.Details["error"].(string); ok {
			reason = code + ": " + reason
		}
		return out.Data, fmt.Errorf("%w: %s", domain.ErrPushRejected, reason)
	}

	c.logger.Debug("push accepted", zap.String("ticket_id", out.Data.ID))
	return out.Data, nil
}
