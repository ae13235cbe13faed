package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/saransh1220/circle-notify/internal/modules/verification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

const maxResponseBody = 4 << 10

// Gateway sends SMS through an HTTP GET endpoint that takes credentials and
// the message as query parameters.
type Gateway struct {
	cfg    config.SMSConfig
	client *http.Client
	logger *zap.Logger
}

func NewGateway(cfg config.SMSConfig, logger *zap.Logger) *Gateway {
	return &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Send implements domain.SMSSender. Any non-2xx response is a failure.
func (g *Gateway) Send(ctx context.Context, phoneNumber, message string) error {
	if g.cfg.Endpoint == "" {
		return fmt.Errorf("%w: endpoint not configured", domain.ErrSMSFailed)
	}

	endpoint, err := url.Parse(g.cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: invalid endpoint: %v", domain.ErrSMSFailed, err)
	}

	q := endpoint.Query()
	q.Set("user", g.cfg.User)
	q.Set("password", g.cfg.Password)
	q.Set("destination", phoneNumber)
	q.Set("message", message)
	q.Set("senderid", g.cfg.SenderID)
	q.Set("language", g.cfg.Language)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrSMSFailed, err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		// The URL carries the password; keep only the transport cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("%w: http error: %v", domain.ErrSMSFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", domain.ErrSMSFailed, resp.StatusCode, string(body))
	}

	g.logger.Debug("sms accepted",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
