package application

import (
	"context"

	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	"go.uber.org/zap"
)

// fanout pushes n to every token once, in order. A failing token is recorded
// and the loop moves on.
func (p *Pipeline) fanout(ctx context.Context, kind domain.EventKind, n *domain.Notification, tokens []string) *domain.FanoutReport {
	report := domain.NewFanoutReport(kind, n, p.now())

	data := n.Data.Clone()
	data["notificationId"] = n.ID.String()

	for _, token := range tokens {
		if !domain.IsDispatchableToken(token) {
			report.RecordSkipped(token)
			metrics.PushAttempts.WithLabelValues(string(domain.DeliverySkipped)).Inc()
			continue
		}

		ticket, err := p.push.Send(ctx, domain.PushMessage{
			To:        token,
			Title:     n.Title,
			Body:      n.Body,
			Data:      data,
			Sound:     "default",
			Priority:  "high",
			ChannelID: p.channelID,
		})
		if err != nil {
			report.RecordFailed(token, err)
			metrics.PushAttempts.WithLabelValues(string(domain.DeliveryFailed)).Inc()
			p.logger.Warn("push delivery failed",
				zap.String("notification_id", n.ID.String()),
				zap.String("token", token),
				zap.Error(err),
			)
			continue
		}

		report.RecordSent(token, ticket)
		metrics.PushAttempts.WithLabelValues(string(domain.DeliverySent)).Inc()
	}
	report.FinishedAt = p.now()

	p.logger.Info("push fan-out finished",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", n.RecipientID),
		zap.Int("sent", report.Count(domain.DeliverySent)),
		zap.Int("failed", report.Count(domain.DeliveryFailed)),
		zap.Int("skipped", report.Count(domain.DeliverySkipped)),
	)
	return report
}
