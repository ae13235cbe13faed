package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliverySkipped DeliveryStatus = "skipped"
)

// Delivery is the outcome of one token within a fan-out.
type Delivery struct {
	Token    string         `json:"token"`
	Status   DeliveryStatus `json:"status"`
	TicketID string         `json:"ticketId,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// FanoutReport collects the per-token outcome of pushing one notification.
type FanoutReport struct {
	Event          EventKind        `json:"event"`
	NotificationID uuid.UUID        `json:"notificationId"`
	RecipientID    string           `json:"recipientId"`
	Type           NotificationType `json:"type"`
	StartedAt      time.Time        `json:"startedAt"`
	FinishedAt     time.Time        `json:"finishedAt"`
	Deliveries     []Delivery       `json:"deliveries"`

	errs error
}

func NewFanoutReport(kind EventKind, n *Notification, startedAt time.Time) *FanoutReport {
	return &FanoutReport{
		Event:          kind,
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		Type:           n.Type,
		StartedAt:      startedAt,
		Deliveries:     []Delivery{},
	}
}

func (r *FanoutReport) RecordSent(token string, ticket *PushTicket) {
	d := Delivery{Token: token, Status: DeliverySent}
	if ticket != nil {
		d.TicketID = ticket.ID
	}
	r.Deliveries = append(r.Deliveries, d)
}

func (r *FanoutReport) RecordFailed(token string, err error) {
	r.Deliveries = append(r.Deliveries, Delivery{Token: token, Status: DeliveryFailed, Error: err.Error()})
	r.errs = multierr.Append(r.errs, fmt.Errorf("token %s: %w", token, err))
}

func (r *FanoutReport) RecordSkipped(token string) {
	r.Deliveries = append(r.Deliveries, Delivery{Token: token, Status: DeliverySkipped})
}

// Count returns the number of deliveries with status s.
func (r *FanoutReport) Count(s DeliveryStatus) int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Status == s {
			n++
		}
	}
	return n
}

// Err combines every failed delivery, or nil when none failed.
func (r *FanoutReport) Err() error {
	return r.errs
}

// ReportSink receives completed fan-out reports.
type ReportSink interface {
	Store(ctx context.Context, report *FanoutReport) error
}
