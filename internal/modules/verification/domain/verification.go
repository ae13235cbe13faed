package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrSMSFailed = errors.New("sms gateway failure")

// Verification is the typed view of a phone_verifications/{id} document.
// Only the fields the client writes are decoded from change events.
type Verification struct {
	ID               string     `json:"id" mapstructure:"-"`
	PhoneNumber      string     `json:"phoneNumber" mapstructure:"phoneNumber"`
	VerificationCode string     `json:"verificationCode" mapstructure:"verificationCode"`
	IsVerified       bool       `json:"isVerified" mapstructure:"isVerified"`
	SMSSent          bool       `json:"smsSent" mapstructure:"-"`
	SMSSentAt        *time.Time `json:"smsSentAt,omitempty" mapstructure:"-"`
	SMSError         string     `json:"smsError,omitempty" mapstructure:"-"`
	SMSErrorAt       *time.Time `json:"smsErrorAt,omitempty" mapstructure:"-"`
}

// ShouldSend reports whether the watcher must attempt a send: the record is
// unverified and carries both a phone number and a code.
func (v Verification) ShouldSend() bool {
	return !v.IsVerified && v.PhoneNumber != "" && v.VerificationCode != ""
}

// Message renders the SMS text for code.
func Message(code string) string {
	return fmt.Sprintf("Your verification code is %s", code)
}

// SMSSender makes exactly one send attempt per call.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// VerificationRepository mirrors records and writes send outcomes back onto
// them. A record receives either MarkSent or MarkFailed, never both.
type VerificationRepository interface {
	Create(ctx context.Context, v Verification) error
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string, at time.Time) error
}
