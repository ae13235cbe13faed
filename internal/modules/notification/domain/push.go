package domain

import (
	"context"
	"strings"
)

// PushMessage is one Expo push request addressed to a single device.
type PushMessage struct {
	To        string `json:"to"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Data      Data   `json:"data,omitempty"`
	Sound     string `json:"sound,omitempty"`
	Priority  string `json:"priority,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
}

// PushTicket is the gateway's receipt for an accepted message.
type PushTicket struct {
	ID      string         `json:"id,omitempty"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// PushSender delivers a single message. Implementations make exactly one
// attempt and do not retry.
type PushSender interface {
	Send(ctx context.Context, msg PushMessage) (*PushTicket, error)
}

// IsDispatchableToken reports whether token has the Expo push token shape,
// ExponentPushToken[...] or ExpoPushToken[...] with a non-empty body.
func IsDispatchableToken(token string) bool {
	for _, prefix := range []string{"ExponentPushToken[", "ExpoPushToken["} {
		if strings.HasPrefix(token, prefix) && strings.HasSuffix(token, "]") {
			return len(token) > len(prefix)+1
		}
	}
	return false
}
