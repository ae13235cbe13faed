package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeFriendRequest NotificationType = "friendRequest"
	TypeMessage       NotificationType = "message"
	TypeActivity      NotificationType = "activity"
	TypeLike          NotificationType = "like"
	TypeComment       NotificationType = "comment"
)

type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// Deep-link screens understood by the mobile client.
const (
	ScreenFriendRequests  = "FriendRequests"
	ScreenChat            = "Chat"
	ScreenActivityDetails = "ActivityDetails"
	ScreenProfile         = "Profile"
)

// Notification is one entry of a user's notification center. The JSON field
// names are read directly by the mobile client.
type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	RecipientID string           `json:"recipientId" db:"recipient_id"`
	SenderID    string           `json:"senderId" db:"sender_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Body        string           `json:"body" db:"body"`
	Status      Status           `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	Data        Data             `json:"data" db:"data"`
}

// Data is the routing payload: always type, screen and params, plus the ids
// relevant to the notification type.
type Data map[string]any

// Value implements driver.Valuer for the jsonb column.
func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for the jsonb column.
func (d *Data) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Data{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("notification data: unsupported column type")
	}
	return json.Unmarshal(raw, d)
}

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}
