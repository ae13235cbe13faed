package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedEvent = errors.New("malformed change event")
	ErrUnrouted       = errors.New("no route for trigger")
)

// Change is the kind of document write that produced an event.
type Change string

const (
	ChangeCreated Change = "created"
	ChangeUpdated Change = "updated"
)

func ParseChange(s string) (Change, error) {
	switch c := Change(s); c {
	case ChangeCreated, ChangeUpdated:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown change %q", ErrMalformedEvent, s)
}

const (
	CollectionUsers              = "users"
	CollectionMessages           = "messages"
	CollectionActivities         = "activities"
	CollectionLikes              = "likes"
	CollectionComments           = "comments"
	CollectionPhoneVerifications = "phone_verifications"
)

// Trigger identifies one routable (collection, change) pair.
type Trigger struct {
	Collection string
	Change     Change
}

func (t Trigger) String() string {
	return t.Collection + "/" + string(t.Change)
}

// ChangeEvent is a transport-neutral document change. Before is nil for
// creations; After holds the document as written.
type ChangeEvent struct {
	EventID    string
	Trigger    Trigger
	DocumentID string
	Before     map[string]any
	After      map[string]any
}

// Validate checks the fields every route relies on.
func (e ChangeEvent) Validate() error {
	if e.Trigger.Collection == "" {
		return fmt.Errorf("%w: missing collection", ErrMalformedEvent)
	}
	if _, err := ParseChange(string(e.Trigger.Change)); err != nil {
		return err
	}
	if e.DocumentID == "" {
		return fmt.Errorf("%w: missing document id", ErrMalformedEvent)
	}
	if e.After == nil {
		return fmt.Errorf("%w: missing document", ErrMalformedEvent)
	}
	return nil
}
