package domain

// Event is one of the document-change facts the pipeline reacts to. The set
// is closed: only types declared in this file implement it.
type Event interface {
	Kind() EventKind
	event()
}

type EventKind string

const (
	KindFriendRequestReceived EventKind = "friend_request_received"
	KindMessageSent           EventKind = "message_sent"
	KindActivityInvite        EventKind = "activity_invite"
	KindLikeAdded             EventKind = "like_added"
	KindCommentAdded          EventKind = "comment_added"
	KindUserCreated           EventKind = "user_created"
)

// FriendRequestReceived is derived from a users document update, one per id
// newly present in friendRequests.received.
type FriendRequestReceived struct {
	FromUserID string
	ToUserID   string
}

// MediaType classifies message attachments.
type MediaType string

const (
	MediaNone  MediaType = ""
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaFile  MediaType = "file"
)

type MessageSent struct {
	MessageID  string
	SenderID   string
	ReceiverID string
	ChatID     string
	Text       string
	MediaType  MediaType
}

type ActivityInvite struct {
	ActivityID   string
	CreatedBy    string
	Participants []string
	Title        string
}

type LikeAdded struct {
	LikeID  string
	UserID  string
	OwnerID string
	PostID  string
}

type CommentAdded struct {
	CommentID string
	UserID    string
	OwnerID   string
	PostID    string
	Text      string
}

type UserCreated struct {
	UserID string
}

func (FriendRequestReceived) Kind() EventKind { return KindFriendRequestReceived }
func (MessageSent) Kind() EventKind           { return KindMessageSent }
func (ActivityInvite) Kind() EventKind        { return KindActivityInvite }
func (LikeAdded) Kind() EventKind             { return KindLikeAdded }
func (CommentAdded) Kind() EventKind          { return KindCommentAdded }
func (UserCreated) Kind() EventKind           { return KindUserCreated }

func (FriendRequestReceived) event() {}
func (MessageSent) event()           {}
func (ActivityInvite) event()        {}
func (LikeAdded) event()             {}
func (CommentAdded) event()          {}
func (UserCreated) event()           {}
