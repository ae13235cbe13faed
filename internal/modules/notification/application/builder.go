package application

import (
	"fmt"

	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
)

const (
	messagePreviewLimit = 50
	commentPreviewLimit = 40
	ellipsis            = "..."
)

// truncate keeps the first limit runes of s, appending an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

func mediaBody(m domain.MediaType) string {
	switch m {
	case domain.MediaImage:
		return "Sent a photo"
	case domain.MediaVideo:
		return "Sent a video"
	default:
		return "Sent an attachment"
	}
}

func newNotification(t domain.NotificationType, recipientID, senderID, title, body string, data domain.Data) *domain.Notification {
	data["type"] = string(t)
	return &domain.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        t,
		Title:       title,
		Body:        body,
		Status:      domain.StatusUnread,
		Data:        data,
	}
}

// BuildFriendRequest builds the notification for a received friend request.
func BuildFriendRequest(ev domain.FriendRequestReceived, sender *userdomain.User) *domain.Notification {
	return newNotification(domain.TypeFriendRequest, ev.ToUserID, ev.FromUserID,
		"New Friend Request",
		fmt.Sprintf("%s sent you a friend request", sender.Name()),
		domain.Data{
			"screen":   domain.ScreenFriendRequests,
			"params":   map[string]any{},
			"senderId": ev.FromUserID,
		})
}

// BuildMessage builds the notification for a chat message. Text wins over
// the attachment placeholder.
func BuildMessage(ev domain.MessageSent, sender *userdomain.User) *domain.Notification {
	body := truncate(ev.Text, messagePreviewLimit)
	if ev.Text == "" {
		body = mediaBody(ev.MediaType)
	}

	return newNotification(domain.TypeMessage, ev.ReceiverID, ev.SenderID,
		sender.Name(),
		body,
		domain.Data{
			"screen":    domain.ScreenChat,
			"params":    map[string]any{"chatId": ev.ChatID, "userId": ev.SenderID},
			"chatId":    ev.ChatID,
			"messageId": ev.MessageID,
		})
}

// BuildActivityInvite builds the invitation addressed to one participant.
func BuildActivityInvite(ev domain.ActivityInvite, participantID string, creator *userdomain.User) *domain.Notification {
	title := ev.Title
	if title == "" {
		title = "an activity"
	}

	return newNotification(domain.TypeActivity, participantID, ev.CreatedBy,
		"Activity Invitation",
		fmt.Sprintf("%s invited you to %s", creator.Name(), title),
		domain.Data{
			"screen":     domain.ScreenActivityDetails,
			"params":     map[string]any{"activityId": ev.ActivityID},
			"activityId": ev.ActivityID,
		})
}

func profileParams(ownerID, postID string) map[string]any {
	return map[string]any{
		"friend": map[string]any{"id": ownerID, "selectedPostId": postID},
	}
}

// BuildLike builds the notification for a like on the owner's post.
func BuildLike(ev domain.LikeAdded, liker *userdomain.User) *domain.Notification {
	return newNotification(domain.TypeLike, ev.OwnerID, ev.UserID,
		"New Like",
		fmt.Sprintf("%s liked your post", liker.Name()),
		domain.Data{
			"screen": domain.ScreenProfile,
			"params": profileParams(ev.OwnerID, ev.PostID),
			"postId": ev.PostID,
		})
}

// BuildComment builds the notification for a comment on the owner's post.
func BuildComment(ev domain.CommentAdded, commenter *userdomain.User) *domain.Notification {
	return newNotification(domain.TypeComment, ev.OwnerID, ev.UserID,
		"New Comment",
		fmt.Sprintf("%s commented: %s", commenter.Name(), truncate(ev.Text, commentPreviewLimit)),
		domain.Data{
			"screen":    domain.ScreenProfile,
			"params":    profileParams(ev.OwnerID, ev.PostID),
			"postId":    ev.PostID,
			"commentId": ev.CommentID,
		})
}
