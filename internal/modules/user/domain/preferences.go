package domain

// Category names one preference flag gating a class of notification.
type Category string

const (
	CategoryAll             Category = "allNotifications"
	CategoryNewFriends      Category = "newFriends"
	CategoryMessages        Category = "messages"
	CategoryActivityUpdates Category = "activityUpdates"
	CategoryLikes           Category = "likeNotifications"
	CategoryComments        Category = "commentNotifications"
	CategoryEmail           Category = "emailNotifications"
)

// Preferences is the notificationSettings sub-object of a user document.
// A flag absent from the stored document decodes as false.
type Preferences struct {
	AllNotifications     bool `json:"allNotifications" mapstructure:"allNotifications"`
	NewFriends           bool `json:"newFriends" mapstructure:"newFriends"`
	Messages             bool `json:"messages" mapstructure:"messages"`
	ActivityUpdates      bool `json:"activityUpdates" mapstructure:"activityUpdates"`
	LikeNotifications    bool `json:"likeNotifications" mapstructure:"likeNotifications"`
	CommentNotifications bool `json:"commentNotifications" mapstructure:"commentNotifications"`
	EmailNotifications   bool `json:"emailNotifications" mapstructure:"emailNotifications"`
}

// DefaultPreferences has every flag enabled.
func DefaultPreferences() Preferences {
	return Preferences{
		AllNotifications:     true,
		NewFriends:           true,
		Messages:             true,
		ActivityUpdates:      true,
		LikeNotifications:    true,
		CommentNotifications: true,
		EmailNotifications:   true,
	}
}

// Allows reports the flag for c. Unknown categories are not allowed.
func (p Preferences) Allows(c Category) bool {
	switch c {
	case CategoryAll:
		return p.AllNotifications
	case CategoryNewFriends:
		return p.NewFriends
	case CategoryMessages:
		return p.Messages
	case CategoryActivityUpdates:
		return p.ActivityUpdates
	case CategoryLikes:
		return p.LikeNotifications
	case CategoryComments:
		return p.CommentNotifications
	case CategoryEmail:
		return p.EmailNotifications
	default:
		return false
	}
}
