package domain

import "time"

// User is the typed view of a users/{id} document.
type User struct {
	ID                   string               `json:"id" mapstructure:"id"`
	DisplayName          string               `json:"displayName" mapstructure:"displayName"`
	Profile              Profile              `json:"profile" mapstructure:"profile"`
	NotificationSettings *Preferences         `json:"notificationSettings,omitempty" mapstructure:"notificationSettings"`
	FCMTokens            map[string]PushToken `json:"fcmTokens,omitempty" mapstructure:"fcmTokens"`
	FriendRequests       FriendRequests       `json:"friendRequests" mapstructure:"friendRequests"`
	CreatedAt            time.Time            `json:"createdAt" mapstructure:"-"`
}

// Profile is the structured profile sub-object of a user document.
type Profile struct {
	Name     string `json:"name,omitempty" mapstructure:"name"`
	PhotoURL string `json:"photoURL,omitempty" mapstructure:"photoURL"`
}

// FriendRequests holds the ids of pending incoming and outgoing requests.
type FriendRequests struct {
	Received []string `json:"received,omitempty" mapstructure:"received"`
	Sent     []string `json:"sent,omitempty" mapstructure:"sent"`
}

// PushToken is one registered device installation.
type PushToken struct {
	Token    string `json:"token" mapstructure:"token"`
	Platform string `json:"platform,omitempty" mapstructure:"platform"`
}

// PlaceholderName is shown when a user has neither a profile name nor a display name.
const PlaceholderName = "Someone"

// Name resolves the human-readable name: profile name, then display name,
// then PlaceholderName. A nil user resolves to the placeholder.
func (u *User) Name() string {
	if u == nil {
		return PlaceholderName
	}
	if u.Profile.Name != "" {
		return u.Profile.Name
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return PlaceholderName
}

// ResolveTokens returns the token value of every registered device, dropping
// empty entries. Order follows map iteration and duplicates are kept.
func ResolveTokens(tokens map[string]PushToken) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Token == "" {
			continue
		}
		out = append(out, t.Token)
	}
	return out
}

// NewFriendRequests returns the ids present in after but not in before.
func NewFriendRequests(before, after []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, id := range before {
		seen[id] = struct{}{}
	}

	var added []string
	for _, id := range after {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		added = append(added, id)
	}
	return added
}

// Snapshot is a users document as carried by a change event. Settings holds
// only the notificationSettings keys written on the document, so flags the
// document omits can be told apart from flags set to false.
type Snapshot struct {
	User     User
	Settings map[string]bool
}
