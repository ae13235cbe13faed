package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
)

type messageDoc struct {
	SenderID   string `mapstructure:"senderId"`
	ReceiverID string `mapstructure:"receiverId"`
	ChatID     string `mapstructure:"chatId"`
	Text       string `mapstructure:"text"`
	MediaType  string `mapstructure:"mediaType"`
}

type activityDoc struct {
	CreatedBy    string   `mapstructure:"createdBy"`
	Participants []string `mapstructure:"participants"`
	Title        string   `mapstructure:"title"`
}

type likeDoc struct {
	UserID  string `mapstructure:"userId"`
	OwnerID string `mapstructure:"ownerId"`
	PostID  string `mapstructure:"postId"`
}

type commentDoc struct {
	UserID  string `mapstructure:"userId"`
	OwnerID string `mapstructure:"ownerId"`
	PostID  string `mapstructure:"postId"`
	Text    string `mapstructure:"text"`
}

// decodeDocument maps a plain document onto dst. Plain transport JSON carries
// timestamps as strings and numbers as float64, so input is weakly typed.
func decodeDocument(src map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(src); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	return nil
}

// documentSettings returns the boolean notificationSettings keys present on
// doc, or nil when the document carries no settings object.
func documentSettings(doc map[string]any) map[string]bool {
	raw, ok := doc["notificationSettings"].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}

func mediaType(s string) string {
	switch strings.ToLower(s) {
	case "":
		return ""
	case "image", "photo":
		return "image"
	case "video":
		return "video"
	default:
		return "file"
	}
}
