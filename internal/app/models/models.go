package models

// ActivityType identifies the kind of interaction an activity records
type ActivityType string

const (
	ActivityEmojiAdded     ActivityType = "emoji_added"
	ActivityEmojiRemoved   ActivityType = "emoji_removed"
	ActivityCommentAdded   ActivityType = "comment_added"
	ActivityCommentDeleted ActivityType = "comment_deleted"
)

// AvailableEmojis is the fixed set of reactions users can pick from
var AvailableEmojis = []string{"❤️", "😍", "🔥", "👏", "😂", "🎉", "💯", "✨"}

// IsAllowedEmoji reports whether emoji belongs to the fixed reaction set
func IsAllowedEmoji(emoji string) bool {
	for _, e := range AvailableEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// UserColors is the palette a new profile's display color is drawn from
var UserColors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E2",
}

// DefaultUserColor is used when a profile has not loaded yet
const DefaultUserColor = "#999999"

// CommentMaxLength is the maximum accepted comment length after trimming
const CommentMaxLength = 500
