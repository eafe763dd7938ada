// Package aggregate derives read models from the live record sets. All
// functions are pure: they never mutate their inputs and are recomputed by
// callers whenever the underlying collections change.
package aggregate

import (
	"sort"

	"github.com/google/uuid"

	"github.com/lumina-app/lumina/internal/app/models"
)

// EmojiGroup is one bucket of GroupReactions, keyed by its emoji
type EmojiGroup struct {
	Emoji     string            `json:"emoji"`
	Reactions []models.Reaction `json:"reactions"`
}

// GroupReactions filters reactions down to imageID and buckets them by
// emoji. Bucket contents preserve store order; key order carries no meaning.
func GroupReactions(reactions []models.Reaction, imageID string) map[string][]models.Reaction {
	grouped := make(map[string][]models.Reaction)
	for _, r := range reactions {
		if r.ImageID != imageID {
			continue
		}
		grouped[r.Emoji] = append(grouped[r.Emoji], r)
	}
	return grouped
}

// TopEmojis returns the n most-used emoji groups, largest first. Ties keep
// a stable order (lexicographic by emoji, so repeated calls agree).
func TopEmojis(grouped map[string][]models.Reaction, n int) []EmojiGroup {
	groups := make([]EmojiGroup, 0, len(grouped))
	for emoji, rs := range grouped {
		groups = append(groups, EmojiGroup{Emoji: emoji, Reactions: rs})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Reactions) != len(groups[j].Reactions) {
			return len(groups[i].Reactions) > len(groups[j].Reactions)
		}
		return groups[i].Emoji < groups[j].Emoji
	})
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// SortComments filters comments down to imageID and sorts them oldest
// first, chat style. The sort is stable so equal timestamps keep store order.
func SortComments(comments []models.Comment, imageID string) []models.Comment {
	filtered := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ImageID == imageID {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})
	return filtered
}

// SortActivities orders the full activity log newest first for the feed.
func SortActivities(activities []models.Activity) []models.Activity {
	sorted := make([]models.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}

// HasReacted reports whether userID already reacted with emoji in the
// given (already image-scoped) reaction set.
func HasReacted(reactions []models.Reaction, userID uuid.UUID, emoji string) bool {
	for _, r := range reactions {
		if r.UserID == userID && r.Emoji == emoji {
			return true
		}
	}
	return false
}

// UserReaction returns userID's reaction in the given image-scoped set,
// or nil if they have none.
func UserReaction(reactions []models.Reaction, userID uuid.UUID) *models.Reaction {
	for i := range reactions {
		if reactions[i].UserID == userID {
			return &reactions[i]
		}
	}
	return nil
}

// PruneSelection returns the IDs of every activity beyond the limit most
// recent ones, oldest first eligible. An empty slice means nothing to prune.
func PruneSelection(activities []models.Activity, limit int) []uuid.UUID {
	if limit <= 0 || len(activities) <= limit {
		return nil
	}
	sorted := SortActivities(activities)
	ids := make([]uuid.UUID, 0, len(sorted)-limit)
	for _, a := range sorted[limit:] {
		ids = append(ids, a.ID)
	}
	return ids
}
