package aggregate

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumina-app/lumina/internal/app/models"
)

func reaction(imageID, emoji string, userID uuid.UUID, ms int64) models.Reaction {
	return models.Reaction{
		ID:        uuid.New(),
		ImageID:   imageID,
		Emoji:     emoji,
		UserID:    userID,
		Timestamp: time.UnixMilli(ms),
	}
}

func TestGroupReactionsEmpty(t *testing.T) {
	grouped := GroupReactions(nil, "img-1")
	if len(grouped) != 0 {
		t.Fatalf("expected empty map, got %d groups", len(grouped))
	}
}

func TestGroupReactionsBuckets(t *testing.T) {
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()
	reactions := []models.Reaction{
		reaction("img-1", "❤️", u1, 1),
		reaction("img-1", "❤️", u2, 2),
		reaction("img-1", "🔥", u3, 3),
		reaction("img-2", "❤️", u1, 4), // other image, must be filtered out
	}

	grouped := GroupReactions(reactions, "img-1")
	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}
	hearts := grouped["❤️"]
	if len(hearts) != 2 || hearts[0].UserID != u1 || hearts[1].UserID != u2 {
		t.Fatalf("heart bucket wrong: %+v", hearts)
	}
	if len(grouped["🔥"]) != 1 || grouped["🔥"][0].UserID != u3 {
		t.Fatalf("fire bucket wrong: %+v", grouped["🔥"])
	}
}

func TestTopEmojis(t *testing.T) {
	u := uuid.New()
	grouped := map[string][]models.Reaction{
		"❤️": {reaction("i", "❤️", u, 1), reaction("i", "❤️", u, 2), reaction("i", "❤️", u, 3)},
		"🔥": {reaction("i", "🔥", u, 1)},
		"😂": {reaction("i", "😂", u, 1), reaction("i", "😂", u, 2)},
		"✨": {reaction("i", "✨", u, 1)},
	}

	top := TopEmojis(grouped, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(top))
	}
	if top[0].Emoji != "❤️" || top[1].Emoji != "😂" {
		t.Fatalf("unexpected order: %q %q", top[0].Emoji, top[1].Emoji)
	}
	// 🔥 and ✨ tie at one reaction; the lexicographically smaller wins slot 3
	if top[2].Emoji != "✨" && top[2].Emoji != "🔥" {
		t.Fatalf("unexpected third group %q", top[2].Emoji)
	}
	again := TopEmojis(grouped, 3)
	if again[2].Emoji != top[2].Emoji {
		t.Fatal("tie break is not stable across calls")
	}
}

func TestSortCommentsChronological(t *testing.T) {
	mk := func(ms int64) models.Comment {
		return models.Comment{ID: uuid.New(), ImageID: "img-1", Timestamp: time.UnixMilli(ms)}
	}
	comments := []models.Comment{mk(300), mk(100), mk(200)}
	comments = append(comments, models.Comment{ID: uuid.New(), ImageID: "other", Timestamp: time.UnixMilli(50)})

	sorted := SortComments(comments, "img-1")
	if len(sorted) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(sorted))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Before(sorted[i-1].Timestamp) {
			t.Fatalf("comments not ascending at %d", i)
		}
	}

	// Reversed input must produce identical output
	reversed := []models.Comment{comments[3], comments[2], comments[1], comments[0]}
	sorted2 := SortComments(reversed, "img-1")
	for i := range sorted {
		if sorted[i].ID != sorted2[i].ID {
			t.Fatalf("order differs at %d for reversed input", i)
		}
	}
}

func TestSortActivitiesNewestFirst(t *testing.T) {
	mk := func(ms int64) models.Activity {
		return models.Activity{ID: uuid.New(), Timestamp: time.UnixMilli(ms)}
	}
	activities := []models.Activity{mk(100), mk(300), mk(200)}

	sorted := SortActivities(activities)
	want := []int64{300, 200, 100}
	for i, ms := range want {
		if sorted[i].Timestamp.UnixMilli() != ms {
			t.Fatalf("position %d: expected %d, got %d", i, ms, sorted[i].Timestamp.UnixMilli())
		}
	}
	// Input order untouched
	if activities[0].Timestamp.UnixMilli() != 100 {
		t.Fatal("SortActivities mutated its input")
	}
}

func TestHasReactedAndUserReaction(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	reactions := []models.Reaction{
		reaction("img-1", "❤️", u1, 1),
		reaction("img-1", "🔥", u2, 2),
	}

	if !HasReacted(reactions, u1, "❤️") {
		t.Fatal("expected u1 ❤️ to be present")
	}
	if HasReacted(reactions, u1, "🔥") {
		t.Fatal("u1 never reacted 🔥")
	}
	if r := UserReaction(reactions, u2); r == nil || r.Emoji != "🔥" {
		t.Fatalf("expected u2's 🔥 reaction, got %+v", r)
	}
	if r := UserReaction(reactions, uuid.New()); r != nil {
		t.Fatalf("expected nil for unknown user, got %+v", r)
	}
}

func TestPruneSelection(t *testing.T) {
	activities := make([]models.Activity, 0, 105)
	for i := 0; i < 105; i++ {
		activities = append(activities, models.Activity{
			ID:        uuid.New(),
			Timestamp: time.UnixMilli(int64(i + 1)),
		})
	}

	ids := PruneSelection(activities, 100)
	if len(ids) != 5 {
		t.Fatalf("expected 5 prune candidates, got %d", len(ids))
	}
	// The 5 oldest entries (ms 1..5) must be the ones selected
	oldest := map[uuid.UUID]bool{}
	for _, a := range activities[:5] {
		oldest[a.ID] = true
	}
	for _, id := range ids {
		if !oldest[id] {
			t.Fatalf("id %s is not among the oldest five", id)
		}
	}

	if got := PruneSelection(activities[:100], 100); got != nil {
		t.Fatalf("expected nil at the ceiling, got %d ids", len(got))
	}
}
