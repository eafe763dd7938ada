package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

type interactionFixture struct {
	service    *InteractionService
	users      *fakeUserStore
	reactions  *fakeReactionStore
	comments   *fakeCommentStore
	activities *fakeActivityStore
	publisher  *fakePublisher
}

func newInteractionFixture(retention int, users ...models.User) *interactionFixture {
	userStore := newFakeUserStore(users...)
	reactions := &fakeReactionStore{}
	comments := &fakeCommentStore{}
	activities := &fakeActivityStore{}
	publisher := &fakePublisher{}
	cascades := &fakeCascadeStore{
		users:      userStore,
		reactions:  reactions,
		comments:   comments,
		activities: activities,
	}
	return &interactionFixture{
		service: NewInteractionService(
			userStore, reactions, comments, activities, cascades,
			publisher, retention, zerolog.Nop(),
		),
		users:      userStore,
		reactions:  reactions,
		comments:   comments,
		activities: activities,
		publisher:  publisher,
	}
}

func testUser() models.User {
	return models.User{
		ID:        uuid.New(),
		Email:     "ada@example.com",
		Username:  "ada",
		UserColor: "#FF6B6B",
	}
}

func TestToggleReactionAdds(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)

	result, err := f.service.ToggleReaction(context.Background(), user.ID, "img-1", "❤️")
	if err != nil {
		t.Fatalf("ToggleReaction returned error: %v", err)
	}
	if result.Action != ToggleAdded {
		t.Errorf("action = %q, want %q", result.Action, ToggleAdded)
	}
	if result.Reaction == nil || result.Reaction.Emoji != "❤️" {
		t.Fatalf("unexpected reaction: %+v", result.Reaction)
	}
	if !result.ActivityLogged {
		t.Error("expected activity to be logged")
	}

	stored, _ := f.reactions.ListByImage(context.Background(), "img-1")
	if len(stored) != 1 {
		t.Fatalf("stored reactions = %d, want 1", len(stored))
	}

	acts, _ := f.activities.ListAll(context.Background())
	if len(acts) != 1 || acts[0].Type != models.ActivityEmojiAdded {
		t.Fatalf("unexpected activity log: %+v", acts)
	}
	if !f.publisher.hasEvent(websocket.EventReactionAdded) {
		t.Error("expected a reaction_added event")
	}
	if !f.publisher.hasEvent(websocket.EventActivityAppended) {
		t.Error("expected an activity_appended event")
	}
}

func TestToggleReactionSameEmojiRemoves(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)
	ctx := context.Background()

	if _, err := f.service.ToggleReaction(ctx, user.ID, "img-1", "🔥"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	result, err := f.service.ToggleReaction(ctx, user.ID, "img-1", "🔥")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.Action != ToggleRemoved {
		t.Errorf("action = %q, want %q", result.Action, ToggleRemoved)
	}
	if result.Reaction != nil {
		t.Errorf("removed toggle should carry no reaction, got %+v", result.Reaction)
	}

	stored, _ := f.reactions.ListByImage(ctx, "img-1")
	if len(stored) != 0 {
		t.Fatalf("stored reactions = %d, want 0", len(stored))
	}

	acts, _ := f.activities.ListAll(ctx)
	if len(acts) != 2 || acts[1].Type != models.ActivityEmojiRemoved {
		t.Fatalf("unexpected activity log: %+v", acts)
	}
}

func TestToggleReactionDifferentEmojiSwitches(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)
	ctx := context.Background()

	if _, err := f.service.ToggleReaction(ctx, user.ID, "img-1", "❤️"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	result, err := f.service.ToggleReaction(ctx, user.ID, "img-1", "🔥")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.Action != ToggleSwitched {
		t.Errorf("action = %q, want %q", result.Action, ToggleSwitched)
	}

	stored, _ := f.reactions.ListByImage(ctx, "img-1")
	if len(stored) != 1 {
		t.Fatalf("stored reactions = %d, want 1 after switch", len(stored))
	}
	if stored[0].Emoji != "🔥" {
		t.Errorf("stored emoji = %q, want 🔥", stored[0].Emoji)
	}
}

func TestToggleReactionRejectsUnknownEmoji(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)

	_, err := f.service.ToggleReaction(context.Background(), user.ID, "img-1", "🦄")
	if !errors.Is(err, apperrors.ErrEmojiNotAllowed) {
		t.Fatalf("err = %v, want ErrEmojiNotAllowed", err)
	}
}

func TestToggleReactionRejectsBannedUser(t *testing.T) {
	user := testUser()
	user.Banned = true
	f := newInteractionFixture(100, user)

	_, err := f.service.ToggleReaction(context.Background(), user.ID, "img-1", "❤️")
	if !errors.Is(err, apperrors.ErrAccountBanned) {
		t.Fatalf("err = %v, want ErrAccountBanned", err)
	}
	stored, _ := f.reactions.ListByImage(context.Background(), "img-1")
	if len(stored) != 0 {
		t.Error("banned user's reaction must not be stored")
	}
}

func TestAddCommentTrimsText(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)

	result, err := f.service.AddComment(context.Background(), user.ID, "img-1", "  lovely shot  ")
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if result.Comment.Text != "lovely shot" {
		t.Errorf("text = %q, want trimmed", result.Comment.Text)
	}
	if !result.ActivityLogged {
		t.Error("expected activity to be logged")
	}
}

func TestAddCommentRejectsWhitespaceOnly(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)

	_, err := f.service.AddComment(context.Background(), user.ID, "img-1", "   \t\n ")
	if !errors.Is(err, apperrors.ErrEmptyComment) {
		t.Fatalf("err = %v, want ErrEmptyComment", err)
	}
	stored, _ := f.comments.ListByImage(context.Background(), "img-1")
	if len(stored) != 0 {
		t.Error("whitespace-only comment must not be stored")
	}
}

func TestAddCommentRejectsOverlongText(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)

	_, err := f.service.AddComment(context.Background(), user.ID, "img-1", strings.Repeat("a", models.CommentMaxLength+1))
	if !errors.Is(err, apperrors.ErrCommentTooLong) {
		t.Fatalf("err = %v, want ErrCommentTooLong", err)
	}
}

func TestDeleteCommentRejectsNonOwner(t *testing.T) {
	owner := testUser()
	other := models.User{ID: uuid.New(), Email: "bob@example.com", Username: "bob", UserColor: "#4ECDC4"}
	f := newInteractionFixture(100, owner, other)
	ctx := context.Background()

	created, err := f.service.AddComment(ctx, owner.ID, "img-1", "mine")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	_, err = f.service.DeleteComment(ctx, other.ID, created.Comment.ID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}

	stored, _ := f.comments.ListByImage(ctx, "img-1")
	if len(stored) != 1 {
		t.Error("comment must survive a non-owner delete attempt")
	}
}

func TestDeleteCommentByOwner(t *testing.T) {
	owner := testUser()
	f := newInteractionFixture(100, owner)
	ctx := context.Background()

	created, err := f.service.AddComment(ctx, owner.ID, "img-1", "mine")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	result, err := f.service.DeleteComment(ctx, owner.ID, created.Comment.ID)
	if err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if !result.ActivityLogged {
		t.Error("expected a comment_deleted activity")
	}

	stored, _ := f.comments.ListByImage(ctx, "img-1")
	if len(stored) != 0 {
		t.Error("comment should be gone")
	}
	if !f.publisher.hasEvent(websocket.EventCommentDeleted) {
		t.Error("expected a comment_deleted event")
	}

	// The deletion activity must not repeat the removed text
	acts, _ := f.activities.ListAll(ctx)
	if len(acts) != 2 {
		t.Fatalf("activity count = %d, want 2", len(acts))
	}
	deletion := acts[1]
	if deletion.Type != models.ActivityCommentDeleted {
		t.Fatalf("activity type = %q, want %q", deletion.Type, models.ActivityCommentDeleted)
	}
	if deletion.CommentText != "" {
		t.Errorf("comment_deleted activity carries text %q, want none", deletion.CommentText)
	}
}

func TestAddCommentByUnknownProfileIsAnonymous(t *testing.T) {
	f := newInteractionFixture(100)
	ctx := context.Background()

	result, err := f.service.AddComment(ctx, uuid.New(), "img-1", "hello from nowhere")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if result.Comment.Username != "Anonymous" {
		t.Errorf("username = %q, want Anonymous", result.Comment.Username)
	}
	if result.Comment.UserColor != models.DefaultUserColor {
		t.Errorf("color = %q, want %q", result.Comment.UserColor, models.DefaultUserColor)
	}

	acts, _ := f.activities.ListAll(ctx)
	if len(acts) != 1 || acts[0].Username != "Anonymous" {
		t.Errorf("activity attribution = %+v, want Anonymous", acts)
	}
}

func TestActivityAppendFailureKeepsMutation(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(100, user)
	f.activities.failInsert = true

	result, err := f.service.ToggleReaction(context.Background(), user.ID, "img-1", "❤️")
	if err != nil {
		t.Fatalf("ToggleReaction returned error: %v", err)
	}
	if result.ActivityLogged {
		t.Error("ActivityLogged should be false when the append fails")
	}

	stored, _ := f.reactions.ListByImage(context.Background(), "img-1")
	if len(stored) != 1 {
		t.Error("reaction must be kept despite the failed append")
	}
}

func TestRetentionPrunesOldestBeyondLimit(t *testing.T) {
	user := testUser()
	f := newInteractionFixture(5, user)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		f.activities.activities = append(f.activities.activities, models.Activity{
			ID:        uuid.New(),
			Type:      models.ActivityCommentAdded,
			ImageID:   "img-old",
			UserID:    user.ID,
			Username:  user.Username,
			UserColor: user.UserColor,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	oldest := f.activities.activities[0].ID

	if _, err := f.service.AddComment(ctx, user.ID, "img-1", "over the limit"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	acts, _ := f.activities.ListAll(ctx)
	if len(acts) != 5 {
		t.Fatalf("activity count = %d, want 5 after prune", len(acts))
	}
	for _, a := range acts {
		if a.ID == oldest {
			t.Error("oldest activity should have been pruned")
		}
	}
	if !f.publisher.hasEvent(websocket.EventActivitiesPruned) {
		t.Error("expected an activities_pruned event")
	}
}

func TestGetImageInteractions(t *testing.T) {
	user := testUser()
	other := models.User{ID: uuid.New(), Email: "bob@example.com", Username: "bob", UserColor: "#4ECDC4"}
	f := newInteractionFixture(100, user, other)
	ctx := context.Background()

	if _, err := f.service.ToggleReaction(ctx, user.ID, "img-1", "❤️"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := f.service.ToggleReaction(ctx, other.ID, "img-1", "🔥"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := f.service.AddComment(ctx, user.ID, "img-1", "first"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := f.service.AddComment(ctx, other.ID, "img-1", "second"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	view, err := f.service.GetImageInteractions(ctx, user.ID, "img-1")
	if err != nil {
		t.Fatalf("GetImageInteractions: %v", err)
	}
	if len(view.Grouped) != 2 {
		t.Errorf("grouped emoji count = %d, want 2", len(view.Grouped))
	}
	if len(view.TopEmojis) != 2 {
		t.Errorf("top emojis = %d, want 2", len(view.TopEmojis))
	}
	if len(view.Comments) != 2 || view.Comments[0].Text != "first" {
		t.Errorf("comments out of order: %+v", view.Comments)
	}
	if view.UserReaction == nil || view.UserReaction.Emoji != "❤️" {
		t.Errorf("user reaction = %+v, want caller's ❤️", view.UserReaction)
	}
}
