package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/aggregate"
	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/validation"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

// ToggleAction names what one reaction toggle did
type ToggleAction string

const (
	ToggleAdded    ToggleAction = "added"
	ToggleRemoved  ToggleAction = "removed"
	ToggleSwitched ToggleAction = "switched"
)

// ToggleResult reports the outcome of a reaction toggle. Reaction is nil
// when the toggle removed one.
type ToggleResult struct {
	Action         ToggleAction
	Reaction       *models.Reaction
	ActivityLogged bool
}

// CommentResult reports the outcome of a comment mutation
type CommentResult struct {
	Comment        *models.Comment
	ActivityLogged bool
}

// ImageInteractions bundles everything an image detail view renders.
// UserReaction is the caller's own reaction, nil when they have none.
type ImageInteractions struct {
	ImageID      string
	Grouped      map[string][]models.Reaction
	TopEmojis    []aggregate.EmojiGroup
	Comments     []models.Comment
	UserReaction *models.Reaction
}

// InteractionService implements the reaction and comment write paths plus
// the image read model. Every successful mutation is followed by an
// activity append and a live-event publish; the mutation itself never
// fails because of them.
type InteractionService struct {
	users      UserStore
	reactions  ReactionStore
	comments   CommentStore
	activities ActivityStore
	cascades   CascadeStore
	publisher  Publisher
	retention  int
	logger     zerolog.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	users UserStore,
	reactions ReactionStore,
	comments CommentStore,
	activities ActivityStore,
	cascades CascadeStore,
	publisher Publisher,
	retention int,
	logger zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		users:      users,
		reactions:  reactions,
		comments:   comments,
		activities: activities,
		cascades:   cascades,
		publisher:  publisher,
		retention:  retention,
		logger:     logger,
	}
}

// ToggleReaction applies one tap on an emoji button. No reaction yet adds
// one, the same emoji removes it, a different emoji replaces it. The
// replace path is a single upsert so "at most one reaction per user per
// image" never breaks, even transiently.
func (s *InteractionService) ToggleReaction(ctx context.Context, userID uuid.UUID, imageID, emoji string) (*ToggleResult, error) {
	if !models.IsAllowedEmoji(emoji) {
		return nil, apperrors.ErrEmojiNotAllowed
	}

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reactions.FindByUserAndImage(ctx, userID, imageID)
	if err != nil && !errors.Is(err, apperrors.ErrReactionNotFound) {
		return nil, err
	}

	if existing != nil && existing.Emoji == emoji {
		if err := s.reactions.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		s.publishImage(imageID, websocket.EventReactionRemoved, existing)
		logged := s.appendActivity(ctx, &models.Activity{
			ID:        uuid.New(),
			Type:      models.ActivityEmojiRemoved,
			ImageID:   imageID,
			UserID:    actor.UserID,
			Username:  actor.Username,
			UserColor: actor.UserColor,
			Emoji:     emoji,
			Timestamp: time.Now(),
		})
		return &ToggleResult{Action: ToggleRemoved, ActivityLogged: logged}, nil
	}

	reaction := &models.Reaction{
		ID:        uuid.New(),
		ImageID:   imageID,
		Emoji:     emoji,
		UserID:    actor.UserID,
		Username:  actor.Username,
		UserColor: actor.UserColor,
		Timestamp: time.Now(),
	}
	if err := s.reactions.Upsert(ctx, reaction); err != nil {
		return nil, err
	}

	action := ToggleAdded
	if existing != nil {
		action = ToggleSwitched
		s.publishImage(imageID, websocket.EventReactionRemoved, existing)
	}
	s.publishImage(imageID, websocket.EventReactionAdded, reaction)

	logged := s.appendActivity(ctx, &models.Activity{
		ID:        uuid.New(),
		Type:      models.ActivityEmojiAdded,
		ImageID:   imageID,
		UserID:    actor.UserID,
		Username:  actor.Username,
		UserColor: actor.UserColor,
		Emoji:     emoji,
		Timestamp: time.Now(),
	})

	return &ToggleResult{Action: action, Reaction: reaction, ActivityLogged: logged}, nil
}

// AddComment stores a comment after trimming and validating its text
func (s *InteractionService) AddComment(ctx context.Context, userID uuid.UUID, imageID, text string) (*CommentResult, error) {
	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	trimmed, ok := validation.NormalizeComment(text)
	if !ok {
		if strings.TrimSpace(text) == "" {
			return nil, apperrors.ErrEmptyComment
		}
		return nil, apperrors.ErrCommentTooLong
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		ImageID:   imageID,
		Text:      trimmed,
		UserID:    actor.UserID,
		Username:  actor.Username,
		UserColor: actor.UserColor,
		Timestamp: time.Now(),
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	s.publishImage(imageID, websocket.EventCommentAdded, comment)

	logged := s.appendActivity(ctx, &models.Activity{
		ID:          uuid.New(),
		Type:        models.ActivityCommentAdded,
		ImageID:     imageID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		UserColor:   actor.UserColor,
		CommentText: trimmed,
		Timestamp:   time.Now(),
	})

	return &CommentResult{Comment: comment, ActivityLogged: logged}, nil
}

// DeleteComment removes the caller's own comment. Admins may remove any
// comment through the moderation endpoints instead.
func (s *InteractionService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*CommentResult, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	s.publishImage(comment.ImageID, websocket.EventCommentDeleted, comment)

	// The removal is narrated without repeating the removed text
	logged := s.appendActivity(ctx, &models.Activity{
		ID:        uuid.New(),
		Type:      models.ActivityCommentDeleted,
		ImageID:   comment.ImageID,
		UserID:    actor.UserID,
		Username:  actor.Username,
		UserColor: actor.UserColor,
		Timestamp: time.Now(),
	})

	return &CommentResult{Comment: comment, ActivityLogged: logged}, nil
}

// GetImageInteractions assembles the image detail read model for one caller
func (s *InteractionService) GetImageInteractions(ctx context.Context, userID uuid.UUID, imageID string) (*ImageInteractions, error) {
	reactions, err := s.reactions.ListByImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByImage(ctx, imageID)
	if err != nil {
		return nil, err
	}

	grouped := aggregate.GroupReactions(reactions, imageID)
	return &ImageInteractions{
		ImageID:      imageID,
		Grouped:      grouped,
		TopEmojis:    aggregate.TopEmojis(grouped, 3),
		Comments:     aggregate.SortComments(comments, imageID),
		UserReaction: aggregate.UserReaction(reactions, userID),
	}, nil
}

// resolveActor returns the attribution identity for a write. A missing
// profile falls back to the anonymous actor; a banned profile is refused.
func (s *InteractionService) resolveActor(ctx context.Context, userID uuid.UUID) (models.Actor, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return models.AnonymousActor(userID), nil
	}
	if err != nil {
		return models.Actor{}, err
	}
	if user.Banned {
		return models.Actor{}, apperrors.ErrAccountBanned
	}
	return user.Actor(), nil
}

// appendActivity records step two of a mutation. A failure here never
// fails the mutation that triggered it; the caller learns about it
// through the returned flag.
func (s *InteractionService) appendActivity(ctx context.Context, activity *models.Activity) bool {
	if err := s.activities.Insert(ctx, activity); err != nil {
		s.logger.Warn().Err(err).
			Str("type", string(activity.Type)).
			Str("imageID", activity.ImageID).
			Msg("Activity append failed, mutation kept")
		return false
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventActivityAppended,
		Topic:   websocket.FeedTopic,
		ImageID: activity.ImageID,
		Payload: activity,
	})

	s.pruneActivities(ctx)
	return true
}

// pruneActivities enforces the retention ceiling after an append. The
// oldest entries beyond the limit are removed in one transaction.
func (s *InteractionService) pruneActivities(ctx context.Context) {
	all, err := s.activities.ListAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Retention scan failed")
		return
	}

	ids := aggregate.PruneSelection(all, s.retention)
	if len(ids) == 0 {
		return
	}

	deleted, err := s.cascades.DeleteActivities(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Retention prune failed")
		return
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventActivitiesPruned,
		Topic:   websocket.FeedTopic,
		Payload: ids,
	})
	s.logger.Debug().Int64("pruned", deleted).Msg("Activity log pruned to retention limit")
}

func (s *InteractionService) publishImage(imageID string, eventType websocket.EventType, payload interface{}) {
	s.publisher.Publish(&websocket.Event{
		Type:    eventType,
		Topic:   websocket.ImageTopic(imageID),
		ImageID: imageID,
		Payload: payload,
	})
}
