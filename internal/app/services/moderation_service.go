package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/repositories"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

// ImagePurgeCounts reports what a per-image bulk removal deleted
type ImagePurgeCounts struct {
	Reactions int64 `json:"reactions"`
	Comments  int64 `json:"comments"`
}

// ModerationService implements the admin-only write paths. Moderation
// removals publish live events but do not append activities; they exist
// to take content down, not to narrate it.
type ModerationService struct {
	users      UserStore
	reactions  ReactionStore
	comments   CommentStore
	activities ActivityStore
	cascades   CascadeStore
	publisher  Publisher
	logger     zerolog.Logger
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	users UserStore,
	reactions ReactionStore,
	comments CommentStore,
	activities ActivityStore,
	cascades CascadeStore,
	publisher Publisher,
	logger zerolog.Logger,
) *ModerationService {
	return &ModerationService{
		users:      users,
		reactions:  reactions,
		comments:   comments,
		activities: activities,
		cascades:   cascades,
		publisher:  publisher,
		logger:     logger,
	}
}

// ListUsers returns every profile for the moderation panel
func (s *ModerationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}

// SetBanned flips a user's ban flag. Banned users keep their profile and
// records; only new writes are refused.
func (s *ModerationService) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) (*models.User, error) {
	user, err := s.users.SetBanned(ctx, userID, banned)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&websocket.Event{
		Type:  websocket.EventUserBanned,
		Topic: websocket.FeedTopic,
		Payload: map[string]interface{}{
			"userId": userID.String(),
			"banned": banned,
		},
	})

	s.logger.Info().Str("userID", userID.String()).Bool("banned", banned).Msg("User ban flag changed")
	return user, nil
}

// DeleteUser removes a profile and every record attributed to it. The
// record sets are scanned first so the whole cascade commits in one
// transaction with exact per-kind counts.
func (s *ModerationService) DeleteUser(ctx context.Context, userID uuid.UUID) (repositories.CascadeCounts, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return repositories.CascadeCounts{}, err
	}

	reactionIDs, err := s.collectReactionIDs(ctx, userID)
	if err != nil {
		return repositories.CascadeCounts{}, err
	}
	commentIDs, err := s.collectCommentIDs(ctx, userID)
	if err != nil {
		return repositories.CascadeCounts{}, err
	}
	activityIDs, err := s.collectActivityIDs(ctx, userID)
	if err != nil {
		return repositories.CascadeCounts{}, err
	}

	counts, err := s.cascades.DeleteUserCascade(ctx, userID, user.Email, reactionIDs, commentIDs, activityIDs)
	if err != nil {
		return repositories.CascadeCounts{}, err
	}

	s.publisher.Publish(&websocket.Event{
		Type:  websocket.EventUserDeleted,
		Topic: websocket.FeedTopic,
		Payload: map[string]interface{}{
			"userId": userID.String(),
			"counts": counts,
		},
	})

	s.logger.Info().
		Str("userID", userID.String()).
		Int64("reactions", counts.Reactions).
		Int64("comments", counts.Comments).
		Int64("activities", counts.Activities).
		Msg("User deleted with cascade")
	return counts, nil
}

// DeleteReaction removes any reaction regardless of owner
func (s *ModerationService) DeleteReaction(ctx context.Context, reactionID uuid.UUID) error {
	reaction, err := s.reactions.GetByID(ctx, reactionID)
	if err != nil {
		return err
	}
	if err := s.reactions.Delete(ctx, reactionID); err != nil {
		return err
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventReactionRemoved,
		Topic:   websocket.ImageTopic(reaction.ImageID),
		ImageID: reaction.ImageID,
		Payload: reaction,
	})
	return nil
}

// DeleteComment removes any comment regardless of owner
func (s *ModerationService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventCommentDeleted,
		Topic:   websocket.ImageTopic(comment.ImageID),
		ImageID: comment.ImageID,
		Payload: comment,
	})
	return nil
}

// DeleteActivity removes one feed entry
func (s *ModerationService) DeleteActivity(ctx context.Context, activityID uuid.UUID) error {
	if err := s.activities.Delete(ctx, activityID); err != nil {
		return err
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventActivitiesPruned,
		Topic:   websocket.FeedTopic,
		Payload: []uuid.UUID{activityID},
	})
	return nil
}

// PurgeImageReactions removes every reaction on one image
func (s *ModerationService) PurgeImageReactions(ctx context.Context, imageID string) (int64, error) {
	deleted, err := s.reactions.DeleteByImage(ctx, imageID)
	if err != nil {
		return 0, err
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventReactionRemoved,
		Topic:   websocket.ImageTopic(imageID),
		ImageID: imageID,
		Payload: map[string]interface{}{"imageId": imageID, "deleted": deleted},
	})

	s.logger.Info().Str("imageID", imageID).Int64("deleted", deleted).Msg("Image reactions purged")
	return deleted, nil
}

// PurgeImageComments removes every comment on one image
func (s *ModerationService) PurgeImageComments(ctx context.Context, imageID string) (int64, error) {
	deleted, err := s.comments.DeleteByImage(ctx, imageID)
	if err != nil {
		return 0, err
	}

	s.publisher.Publish(&websocket.Event{
		Type:    websocket.EventCommentDeleted,
		Topic:   websocket.ImageTopic(imageID),
		ImageID: imageID,
		Payload: map[string]interface{}{"imageId": imageID, "deleted": deleted},
	})

	s.logger.Info().Str("imageID", imageID).Int64("deleted", deleted).Msg("Image comments purged")
	return deleted, nil
}

// PurgeImage removes every reaction and comment on one image
func (s *ModerationService) PurgeImage(ctx context.Context, imageID string) (ImagePurgeCounts, error) {
	reactions, err := s.PurgeImageReactions(ctx, imageID)
	if err != nil {
		return ImagePurgeCounts{}, err
	}
	comments, err := s.PurgeImageComments(ctx, imageID)
	if err != nil {
		return ImagePurgeCounts{Reactions: reactions}, err
	}
	return ImagePurgeCounts{Reactions: reactions, Comments: comments}, nil
}

// ClearActivities wipes the whole activity log
func (s *ModerationService) ClearActivities(ctx context.Context) (int64, error) {
	deleted, err := s.activities.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.publisher.Publish(&websocket.Event{
		Type:  websocket.EventActivitiesCleared,
		Topic: websocket.FeedTopic,
	})

	s.logger.Info().Int64("deleted", deleted).Msg("Activity log cleared")
	return deleted, nil
}

func (s *ModerationService) collectReactionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	all, err := s.reactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, r := range all {
		if r.UserID == userID {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *ModerationService) collectCommentIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	all, err := s.comments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, c := range all {
		if c.UserID == userID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (s *ModerationService) collectActivityIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	all, err := s.activities.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, a := range all {
		if a.UserID == userID {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}
