package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/repositories"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

// In-memory fakes backing the service tests. They mirror the store
// contracts, including the sentinel errors the real repositories return.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) Upsert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			existing.IsAdmin = user.IsAdmin
			s.users[existing.ID] = existing
			*user = existing
			return nil
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) UpdateUsername(_ context.Context, id uuid.UUID, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Username = username
	s.users[id] = u
	return &u, nil
}

func (s *fakeUserStore) SetBanned(_ context.Context, id uuid.UUID, banned bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Banned = banned
	if banned {
		now := time.Now()
		u.BannedAt = &now
	} else {
		u.BannedAt = nil
	}
	s.users[id] = u
	return &u, nil
}

func (s *fakeUserStore) ListAll(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeReactionStore struct {
	mu        sync.Mutex
	reactions []models.Reaction
}

func (s *fakeReactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reactions {
		if s.reactions[i].ID == id {
			copied := s.reactions[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrReactionNotFound
}

func (s *fakeReactionStore) ListByImage(_ context.Context, imageID string) ([]models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reaction
	for _, r := range s.reactions {
		if r.ImageID == imageID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReactionStore) ListAll(_ context.Context) ([]models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reaction(nil), s.reactions...), nil
}

func (s *fakeReactionStore) FindByUserAndImage(_ context.Context, userID uuid.UUID, imageID string) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reactions {
		if s.reactions[i].UserID == userID && s.reactions[i].ImageID == imageID {
			copied := s.reactions[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrReactionNotFound
}

func (s *fakeReactionStore) Upsert(_ context.Context, reaction *models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reactions {
		if s.reactions[i].UserID == reaction.UserID && s.reactions[i].ImageID == reaction.ImageID {
			s.reactions[i].Emoji = reaction.Emoji
			s.reactions[i].Timestamp = reaction.Timestamp
			*reaction = s.reactions[i]
			return nil
		}
	}
	s.reactions = append(s.reactions, *reaction)
	return nil
}

func (s *fakeReactionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reactions {
		if s.reactions[i].ID == id {
			s.reactions = append(s.reactions[:i], s.reactions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrReactionNotFound
}

func (s *fakeReactionStore) DeleteByImage(_ context.Context, imageID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.Reaction
	var deleted int64
	for _, r := range s.reactions {
		if r.ImageID == imageID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.reactions = kept
	return deleted, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments []models.Comment
}

func (s *fakeCommentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			copied := s.comments[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCommentNotFound
}

func (s *fakeCommentStore) ListByImage(_ context.Context, imageID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Comment
	for _, c := range s.comments {
		if c.ImageID == imageID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) ListAll(_ context.Context) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Comment(nil), s.comments...), nil
}

func (s *fakeCommentStore) Insert(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCommentNotFound
}

func (s *fakeCommentStore) DeleteByImage(_ context.Context, imageID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.Comment
	var deleted int64
	for _, c := range s.comments {
		if c.ImageID == imageID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.comments = kept
	return deleted, nil
}

type fakeActivityStore struct {
	mu         sync.Mutex
	activities []models.Activity
	failInsert bool
}

func (s *fakeActivityStore) Insert(_ context.Context, activity *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert {
		return errors.New("activity store unavailable")
	}
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *fakeActivityStore) List(_ context.Context, filter repositories.ActivityFilter) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Activity
	for _, a := range s.activities {
		if filter.ImageID != "" && a.ImageID != filter.ImageID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		out = append(out, a)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *fakeActivityStore) ListAll(_ context.Context) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Activity(nil), s.activities...), nil
}

func (s *fakeActivityStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrActivityNotFound
}

func (s *fakeActivityStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := int64(len(s.activities))
	s.activities = nil
	return deleted, nil
}

func (s *fakeActivityStore) deleteByIDs(ids []uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []models.Activity
	var deleted int64
	for _, a := range s.activities {
		if drop[a.ID] {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	s.activities = kept
	return deleted
}

// fakeCascadeStore applies transactional deletes against the other fakes
type fakeCascadeStore struct {
	users      *fakeUserStore
	reactions  *fakeReactionStore
	comments   *fakeCommentStore
	activities *fakeActivityStore
}

func (s *fakeCascadeStore) DeleteUserCascade(ctx context.Context, userID uuid.UUID, _ string, reactionIDs, commentIDs, activityIDs []uuid.UUID) (repositories.CascadeCounts, error) {
	var counts repositories.CascadeCounts
	for _, id := range reactionIDs {
		if err := s.reactions.Delete(ctx, id); err == nil {
			counts.Reactions++
		}
	}
	for _, id := range commentIDs {
		if err := s.comments.Delete(ctx, id); err == nil {
			counts.Comments++
		}
	}
	counts.Activities = s.activities.deleteByIDs(activityIDs)

	s.users.mu.Lock()
	delete(s.users.users, userID)
	s.users.mu.Unlock()
	return counts, nil
}

func (s *fakeCascadeStore) DeleteActivities(_ context.Context, ids []uuid.UUID) (int64, error) {
	return s.activities.deleteByIDs(ids), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*websocket.Event
}

func (p *fakePublisher) Publish(event *websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) eventTypes() []websocket.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]websocket.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *fakePublisher) hasEvent(t websocket.EventType) bool {
	for _, et := range p.eventTypes() {
		if et == t {
			return true
		}
	}
	return false
}

type fakeLoginCodeStore struct {
	mu    sync.Mutex
	codes map[string]repositories.LoginCode
}

func newFakeLoginCodeStore() *fakeLoginCodeStore {
	return &fakeLoginCodeStore{codes: make(map[string]repositories.LoginCode)}
}

func (s *fakeLoginCodeStore) Replace(_ context.Context, email, codeHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = repositories.LoginCode{
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeLoginCodeStore) FindByEmail(_ context.Context, email string) (*repositories.LoginCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lc, ok := s.codes[email]
	if !ok {
		return nil, apperrors.ErrInvalidLoginCode
	}
	return &lc, nil
}

func (s *fakeLoginCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]repositories.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]repositories.RefreshToken)}
}

func (s *fakeTokenStore) CreateRefreshToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = repositories.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return &rt, nil
}

func (s *fakeTokenStore) DeleteRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return nil
}

type fakeEmailService struct {
	mu       sync.Mutex
	lastTo   string
	lastCode string
	sent     int
}

func (s *fakeEmailService) SendLoginCode(toEmail, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTo = toEmail
	s.lastCode = code
	s.sent++
	return nil
}
