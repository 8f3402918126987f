package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
)

// MaxPerPage bounds the page size of user listings.
const MaxPerPage = 100

// UserReader defines read-only operations for users.
type UserReader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByDisplayName(ctx context.Context, displayName string) (*models.UserDB, error)
	GetBySpotifyID(ctx context.Context, spotifyID string) (*models.UserDB, error)
	List(ctx context.Context, limit, offset int) ([]models.UserDB, error)
	Count(ctx context.Context) (int, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, in models.UserCreate) (*models.UserDB, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// FriendManager defines operations on directed friendship edges.
type FriendManager interface {
	AddFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	GetFriends(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
	GetFriendedBy(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
	CountFriends(ctx context.Context, userID uuid.UUID) (int, error)
}

// UserService handles user profiles and friendships. It does not check that
// the caller owns the profile or friendship it changes: any authenticated
// user may change any user.
type UserService struct {
	reader    UserReader
	writer    UserWriter
	friends   FriendManager
	validator *UserValidator
	events    *EventPublisher
}

// NewUserService creates a new UserService.
func NewUserService(
	reader UserReader,
	writer UserWriter,
	friends FriendManager,
	validator *UserValidator,
	events *EventPublisher,
) *UserService {
	return &UserService{
		reader:    reader,
		writer:    writer,
		friends:   friends,
		validator: validator,
		events:    events,
	}
}

// Create validates and stores a new user.
func (s *UserService) Create(ctx context.Context, in models.UserCreate) (*models.UserOut, error) {
	if err := s.validator.Validate(ctx, &in); err != nil {
		logger.Log.Infow("user rejected", "email", in.Email, "display_name", in.DisplayName, "err", err)
		return nil, err
	}

	user, err := s.writer.Create(ctx, in)
	if err != nil {
		logger.Log.Errorw("failed to create user", "email", in.Email, "err", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EventUserCreated, user.ID, uuid.Nil)
	return models.NewUserOut(user).WithFriendsCount(0), nil
}

// List returns page (1-based) of users with perPage entries.
func (s *UserService) List(ctx context.Context, page, perPage int) (*models.PaginatedUsers, error) {
	if page < 1 {
		return nil, apperrors.ValidationFailed("page", "page must be at least 1")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return nil, apperrors.ValidationFailed("per_page", "per_page must be between 1 and 100")
	}

	total, err := s.reader.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "err", err)
		return nil, err
	}

	users, err := s.reader.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		logger.Log.Errorw("failed to list users", "page", page, "per_page", perPage, "err", err)
		return nil, err
	}

	out := make([]models.UserOut, 0, len(users))
	for i := range users {
		out = append(out, *models.NewUserOut(&users[i]))
	}

	return &models.PaginatedUsers{
		Total:   total,
		Users:   out,
		Page:    page,
		PerPage: perPage,
		Pages:   (total + perPage - 1) / perPage,
	}, nil
}

// GetByDisplayName returns the user with displayName and its friends count.
func (s *UserService) GetByDisplayName(ctx context.Context, displayName string) (*models.UserOut, error) {
	user, err := s.reader.GetByDisplayName(ctx, displayName)
	if err != nil {
		logger.Log.Errorw("failed to get user", "display_name", displayName, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", displayName)
	}
	return s.withFriendsCount(ctx, user)
}

// Get returns the user with id and its friends count.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.UserOut, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withFriendsCount(ctx, user)
}

// Update applies a partial update to user id.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserOut, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(ctx, id, &upd); err != nil {
		logger.Log.Infow("user update rejected", "id", id, "err", err)
		return nil, err
	}

	user, err := s.writer.Update(ctx, id, upd)
	if err != nil {
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", id.String())
	}

	if !upd.IsEmpty() {
		s.events.Publish(ctx, models.EventUserUpdated, id, uuid.Nil)
	}
	return s.withFriendsCount(ctx, user)
}

// Delete removes user id together with its tokens and friendships.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		return err
	}
	if !deleted {
		return apperrors.NotFound("user", id.String())
	}

	s.events.Publish(ctx, models.EventUserDeleted, id, uuid.Nil)
	return nil
}

// AddFriend adds friendID to the friends of userID. Adding an existing
// friend is a no-op.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if userID == friendID {
		return apperrors.ValidationFailed("friend_id", "Cannot add yourself as friend")
	}
	for _, id := range []uuid.UUID{userID, friendID} {
		if _, err := s.mustGet(ctx, id); err != nil {
			return err
		}
	}

	added, err := s.friends.AddFriend(ctx, userID, friendID)
	if err != nil {
		logger.Log.Errorw("failed to add friend", "user_id", userID, "friend_id", friendID, "err", err)
		return err
	}
	if added {
		s.events.Publish(ctx, models.EventFriendAdded, userID, friendID)
	}
	return nil
}

// RemoveFriend removes friendID from the friends of userID.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if userID == friendID {
		return apperrors.ValidationFailed("friend_id", "Cannot remove yourself from friends")
	}

	removed, err := s.friends.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		logger.Log.Errorw("failed to remove friend", "user_id", userID, "friend_id", friendID, "err", err)
		return err
	}
	if !removed {
		return apperrors.NotFound("friendship", userID.String()+"/"+friendID.String())
	}

	s.events.Publish(ctx, models.EventFriendRemoved, userID, friendID)
	return nil
}

// Friends returns the users that userID has added.
func (s *UserService) Friends(ctx context.Context, userID uuid.UUID) ([]models.UserOut, error) {
	return s.edges(ctx, userID, s.friends.GetFriends)
}

// FriendedBy returns the users that have added userID.
func (s *UserService) FriendedBy(ctx context.Context, userID uuid.UUID) ([]models.UserOut, error) {
	return s.edges(ctx, userID, s.friends.GetFriendedBy)
}

func (s *UserService) edges(
	ctx context.Context,
	userID uuid.UUID,
	fetch func(context.Context, uuid.UUID) ([]models.UserDB, error),
) ([]models.UserOut, error) {
	if _, err := s.mustGet(ctx, userID); err != nil {
		return nil, err
	}

	users, err := fetch(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get friends", "user_id", userID, "err", err)
		return nil, err
	}

	out := make([]models.UserOut, 0, len(users))
	for i := range users {
		out = append(out, *models.NewUserOut(&users[i]))
	}
	return out, nil
}

func (s *UserService) mustGet(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	user, err := s.reader.Get(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", id.String())
	}
	return user, nil
}

func (s *UserService) withFriendsCount(ctx context.Context, user *models.UserDB) (*models.UserOut, error) {
	n, err := s.friends.CountFriends(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to count friends", "id", user.ID, "err", err)
		return nil, err
	}
	return models.NewUserOut(user).WithFriendsCount(n), nil
}
