package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Authentication errors
var (
	ErrInvalidCredentials = apperrors.Unauthorized("Invalid email or password")
	ErrInvalidToken       = apperrors.Unauthorized("Invalid or expired token")
)

// TokenStore defines persistence of session tokens.
type TokenStore interface {
	Create(ctx context.Context, user *models.UserDB) (*models.TokenDB, error)
	GetByTokenString(ctx context.Context, token string) (*models.TokenDB, error)
	DeactivateByTokenString(ctx context.Context, token string) (bool, error)
}

// TokenVerifier checks a token signature and expiry and returns its user id.
type TokenVerifier interface {
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// AuthService handles registration, login and bearer token checks.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	tokens    TokenStore
	verifier  TokenVerifier
	validator *UserValidator
	events    *EventPublisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens TokenStore,
	verifier TokenVerifier,
	validator *UserValidator,
	events *EventPublisher,
) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		tokens:    tokens,
		verifier:  verifier,
		validator: validator,
		events:    events,
	}
}

// Register creates a user and issues its first token.
func (svc *AuthService) Register(ctx context.Context, in models.UserCreate) (*models.UserOut, *models.TokenDB, error) {
	if err := svc.validator.Validate(ctx, &in); err != nil {
		logger.Log.Infow("registration rejected", "email", in.Email, "err", err)
		return nil, nil, err
	}

	user, err := svc.writer.Create(ctx, in)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, nil, err
	}

	token, err := svc.tokens.Create(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to create token", "user_id", user.ID, "err", err)
		return nil, nil, err
	}

	svc.events.Publish(ctx, models.EventUserCreated, user.ID, uuid.Nil)
	return models.NewUserOut(user).WithFriendsCount(0), token, nil
}

// Login checks credentials and returns a fresh token string. Any previously
// active token of the user is deactivated.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Create(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to create token", "user_id", user.ID, "err", err)
		return "", err
	}

	svc.events.Publish(ctx, models.EventUserLoggedIn, user.ID, uuid.Nil)
	return token.Token, nil
}

// Logout deactivates tokenString.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	userID, err := svc.Authenticate(ctx, tokenString)
	if err != nil {
		return err
	}

	ok, err := svc.tokens.DeactivateByTokenString(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("failed to deactivate token", "user_id", userID, "err", err)
		return err
	}
	if !ok {
		return ErrInvalidToken
	}

	svc.events.Publish(ctx, models.EventUserLoggedOut, userID, uuid.Nil)
	return nil
}

// Authenticate verifies the signature and expiry of tokenString and that it
// is the active token of its user. It returns the user id.
func (svc *AuthService) Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	userID, err := svc.verifier.GetUserID(ctx, tokenString)
	if err != nil {
		logger.Log.Infow("token rejected", "err", err)
		return uuid.Nil, ErrInvalidToken
	}

	token, err := svc.tokens.GetByTokenString(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("failed to get token", "user_id", userID, "err", err)
		return uuid.Nil, err
	}
	if token == nil || !token.IsActive || token.UserID != userID {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
