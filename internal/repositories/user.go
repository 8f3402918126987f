package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// MaxListLimit bounds a single page of users.
const MaxListLimit = 100

var userColumnNames = []string{
	"id", "display_name", "email", "country", "avatar", "spotify_id",
	"is_online", "currently_playing", "password_hash", "created_at", "updated_at",
}

func userColumns(alias string) string {
	if alias == "" {
		return strings.Join(userColumnNames, ", ")
	}
	cols := make([]string, len(userColumnNames))
	for i, c := range userColumnNames {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// UserRepository persists users and their friendship edges.
type UserRepository struct {
	base
	hashCost int
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB, txGetter TxGetter) *UserRepository {
	return &UserRepository{
		base:     base{db: db, txGetter: txGetter},
		hashCost: bcrypt.DefaultCost,
	}
}

// Create inserts a new user with a generated id and a bcrypt password hash.
func (r *UserRepository) Create(ctx context.Context, in models.UserCreate) (*models.UserDB, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), r.hashCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.UserDB{
		ID:               uuid.New(),
		DisplayName:      strings.TrimSpace(in.DisplayName),
		Email:            in.Email,
		Country:          in.Country,
		Avatar:           in.Avatar,
		SpotifyID:        in.SpotifyID,
		IsOnline:         in.IsOnline,
		CurrentlyPlaying: in.CurrentlyPlaying,
		PasswordHash:     string(hash),
	}

	query := `
		INSERT INTO users (id, display_name, email, country, avatar, spotify_id, is_online, currently_playing, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	args := []any{
		user.ID, user.DisplayName, user.Email, user.Country, user.Avatar,
		user.SpotifyID, user.IsOnline, user.CurrentlyPlaying, user.PasswordHash,
	}

	err = r.withTx(ctx, func(ex sqlx.ExtContext) error {
		if err := r.checkUnique(ctx, ex, uuid.Nil, &user.Email, &user.DisplayName, user.SpotifyID); err != nil {
			return err
		}
		err := sqlx.GetContext(ctx, ex, &user.CreatedAt, query, args...)
		logQuery(query, args, user.ID, err)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given id, or nil if there is none.
func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	return r.getBy(ctx, r.executor(ctx), "id", id)
}

// GetByEmail returns the user registered with email, or nil.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	return r.getBy(ctx, r.executor(ctx), "email", email)
}

// GetByDisplayName returns the user with the given display name, or nil.
func (r *UserRepository) GetByDisplayName(ctx context.Context, displayName string) (*models.UserDB, error) {
	return r.getBy(ctx, r.executor(ctx), "display_name", strings.TrimSpace(displayName))
}

// GetBySpotifyID returns the user linked to a Spotify account, or nil.
func (r *UserRepository) GetBySpotifyID(ctx context.Context, spotifyID string) (*models.UserDB, error) {
	return r.getBy(ctx, r.executor(ctx), "spotify_id", spotifyID)
}

// getBy looks a user up by one of the unique columns. column is never user input.
func (r *UserRepository) getBy(ctx context.Context, ex sqlx.ExtContext, column string, value any) (*models.UserDB, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns(""), column)

	var user models.UserDB
	err := sqlx.GetContext(ctx, ex, &user, query, value)
	logQuery(query, []any{value}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// List returns a page of users ordered by creation time.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.UserDB, error) {
	if limit < 1 || limit > MaxListLimit {
		return nil, apperrors.ValidationFailed("limit", fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	if offset < 0 {
		return nil, apperrors.ValidationFailed("offset", "offset must not be negative")
	}

	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`, userColumns(""))
	args := []any{limit, offset}

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, args...)
	logQuery(query, args, len(users), err)
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`

	var n int
	err := sqlx.GetContext(ctx, r.executor(ctx), &n, query)
	logQuery(query, nil, n, err)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// Update applies the non-nil fields of upd to the user and returns the result.
// A nil user is returned when id is unknown.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		upd.DisplayName = &name
		set("display_name", name)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Country != nil {
		set("country", *upd.Country)
	}
	if upd.Avatar != nil {
		set("avatar", *upd.Avatar)
	}
	if upd.SpotifyID != nil {
		set("spotify_id", *upd.SpotifyID)
	}
	if upd.IsOnline != nil {
		set("is_online", *upd.IsOnline)
	}
	if upd.CurrentlyPlaying != nil {
		set("currently_playing", *upd.CurrentlyPlaying)
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), r.hashCost)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		set("password_hash", string(hash))
	}

	var user *models.UserDB
	err := r.withTx(ctx, func(ex sqlx.ExtContext) error {
		current, err := r.getBy(ctx, ex, "id", id)
		if err != nil || current == nil {
			return err
		}
		if len(sets) == 0 {
			user = current
			return nil
		}
		if err := r.checkUnique(ctx, ex, id, upd.Email, upd.DisplayName, upd.SpotifyID); err != nil {
			return err
		}

		sets = append(sets, "updated_at = clock_timestamp()")
		args = append(args, id)
		query := fmt.Sprintf(
			`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), userColumns(""),
		)

		var updated models.UserDB
		err = sqlx.GetContext(ctx, ex, &updated, query, args...)
		logQuery(query, args, updated.ID, err)
		if err != nil {
			return mapError(err)
		}
		user = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user along with its tokens and every friendship edge
// that references it. It reports whether a user row was removed.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.withTx(ctx, func(ex sqlx.ExtContext) error {
		for _, query := range []string{
			`DELETE FROM friends_association WHERE user_id = $1 OR friend_id = $1`,
			`DELETE FROM tokens WHERE user_id = $1`,
		} {
			res, err := ex.ExecContext(ctx, query, id)
			logQuery(query, []any{id}, rowsAffected(res), err)
			if err != nil {
				return mapError(err)
			}
		}

		query := `DELETE FROM users WHERE id = $1`
		res, err := ex.ExecContext(ctx, query, id)
		n := rowsAffected(res)
		logQuery(query, []any{id}, n, err)
		if err != nil {
			return mapError(err)
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// checkUnique rejects values already held by a user other than exclude.
// The UNIQUE constraints remain the final word for concurrent writers.
func (r *UserRepository) checkUnique(ctx context.Context, ex sqlx.ExtContext, exclude uuid.UUID, email, displayName, spotifyID *string) error {
	checks := []struct {
		column string
		field  string
		value  *string
	}{
		{"email", "email", email},
		{"display_name", "display_name", displayName},
		{"spotify_id", "spotify_id", spotifyID},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		existing, err := r.getBy(ctx, ex, c.column, *c.value)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != exclude {
			return apperrors.Conflict(c.field, fmt.Sprintf("%s already in use", strings.ReplaceAll(c.field, "_", " ")))
		}
	}
	return nil
}
