package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
)

// TokenSigner issues signed token strings for a user.
type TokenSigner interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

const tokenColumns = `id, user_id, token, is_active, created_at, updated_at`

// TokenRepository persists session tokens. A user holds at most one active token.
type TokenRepository struct {
	base
	signer TokenSigner
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sqlx.DB, txGetter TxGetter, signer TokenSigner) *TokenRepository {
	return &TokenRepository{
		base:   base{db: db, txGetter: txGetter},
		signer: signer,
	}
}

// Create issues a new active token for user and deactivates the previous ones.
func (r *TokenRepository) Create(ctx context.Context, user *models.UserDB) (*models.TokenDB, error) {
	tokenString, err := r.sign(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token := &models.TokenDB{
		ID:       uuid.New(),
		UserID:   user.ID,
		Token:    tokenString,
		IsActive: true,
	}

	err = r.withTx(ctx, func(ex sqlx.ExtContext) error {
		if err := r.deactivateOthers(ctx, ex, user.ID, uuid.Nil); err != nil {
			return err
		}

		query := `
			INSERT INTO tokens (id, user_id, token, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`
		args := []any{token.ID, token.UserID, token.Token, token.IsActive}
		err := sqlx.GetContext(ctx, ex, &token.CreatedAt, query, args...)
		logQuery(query, args, token.ID, err)
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Get returns the user's current token: the active one if any, else the newest.
func (r *TokenRepository) Get(ctx context.Context, userID uuid.UUID) (*models.TokenDB, error) {
	return r.latest(ctx, r.executor(ctx), userID)
}

// GetByTokenString returns the row holding token, or nil.
func (r *TokenRepository) GetByTokenString(ctx context.Context, token string) (*models.TokenDB, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE token = $1`

	var t models.TokenDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &t, query, token)
	logQuery(query, []any{"***"}, t.ID, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// ListActive returns every active token.
func (r *TokenRepository) ListActive(ctx context.Context) ([]models.TokenDB, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE is_active ORDER BY created_at`

	tokens := []models.TokenDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &tokens, query)
	logQuery(query, nil, len(tokens), err)
	if err != nil {
		return nil, mapError(err)
	}
	return tokens, nil
}

// Refresh rotates the token string of the user's current token in place and
// re-activates it. The row id and owner are preserved. Nil when the user has no token.
func (r *TokenRepository) Refresh(ctx context.Context, userID uuid.UUID) (*models.TokenDB, error) {
	tokenString, err := r.sign(ctx, userID)
	if err != nil {
		return nil, err
	}

	var refreshed *models.TokenDB
	err = r.withTx(ctx, func(ex sqlx.ExtContext) error {
		current, err := r.latest(ctx, ex, userID)
		if err != nil || current == nil {
			return err
		}
		if err := r.deactivateOthers(ctx, ex, userID, current.ID); err != nil {
			return err
		}

		query := `
			UPDATE tokens
			SET token = $1, is_active = TRUE, updated_at = clock_timestamp()
			WHERE id = $2
			RETURNING ` + tokenColumns
		args := []any{tokenString, current.ID}

		var t models.TokenDB
		err = sqlx.GetContext(ctx, ex, &t, query, args...)
		logQuery(query, []any{"***", current.ID}, t.ID, err)
		if err != nil {
			return mapError(err)
		}
		refreshed = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Deactivate flips every token of the user inactive without deleting rows.
// It reports whether the user had any token.
func (r *TokenRepository) Deactivate(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.exec(ctx, `UPDATE tokens SET is_active = FALSE, updated_at = clock_timestamp() WHERE user_id = $1`, userID)
}

// DeactivateByTokenString flips a single token inactive.
func (r *TokenRepository) DeactivateByTokenString(ctx context.Context, token string) (bool, error) {
	return r.exec(ctx, `UPDATE tokens SET is_active = FALSE, updated_at = clock_timestamp() WHERE token = $1`, token)
}

// Delete removes every token of the user.
func (r *TokenRepository) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.exec(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
}

func (r *TokenRepository) exec(ctx context.Context, query string, arg any) (bool, error) {
	var changed bool
	err := r.withTx(ctx, func(ex sqlx.ExtContext) error {
		res, err := ex.ExecContext(ctx, query, arg)
		n := rowsAffected(res)
		logQuery(query, nil, n, err)
		if err != nil {
			return mapError(err)
		}
		changed = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (r *TokenRepository) latest(ctx context.Context, ex sqlx.ExtContext, userID uuid.UUID) (*models.TokenDB, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM tokens
		WHERE user_id = $1
		ORDER BY is_active DESC, created_at DESC
		LIMIT 1
	`
	var t models.TokenDB
	err := sqlx.GetContext(ctx, ex, &t, query, userID)
	logQuery(query, []any{userID}, t.ID, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *TokenRepository) deactivateOthers(ctx context.Context, ex sqlx.ExtContext, userID, keep uuid.UUID) error {
	query := `
		UPDATE tokens
		SET is_active = FALSE, updated_at = clock_timestamp()
		WHERE user_id = $1 AND is_active AND id <> $2
	`
	args := []any{userID, keep}
	res, err := ex.ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)
	return mapError(err)
}

func (r *TokenRepository) sign(ctx context.Context, userID uuid.UUID) (string, error) {
	s, err := r.signer.Generate(ctx, userID)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return s, nil
}
