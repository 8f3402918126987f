package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/syncify/internal/models"
)

// AddFriend creates the directed edge userID -> friendID. It returns false
// when either user does not exist or the edge is already present.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	var added bool
	err := r.withTx(ctx, func(ex sqlx.ExtContext) error {
		query := `SELECT COUNT(*) FROM users WHERE id IN ($1, $2)`
		args := []any{userID, friendID}

		var found int
		err := sqlx.GetContext(ctx, ex, &found, query, args...)
		logQuery(query, args, found, err)
		if err != nil {
			return mapError(err)
		}
		if found != 2 {
			return nil
		}

		query = `
			INSERT INTO friends_association (user_id, friend_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, friend_id) DO NOTHING
		`
		res, err := ex.ExecContext(ctx, query, args...)
		n := rowsAffected(res)
		logQuery(query, args, n, err)
		if err != nil {
			return mapError(err)
		}
		added = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// RemoveFriend deletes the edge userID -> friendID and reports whether it existed.
func (r *UserRepository) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	var removed bool
	err := r.withTx(ctx, func(ex sqlx.ExtContext) error {
		query := `DELETE FROM friends_association WHERE user_id = $1 AND friend_id = $2`
		args := []any{userID, friendID}

		res, err := ex.ExecContext(ctx, query, args...)
		n := rowsAffected(res)
		logQuery(query, args, n, err)
		if err != nil {
			return mapError(err)
		}
		removed = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// GetFriends returns the users that userID has added, oldest edge first.
func (r *UserRepository) GetFriends(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	return r.listEdges(ctx, "user_id", "friend_id", userID)
}

// GetFriendedBy returns the users that have added userID.
func (r *UserRepository) GetFriendedBy(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error) {
	return r.listEdges(ctx, "friend_id", "user_id", userID)
}

func (r *UserRepository) listEdges(ctx context.Context, from, to string, userID uuid.UUID) ([]models.UserDB, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM friends_association f
		JOIN users u ON u.id = f.%s
		WHERE f.%s = $1
		ORDER BY f.created_at, u.id
	`, userColumns("u"), to, from)

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, userID)
	logQuery(query, []any{userID}, len(users), err)
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// CountFriends returns the number of outgoing edges of userID.
func (r *UserRepository) CountFriends(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM friends_association WHERE user_id = $1`

	var n int
	err := sqlx.GetContext(ctx, r.executor(ctx), &n, query, userID)
	logQuery(query, []any{userID}, n, err)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// ListFriendships returns every edge touching userID in either direction.
func (r *UserRepository) ListFriendships(ctx context.Context, userID uuid.UUID) ([]models.FriendAssociation, error) {
	query := `
		SELECT user_id, friend_id, created_at
		FROM friends_association
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY created_at
	`
	edges := []models.FriendAssociation{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &edges, query, userID)
	logQuery(query, []any{userID}, len(edges), err)
	if err != nil {
		return nil, mapError(err)
	}
	return edges, nil
}
