package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_Create(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := newTestUserRepository(db)
	ctx := context.Background()

	in := models.UserCreate{
		DisplayName: "  Alice1 ",
		Email:       "alice@x.com",
		Password:    "Passw0rd",
		Country:     strPtr("FR"),
	}
	user, err := repo.Create(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Alice1", user.DisplayName)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, "FR", *user.Country)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Nil(t, user.UpdatedAt)

	stored, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Passw0rd", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Passw0rd")))

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := userCreate("Alice2")
		dup.Email = "alice@x.com"
		_, err := repo.Create(ctx, dup)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "email", appErr.Field)
	})

	t.Run("DuplicateDisplayName", func(t *testing.T) {
		_, err := repo.Create(ctx, userCreate("Alice1"))
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
	})

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepository_Lookups(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := newTestUserRepository(db)
	ctx := context.Background()

	in := userCreate("bob")
	in.SpotifyID = strPtr("spotify-bob")
	bob, err := repo.Create(ctx, in)
	require.NoError(t, err)

	tests := []struct {
		name   string
		lookup func() (*models.UserDB, error)
		found  bool
	}{
		{"ByID", func() (*models.UserDB, error) { return repo.Get(ctx, bob.ID) }, true},
		{"ByEmail", func() (*models.UserDB, error) { return repo.GetByEmail(ctx, "bob@x.com") }, true},
		{"ByDisplayName", func() (*models.UserDB, error) { return repo.GetByDisplayName(ctx, "bob") }, true},
		{"BySpotifyID", func() (*models.UserDB, error) { return repo.GetBySpotifyID(ctx, "spotify-bob") }, true},
		{"MissingID", func() (*models.UserDB, error) { return repo.Get(ctx, uuid.New()) }, false},
		{"MissingEmail", func() (*models.UserDB, error) { return repo.GetByEmail(ctx, "nobody@x.com") }, false},
		{"MissingDisplayName", func() (*models.UserDB, error) { return repo.GetByDisplayName(ctx, "nobody") }, false},
		{"MissingSpotifyID", func() (*models.UserDB, error) { return repo.GetBySpotifyID(ctx, "nobody") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := tt.lookup()
			assert.NoError(t, err)
			if tt.found {
				require.NotNil(t, user)
				assert.Equal(t, bob.ID, user.ID)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestUserRepository_List(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := newTestUserRepository(db)
	ctx := context.Background()

	var created []uuid.UUID
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		created = append(created, mustCreateUser(t, repo, name).ID)
	}

	var seen []uuid.UUID
	for _, offset := range []int{0, 2, 4} {
		page, err := repo.List(ctx, 2, offset)
		require.NoError(t, err)
		for _, u := range page {
			seen = append(seen, u.ID)
		}
	}
	assert.Equal(t, created, seen)

	page, err := repo.List(ctx, 2, 10)
	assert.NoError(t, err)
	assert.Empty(t, page)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	t.Run("InvalidBounds", func(t *testing.T) {
		for _, c := range []struct{ limit, offset int }{{0, 0}, {101, 0}, {-1, 0}, {10, -1}} {
			_, err := repo.List(ctx, c.limit, c.offset)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "limit=%d offset=%d", c.limit, c.offset)
		}
	})
}

func TestUserRepository_Update(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := newTestUserRepository(db)
	ctx := context.Background()

	in := userCreate("carol")
	in.Country = strPtr("US")
	carol, err := repo.Create(ctx, in)
	require.NoError(t, err)
	mustCreateUser(t, repo, "dave")

	t.Run("Partial", func(t *testing.T) {
		online := true
		updated, err := repo.Update(ctx, carol.ID, models.UserUpdate{
			CurrentlyPlaying: strPtr("Daft Punk - One More Time"),
			IsOnline:         &online,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, carol.ID, updated.ID)
		assert.Equal(t, "carol", updated.DisplayName)
		assert.Equal(t, "carol@x.com", updated.Email)
		assert.Equal(t, "US", *updated.Country)
		assert.Equal(t, carol.PasswordHash, updated.PasswordHash)
		assert.True(t, updated.IsOnline)
		assert.Equal(t, "Daft Punk - One More Time", *updated.CurrentlyPlaying)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("PasswordRehashed", func(t *testing.T) {
		updated, err := repo.Update(ctx, carol.ID, models.UserUpdate{Password: strPtr("N3wPassword")})
		require.NoError(t, err)
		assert.NotEqual(t, "N3wPassword", updated.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("N3wPassword")))
	})

	t.Run("EmailTakenByOther", func(t *testing.T) {
		_, err := repo.Update(ctx, carol.ID, models.UserUpdate{Email: strPtr("dave@x.com")})
		assert.True(t, errors.Is(err, apperrors.ErrConflict))

		stored, err := repo.Get(ctx, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, "carol@x.com", stored.Email)
	})

	t.Run("OwnEmailAllowed", func(t *testing.T) {
		updated, err := repo.Update(ctx, carol.ID, models.UserUpdate{Email: strPtr("carol@x.com")})
		assert.NoError(t, err)
		assert.Equal(t, "carol@x.com", updated.Email)
	})

	t.Run("Empty", func(t *testing.T) {
		updated, err := repo.Update(ctx, carol.ID, models.UserUpdate{})
		assert.NoError(t, err)
		assert.Equal(t, carol.ID, updated.ID)
	})

	t.Run("UnknownID", func(t *testing.T) {
		updated, err := repo.Update(ctx, uuid.New(), models.UserUpdate{DisplayName: strPtr("ghost")})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := newTestUserRepository(db)
	tokens := NewTokenRepository(db, nil, uuidSigner{})
	ctx := context.Background()

	erin := mustCreateUser(t, repo, "erin")
	frank := mustCreateUser(t, repo, "frank")
	grace := mustCreateUser(t, repo, "grace")

	_, err := tokens.Create(ctx, erin)
	require.NoError(t, err)

	for _, edge := range [][2]uuid.UUID{{erin.ID, frank.ID}, {grace.ID, erin.ID}, {frank.ID, grace.ID}} {
		ok, err := repo.AddFriend(ctx, edge[0], edge[1])
		require.NoError(t, err)
		require.True(t, ok)
	}

	deleted, err := repo.Delete(ctx, erin.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM tokens WHERE user_id = $1`, erin.ID))
	assert.Zero(t, count)
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM friends_association WHERE user_id = $1 OR friend_id = $1`, erin.ID))
	assert.Zero(t, count)
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM friends_association`))
	assert.Equal(t, 1, count)

	user, err := repo.Get(ctx, erin.ID)
	assert.NoError(t, err)
	assert.Nil(t, user)

	deleted, err = repo.Delete(ctx, erin.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}
