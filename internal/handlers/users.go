package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/models"
)

// DefaultPerPage is the page size used when per_page is omitted.
const DefaultPerPage = 20

// UserCreator defines the interface that the user service must implement to create users.
type UserCreator interface {
	Create(ctx context.Context, in models.UserCreate) (*models.UserOut, error)
}

// UserLister lists users page by page.
type UserLister interface {
	List(ctx context.Context, page, perPage int) (*models.PaginatedUsers, error)
}

// UserGetter looks a user up by display name.
type UserGetter interface {
	GetByDisplayName(ctx context.Context, displayName string) (*models.UserOut, error)
}

// UserUpdater applies partial updates.
type UserUpdater interface {
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserOut, error)
}

// UserDeleter removes users.
type UserDeleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// FriendEditor adds and removes friend edges.
type FriendEditor interface {
	AddFriend(ctx context.Context, userID, friendID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
}

// FriendLister returns both directions of the friend graph.
type FriendLister interface {
	Friends(ctx context.Context, userID uuid.UUID) ([]models.UserOut, error)
	FriendedBy(ctx context.Context, userID uuid.UUID) ([]models.UserOut, error)
}

// NewCreateUserHandler returns an HTTP handler for user creation.
// @Summary Create a user
// @Description Validates the payload, checks email and display name are free, hashes the password and stores the user.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "User to create"
// @Success 201 {object} models.UserOut
// @Failure 400 {object} models.ErrorResponse "Invalid payload, weak password or already registered"
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserCreate
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Create(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// NewListUsersHandler returns an HTTP handler listing users.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size, at most 100" default(20)
// @Success 200 {object} models.PaginatedUsers
// @Failure 400 {object} models.ErrorResponse
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := intQuery(r, "page", 1)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid page")
			return
		}
		perPage, err := intQuery(r, "per_page", DefaultPerPage)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid per_page")
			return
		}

		users, err := svc.List(r.Context(), page, perPage)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// NewGetUserHandler returns an HTTP handler fetching a user by display name.
// @Summary Get a user
// @Tags users
// @Produce json
// @Param displayName path string true "Display name"
// @Success 200 {object} models.UserOut
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{displayName} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetByDisplayName(r.Context(), chi.URLParam(r, "displayName"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateUserHandler returns an HTTP handler for partial user updates.
// @Summary Update a user
// @Description Only the fields present in the body are changed.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param user body models.UserUpdate true "Fields to change"
// @Success 200 {object} models.UserOut
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [patch]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		var req models.UserUpdate
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Update(r.Context(), id, req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting a user with its tokens and friend edges.
// @Summary Delete a user
// @Tags users
// @Param id path string true "User id"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewAddFriendHandler returns an HTTP handler adding friendId to the friends of id.
// @Summary Add a friend
// @Tags friends
// @Param id path string true "User id"
// @Param friendId path string true "Friend id"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "User cannot friend itself"
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/friends/{friendId} [post]
func NewAddFriendHandler(svc FriendEditor) http.HandlerFunc {
	return friendEdgeHandler(svc.AddFriend)
}

// NewRemoveFriendHandler returns an HTTP handler removing friendId from the friends of id.
// @Summary Remove a friend
// @Tags friends
// @Param id path string true "User id"
// @Param friendId path string true "Friend id"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/friends/{friendId} [delete]
func NewRemoveFriendHandler(svc FriendEditor) http.HandlerFunc {
	return friendEdgeHandler(svc.RemoveFriend)
}

func friendEdgeHandler(op func(ctx context.Context, userID, friendID uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		friendID, ok := uuidParam(w, r, "friendId")
		if !ok {
			return
		}

		if err := op(r.Context(), id, friendID); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewFriendsHandler returns an HTTP handler listing the users id has added.
// @Summary List friends
// @Tags friends
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} models.UserOut
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends [get]
func NewFriendsHandler(svc FriendLister) http.HandlerFunc {
	return friendListHandler(svc.Friends)
}

// NewFriendedByHandler returns an HTTP handler listing the users who added id.
// @Summary List users who added this user
// @Tags friends
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} models.UserOut
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friended-by [get]
func NewFriendedByHandler(svc FriendLister) http.HandlerFunc {
	return friendListHandler(svc.FriendedBy)
}

func friendListHandler(op func(ctx context.Context, userID uuid.UUID) ([]models.UserOut, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}

		users, err := op(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if users == nil {
			users = []models.UserOut{}
		}

		writeJSON(w, http.StatusOK, users)
	}
}
