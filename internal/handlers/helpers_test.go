package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/middlewares"
	"github.com/stretchr/testify/require"
)

// serve routes a single request through a chi router so URL params resolve.
func serve(method, pattern, target string, body any, h http.Handler) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, _ := json.Marshal(b)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// asUser wraps h so that it runs as an authenticated userID.
func asUser(t *testing.T, ctrl *gomock.Controller, userID uuid.UUID, h http.Handler) http.Handler {
	tokener := middlewares.NewMockTokener(ctrl)
	auth := middlewares.NewMockAuthenticator(ctrl)
	tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil).AnyTimes()
	auth.EXPECT().Authenticate(gomock.Any(), "token").Return(userID, nil).AnyTimes()
	return middlewares.AuthMiddleware(tokener, auth)(h)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
