// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/mock"
	"github.com/MKhiriev/go-user-keeper/internal/service"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testServer struct {
	router  http.Handler
	users   *mock.MockUserService
	appInfo *mock.MockAppInfoService
}

func newTestServer(t *testing.T, cfg config.Server) testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	h := NewHandler(&service.Services{UserService: users, AppInfoService: appInfo}, cfg, logger.Nop())
	return testServer{router: h.Init(), users: users, appInfo: appInfo}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

var created = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

// ─────────────────────────────────────────────
// GET /users
// ─────────────────────────────────────────────

func TestListUsers_OK(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().ListUsers(gomock.Any()).Return([]models.UserView{
		{ID: "1", Username: "alice", Roles: []string{"admin"}, IsActive: true, CreatedAt: created, UpdatedAt: created},
	}, nil)

	rec := s.do(http.MethodGet, "/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0]["username"])
	assert.Equal(t, true, got[0]["isActive"])
	assert.NotContains(t, got[0], "password")
	assert.NotContains(t, got[0], "passwordHash")
}

func TestListUsers_Empty(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().ListUsers(gomock.Any()).Return([]models.UserView{}, nil)

	rec := s.do(http.MethodGet, "/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListUsers_StorageUnavailable(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().ListUsers(gomock.Any()).
		Return(nil, fmt.Errorf("error listing users: %w: dial tcp: refused", service.ErrStorageUnavailable))

	rec := s.do(http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "storage temporarily unavailable", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// POST /users
// ─────────────────────────────────────────────

func TestCreateUser_Created(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().CreateUser(gomock.Any(), models.CreateUserRequest{
		Username: "alice",
		Password: "s3cret",
		Roles:    []string{"admin"},
	}).Return(models.UserView{ID: "id-1", Username: "alice", Roles: []string{"admin"}, IsActive: true}, nil)

	rec := s.do(http.MethodPost, "/users", `{"username":"alice","password":"s3cret","roles":["admin"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"New User alice created","id":"id-1","username":"alice"}`, rec.Body.String())
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid input",
			err:         fmt.Errorf("%w: %w", service.ErrInvalidInput, errors.New("password is required")),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid input: password is required",
		},
		{
			name:        "duplicate",
			err:         fmt.Errorf("%w: %q", service.ErrDuplicateUser, "alice"),
			wantStatus:  http.StatusConflict,
			wantMessage: `username already exists: "alice"`,
		},
		{
			name:        "hashing failure",
			err:         fmt.Errorf("%w: %w", service.ErrHashingFailure, errors.New("bcrypt: password length exceeds 72 bytes")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "password hashing failed",
		},
		{
			name:        "unexpected error hides details",
			err:         errors.New("pq: relation users does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, config.Server{})
			s.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.UserView{}, tt.err)

			rec := s.do(http.MethodPost, "/users", `{"username":"alice","password":"p","roles":["admin"]}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeMessage(t, rec))
		})
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	s := newTestServer(t, config.Server{})

	rec := s.do(http.MethodPost, "/users", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "invalid JSON was passed")
}

func TestCreateUser_WrongFieldTypeHidesGoTypes(t *testing.T) {
	s := newTestServer(t, config.Server{})

	rec := s.do(http.MethodPost, "/users", `{"username":42,"password":"p","roles":["admin"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decodeMessage(t, rec)
	assert.Equal(t, `invalid JSON was passed: field "username" has the wrong type`, msg)
	assert.NotContains(t, msg, "CreateUserRequest")
	assert.NotContains(t, msg, "Go struct")
}

func TestDeleteUser_SyntaxErrorHasFixedMessage(t *testing.T) {
	s := newTestServer(t, config.Server{})

	rec := s.do(http.MethodDelete, "/users", `{"id": nope}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON was passed", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// PATCH /users
// ─────────────────────────────────────────────

func TestUpdateUser_OK(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().UpdateUser(gomock.Any(), models.UpdateUserRequest{
		ID:       "id-1",
		Username: "alice",
		Roles:    []string{"viewer"},
		IsActive: true,
	}).Return(models.UserView{ID: "id-1", Username: "alice"}, nil)

	rec := s.do(http.MethodPatch, "/users", `{"id":"id-1","username":"alice","roles":["viewer"],"isActive":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User: alice has been updated","username":"alice"}`, rec.Body.String())
}

func TestUpdateUser_OmittedIsActiveDecodesFalse(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.UpdateUserRequest) (models.UserView, error) {
			assert.False(t, req.IsActive)
			assert.Empty(t, req.Password)
			return models.UserView{ID: req.ID, Username: req.Username}, nil
		})

	rec := s.do(http.MethodPatch, "/users", `{"id":"id-1","username":"alice","roles":["viewer"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).
		Return(models.UserView{}, fmt.Errorf("%w: id %q", service.ErrNotFound, "id-9"))

	rec := s.do(http.MethodPatch, "/users", `{"id":"id-9","username":"ghost","roles":["viewer"]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `user not found: id "id-9"`, decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// DELETE /users
// ─────────────────────────────────────────────

func TestDeleteUser_OK(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().DeleteUser(gomock.Any(), models.DeleteUserRequest{ID: "id-1"}).
		Return(models.DeletionReceipt{ID: "id-1", Username: "alice"}, nil)

	rec := s.do(http.MethodDelete, "/users", `{"id":"id-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Username alice with ID id-1 deleted", decodeMessage(t, rec))
}

func TestDeleteUser_HasDependents(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).Return(models.DeletionReceipt{}, service.ErrHasDependents)

	rec := s.do(http.MethodDelete, "/users", `{"id":"id-1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "user has active notes assigned", decodeMessage(t, rec))
}

func TestDeleteUser_MissingID(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().DeleteUser(gomock.Any(), models.DeleteUserRequest{}).
		Return(models.DeletionReceipt{}, fmt.Errorf("%w: %w", service.ErrInvalidInput, errors.New("id is required")))

	rec := s.do(http.MethodDelete, "/users", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid input: id is required", decodeMessage(t, rec))
}

// ─────────────────────────────────────────────
// Cross-cutting
// ─────────────────────────────────────────────

func TestRequestTimeout(t *testing.T) {
	s := newTestServer(t, config.Server{RequestTimeout: 20 * time.Millisecond})
	s.users.EXPECT().ListUsers(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]models.UserView, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("error listing users: %w", ctx.Err())
	})

	rec := s.do(http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().ListUsers(gomock.Any()).DoAndReturn(func(context.Context) ([]models.UserView, error) {
		panic("boom")
	})

	rec := s.do(http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseIsCompressedOnRequest(t *testing.T) {
	s := newTestServer(t, config.Server{})
	s.users.EXPECT().ListUsers(gomock.Any()).Return([]models.UserView{{ID: "1", Username: "alice"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}
