// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) UserAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPUserAdapter(config.Adapter{HTTPAddress: srv.URL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://users.example.com/ ", want: "https://users.example.com"},
		{raw: "http://127.0.0.1:9000", want: "http://127.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPUserAdapter_InvalidAddress(t *testing.T) {
	a, err := NewHTTPUserAdapter(config.Adapter{}, logger.Nop())

	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// ── ListUsers ────────────────────────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		writeJSON(w, http.StatusOK, []models.UserView{{ID: "1", Username: "alice", Roles: []string{"admin"}, IsActive: true}})
	})

	users, err := a.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.True(t, users[0].IsActive)
}

func TestListUsers_Empty(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.UserView{})
	})

	users, err := a.ListUsers(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestListUsers_Unavailable(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, models.MessageResponse{Message: "storage temporarily unavailable"})
	})

	_, err := a.ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "storage temporarily unavailable")
}

// ── CreateUser ───────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.CreateUserRequest{Username: "alice", Password: "s3cret", Roles: []string{"admin"}}, req)

		writeJSON(w, http.StatusCreated, models.CreateUserResponse{Message: "New User alice created", ID: "id-1", Username: "alice"})
	})

	resp, err := a.CreateUser(context.Background(), models.CreateUserRequest{Username: "alice", Password: "s3cret", Roles: []string{"admin"}})

	require.NoError(t, err)
	assert.Equal(t, "id-1", resp.ID)
	assert.Equal(t, "New User alice created", resp.Message)
}

func TestCreateUser_Conflict(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, models.MessageResponse{Message: `username already exists: "alice"`})
	})

	_, err := a.CreateUser(context.Background(), models.CreateUserRequest{Username: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, `conflict: username already exists: "alice"`)
}

func TestCreateUser_BadRequest(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "invalid input: password is required"})
	})

	_, err := a.CreateUser(context.Background(), models.CreateUserRequest{Username: "alice"})

	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── UpdateUser ───────────────────────────────────────────────────────────────

func TestUpdateUser_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var req models.UpdateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "id-1", req.ID)
		assert.True(t, req.IsActive)

		writeJSON(w, http.StatusOK, models.UpdateUserResponse{Message: "User: alice has been updated", Username: "alice"})
	})

	resp, err := a.UpdateUser(context.Background(), models.UpdateUserRequest{ID: "id-1", Username: "alice", Roles: []string{"admin"}, IsActive: true})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
}

func TestUpdateUser_NotFound(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: `user not found: id "x"`})
	})

	_, err := a.UpdateUser(context.Background(), models.UpdateUserRequest{ID: "x"})

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── DeleteUser ───────────────────────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		var req models.DeleteUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "id-1", req.ID)

		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Username alice with ID id-1 deleted"})
	})

	resp, err := a.DeleteUser(context.Background(), models.DeleteUserRequest{ID: "id-1"})

	require.NoError(t, err)
	assert.Equal(t, "Username alice with ID id-1 deleted", resp.Message)
}

func TestDeleteUser_HasNotes(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, models.MessageResponse{Message: "user has active notes assigned"})
	})

	_, err := a.DeleteUser(context.Background(), models.DeleteUserRequest{ID: "id-1"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "user has active notes assigned")
}

// ── Version ──────────────────────────────────────────────────────────────────

func TestVersion_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeJSON(w, http.StatusOK, models.AppInfo{Version: "1.0.0", BuildDate: "N/A", BuildCommit: "N/A"})
	})

	info, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestMapHTTPError_PlainBodyAndUnknownStatus(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	_, err := a.ListUsers(context.Background())

	assert.EqualError(t, err, "http 418: short and stout")
}

func TestMapHTTPError_EmptyBody(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := a.ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.EqualError(t, err, "internal server error: Internal Server Error")
}

func TestRequest_ContextCancelled(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.UserView{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ListUsers(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
