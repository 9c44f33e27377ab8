// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
)

// MemoryStorage keeps users and notes in process memory. It implements
// both [UserRepository] and [NoteRepository] and enforces the same
// constraints as the SQL schema: unique usernames and notes restricting the
// deletion of their user. It is safe for concurrent use.
type MemoryStorage struct {
	mu sync.RWMutex

	users      map[string]models.User // by id
	byUsername map[string]string      // username -> id
	notes      map[string]models.Note // by id

	ids IDGenerator
	now func() time.Time
}

// NewMemoryStorage returns an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:      make(map[string]models.User),
		byUsername: make(map[string]string),
		notes:      make(map[string]models.Note),
		ids:        utils.NewUUIDGenerator(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// FindAll implements [UserRepository].
func (m *MemoryStorage) FindAll(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, cloneUser(u))
	}

	slices.SortFunc(users, func(a, b models.User) int {
		return strings.Compare(a.Username, b.Username)
	})

	return users, nil
}

// FindByID implements [UserRepository].
func (m *MemoryStorage) FindByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByUsername implements [UserRepository].
func (m *MemoryStorage) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(m.users[id]), nil
}

// Create implements [UserRepository].
func (m *MemoryStorage) Create(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byUsername[user.Username]; taken {
		return models.User{}, ErrUsernameTaken
	}

	now := m.now()
	user.ID = m.ids.Generate()
	user.CreatedAt = now
	user.UpdatedAt = now
	user = cloneUser(user)

	m.users[user.ID] = user
	m.byUsername[user.Username] = user.ID

	return cloneUser(user), nil
}

// Save implements [UserRepository].
func (m *MemoryStorage) Save(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if owner, taken := m.byUsername[user.Username]; taken && owner != user.ID {
		return models.User{}, ErrUsernameTaken
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = m.now()
	user = cloneUser(user)

	delete(m.byUsername, stored.Username)
	m.users[user.ID] = user
	m.byUsername[user.Username] = user.ID

	return cloneUser(user), nil
}

// Delete implements [UserRepository].
func (m *MemoryStorage) Delete(ctx context.Context, user models.User) (models.DeletionReceipt, error) {
	if err := ctx.Err(); err != nil {
		return models.DeletionReceipt{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return models.DeletionReceipt{}, ErrUserNotFound
	}

	if m.hasNotesLocked(stored.ID) {
		return models.DeletionReceipt{}, ErrUserHasNotes
	}

	delete(m.users, stored.ID)
	delete(m.byUsername, stored.Username)

	return models.DeletionReceipt{ID: stored.ID, Username: stored.Username}, nil
}

// ExistsForUser implements [NoteRepository].
func (m *MemoryStorage) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.hasNotesLocked(userID), nil
}

// AddNote stores a note for an existing user and returns it with its id and
// creation time filled in. Like the SQL foreign key, it rejects notes whose
// user does not exist with [ErrUserNotFound].
func (m *MemoryStorage) AddNote(ctx context.Context, note models.Note) (models.Note, error) {
	if err := ctx.Err(); err != nil {
		return models.Note{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[note.UserID]; !ok {
		return models.Note{}, ErrUserNotFound
	}

	note.ID = m.ids.Generate()
	note.CreatedAt = m.now()
	m.notes[note.ID] = note

	return note, nil
}

// RemoveNote deletes the note with the given id. Removing an unknown note
// is not an error.
func (m *MemoryStorage) RemoveNote(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.notes, id)
	return nil
}

func (m *MemoryStorage) hasNotesLocked(userID string) bool {
	for _, n := range m.notes {
		if n.UserID == userID {
			return true
		}
	}
	return false
}

// cloneUser copies the roles slice so stored records never alias caller
// memory.
func cloneUser(u models.User) models.User {
	u.Roles = slices.Clone(u.Roles)
	return u
}
