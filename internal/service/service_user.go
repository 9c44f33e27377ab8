// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/crypto"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/models"
)

// userService is the private implementation of [UserService]. It is
// stateless between calls: every durable fact lives in the repositories,
// and concurrent calls are not serialised against each other.
type userService struct {
	users     store.UserRepository
	guard     IntegrityGuard
	hasher    crypto.PasswordHasher
	validator *userValidator

	createInactive  bool
	caseInsensitive bool

	logger *logger.Logger
}

// NewUserService wires a [UserService] over the user and note repositories
// of storages.
func NewUserService(storages *store.Storages, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		users:           storages.UserRepository,
		guard:           NewIntegrityGuard(storages.NoteRepository),
		hasher:          hasher,
		validator:       newUserValidator(storages.UserRepository),
		createInactive:  cfg.CreateInactive,
		caseInsensitive: cfg.CaseInsensitiveUsernames,
		logger:          logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	log := logger.FromContext(ctx)

	users, err := s.users.FindAll(ctx)
	if err != nil {
		log.Err(err).Str("func", "*userService.ListUsers").Msg("error listing users")
		return nil, fmt.Errorf("error listing users: %w", mapStoreError(err))
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}

	return views, nil
}

func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserView, error) {
	log := logger.FromContext(ctx)

	req.Username = s.canonicalUsername(req.Username)

	if err := s.validator.ValidateForCreate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "*userService.CreateUser").Msg("create rejected")
		return models.UserView{}, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("error hashing password")
		return models.UserView{}, err
	}

	created, err := s.users.Create(ctx, models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Roles:        req.Roles,
		IsActive:     !s.createInactive,
	})
	if errors.Is(err, store.ErrUsernameTaken) {
		return models.UserView{}, duplicateUserError(req.Username)
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("error creating user")
		return models.UserView{}, fmt.Errorf("error creating user: %w", mapStoreError(err))
	}

	log.Info().Str("func", "*userService.CreateUser").Str("user_id", created.ID).Msg("user created")
	return created.View(), nil
}

func (s *userService) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserView, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.ValidateID(ctx, req); err != nil {
		return models.UserView{}, err
	}

	existing, err := s.findUser(ctx, req.ID)
	if err != nil {
		return models.UserView{}, err
	}

	req.Username = s.canonicalUsername(req.Username)

	if err := s.validator.ValidateForUpdate(ctx, req, existing.ID); err != nil {
		log.Debug().Err(err).Str("func", "*userService.UpdateUser").Msg("update rejected")
		return models.UserView{}, err
	}

	updated := existing
	updated.Username = req.Username
	updated.Roles = req.Roles
	updated.IsActive = req.IsActive

	if req.Password != "" {
		if updated.PasswordHash, err = s.hashPassword(req.Password); err != nil {
			log.Err(err).Str("func", "*userService.UpdateUser").Msg("error hashing password")
			return models.UserView{}, err
		}
	}

	saved, err := s.users.Save(ctx, updated)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return models.UserView{}, duplicateUserError(req.Username)
	case errors.Is(err, store.ErrUserNotFound):
		// removed between the lookup and the write
		return models.UserView{}, notFoundError(req.ID)
	case err != nil:
		log.Err(err).Str("func", "*userService.UpdateUser").Msg("error saving user")
		return models.UserView{}, fmt.Errorf("error saving user: %w", mapStoreError(err))
	}

	log.Info().Str("func", "*userService.UpdateUser").Str("user_id", saved.ID).Msg("user updated")
	return saved.View(), nil
}

func (s *userService) DeleteUser(ctx context.Context, req models.DeleteUserRequest) (models.DeletionReceipt, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.ValidateID(ctx, req); err != nil {
		return models.DeletionReceipt{}, err
	}

	user, err := s.findUser(ctx, req.ID)
	if err != nil {
		return models.DeletionReceipt{}, err
	}

	// evaluated right before the mutation, the store's foreign key backs it up
	allowed, err := s.guard.CanDelete(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("func", "*userService.DeleteUser").Msg("error checking dependents")
		return models.DeletionReceipt{}, err
	}
	if !allowed {
		return models.DeletionReceipt{}, ErrHasDependents
	}

	receipt, err := s.users.Delete(ctx, user)
	switch {
	case errors.Is(err, store.ErrUserHasNotes):
		return models.DeletionReceipt{}, ErrHasDependents
	case errors.Is(err, store.ErrUserNotFound):
		return models.DeletionReceipt{}, notFoundError(req.ID)
	case err != nil:
		log.Err(err).Str("func", "*userService.DeleteUser").Msg("error deleting user")
		return models.DeletionReceipt{}, fmt.Errorf("error deleting user: %w", mapStoreError(err))
	}

	log.Info().Str("func", "*userService.DeleteUser").Str("user_id", receipt.ID).Msg("user deleted")
	return receipt, nil
}

func (s *userService) findUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, notFoundError(id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.findUser").Msg("error finding user")
		return models.User{}, fmt.Errorf("error finding user: %w", mapStoreError(err))
	}
	return user, nil
}

func (s *userService) hashPassword(plaintext string) (string, error) {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}
	return hash, nil
}

func (s *userService) canonicalUsername(username string) string {
	if s.caseInsensitive {
		return strings.ToLower(username)
	}
	return username
}
