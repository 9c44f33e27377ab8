package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/crypto"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/store"
	"github.com/MKhiriev/go-user-keeper/models"
)

// Services groups the services exposed to the transport layer.
type Services struct {
	UserService    UserService
	AppInfoService AppInfoService
}

// NewServices builds every service on top of storages.
func NewServices(storages *store.Storages, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewBcryptHasher(cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		UserService:    NewUserService(storages, hasher, cfg, logger),
		AppInfoService: appInfoService,
	}, nil
}
