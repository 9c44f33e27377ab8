package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
	"github.com/MKhiriev/go-user-keeper/internal/utils"
	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/go-resty/resty/v2"
)

const usersPath = "/users"

type httpUserAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPUserAdapter returns an HTTP implementation of [UserAdapter].
// cfg.HTTPAddress may omit the scheme, http is assumed.
func NewHTTPUserAdapter(cfg config.Adapter, logger *logger.Logger) (UserAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpUserAdapter{client: client, logger: logger}
	client.OnAfterResponse(a.logResponse)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpUserAdapter) ListUsers(ctx context.Context) ([]models.UserView, error) {
	users := make([]models.UserView, 0)

	resp, err := h.request(ctx).SetResult(&users).Get(usersPath)
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpUserAdapter) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	var created models.CreateUserResponse

	resp, err := h.request(ctx).SetBody(req).SetResult(&created).Post(usersPath)
	if err != nil {
		return models.CreateUserResponse{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreateUserResponse{}, err
	}

	return created, nil
}

func (h *httpUserAdapter) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UpdateUserResponse, error) {
	var updated models.UpdateUserResponse

	resp, err := h.request(ctx).SetBody(req).SetResult(&updated).Patch(usersPath)
	if err != nil {
		return models.UpdateUserResponse{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UpdateUserResponse{}, err
	}

	return updated, nil
}

func (h *httpUserAdapter) DeleteUser(ctx context.Context, req models.DeleteUserRequest) (models.MessageResponse, error) {
	var deleted models.MessageResponse

	resp, err := h.request(ctx).SetBody(req).SetResult(&deleted).Delete(usersPath)
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("delete user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return deleted, nil
}

func (h *httpUserAdapter) Version(ctx context.Context) (models.AppInfo, error) {
	var info models.AppInfo

	resp, err := h.request(ctx).SetResult(&info).Get("/version")
	if err != nil {
		return models.AppInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppInfo{}, err
	}

	return info, nil
}

func (h *httpUserAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

// logResponse records every completed call. Bodies are not logged: requests
// carry plaintext passwords.
func (h *httpUserAdapter) logResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("server responded")
	return nil
}
