package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-keeper/internal/service"
)

// order matters: the first matching kind decides the status
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrDuplicateUser, http.StatusConflict},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrHasDependents, http.StatusConflict},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{service.ErrHashingFailure, http.StatusInternalServerError},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text sent to the client. Known kinds keep the
// detailed message; infrastructure failures are reduced to their kind so no
// internals leak.
func messageFromError(err error) string {
	switch {
	case errors.Is(err, service.ErrHashingFailure):
		return service.ErrHashingFailure.Error()
	case errors.Is(err, service.ErrStorageUnavailable):
		return service.ErrStorageUnavailable.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return errRequestTimeout.Error()
	case statusFromError(err) == http.StatusInternalServerError:
		return errInternal.Error()
	}
	return err.Error()
}
