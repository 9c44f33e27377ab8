// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-user-keeper/models"
	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
)

// notBlankTag rejects strings made only of whitespace.
const notBlankTag = "notblank"

// UserValidator checks the structural rules of user requests: required
// fields present, roles non-empty, no blank role. Rules are declared as
// `validate` struct tags on the request models.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator returns a [Validator] for [models.CreateUserRequest],
// [models.UpdateUserRequest] and [models.DeleteUserRequest]. It panics if the
// custom rules cannot be registered.
func NewUserValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so errors match what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(notBlankTag, nonstandard.NotBlank); err != nil {
		panic(fmt.Sprintf("error registering %q validation: %v", notBlankTag, err))
	}

	return &UserValidator{validate: v}
}

// Validate implements [Validator]. When fields are given, only failures of
// those fields are reported; otherwise every rule of obj is enforced. The
// first failing field in declaration order wins.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateUserRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.CreateUserRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.UpdateUserRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.UpdateUserRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.DeleteUserRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.DeleteUserRequest:
		return v.validateStruct(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	for _, f := range fields {
		if _, ok := fieldErrors[f]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	err := v.validate.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("error validating %T: %w", obj, err)
	}

	for _, fe := range validationErrors {
		field, isElement := splitField(fe.Field())
		if !selected(field, fields) {
			continue
		}

		if isElement {
			return fmt.Errorf("%w: %s", ErrBlankRole, fe.Field())
		}
		if sentinel, ok := fieldErrors[field]; ok {
			return sentinel
		}
		return fmt.Errorf("field %s failed %q rule", fe.Field(), fe.Tag())
	}

	return nil
}

// splitField turns "roles[1]" into ("roles", true) and "username" into
// ("username", false).
func splitField(name string) (string, bool) {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i], true
	}
	return name, false
}

func selected(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
