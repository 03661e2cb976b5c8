package testutil

import (
	"errors"
	"testing"

	apperrors "finmentor/internal/errors"
)

func asAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an *AppError, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError fails unless err is an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if appErr := asAppError(t, err); appErr.Code != code {
		t.Errorf("expected error code %q, got %q (message: %s)", code, appErr.Code, appErr.Message)
	}
}

// AssertFieldError fails unless err is a validation error whose details name
// every one of fields.
func AssertFieldError(t *testing.T, err error, fields ...string) {
	t.Helper()
	appErr := asAppError(t, err)
	if appErr.Code != apperrors.ErrInvalidInput.Code {
		t.Fatalf("expected %s, got %q (message: %s)", apperrors.ErrInvalidInput.Code, appErr.Code, appErr.Message)
	}
	reported := make(map[string]bool, len(appErr.Details))
	for _, d := range appErr.Details {
		reported[d.Field] = true
	}
	for _, f := range fields {
		if !reported[f] {
			t.Errorf("expected a detail for field %q, got %+v", f, appErr.Details)
		}
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
