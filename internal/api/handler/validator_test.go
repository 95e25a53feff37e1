package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(loginRequest{Email: "nope", Role: "guest"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, want := range []string{"email must be a valid email", "role must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}

	if err := v.Validate(loginRequest{}); err != nil {
		t.Fatalf("empty login is valid, got %v", err)
	}
	if err := v.Validate(statusRequest{Status: "In Progress"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Validate(statusRequest{Status: "Done"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
