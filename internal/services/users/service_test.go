package users

import (
	"context"
	"testing"

	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret1", "will il"); err != nil {
		t.Fatalf("register: %v", err)
	}

	acct, ok, err := svc.Authenticate(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !ok {
		t.Fatalf("correct credentials rejected")
	}
	if acct.Username != "alice" || acct.CountyState != "will il" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if acct.PasswordHash != "" {
		t.Fatalf("password hash leaked out of the service")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret1", "will il"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := svc.Register(ctx, "alice", "other", "cook il")
	if !apperrors.Is(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The original row must be untouched.
	acct, ok, err := svc.Authenticate(ctx, "alice", "secret1")
	if err != nil || !ok {
		t.Fatalf("original credentials broken after duplicate attempt: ok=%v err=%v", ok, err)
	}
	if acct.CountyState != "will il" {
		t.Fatalf("original county overwritten: %q", acct.CountyState)
	}
}

func TestAuthenticateWrongPasswordIsNotAnError(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret1", "will il"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, ok, err := svc.Authenticate(ctx, "alice", "wrongpass")
	if err != nil {
		t.Fatalf("wrong password must not error: %v", err)
	}
	if ok {
		t.Fatalf("wrong password accepted")
	}

	_, ok, err = svc.Authenticate(ctx, "nobody", "secret1")
	if err != nil || ok {
		t.Fatalf("unknown user must return ok=false without error: ok=%v err=%v", ok, err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	for _, tc := range []struct{ username, password, county string }{
		{"", "secret1", "will il"},
		{"alice", "", "will il"},
		{"alice", "secret1", ""},
	} {
		err := svc.Register(ctx, tc.username, tc.password, tc.county)
		if !apperrors.Is(err, apperrors.CodeValidation) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestGetAndUpdateCounty(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "secret1", "will il"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.UpdateCounty(ctx, "alice", "cook il"); err != nil {
		t.Fatalf("update county: %v", err)
	}

	acct, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if acct.CountyState != "cook il" {
		t.Fatalf("county not updated: %q", acct.CountyState)
	}

	_, err = svc.Get(ctx, "nobody")
	if !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
