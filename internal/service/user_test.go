package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestRegisterDefaultsRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "rep@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != model.RoleSalesperson {
		t.Errorf("role = %q, want %q", user.Role, model.RoleSalesperson)
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	req := &model.RegisterRequest{
		Email:     "dup@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "login@example.com", model.RoleSalesperson)

	got, err := svc.Authenticate(context.Background(), "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user ID = %d, want %d", got.ID, user.ID)
	}
}

func TestAuthenticateFailuresCollapse(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "known@example.com", model.RoleSalesperson)

	inactive := createTestUser(t, db, "inactive@example.com", model.RoleSalesperson)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	cases := []struct {
		name, email, password string
	}{
		{"unknown email", "nobody@example.com", "password123"},
		{"wrong password", "known@example.com", "wrong"},
		{"inactive user", "inactive@example.com", "password123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
