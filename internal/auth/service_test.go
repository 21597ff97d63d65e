package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	user := &model.User{ID: 7, Email: "rep@example.com"}

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("userId = %d, want 7", claims.UserID)
	}
	if claims.Email != "rep@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "rep@example.com")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	token, err := svc.GenerateToken(&model.User{ID: 1, Email: "rep@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(&model.User{ID: 1, Email: "rep@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = verifier.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
