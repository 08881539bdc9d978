package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	userID := uuid.New()
	academyID := uuid.New()

	signed, expiresAt, err := svc.Issue(userID, "carlos@pkdemo.com.br", "ADMIN_ACADEMIA", &academyID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if signed == "" {
		t.Fatal("Issue returned an empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expiry should be in the future")
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if claims.Email != "carlos@pkdemo.com.br" {
		t.Errorf("expected email carlos@pkdemo.com.br, got %s", claims.Email)
	}
	if claims.Role != "ADMIN_ACADEMIA" {
		t.Errorf("expected role ADMIN_ACADEMIA, got %s", claims.Role)
	}
	if claims.AcademyID == nil || *claims.AcademyID != academyID {
		t.Errorf("expected academy id %s, got %v", academyID, claims.AcademyID)
	}

	parsed, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID returned error: %v", err)
	}
	if parsed != userID {
		t.Errorf("expected user id %s, got %s", userID, parsed)
	}
}

func TestIssueWithoutAcademy(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, _, err := svc.Issue(uuid.New(), "admin@pkfit.com.br", "ADMIN_GLOBAL", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.AcademyID != nil {
		t.Errorf("expected nil academy id, got %v", claims.AcademyID)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := &Service{secret: []byte("test-secret"), ttl: -time.Minute}

	signed, _, err := svc.Issue(uuid.New(), "carlos@pkdemo.com.br", "ALUNO", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = svc.Verify(signed)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("token %q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	signed, _, err := issuer.Issue(uuid.New(), "carlos@pkdemo.com.br", "ALUNO", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for wrong key, got %v", err)
	}
}

func TestNewServiceDefaultsTTL(t *testing.T) {
	svc := NewService("test-secret", 0)
	if svc.ttl != DefaultTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTTL, svc.ttl)
	}
}
