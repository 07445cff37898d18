package utils

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "42" || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseJWTRejectsOtherSecret(t *testing.T) {
	InitJWT("first")
	token, err := GenerateJWT("1", "CUSTOMER", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("second")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseJWTExpired(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateJWT("1", "CUSTOMER", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected expired token error")
	}
}

func TestParseJWTNotInitialized(t *testing.T) {
	InitJWT("")
	if _, err := ParseJWT("anything"); !errors.Is(err, ErrJWTNotInitialized) {
		t.Fatalf("err = %v", err)
	}
}
