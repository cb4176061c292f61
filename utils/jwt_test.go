package utils

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func init() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "tokengen@test.com", RoleMerchantStaff, nil)
	if err != nil {
		t.Fatalf("expected no error generating token, got: %v", err)
	}

	if token == "" {
		t.Fatal("expected non-empty token string")
	}

	// header.payload.signature
	parts := 0
	for _, c := range token {
		if c == '.' {
			parts++
		}
	}
	if parts != 2 {
		t.Errorf("expected JWT with 2 dots, got %d dots", parts)
	}
}

func TestValidateToken(t *testing.T) {
	merchantID := int64(42)

	token, err := GenerateToken(7, "validate@test.com", RoleMerchantAdmin, &merchantID)
	if err != nil {
		t.Fatalf("expected no error generating token, got: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("expected no error validating token, got: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Email != "validate@test.com" {
		t.Errorf("expected email validate@test.com, got %s", claims.Email)
	}
	if claims.Role != RoleMerchantAdmin {
		t.Errorf("expected role %s, got %s", RoleMerchantAdmin, claims.Role)
	}
	if claims.MerchantID == nil || *claims.MerchantID != merchantID {
		t.Errorf("expected merchant_id %d, got %v", merchantID, claims.MerchantID)
	}
	if claims.Issuer != "pos-backoffice" {
		t.Errorf("expected issuer 'pos-backoffice', got %s", claims.Issuer)
	}
}

func signClaims(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := signClaims(t, Claims{
		UserID: 3,
		Email:  "expired@test.com",
		Role:   RoleMerchantStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "pos-backoffice",
		},
	})

	if _, err := ValidateToken(expired); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestForeignIssuerRejected(t *testing.T) {
	token := signClaims(t, Claims{
		UserID: 3,
		Role:   RoleMerchantStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	})

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected error for token from another issuer")
	}
}

func TestTokenWithoutMerchantID(t *testing.T) {
	token, err := GenerateToken(9, "portal@test.com", RolePortalAdmin, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if claims.MerchantID != nil {
		t.Errorf("expected nil merchant_id, got %v", *claims.MerchantID)
	}
}
