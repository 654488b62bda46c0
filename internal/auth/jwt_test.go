package auth

import (
	"testing"

	"propintel-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func parseClaims(t *testing.T, tokenStr string) *JWTCustomClaims {
	t.Helper()
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not parse back: %v", err)
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		t.Fatal("claims have unexpected type")
	}
	return claims
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:       7,
		Name:     "Alex",
		Username: "alex",
		Role:     models.RoleAdmin,
	}

	tokenStr, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := parseClaims(t, tokenStr)
	if claims.UserID != 7 || claims.Username != "alex" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Error("expiry or issue time missing")
	}
}

func TestGenerateGuestToken(t *testing.T) {
	tokenStr, err := GenerateGuestToken(testSecret)
	if err != nil {
		t.Fatalf("GenerateGuestToken: %v", err)
	}

	claims := parseClaims(t, tokenStr)
	if claims.Role != models.RoleGuest {
		t.Errorf("role = %q, want guest", claims.Role)
	}
	if claims.UserID != 0 {
		t.Errorf("guest user id = %d, want 0", claims.UserID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Username: "alex", Role: models.RoleEditor}
	tokenStr, err := GenerateToken("another-secret-another-secret-32b", user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err == nil && token.Valid {
		t.Error("token signed with a different secret was accepted")
	}
}
