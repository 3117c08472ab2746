package security_test

import (
	"testing"
	"time"

	"github.com/tempohq/tempo/internal/security"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	userID := "user_1"
	email := "alice@tempo.app"
	sessionID := "sess_abc123"

	accessToken, err := manager.GenerateAccessToken(userID, email, sessionID)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	claims, err := manager.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user ID mismatch: got %v, want %v", claims.UserID, userID)
	}

	if claims.Email != email {
		t.Errorf("email mismatch: got %v, want %v", claims.Email, email)
	}

	if claims.SessionID != sessionID {
		t.Errorf("session ID mismatch: got %v, want %v", claims.SessionID, sessionID)
	}
}

func TestJWTManager_GenerateTokenPair(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	accessToken, refreshToken, expiresIn, err := manager.GenerateTokenPair("user_1", "alice@tempo.app", "sess_abc123")
	if err != nil {
		t.Fatalf("failed to generate token pair: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	if refreshToken == "" {
		t.Error("refresh token is empty")
	}

	if expiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires in mismatch: got %d, want %d", expiresIn, int64((15*time.Minute).Seconds()))
	}

	claims, err := manager.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}

	if claims.UserID != "user_1" {
		t.Errorf("user ID from refresh token mismatch: got %v, want user_1", claims.UserID)
	}

	if claims.SessionID != "sess_abc123" {
		t.Errorf("session ID from refresh token mismatch: got %v, want sess_abc123", claims.SessionID)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	other := security.NewJWTManager("another-secret-key-32-chars!!!!!", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user_1", "alice@tempo.app", "sess_abc123")
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("user_1", "alice@tempo.app", "sess_abc123")
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}
