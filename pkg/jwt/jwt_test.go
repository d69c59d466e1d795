package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/Tzu-An-Wang/ForBRO/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "boss", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Username != "boss" {
		t.Errorf("期望 Username=boss，实际=%s", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Issuer != "forbro" {
		t.Errorf("期望 Issuer=forbro，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 检查过期时间约为 24h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("AccessToken TTL 期望约24h，实际=%v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key-also-long",
		AccessTokenTTL: 24 * time.Hour,
	})

	token, _ := m1.GenerateAccessToken("user-1", "boss", "admin")
	if _, err := m2.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("错误密钥应返回 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: -time.Minute, // 生成即过期
	})

	token, err := m.GenerateAccessToken("user-1", "boss", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
