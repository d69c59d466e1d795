package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/model"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
	"github.com/Tzu-An-Wang/ForBRO/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-0123456789abcdef",
			AccessTokenTTL: 24 * time.Hour,
			AdminCode:      "wheat",
		},
	}
}

func setupTestAuthService() (AuthService, *mockUserRepo, *jwt.Manager) {
	cfg := testAuthConfig()
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:     userRepo,
		Employee: newMockEmployeeRepo(),
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// rdb 传 nil：黑名单功能降级，与 Redis 不可用时的线上行为一致
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

func createTestUser(userRepo *mockUserRepo, username, password, role string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	userRepo.Create(context.Background(), user)
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	createTestUser(userRepo, "boss", "password123", "admin", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "boss",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("应返回 AccessToken")
	}
	if resp.ExpiresIn != int((24 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn 期望 86400，实际 %d", resp.ExpiresIn)
	}
	if resp.User.Role != "admin" {
		t.Errorf("响应应携带使用者角色，实际 %s", resp.User.Role)
	}

	// Token 应可被同一 Manager 解析
	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("生成的 Token 应可解析: %v", err)
	}
	if claims.Username != "boss" || claims.Role != "admin" {
		t.Errorf("Claims 内容不符: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "boss", "password123", "admin", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "boss",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("不存在的使用者也应返回 ErrInvalidCredentials（不泄露账号是否存在），实际: %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	createTestUser(userRepo, "boss", "password123", "admin", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "boss",
		Password: "password123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_RedisDegraded(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// Redis 不可用时登出应静默成功
	err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
	if err != nil {
		t.Errorf("Redis 降级时 Logout 应成功: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	user := createTestUser(userRepo, "boss", "password123", "admin", true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "boss",
		Password: "newpassword456",
	}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
	// 旧密码失效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "boss",
		Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	user := createTestUser(userRepo, "boss", "password123", "admin", true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("期望 ErrWrongOldPassword，实际: %v", err)
	}
}
