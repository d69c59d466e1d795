package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo) {
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:     userRepo,
		Employee: newMockEmployeeRepo(),
	}
	svc := NewUserService(testAuthConfig(), repo, zap.NewNop())
	return svc, userRepo
}

// ── Create 测试 ──

func TestUserService_Create_Success(t *testing.T) {
	svc, _ := setupTestUserService()

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:  "staff01",
		Password:  "password123",
		Role:      "user",
		AdminCode: "wheat",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Username != "staff01" || resp.Role != "user" {
		t.Errorf("响应内容不符: %+v", resp)
	}
	if !resp.Active {
		t.Error("新使用者应默认启用")
	}
}

func TestUserService_Create_WrongAdminCode(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:  "staff01",
		Password:  "password123",
		Role:      "user",
		AdminCode: "barley",
	})
	if !errors.Is(err, ErrBadAdminCode) {
		t.Errorf("安全碼错误期望 ErrBadAdminCode，实际: %v", err)
	}
}

func TestUserService_Create_EmptyConfiguredCodeRejectsAll(t *testing.T) {
	// 未配置安全碼时一律拒绝，避免空碼放行
	userRepo := newMockUserRepo()
	repo := &repository.Repository{User: userRepo, Employee: newMockEmployeeRepo()}
	cfg := testAuthConfig()
	cfg.Auth.AdminCode = ""
	svc := NewUserService(cfg, repo, zap.NewNop())

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:  "staff01",
		Password:  "password123",
		Role:      "user",
		AdminCode: "",
	})
	if !errors.Is(err, ErrBadAdminCode) {
		t.Errorf("期望 ErrBadAdminCode，实际: %v", err)
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc, userRepo := setupTestUserService()
	createTestUser(userRepo, "staff01", "password123", "user", true)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:  "staff01",
		Password:  "password123",
		Role:      "user",
		AdminCode: "wheat",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}

// ── List 测试 ──

func TestUserService_List(t *testing.T) {
	svc, userRepo := setupTestUserService()
	createTestUser(userRepo, "boss", "password123", "admin", true)
	createTestUser(userRepo, "staff01", "password123", "user", true)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("期望 2 位使用者，实际 %d", len(list))
	}
}
