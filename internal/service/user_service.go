package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/model"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
)

// ── 使用者模块业务错误 ──

var (
	ErrUsernameExists = errors.New("使用者名稱已存在")
	ErrBadAdminCode   = errors.New("管理員安全碼錯誤")
)

// UserService 使用者管理业务接口（管理员专用）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

// Create 创建使用者
// 除管理员登录态外，还要求请求携带正确的安全碼（三层验证的最后一层）
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if s.cfg.Auth.AdminCode == "" || req.AdminCode != s.cfg.Auth.AdminCode {
		return nil, ErrBadAdminCode
	}

	// 使用者名稱唯一性
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建使用者失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("读取使用者列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.UserResponse{
			ID:        u.UserID,
			Username:  u.Username,
			Role:      u.Role,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	return result, nil
}
