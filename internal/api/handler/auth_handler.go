package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
	"github.com/Tzu-An-Wang/ForBRO/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 20001, "使用者名稱或密碼錯誤")
		case errors.Is(err, service.ErrUserInactive):
			response.Unauthorized(c, 20002, "帳號已停用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, token)
}

// Logout 登出（当前 Token 加入黑名单）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	expUnix := c.GetInt64("token_exp")

	if err := h.authSvc.Logout(c.Request.Context(), jti, time.Unix(expUnix, 0)); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ChangePassword 修改密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			response.BadRequest(c, 20003, "舊密碼錯誤")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20004, "使用者不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/auth_handler.go
