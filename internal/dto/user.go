package dto

import "time"

// ── 使用者模块 DTO ──

// CreateUserRequest 创建使用者请求（管理员专用）
// AdminCode 为额外的管理员安全碼，与登录凭证分开校验
type CreateUserRequest struct {
	Username  string `json:"username"   binding:"required,min=2,max=50"`
	Password  string `json:"password"   binding:"required,min=8,max=72"`
	Role      string `json:"role"       binding:"required,oneof=admin user"`
	AdminCode string `json:"admin_code" binding:"required"`
}

// UserResponse 使用者信息响应
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
