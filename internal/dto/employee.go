package dto

import "time"

// ── 员工名册模块 DTO ──

// CreateEmployeeRequest 新增员工请求
// HourlyRate 省略时按 月薪/30/8 推导（与旧系统的「平均薪資」预设一致）
type CreateEmployeeRequest struct {
	Nickname   string   `json:"nickname"    binding:"required,min=1,max=50"`
	Name       string   `json:"name"        binding:"required,min=1,max=100"`
	Salary     float64  `json:"salary"      binding:"gte=0"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes      string   `json:"notes"       binding:"omitempty,max=500"`
}

// UpdateEmployeeRequest 更新员工请求（部分更新）
type UpdateEmployeeRequest struct {
	Name       *string  `json:"name"        binding:"omitempty,min=1,max=100"`
	Salary     *float64 `json:"salary"      binding:"omitempty,gte=0"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes      *string  `json:"notes"       binding:"omitempty,max=500"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	Nickname   string    `json:"nickname"`
	Name       string    `json:"name"`
	Salary     float64   `json:"salary"`
	HourlyRate float64   `json:"hourly_rate"`
	Notes      string    `json:"notes,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
