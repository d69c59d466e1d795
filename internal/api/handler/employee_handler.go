package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
	"github.com/Tzu-An-Wang/ForBRO/pkg/response"
)

// EmployeeHandler 员工名册模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees 员工名册列表
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, employees)
}

// GetEmployee 查询单个员工
// GET /api/v1/employees/:nickname
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	nickname := c.Param("nickname")

	employee, err := h.employeeSvc.Get(c.Request.Context(), nickname)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 30002, "員工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, employee)
}

// CreateEmployee 新增员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeExists) {
			response.Conflict(c, 30001, "員工綽號已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, employee)
}

// UpdateEmployee 更新员工资料
// PUT /api/v1/employees/:nickname
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	nickname := c.Param("nickname")

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.Update(c.Request.Context(), nickname, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 30002, "員工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, employee)
}

// DeleteEmployee 删除员工
// DELETE /api/v1/employees/:nickname
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	nickname := c.Param("nickname")

	if err := h.employeeSvc.Delete(c.Request.Context(), nickname); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 30002, "員工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
