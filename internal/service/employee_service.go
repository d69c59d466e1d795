package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/model"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
)

// ── 员工名册模块业务错误 ──

var (
	ErrEmployeeExists   = errors.New("員工綽號已存在")
	ErrEmployeeNotFound = errors.New("員工不存在")
)

// EmployeeService 员工名册业务接口
// 名册是薪资计算的唯一数据来源，綽號必须与打卡表中的姓名行一致
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, nickname string) (*dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, nickname string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, nickname string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// DefaultHourlyRate 平均薪資预设值：月薪 / 30 天 / 8 小时（四舍五入到分）
func DefaultHourlyRate(salary float64) float64 {
	return math.Round(salary/30/8*100) / 100
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	// 綽號唯一性
	if _, err := s.repo.Employee.GetByNickname(ctx, req.Nickname); err == nil {
		return nil, ErrEmployeeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hourlyRate := DefaultHourlyRate(req.Salary)
	if req.HourlyRate != nil {
		hourlyRate = *req.HourlyRate
	}

	employee := &model.Employee{
		Nickname:   req.Nickname,
		Name:       req.Name,
		Salary:     req.Salary,
		HourlyRate: hourlyRate,
		Notes:      req.Notes,
	}

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("创建员工失败", zap.String("nickname", req.Nickname), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Get(ctx context.Context, nickname string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("读取员工名册失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *toEmployeeResponse(&employees[i]))
	}
	return result, nil
}

func (s *employeeService) Update(ctx context.Context, nickname string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
		// 月薪变动且未显式给出平均薪資时，按预设公式重新推导
		if req.HourlyRate == nil {
			employee.HourlyRate = DefaultHourlyRate(*req.Salary)
		}
	}
	if req.HourlyRate != nil {
		employee.HourlyRate = *req.HourlyRate
	}
	if req.Notes != nil {
		employee.Notes = *req.Notes
	}

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("更新员工失败", zap.String("nickname", nickname), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Delete(ctx context.Context, nickname string) error {
	if _, err := s.repo.Employee.GetByNickname(ctx, nickname); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Employee.Delete(ctx, nickname); err != nil {
		s.logger.Error("删除员工失败", zap.String("nickname", nickname), zap.Error(err))
		return err
	}
	return nil
}

// toEmployeeResponse 将 model.Employee 转换为 dto.EmployeeResponse
func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		Nickname:   e.Nickname,
		Name:       e.Name,
		Salary:     e.Salary,
		HourlyRate: e.HourlyRate,
		Notes:      e.Notes,
		UpdatedAt:  e.UpdatedAt,
	}
}
