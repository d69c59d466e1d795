package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tzu-An-Wang/ForBRO/internal/model"
)

// EmployeeRepository 员工名册数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByNickname(ctx context.Context, nickname string) (*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, nickname string) error
	List(ctx context.Context) ([]model.Employee, error)
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) GetByNickname(ctx context.Context, nickname string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("nickname = ?", nickname).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepo) Delete(ctx context.Context, nickname string) error {
	return r.db.WithContext(ctx).
		Where("nickname = ?", nickname).
		Delete(&model.Employee{}).Error
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}
