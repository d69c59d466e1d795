package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tzu-An-Wang/ForBRO/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // 以 user_id 和 username 双键索引
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("uid-%03d", m.seq)
	}
	m.users[user.UserID] = user
	m.users["name:"+user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users["name:"+username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users["name:"+user.Username] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	seen := make(map[string]bool)
	var result []model.User
	for _, u := range m.users {
		if seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		result = append(result, *u)
	}
	return result, nil
}

// ── Mock EmployeeRepository ──

// mockEmployeeRepo 以切片保持插入顺序，模拟 created_at ASC 的排序语义
type mockEmployeeRepo struct {
	employees []*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	m.employees = append(m.employees, employee)
	return nil
}

func (m *mockEmployeeRepo) GetByNickname(_ context.Context, nickname string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Nickname == nickname {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	for i, e := range m.employees {
		if e.Nickname == employee.Nickname {
			m.employees[i] = employee
			return nil
		}
	}
	m.employees = append(m.employees, employee)
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, nickname string) error {
	for i, e := range m.employees {
		if e.Nickname == nickname {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	result := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, *e)
	}
	return result, nil
}
