package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/model"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
)

// ── 测试辅助 ──

func setupTestEmployeeService() (EmployeeService, *mockEmployeeRepo) {
	empRepo := newMockEmployeeRepo()
	repo := &repository.Repository{
		User:     newMockUserRepo(),
		Employee: empRepo,
	}
	svc := NewEmployeeService(repo, zap.NewNop())
	return svc, empRepo
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// ── 预设平均薪資 ──

func TestDefaultHourlyRate(t *testing.T) {
	cases := []struct {
		salary float64
		want   float64
	}{
		{36000, 150},    // 36000/30/8 = 150
		{40000, 166.67}, // 166.666... 四舍五入到分
		{0, 0},
	}
	for _, c := range cases {
		if got := DefaultHourlyRate(c.salary); got != c.want {
			t.Errorf("DefaultHourlyRate(%v) 期望 %v，实际 %v", c.salary, c.want, got)
		}
	}
}

// ── Create 测试 ──

func TestEmployeeService_Create_DerivesHourlyRate(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	resp, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Nickname: "小明",
		Name:     "王小明",
		Salary:   36000,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.HourlyRate != 150 {
		t.Errorf("未显式给出时平均薪資应按月薪推导，期望 150，实际 %v", resp.HourlyRate)
	}
}

func TestEmployeeService_Create_ExplicitHourlyRate(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	resp, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Nickname:   "小明",
		Name:       "王小明",
		Salary:     36000,
		HourlyRate: floatPtr(180),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.HourlyRate != 180 {
		t.Errorf("显式给出的平均薪資应原样保存，期望 180，实际 %v", resp.HourlyRate)
	}
}

func TestEmployeeService_Create_DuplicateNickname(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{Nickname: "小明"})

	_, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Nickname: "小明",
		Name:     "王小明",
		Salary:   36000,
	})
	if !errors.Is(err, ErrEmployeeExists) {
		t.Errorf("期望 ErrEmployeeExists，实际: %v", err)
	}
}

// ── Get 测试 ──

func TestEmployeeService_Get(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{
		Nickname: "小明", Name: "王小明", Salary: 36000, HourlyRate: 150,
	})

	resp, err := svc.Get(context.Background(), "小明")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if resp.Name != "王小明" || resp.Salary != 36000 {
		t.Errorf("响应内容不符: %+v", resp)
	}

	if _, err := svc.Get(context.Background(), "不存在"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestEmployeeService_Update_SalaryRederivesRate(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{
		Nickname: "小明", Name: "王小明", Salary: 36000, HourlyRate: 150,
	})

	resp, err := svc.Update(context.Background(), "小明", &dto.UpdateEmployeeRequest{
		Salary: floatPtr(48000),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.HourlyRate != 200 {
		t.Errorf("月薪变动时平均薪資应重新推导，期望 200，实际 %v", resp.HourlyRate)
	}
}

func TestEmployeeService_Update_ExplicitRateWins(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{
		Nickname: "小明", Name: "王小明", Salary: 36000, HourlyRate: 150,
	})

	resp, err := svc.Update(context.Background(), "小明", &dto.UpdateEmployeeRequest{
		Salary:     floatPtr(48000),
		HourlyRate: floatPtr(210),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.HourlyRate != 210 {
		t.Errorf("显式给出的平均薪資优先，期望 210，实际 %v", resp.HourlyRate)
	}
	if resp.Salary != 48000 {
		t.Errorf("月薪应更新为 48000，实际 %v", resp.Salary)
	}
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestEmployeeService()

	_, err := svc.Update(context.Background(), "不存在", &dto.UpdateEmployeeRequest{
		Name: strPtr("某人"),
	})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── List / Delete 测试 ──

func TestEmployeeService_List_KeepsInsertionOrder(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{Nickname: "小華"})
	empRepo.Create(context.Background(), &model.Employee{Nickname: "小明"})

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 位员工，实际 %d", len(list))
	}
	if list[0].Nickname != "小華" || list[1].Nickname != "小明" {
		t.Errorf("名册应按创建顺序返回: %s, %s", list[0].Nickname, list[1].Nickname)
	}
}

func TestEmployeeService_Delete(t *testing.T) {
	svc, empRepo := setupTestEmployeeService()
	empRepo.Create(context.Background(), &model.Employee{Nickname: "小明"})

	if err := svc.Delete(context.Background(), "小明"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), "小明"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("重复删除期望 ErrEmployeeNotFound，实际: %v", err)
	}
}
