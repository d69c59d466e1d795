package model

// User 系统使用者表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"       json:"role"` // admin | user
	Active       bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
