package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagetrack/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Role == "admin" {
			count++
		}
	}
	return count, nil
}

// ── Mock InternRepository ──

type mockInternRepo struct {
	interns map[string]*model.Intern
	nextID  int
}

func newMockInternRepo() *mockInternRepo {
	return &mockInternRepo{interns: make(map[string]*model.Intern)}
}

func (m *mockInternRepo) Create(_ context.Context, intern *model.Intern) error {
	if intern.InternID == "" {
		m.nextID++
		intern.InternID = fmt.Sprintf("intern-%d", m.nextID)
	}
	m.interns[intern.InternID] = intern
	return nil
}

func (m *mockInternRepo) GetByID(_ context.Context, id string) (*model.Intern, error) {
	if in, ok := m.interns[id]; ok {
		return in, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternRepo) List(_ context.Context) ([]model.Intern, error) {
	var result []model.Intern
	for _, in := range m.interns {
		result = append(result, *in)
	}
	return result, nil
}

func (m *mockInternRepo) ListByStatus(_ context.Context, status string) ([]model.Intern, error) {
	var result []model.Intern
	for _, in := range m.interns {
		if in.Status == status {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (m *mockInternRepo) Update(_ context.Context, intern *model.Intern) error {
	m.interns[intern.InternID] = intern
	return nil
}

func (m *mockInternRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.interns, id)
	return nil
}

// ── Mock ProjectRepository ──

// mockProjectRepo 以 sync_key 为唯一键模拟存储层的条件插入语义
type mockProjectRepo struct {
	projects map[string]*model.Project
	syncKeys map[string]bool
	nextID   int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: make(map[string]*model.Project),
		syncKeys: make(map[string]bool),
	}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		m.nextID++
		project.ProjectID = fmt.Sprintf("project-%d", m.nextID)
	}
	m.projects[project.ProjectID] = project
	if project.SyncKey != nil {
		m.syncKeys[*project.SyncKey] = true
	}
	return nil
}

func (m *mockProjectRepo) CreateDerived(_ context.Context, project *model.Project) (bool, error) {
	if project.SyncKey != nil && m.syncKeys[*project.SyncKey] {
		return false, nil
	}
	m.nextID++
	project.ProjectID = fmt.Sprintf("project-%d", m.nextID)
	m.projects[project.ProjectID] = project
	if project.SyncKey != nil {
		m.syncKeys[*project.SyncKey] = true
	}
	return true, nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) ReplaceAssignments(_ context.Context, projectID string, interns []model.ProjectIntern, tasks []model.Task) error {
	p, ok := m.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if interns != nil {
		p.Interns = interns
	}
	if tasks != nil {
		p.Tasks = tasks
	}
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string, _ string) error {
	if p, ok := m.projects[id]; ok && p.SyncKey != nil {
		delete(m.syncKeys, *p.SyncKey)
	}
	delete(m.projects, id)
	return nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	evals  map[string]*model.Evaluation
	nextID int
}

func newMockEvaluationRepo() *mockEvaluationRepo {
	return &mockEvaluationRepo{evals: make(map[string]*model.Evaluation)}
}

func (m *mockEvaluationRepo) Create(_ context.Context, eval *model.Evaluation) error {
	if eval.EvaluationID == "" {
		m.nextID++
		eval.EvaluationID = fmt.Sprintf("eval-%d", m.nextID)
	}
	m.evals[eval.EvaluationID] = eval
	return nil
}

func (m *mockEvaluationRepo) GetByID(_ context.Context, id string) (*model.Evaluation, error) {
	if e, ok := m.evals[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) GetByInternID(_ context.Context, internID string) (*model.Evaluation, error) {
	for _, e := range m.evals {
		if e.InternID != nil && *e.InternID == internID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) GetByName(_ context.Context, firstName, lastName string) (*model.Evaluation, error) {
	for _, e := range m.evals {
		if e.FirstName == firstName && e.LastName == lastName {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) List(_ context.Context) ([]model.Evaluation, error) {
	var result []model.Evaluation
	for _, e := range m.evals {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEvaluationRepo) Update(_ context.Context, eval *model.Evaluation) error {
	m.evals[eval.EvaluationID] = eval
	return nil
}

func (m *mockEvaluationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.evals, id)
	return nil
}
