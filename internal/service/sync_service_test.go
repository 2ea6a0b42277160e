package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/notify"
	"stagetrack/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestSyncService() (SyncService, *mockProjectRepo, *mockInternRepo, *notify.Hub) {
	projectRepo := newMockProjectRepo()
	internRepo := newMockInternRepo()
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Intern:     internRepo,
		Project:    projectRepo,
		Evaluation: newMockEvaluationRepo(),
	}
	hub := notify.NewHub()
	svc := NewSyncService(repo, hub, zap.NewNop())
	return svc, projectRepo, internRepo, hub
}

func completedIntern() *model.Intern {
	return &model.Intern{
		InternID:  "intern-jean",
		FirstName: "Jean",
		LastName:  "Rakoto",
		Title:     "Dev",
		Email:     "jean@example.com",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    model.InternStatusCompleted,
	}
}

// ── 派生规则测试 ──

func TestSyncService_DerivedProject_CompletedIntern(t *testing.T) {
	svc, projectRepo, _, _ := setupTestSyncService()

	created, err := svc.SyncInternToProject(context.Background(), completedIntern())
	if err != nil {
		t.Fatalf("SyncInternToProject 应成功: %v", err)
	}
	if !created {
		t.Fatal("首次同步期望创建项目")
	}

	if len(projectRepo.projects) != 1 {
		t.Fatalf("期望1个项目，实际=%d", len(projectRepo.projects))
	}
	var project *model.Project
	for _, p := range projectRepo.projects {
		project = p
	}

	if project.Title != "Dev" {
		t.Errorf("期望Title=Dev，实际=%s", project.Title)
	}
	if project.SyncKey == nil || *project.SyncKey != "Dev|Jean Rakoto" {
		t.Errorf("期望SyncKey=Dev|Jean Rakoto，实际=%v", project.SyncKey)
	}

	// 分配快照：姓名、状态与派生完成度
	if len(project.Interns) != 1 {
		t.Fatalf("期望1条分配快照，实际=%d", len(project.Interns))
	}
	pi := project.Interns[0]
	if pi.Name != "Jean Rakoto" {
		t.Errorf("期望Name=Jean Rakoto，实际=%s", pi.Name)
	}
	if pi.Status != model.InternStatusCompleted {
		t.Errorf("期望Status=%s，实际=%s", model.InternStatusCompleted, pi.Status)
	}
	if pi.Completion != 100 {
		t.Errorf("期望Completion=100，实际=%d", pi.Completion)
	}

	// 终态实习生的三段式模板全部完成
	if len(project.Tasks) != 3 {
		t.Fatalf("期望3个任务，实际=%d", len(project.Tasks))
	}
	for i, task := range project.Tasks {
		if task.Status != model.TaskStatusCompleted {
			t.Errorf("任务%d期望completed，实际=%s", i, task.Status)
		}
	}
	if CalculateProgress(project.Tasks) != 100 {
		t.Errorf("期望派生进度=100，实际=%d", CalculateProgress(project.Tasks))
	}
}

func TestSyncService_TaskTemplate_ByStatus(t *testing.T) {
	cases := []struct {
		status   string
		expected []string
	}{
		{model.InternStatusNotStarted, []string{
			model.TaskStatusInProgress, model.TaskStatusNotStarted, model.TaskStatusNotStarted,
		}},
		{model.InternStatusInProgress, []string{
			model.TaskStatusCompleted, model.TaskStatusInProgress, model.TaskStatusNotStarted,
		}},
		{model.InternStatusCompleted, []string{
			model.TaskStatusCompleted, model.TaskStatusCompleted, model.TaskStatusCompleted,
		}},
	}

	for _, tc := range cases {
		tasks := buildTaskTemplate(tc.status)
		if len(tasks) != 3 {
			t.Fatalf("状态%s期望3个任务，实际=%d", tc.status, len(tasks))
		}
		for i, task := range tasks {
			if task.Status != tc.expected[i] {
				t.Errorf("状态%s任务%d期望%s，实际=%s", tc.status, i, tc.expected[i], task.Status)
			}
		}
	}
}

func TestSyncService_TaskTemplate_Names(t *testing.T) {
	tasks := buildTaskTemplate(model.InternStatusInProgress)
	names := []string{taskNameStart, taskNameDevelopment, taskNameFinal}
	for i, task := range tasks {
		if task.Name != names[i] {
			t.Errorf("任务%d期望名称=%s，实际=%s", i, names[i], task.Name)
		}
		if task.Position != i {
			t.Errorf("任务%d期望Position=%d，实际=%d", i, i, task.Position)
		}
	}
}

// ── 幂等测试 ──

func TestSyncService_Idempotent(t *testing.T) {
	svc, projectRepo, _, _ := setupTestSyncService()
	intern := completedIntern()

	created, err := svc.SyncInternToProject(context.Background(), intern)
	if err != nil || !created {
		t.Fatalf("首次同步应创建项目: created=%v err=%v", created, err)
	}

	// 重复同步为无操作
	created, err = svc.SyncInternToProject(context.Background(), intern)
	if err != nil {
		t.Fatalf("重复同步应成功: %v", err)
	}
	if created {
		t.Error("重复同步不应再创建项目")
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("期望项目数保持1，实际=%d", len(projectRepo.projects))
	}
}

func TestSyncService_RecreateAfterProjectDeleted(t *testing.T) {
	svc, projectRepo, _, _ := setupTestSyncService()
	intern := completedIntern()

	created, err := svc.SyncInternToProject(context.Background(), intern)
	if err != nil || !created {
		t.Fatalf("首次同步应创建项目: created=%v err=%v", created, err)
	}

	// 删除派生项目后 sync_key 不再被占用
	var projectID string
	for id := range projectRepo.projects {
		projectID = id
	}
	if err := projectRepo.Delete(context.Background(), projectID, "admin-1"); err != nil {
		t.Fatalf("删除项目失败: %v", err)
	}

	// 幂等以当前项目集合为准：项目已不存在，重新同步应重建
	created, err = svc.SyncInternToProject(context.Background(), intern)
	if err != nil {
		t.Fatalf("删除后重新同步应成功: %v", err)
	}
	if !created {
		t.Error("删除派生项目后重新同步应重建项目")
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("期望1个项目，实际=%d", len(projectRepo.projects))
	}
}

func TestSyncService_SameTitleDifferentIntern(t *testing.T) {
	svc, projectRepo, _, _ := setupTestSyncService()

	first := completedIntern()
	second := completedIntern()
	second.InternID = "intern-marie"
	second.FirstName = "Marie"
	second.LastName = "Rasoa"

	if _, err := svc.SyncInternToProject(context.Background(), first); err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	created, err := svc.SyncInternToProject(context.Background(), second)
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if !created {
		t.Error("同标题不同实习生应创建独立项目")
	}
	if len(projectRepo.projects) != 2 {
		t.Errorf("期望2个项目，实际=%d", len(projectRepo.projects))
	}
}

// ── 通知测试 ──

func TestSyncService_PublishesNotificationOnCreate(t *testing.T) {
	svc, _, _, hub := setupTestSyncService()
	intern := completedIntern()

	if _, err := svc.SyncInternToProject(context.Background(), intern); err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	recent := hub.Recent()
	if len(recent) != 1 {
		t.Fatalf("期望1条通知，实际=%d", len(recent))
	}
	if recent[0].Severity != notify.SeveritySuccess {
		t.Errorf("期望severity=success，实际=%s", recent[0].Severity)
	}

	// 幂等的重复同步不应再发通知
	if _, err := svc.SyncInternToProject(context.Background(), intern); err != nil {
		t.Fatalf("重复同步失败: %v", err)
	}
	if len(hub.Recent()) != 1 {
		t.Errorf("重复同步后期望仍为1条通知，实际=%d", len(hub.Recent()))
	}
}

// ── 对账测试 ──

func TestSyncService_ReconcileAll(t *testing.T) {
	svc, projectRepo, internRepo, _ := setupTestSyncService()

	a := completedIntern()
	b := completedIntern()
	b.InternID = "intern-paul"
	b.FirstName = "Paul"
	b.LastName = "Andry"
	b.Status = model.InternStatusInProgress
	internRepo.interns[a.InternID] = a
	internRepo.interns[b.InternID] = b

	// a 已有派生项目，对账只需补 b
	if _, err := svc.SyncInternToProject(context.Background(), a); err != nil {
		t.Fatalf("预置同步失败: %v", err)
	}

	created, err := svc.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAll 应成功: %v", err)
	}
	if created != 1 {
		t.Errorf("期望补建1个项目，实际=%d", created)
	}
	if len(projectRepo.projects) != 2 {
		t.Errorf("期望2个项目，实际=%d", len(projectRepo.projects))
	}

	// 再次对账应为无操作
	created, err = svc.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAll 应成功: %v", err)
	}
	if created != 0 {
		t.Errorf("重复对账期望创建0个，实际=%d", created)
	}
}
