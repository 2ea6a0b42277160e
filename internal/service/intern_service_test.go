package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/notify"
	"stagetrack/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestInternService() (InternService, *mockInternRepo, *mockProjectRepo, *notify.Hub) {
	internRepo := newMockInternRepo()
	projectRepo := newMockProjectRepo()
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Intern:     internRepo,
		Project:    projectRepo,
		Evaluation: newMockEvaluationRepo(),
	}
	hub := notify.NewHub()
	syncSvc := NewSyncService(repo, hub, zap.NewNop())
	svc := NewInternService(repo, syncSvc, hub, zap.NewNop())
	return svc, internRepo, projectRepo, hub
}

func createInternReq() *dto.CreateInternRequest {
	return &dto.CreateInternRequest{
		FirstName: "Jean",
		LastName:  "Rakoto",
		Title:     "Développement web",
		Email:     "jean@example.com",
		StartDate: "2025-01-06",
		EndDate:   "2025-06-30",
		Status:    model.InternStatusInProgress,
		Gender:    "homme",
	}
}

// ── Create 测试 ──

func TestInternService_Create_Success(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	result, err := svc.Create(context.Background(), createInternReq(), "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.FirstName != "Jean" {
		t.Errorf("期望FirstName=Jean，实际=%s", result.FirstName)
	}
	if result.Status != model.InternStatusInProgress {
		t.Errorf("期望Status=%s，实际=%s", model.InternStatusInProgress, result.Status)
	}
	if result.StartDate != "2025-01-06" {
		t.Errorf("期望StartDate=2025-01-06，实际=%s", result.StartDate)
	}
}

func TestInternService_Create_DefaultStatus(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	req := createInternReq()
	req.Status = ""

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.InternStatusNotStarted {
		t.Errorf("缺省状态期望=%s，实际=%s", model.InternStatusNotStarted, result.Status)
	}
}

func TestInternService_Create_InvalidStatus(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	req := createInternReq()
	req.Status = "terminé"

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrInvalidInternStatus) {
		t.Errorf("期望 ErrInvalidInternStatus，实际: %v", err)
	}
}

func TestInternService_Create_InvalidDateRange(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	req := createInternReq()
	req.StartDate = "2025-06-30"
	req.EndDate = "2025-01-06"

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

func TestInternService_Create_CompletedTriggersSync(t *testing.T) {
	svc, _, projectRepo, _ := setupTestInternService()

	req := createInternReq()
	req.Status = model.InternStatusCompleted

	if _, err := svc.Create(context.Background(), req, "admin-001"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("终态实习生创建后期望派生1个项目，实际=%d", len(projectRepo.projects))
	}
}

func TestInternService_Create_NonCompletedNoSync(t *testing.T) {
	svc, _, projectRepo, _ := setupTestInternService()

	if _, err := svc.Create(context.Background(), createInternReq(), "admin-001"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(projectRepo.projects) != 0 {
		t.Errorf("非终态实习生不应触发派生，实际项目数=%d", len(projectRepo.projects))
	}
}

// ── GetByID 测试 ──

func TestInternService_GetByID_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrInternNotFound) {
		t.Errorf("期望 ErrInternNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestInternService_List_WithSearch(t *testing.T) {
	svc, internRepo, _, _ := setupTestInternService()
	internRepo.interns["i1"] = &model.Intern{
		InternID: "i1", FirstName: "Jean", LastName: "Rakoto",
		Title: "Dev", Email: "jean@example.com",
		Status: model.InternStatusInProgress,
	}
	internRepo.interns["i2"] = &model.Intern{
		InternID: "i2", FirstName: "Marie", LastName: "Rasoa",
		Title: "Data", Email: "marie@example.com",
		Status: model.InternStatusNotStarted,
	}

	result, err := svc.List(context.Background(), &dto.InternListRequest{Search: "marie"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 || result[0].FirstName != "Marie" {
		t.Errorf("期望命中 Marie，实际=%v", result)
	}
}

// ── Update 测试 ──

func TestInternService_Update_StatusToCompleted_TriggersSync(t *testing.T) {
	svc, internRepo, projectRepo, _ := setupTestInternService()
	internRepo.interns["i1"] = &model.Intern{
		InternID: "i1", FirstName: "Jean", LastName: "Rakoto",
		Title: "Dev", Email: "jean@example.com",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    model.InternStatusInProgress,
	}

	status := model.InternStatusCompleted
	result, err := svc.Update(context.Background(), "i1", &dto.UpdateInternRequest{Status: &status}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.InternStatusCompleted {
		t.Errorf("期望Status=%s，实际=%s", model.InternStatusCompleted, result.Status)
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("状态改为终态后期望派生1个项目，实际=%d", len(projectRepo.projects))
	}

	// 再次保存终态实习生：派生保持幂等
	if _, err := svc.Update(context.Background(), "i1", &dto.UpdateInternRequest{Status: &status}, "admin-001"); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if len(projectRepo.projects) != 1 {
		t.Errorf("重复保存后期望项目数保持1，实际=%d", len(projectRepo.projects))
	}
}

func TestInternService_Update_InvalidStatus(t *testing.T) {
	svc, internRepo, _, _ := setupTestInternService()
	internRepo.interns["i1"] = &model.Intern{
		InternID: "i1", FirstName: "Jean", LastName: "Rakoto",
		Status: model.InternStatusNotStarted,
	}

	bad := "annulé"
	_, err := svc.Update(context.Background(), "i1", &dto.UpdateInternRequest{Status: &bad}, "admin-001")
	if !errors.Is(err, ErrInvalidInternStatus) {
		t.Errorf("期望 ErrInvalidInternStatus，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestInternService_Delete_Success(t *testing.T) {
	svc, internRepo, _, hub := setupTestInternService()
	internRepo.interns["i1"] = &model.Intern{
		InternID: "i1", FirstName: "Jean", LastName: "Rakoto",
		Status: model.InternStatusNotStarted,
	}

	if err := svc.Delete(context.Background(), "i1", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := internRepo.interns["i1"]; ok {
		t.Error("期望实习生已删除")
	}

	recent := hub.Recent()
	if len(recent) != 1 || recent[0].Severity != notify.SeverityWarning {
		t.Errorf("期望1条warning通知，实际=%v", recent)
	}
}

func TestInternService_Delete_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestInternService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrInternNotFound) {
		t.Errorf("期望 ErrInternNotFound，实际: %v", err)
	}
}

// ── 时间戳格式测试 ──

func TestToInternResponse_TimestampsInUTC(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	in := &model.Intern{
		InternID: "i1", FirstName: "Jean", LastName: "Rakoto",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    model.InternStatusCompleted,
	}
	// 本地时区 10:30 对应 UTC 07:30
	in.CreatedAt = time.Date(2025, 3, 1, 10, 30, 0, 0, loc)
	in.UpdatedAt = in.CreatedAt

	resp := toInternResponse(in)
	if resp.CreatedAt != "2025-03-01T07:30:00Z" {
		t.Errorf("期望CreatedAt=2025-03-01T07:30:00Z，实际=%s", resp.CreatedAt)
	}
	if resp.UpdatedAt != resp.CreatedAt {
		t.Errorf("期望UpdatedAt与CreatedAt一致，实际=%s", resp.UpdatedAt)
	}
}
