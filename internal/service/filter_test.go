package service

import (
	"testing"

	"stagetrack/backend/internal/model"
)

func strPtr(s string) *string { return &s }

// ── FilterProjects 测试 ──

func testProjects() []model.Project {
	return []model.Project{
		{
			ProjectID:   "p1",
			Title:       "Refonte du site web",
			Description: strPtr("Migration vers un nouveau framework"),
			Interns: []model.ProjectIntern{
				{Name: "Jean Rakoto", Status: model.InternStatusCompleted},
			},
		},
		{
			ProjectID: "p2",
			Title:     "Application mobile",
			Interns: []model.ProjectIntern{
				{Name: "Marie Rasoa", Status: model.InternStatusInProgress},
				{Name: "Paul Andry", Status: model.InternStatusNotStarted},
			},
		},
		{
			ProjectID: "p3",
			Title:     "Archivage",
			// 无分配实习生
		},
	}
}

func TestFilterProjects_NoFilters(t *testing.T) {
	result := FilterProjects(testProjects(), "", StatusFilterAll)
	if len(result) != 3 {
		t.Errorf("无过滤条件期望3个项目，实际=%d", len(result))
	}
}

func TestFilterProjects_SearchByTitle(t *testing.T) {
	result := FilterProjects(testProjects(), "MOBILE", "")
	if len(result) != 1 || result[0].ProjectID != "p2" {
		t.Errorf("期望命中 p2，实际=%v", result)
	}
}

func TestFilterProjects_SearchByDescription(t *testing.T) {
	result := FilterProjects(testProjects(), "framework", "")
	if len(result) != 1 || result[0].ProjectID != "p1" {
		t.Errorf("期望命中 p1，实际=%v", result)
	}
}

func TestFilterProjects_SearchByInternName(t *testing.T) {
	result := FilterProjects(testProjects(), "rasoa", "")
	if len(result) != 1 || result[0].ProjectID != "p2" {
		t.Errorf("期望命中 p2，实际=%v", result)
	}
}

func TestFilterProjects_StatusAnyInternMatches(t *testing.T) {
	// 状态过滤是 OR 语义：任一分配实习生命中即保留
	result := FilterProjects(testProjects(), "", model.InternStatusInProgress)
	if len(result) != 1 || result[0].ProjectID != "p2" {
		t.Errorf("期望命中 p2，实际=%v", result)
	}

	// 无分配实习生的项目不会被任何具体状态命中
	result = FilterProjects(testProjects(), "", model.InternStatusCompleted)
	if len(result) != 1 || result[0].ProjectID != "p1" {
		t.Errorf("期望命中 p1，实际=%v", result)
	}
}

func TestFilterProjects_SearchAndStatusCombined(t *testing.T) {
	result := FilterProjects(testProjects(), "application", model.InternStatusNotStarted)
	if len(result) != 1 || result[0].ProjectID != "p2" {
		t.Errorf("期望命中 p2，实际=%v", result)
	}

	result = FilterProjects(testProjects(), "application", model.InternStatusCompleted)
	if len(result) != 0 {
		t.Errorf("期望无命中，实际=%v", result)
	}
}

// ── ComputeProjectStats 测试 ──

func TestComputeProjectStats(t *testing.T) {
	projects := []model.Project{
		{ // 全部完成 → Completed
			Interns: []model.ProjectIntern{
				{Status: model.InternStatusCompleted},
				{Status: model.InternStatusCompleted},
			},
		},
		{ // 混合：一人完成一人进行中 → 仅 InProgress
			Interns: []model.ProjectIntern{
				{Status: model.InternStatusCompleted},
				{Status: model.InternStatusInProgress},
			},
		},
		{ // 全部未开始 → NotStarted
			Interns: []model.ProjectIntern{
				{Status: model.InternStatusNotStarted},
			},
		},
		{ // 无分配实习生 → 仅计入 Total
		},
	}

	stats := ComputeProjectStats(projects)
	if stats.Total != 4 {
		t.Errorf("期望Total=4，实际=%d", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("期望Completed=1（AND语义），实际=%d", stats.Completed)
	}
	if stats.InProgress != 1 {
		t.Errorf("期望InProgress=1，实际=%d", stats.InProgress)
	}
	if stats.NotStarted != 1 {
		t.Errorf("期望NotStarted=1，实际=%d", stats.NotStarted)
	}
}

// ── FilterInterns 测试 ──

func TestFilterInterns(t *testing.T) {
	interns := []model.Intern{
		{FirstName: "Jean", LastName: "Rakoto", Title: "Développement web", Email: "jean@example.com"},
		{FirstName: "Marie", LastName: "Rasoa", Title: "Data science", Email: "marie@example.com"},
	}

	if got := FilterInterns(interns, ""); len(got) != 2 {
		t.Errorf("空搜索词期望返回全部，实际=%d", len(got))
	}
	if got := FilterInterns(interns, "rakoto"); len(got) != 1 || got[0].FirstName != "Jean" {
		t.Errorf("按姓搜索期望命中 Jean，实际=%v", got)
	}
	if got := FilterInterns(interns, "DATA"); len(got) != 1 || got[0].FirstName != "Marie" {
		t.Errorf("按实习主题搜索期望命中 Marie，实际=%v", got)
	}
	if got := FilterInterns(interns, "  jean  "); len(got) != 1 {
		t.Errorf("搜索词应去除首尾空白，实际命中=%d", len(got))
	}
	if got := FilterInterns(interns, "inexistant"); len(got) != 0 {
		t.Errorf("期望无命中，实际=%d", len(got))
	}
}
