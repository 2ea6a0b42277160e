package service

import (
	"strings"

	"stagetrack/backend/internal/model"
)

// StatusFilterAll 状态过滤器的 "全部" 取值
const StatusFilterAll = "all"

// FilterProjects 按搜索词与状态过滤项目列表，返回新切片，不修改输入
//   - searchTerm: 大小写不敏感的子串匹配，命中项目标题、描述（缺失时
//     仅该字段不参与匹配）或任一分配实习生姓名即保留
//   - statusFilter: "all" 放行全部；其他值保留至少有一名分配实习生
//     状态等于该值的项目（跨分配列表的 OR 语义）
func FilterProjects(projects []model.Project, searchTerm, statusFilter string) []model.Project {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	result := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if term != "" && !projectMatchesTerm(&p, term) {
			continue
		}
		if statusFilter != "" && statusFilter != StatusFilterAll && !projectHasStatus(&p, statusFilter) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func projectMatchesTerm(p *model.Project, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term) {
		return true
	}
	for _, pi := range p.Interns {
		if strings.Contains(strings.ToLower(pi.Name), term) {
			return true
		}
	}
	return false
}

func projectHasStatus(p *model.Project, status string) bool {
	for _, pi := range p.Interns {
		if pi.Status == status {
			return true
		}
	}
	return false
}

// ProjectStats 项目状态统计
// 与 FilterProjects 的 OR 语义刻意不同：
//   - Completed 要求每名分配实习生都处于终态（AND 语义）——
//     "项目是否完成" 与 "项目当前是否涉及某状态" 是两个问题
//   - InProgress 任一实习生处于中间态即计入
//   - NotStarted 要求全部实习生处于初始态
//
// 无分配实习生的项目只计入 Total
type ProjectStats struct {
	Total      int
	Completed  int
	InProgress int
	NotStarted int
}

// ComputeProjectStats 计算项目统计
func ComputeProjectStats(projects []model.Project) ProjectStats {
	stats := ProjectStats{Total: len(projects)}

	for _, p := range projects {
		if len(p.Interns) == 0 {
			continue
		}

		allCompleted := true
		allNotStarted := true
		anyInProgress := false
		for _, pi := range p.Interns {
			if pi.Status != model.InternStatusCompleted {
				allCompleted = false
			}
			if pi.Status != model.InternStatusNotStarted {
				allNotStarted = false
			}
			if pi.Status == model.InternStatusInProgress {
				anyInProgress = true
			}
		}

		if allCompleted {
			stats.Completed++
		}
		if anyInProgress {
			stats.InProgress++
		}
		if allNotStarted {
			stats.NotStarted++
		}
	}

	return stats
}

// FilterInterns 按搜索词过滤实习生列表（跨字段 OR 匹配）
// 大小写不敏感的子串匹配：名、姓、实习主题、邮箱
func FilterInterns(interns []model.Intern, searchTerm string) []model.Intern {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return interns
	}

	result := make([]model.Intern, 0, len(interns))
	for _, in := range interns {
		if strings.Contains(strings.ToLower(in.FirstName), term) ||
			strings.Contains(strings.ToLower(in.LastName), term) ||
			strings.Contains(strings.ToLower(in.Title), term) ||
			strings.Contains(strings.ToLower(in.Email), term) {
			result = append(result, in)
		}
	}
	return result
}

// [自证通过] internal/service/filter.go
