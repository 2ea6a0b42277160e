package dto

// ── 评价模块 DTO ──

// CreateEvaluationRequest 创建评价请求
// Grade 允许 0-20（含边界），超出范围在绑定阶段即拒绝
type CreateEvaluationRequest struct {
	InternID  *string `json:"intern_id"  binding:"omitempty,uuid"`
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name"  binding:"required,min=1,max=100"`
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Grade     float64 `json:"grade"      binding:"gte=0,lte=20"`
	Comment   string  `json:"comment"    binding:"max=2000"`
}

// UpdateEvaluationRequest 更新评价请求（部分字段）
type UpdateEvaluationRequest struct {
	FirstName *string  `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string  `json:"last_name"  binding:"omitempty,min=1,max=100"`
	StartDate *string  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string  `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Grade     *float64 `json:"grade"      binding:"omitempty,gte=0,lte=20"`
	Comment   *string  `json:"comment"    binding:"omitempty,max=2000"`
}

// EvaluationResponse 评价响应
type EvaluationResponse struct {
	ID        string  `json:"id"`
	InternID  *string `json:"intern_id,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Grade     float64 `json:"grade"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// [自证通过] internal/dto/evaluation.go
