package dto

// ── 实习生模块 DTO ──

// CreateInternRequest 创建实习生请求
type CreateInternRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name"  binding:"required,min=1,max=100"`
	Title     string  `json:"title"      binding:"required,max=200"`
	Email     string  `json:"email"      binding:"required,email"`
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Status    string  `json:"status"     binding:"omitempty"`
	Gender    string  `json:"gender"     binding:"required,oneof=homme femme"`
	Photo     *string `json:"photo"`
}

// UpdateInternRequest 更新实习生请求（部分字段）
type UpdateInternRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Title     *string `json:"title"      binding:"omitempty,max=200"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Status    *string `json:"status"`
	Gender    *string `json:"gender"     binding:"omitempty,oneof=homme femme"`
	Photo     *string `json:"photo"`
}

// InternListRequest 实习生列表查询参数
type InternListRequest struct {
	Search string `form:"search"`
}

// InternResponse 实习生响应
type InternResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Title     string  `json:"title"`
	Email     string  `json:"email"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	Gender    string  `json:"gender"`
	Photo     *string `json:"photo,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// [自证通过] internal/dto/intern.go
