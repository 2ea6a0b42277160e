package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"stagetrack/backend/internal/notify"
	"stagetrack/backend/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// ListNotifications 获取最近通知（最新在前，最多保留 10 条）
// GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	response.OK(c, gin.H{"list": h.hub.Recent()})
}

// MarkRead 将通知标记为已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知ID不能为空")
		return
	}

	if !h.hub.MarkRead(id) {
		response.NotFound(c, 15001, "通知不存在")
		return
	}

	response.OK(c, nil)
}

// StreamNotifications 通知实时推送（SSE）
// GET /api/v1/notifications/stream
// 连接期间实时推送新事件；客户端断开或服务关停时结束
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	subID, events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(subID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("notification", ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
