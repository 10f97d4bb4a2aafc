package topic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindtone-labs/mindtone/backend/internal/model/topic"
	"github.com/mindtone-labs/mindtone/backend/pkg/utils"
)

// Handler 情绪目录的HTTP处理器
type Handler struct {
	topics topic.Store
}

// New 创建topic处理器
func New(topics topic.Store) *Handler {
	return &Handler{topics: topics}
}

// RegisterRoutes 注册topic相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/topics", h.handleListTopics)
}

// handleListTopics 列出可选择的情绪
func (h *Handler) handleListTopics(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.topics.List())
}
