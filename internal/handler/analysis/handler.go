package analysis

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/pkg/utils"
)

// Handler 对话分析的HTTP处理器。即使模型不可用也返回占位结果，从不失败。
type Handler struct {
	aiSvc *aiService.Service
}

// New 创建分析处理器
func New(aiSvc *aiService.Service) *Handler {
	return &Handler{aiSvc: aiSvc}
}

// RegisterRoutes 注册分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analysis", h.handleAnalyze)
}

// handleAnalyze 对一段对话文本生成 요약/감정/공감 三元组。
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Conversation string `json:"conversation"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Conversation) == "" {
		utils.RespondError(w, http.StatusBadRequest, "conversation is required")
		return
	}

	result := h.aiSvc.AnalyzeConversation(r.Context(), payload.Conversation)
	utils.RespondJSON(w, http.StatusOK, result)
}
