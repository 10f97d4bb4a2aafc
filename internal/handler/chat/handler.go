package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindtone-labs/mindtone/backend/internal/model/topic"
	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
	"github.com/mindtone-labs/mindtone/backend/pkg/utils"
)

// Handler 对话服务的HTTP处理器
type Handler struct {
	conversations *conversation.Service
	aiSvc         *aiService.Service
	topics        topic.Store
}

// New 创建对话处理器
func New(conversations *conversation.Service, aiSvc *aiService.Service, topics topic.Store) *Handler {
	return &Handler{
		conversations: conversations,
		aiSvc:         aiSvc,
		topics:        topics,
	}
}

// RegisterRoutes 注册对话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStartSession)
	r.Get("/session/{userID}", h.handleGetSession)
	r.Delete("/session/{userID}", h.handleClearSession)
	r.Post("/messages", h.handleExchange)
}

// handleStartSession 选择情绪并开启新会话，旧会话被整体丢弃。
func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID      string `json:"userId"`
		Topic       string `json:"topic"`
		Participant string `json:"participantName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if _, ok := h.topics.FindByName(payload.Topic); !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown topic")
		return
	}

	session, err := h.conversations.Start(r.Context(), payload.UserID, payload.Topic, payload.Participant)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleGetSession 返回当前会话及全部轮次。
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	session, err := h.conversations.GetSession(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

// handleClearSession 登出或切换情绪时清空会话。
func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	h.conversations.Clear(r.Context(), userID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleExchange 处理一次完整的问答：记录用户消息、调用模型、记录回复。
// 模型失败时返回占位回复而不是错误，保证会话不中断。
func (h *Handler) handleExchange(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.conversations.AppendUserTurn(r.Context(), payload.UserID, payload.Content); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, conversation.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	request, err := h.conversations.BuildRequest(r.Context(), payload.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	if !h.aiSvc.Available() {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"reply":    "AI 응답을 생성할 수 없습니다. ARK_API_KEY 환경 변수를 설정해주세요.",
			"degraded": true,
		})
		return
	}

	reply, err := h.aiSvc.GenerateReply(r.Context(), request)
	if err != nil {
		log.Printf("[chat] reply generation failed for user=%s: %v", payload.UserID, err)
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"reply":    fmt.Sprintf("AI 응답을 생성하지 못했습니다. 오류: %v", err),
			"degraded": true,
		})
		return
	}

	if err := h.conversations.AppendAssistantTurn(r.Context(), payload.UserID, reply); err != nil {
		log.Printf("[chat] failed to record assistant turn for user=%s: %v", payload.UserID, err)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"reply": reply})
}
