package journal

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	journalmodel "github.com/mindtone-labs/mindtone/backend/internal/model/journal"
	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	journalService "github.com/mindtone-labs/mindtone/backend/internal/service/journal"
	"github.com/mindtone-labs/mindtone/backend/pkg/utils"
)

// Handler 日记存储的HTTP处理器
type Handler struct {
	store *journalService.Store
	aiSvc *aiService.Service
}

// New 创建journal处理器
func New(store *journalService.Store, aiSvc *aiService.Service) *Handler {
	return &Handler{store: store, aiSvc: aiSvc}
}

// RegisterRoutes 注册journal相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/memories", h.handleSaveMemory)
	r.Get("/memories", h.handleListMemories)
	r.Get("/memories/{date}", h.handleMemoriesByDate)
	r.Get("/emotions", h.handleListEmotions)
	r.Get("/emotions/histogram", h.handleHistogram)
	r.Put("/today-word", h.handleSetTodayWord)
	r.Get("/today-word", h.handleGetTodayWord)
	r.Get("/images/{name}", h.handleImage)
}

type saveMemoryRequest struct {
	Date        string `json:"date,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
	Emotion     string `json:"emotion,omitempty"`
	Empathy     string `json:"empathy,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

// handleSaveMemory 保存一条追忆记录。요약/감정/공감 가 비어 있으면 본문에 대한
// 분석을 먼저 수행한 뒤 저장한다. 저장 성공 시 当日 감정도 함께 upsert 된다.
func (h *Handler) handleSaveMemory(w http.ResponseWriter, r *http.Request) {
	var payload saveMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		utils.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	if payload.Summary == "" && payload.Emotion == "" && payload.Empathy == "" {
		analysis := h.aiSvc.AnalyzeConversation(r.Context(), payload.Content)
		payload.Summary = analysis.Summary
		payload.Emotion = analysis.Emotion
		payload.Empathy = analysis.Empathy
	}

	record := journalmodel.MemoryRecord{
		Date:    payload.Date,
		Title:   payload.Title,
		Content: payload.Content,
		Summary: payload.Summary,
		Emotion: payload.Emotion,
		Empathy: payload.Empathy,
	}

	if payload.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(payload.ImageBase64)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid image encoding")
			return
		}
		// 이미지 저장 실패는 기록 자체를 막지 않는다.
		if relPath, ok := h.store.SaveImage(record.Date, record.Title, data); ok {
			record.ImagePath = relPath
		}
	}

	if !h.store.AppendMemory(record) {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save memory")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, record)
}

// handleListMemories 按日期倒序返回记录，可选 limit 截断。
func (h *Handler) handleListMemories(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records := h.store.ListMemories(limit)
	if records == nil {
		records = []journalmodel.MemoryRecord{}
	}
	utils.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) handleMemoriesByDate(w http.ResponseWriter, r *http.Request) {
	records := h.store.MemoriesByDate(chi.URLParam(r, "date"))
	if records == nil {
		records = []journalmodel.MemoryRecord{}
	}
	utils.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) handleListEmotions(w http.ResponseWriter, r *http.Request) {
	records := h.store.ListEmotions()
	if records == nil {
		records = []journalmodel.EmotionRecord{}
	}
	utils.RespondJSON(w, http.StatusOK, records)
}

func (h *Handler) handleHistogram(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.EmotionHistogram())
}

func (h *Handler) handleSetTodayWord(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.store.SetTodayNote(payload.Word) {
		utils.RespondError(w, http.StatusInternalServerError, "failed to save today word")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.store.GetTodayNote())
}

func (h *Handler) handleGetTodayWord(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.GetTodayNote())
}

// handleImage 返回追忆照片原始字节。
func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, ok := h.store.LoadImage(path.Join("images", name))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "image not found")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
