package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analysisHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/analysis"
	chatHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/chat"
	journalHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/journal"
	"github.com/mindtone-labs/mindtone/backend/internal/handler/stream"
	topicHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/topic"
	wsHandler "github.com/mindtone-labs/mindtone/backend/internal/handler/ws"
	middlewarePkg "github.com/mindtone-labs/mindtone/backend/internal/middleware"
	topicModel "github.com/mindtone-labs/mindtone/backend/internal/model/topic"
	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
	journalService "github.com/mindtone-labs/mindtone/backend/internal/service/journal"
	"github.com/mindtone-labs/mindtone/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(topics topicModel.Store, conversations *conversation.Service, store *journalService.Store, aiSvc *aiService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	streamHandler := stream.New(aiSvc, conversations)

	r.Route("/api", func(api chi.Router) {
		topicHandler.New(topics).RegisterRoutes(api)
		chatHandler.New(conversations, aiSvc, topics).RegisterRoutes(api)
		analysisHandler.New(aiSvc).RegisterRoutes(api)
		journalHandler.New(store, aiSvc).RegisterRoutes(api)
		wsHandler.New(aiSvc, conversations).RegisterRoutes(api)

		api.Get("/stream/{userID}", func(w http.ResponseWriter, r *http.Request) {
			userID := chi.URLParam(r, "userID")
			userMessage := r.URL.Query().Get("message")

			if !aiSvc.Available() {
				utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
				return
			}
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, userID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
