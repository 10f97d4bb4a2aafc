package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
)

// Handler relays the chat exchange over a WebSocket connection: text turns in,
// chunked assistant replies out.
type Handler struct {
	aiSvc         *aiService.Service
	conversations *conversation.Service
	upgrader      websocket.Upgrader
}

// New 创建WebSocket聊天处理器
func New(aiSvc *aiService.Service, conversations *conversation.Service) *Handler {
	return &Handler{
		aiSvc:         aiSvc,
		conversations: conversations,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{userID}", h.handleWebSocket)
}

type inboundMessage struct {
	Content string `json:"content"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if _, err := h.conversations.GetSession(r.Context(), userID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user=%s: %v", userID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for user=%s", userID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user=%s: %v", userID, err)
			}
			return
		}

		if err := h.handleExchange(r.Context(), conn, userID, inbound.Content); err != nil {
			h.writeError(conn, err.Error())
		}
	}
}

// handleExchange runs one turn of the conversation over the socket.
func (h *Handler) handleExchange(ctx context.Context, conn *websocket.Conn, userID, content string) error {
	if err := h.conversations.AppendUserTurn(ctx, userID, content); err != nil {
		return err
	}

	request, err := h.conversations.BuildRequest(ctx, userID)
	if err != nil {
		return err
	}

	if !h.aiSvc.Available() {
		return conn.WriteJSON(outboundMessage{
			Type:    "message",
			Content: "AI 응답을 생성할 수 없습니다. ARK_API_KEY 환경 변수를 설정해주세요.",
		})
	}

	var reply string
	if h.aiSvc.StreamingEnabled() {
		reply, err = h.relayStream(ctx, conn, request)
	} else {
		reply, err = h.aiSvc.GenerateReply(ctx, request)
		if err == nil {
			err = conn.WriteJSON(outboundMessage{Type: "message", Content: reply})
		}
	}
	if err != nil {
		return fmt.Errorf("reply generation failed: %w", err)
	}

	if err := h.conversations.AppendAssistantTurn(ctx, userID, reply); err != nil {
		log.Printf("[ws] failed to record assistant turn for user=%s: %v", userID, err)
	}
	return nil
}

// relayStream forwards reply chunks as they arrive and returns the full text.
func (h *Handler) relayStream(ctx context.Context, conn *websocket.Conn, request []chat.Turn) (string, error) {
	stream, err := h.aiSvc.StreamReply(ctx, request)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			if err := conn.WriteJSON(outboundMessage{Type: "delta", Content: chunk.Content}); err != nil {
				return "", err
			}
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}

	if err := conn.WriteJSON(outboundMessage{Type: "message", Content: response.Content}); err != nil {
		return "", err
	}
	return response.Content, nil
}

func (h *Handler) writeError(conn *websocket.Conn, detail string) {
	if err := conn.WriteJSON(outboundMessage{Type: "error", Error: detail}); err != nil {
		log.Printf("[ws] failed to write error frame: %v", err)
	}
}
