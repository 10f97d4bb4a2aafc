package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
	aiService "github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
)

// Handler manages streaming assistant replies via Server-Sent Events.
type Handler struct {
	aiSvc         *aiService.Service
	conversations *conversation.Service
}

// New creates a new stream handler.
func New(aiSvc *aiService.Service, conversations *conversation.Service) *Handler {
	return &Handler{aiSvc: aiSvc, conversations: conversations}
}

// StreamResponse represents a streaming response chunk.
type StreamResponse struct {
	Event    string `json:"event"`
	Content  string `json:"content,omitempty"`
	UserID   string `json:"userId,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleStreamRequest runs one chat exchange and streams the reply chunks.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, userID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if err := h.conversations.AppendUserTurn(ctx, userID, userMessage); err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to record user turn: %v", err))
		return err
	}

	request, err := h.conversations.BuildRequest(ctx, userID)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to build request: %v", err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{Event: "start", UserID: userID})

	reply, err := h.dispatchReply(ctx, w, flusher, userID, request)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("AI generation failed: %v", err))
		return err
	}

	if err := h.conversations.AppendAssistantTurn(ctx, userID, reply); err != nil {
		log.Printf("[stream] failed to record assistant turn: %v", err)
	}

	h.sendSSE(w, flusher, StreamResponse{Event: "end", UserID: userID, Finished: true})

	log.Printf("[stream] completed reply for user=%s, length=%d", userID, len(reply))
	return nil
}

// dispatchReply streams when enabled and falls back to one blocking
// generation otherwise.
func (h *Handler) dispatchReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, userID string, request []chat.Turn) (string, error) {
	if h.aiSvc.StreamingEnabled() {
		response, err := h.streamReply(ctx, w, flusher, userID, request)
		if err != nil {
			return "", err
		}
		return response.Content, nil
	}

	reply, err := h.aiSvc.GenerateReply(ctx, request)
	if err != nil {
		return "", err
	}

	h.sendSSE(w, flusher, StreamResponse{Event: "message", UserID: userID, Content: reply})
	return reply, nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("failed to marshal SSE response: %v", err)
		return
	}

	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{Event: "error", Error: errorMsg})
}

func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, userID string, request []chat.Turn) (*schema.Message, error) {
	stream, err := h.aiSvc.StreamReply(ctx, request)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return nil, recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.sendSSE(w, flusher, StreamResponse{Event: "delta", UserID: userID, Content: chunk.Content})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, err
	}

	h.sendSSE(w, flusher, StreamResponse{Event: "message", UserID: userID, Content: response.Content})
	return response, nil
}
