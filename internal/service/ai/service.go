package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/mindtone-labs/mindtone/backend/internal/config"
	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
)

// Service encapsulates every model call: the emotional-support chat replies
// and the standalone conversation analysis. A nil *Service is valid and
// reports itself unavailable, so callers degrade instead of crashing when no
// credential is configured.
type Service struct {
	chatModel     model.ChatModel
	cfg           config.AIConfig
	analysisChain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service from a resolved configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{persona}"),
		schema.UserMessage("{conversation}\n\n{task}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile analysis chain: %w", err)
	}

	return &Service{
		chatModel:     chatModel,
		cfg:           cfg,
		analysisChain: runnable,
	}, nil
}

// Available 表示模型客户端是否可用。
func (s *Service) Available() bool {
	return s != nil && s.chatModel != nil
}

// StreamingEnabled 指示是否开启流式输出。
func (s *Service) StreamingEnabled() bool {
	return s != nil && s.cfg.StreamResponse
}

// GenerateReply sends the prepared request turns to the model exactly as
// ordered and returns the assistant's reply text.
func (s *Service) GenerateReply(ctx context.Context, turns []chat.Turn) (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("AI 서비스가 설정되지 않았습니다")
	}

	response, err := s.chatModel.Generate(ctx, toSchemaMessages(turns))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	log.Printf("[ai] generated reply, turns=%d, length=%d", len(turns), len(response.Content))
	return response.Content, nil
}

// StreamReply streams the assistant reply for the prepared request turns.
func (s *Service) StreamReply(ctx context.Context, turns []chat.Turn) (*schema.StreamReader[*schema.Message], error) {
	if !s.Available() {
		return nil, fmt.Errorf("AI 서비스가 설정되지 않았습니다")
	}
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := s.chatModel.Stream(ctx, toSchemaMessages(turns))
	if err != nil {
		return nil, fmt.Errorf("failed to stream reply: %w", err)
	}
	return stream, nil
}

func toSchemaMessages(turns []chat.Turn) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleSystem:
			messages = append(messages, schema.SystemMessage(turn.Content))
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return messages
}
