package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
)

func TestAnalyzeConversationUnavailableReturnsPlaceholders(t *testing.T) {
	var svc *Service // no credential configured

	result := svc.AnalyzeConversation(context.Background(), "오늘 하루 어땠어?")

	for name, field := range map[string]string{
		"summary": result.Summary,
		"emotion": result.Emotion,
		"empathy": result.Empathy,
	} {
		if strings.TrimSpace(field) == "" {
			t.Fatalf("%s placeholder must not be empty", name)
		}
		if !strings.Contains(field, "API 키") {
			t.Fatalf("%s placeholder must name the missing credential: %q", name, field)
		}
	}
}

func TestNilServiceIsUnavailable(t *testing.T) {
	var svc *Service
	if svc.Available() {
		t.Fatal("nil service must report unavailable")
	}
	if svc.StreamingEnabled() {
		t.Fatal("nil service must report streaming disabled")
	}
	if _, err := svc.GenerateReply(context.Background(), nil); err == nil {
		t.Fatal("expected error from GenerateReply on nil service")
	}
}

func TestToSchemaMessagesKeepsOrderAndRoles(t *testing.T) {
	turns := []chat.Turn{
		chat.SystemTurn("페르소나"),
		chat.AssistantTurn("안녕하세요!"),
		chat.UserTurn("안녕"),
	}

	messages := toSchemaMessages(turns)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, turn := range turns {
		if string(messages[i].Role) != turn.Role {
			t.Fatalf("message %d role mismatch: got %s want %s", i, messages[i].Role, turn.Role)
		}
		if messages[i].Content != turn.Content {
			t.Fatalf("message %d content mismatch", i)
		}
	}
}
