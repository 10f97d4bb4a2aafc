package conversation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
)

func TestStartSynthesizesGreeting(t *testing.T) {
	svc := conversation.NewService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "user-1", "슬픔", "지수")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	if len(session.Turns) != 1 {
		t.Fatalf("expected exactly one greeting turn, got %d", len(session.Turns))
	}
	greeting := session.Turns[0]
	if greeting.Role != chat.RoleAssistant {
		t.Fatalf("greeting must be an assistant turn, got %s", greeting.Role)
	}
	if !strings.Contains(greeting.Content, "슬픔") {
		t.Fatalf("greeting must mention the topic: %q", greeting.Content)
	}
	if !strings.Contains(greeting.Content, "지수") {
		t.Fatalf("greeting must mention the participant: %q", greeting.Content)
	}
}

func TestStartWithoutParticipantOmitsNameClause(t *testing.T) {
	svc := conversation.NewService()

	session, err := svc.Start(context.Background(), "user-1", "기쁨", "")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if strings.Contains(session.Turns[0].Content, "님!") {
		t.Fatalf("greeting must omit the name clause without a participant: %q", session.Turns[0].Content)
	}
}

func TestStartRequiresTopic(t *testing.T) {
	svc := conversation.NewService()
	if _, err := svc.Start(context.Background(), "user-1", "  ", ""); err != conversation.ErrTopicRequired {
		t.Fatalf("expected ErrTopicRequired, got %v", err)
	}
}

func TestBuildRequestPrependsPersonaAndPreservesOrder(t *testing.T) {
	svc := conversation.NewService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "user-1", "불안", "민호"); err != nil {
		t.Fatalf("Start err: %v", err)
	}

	exchange := []string{"요즘 잠이 안 와요", "많이 힘드셨겠어요", "네, 걱정이 많아서요"}
	if err := svc.AppendUserTurn(ctx, "user-1", exchange[0]); err != nil {
		t.Fatalf("AppendUserTurn err: %v", err)
	}
	if err := svc.AppendAssistantTurn(ctx, "user-1", exchange[1]); err != nil {
		t.Fatalf("AppendAssistantTurn err: %v", err)
	}
	if err := svc.AppendUserTurn(ctx, "user-1", exchange[2]); err != nil {
		t.Fatalf("AppendUserTurn err: %v", err)
	}

	request, err := svc.BuildRequest(ctx, "user-1")
	if err != nil {
		t.Fatalf("BuildRequest err: %v", err)
	}

	if request[0].Role != chat.RoleSystem {
		t.Fatalf("first element must be the system persona, got role %s", request[0].Role)
	}
	if !strings.Contains(request[0].Content, "불안") || !strings.Contains(request[0].Content, "민호") {
		t.Fatalf("persona must be parameterized by topic and participant: %q", request[0].Content)
	}

	// greeting + three exchange turns, in call order, after the system turn
	if len(request) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(request))
	}
	for i, want := range exchange {
		if request[i+2].Content != want {
			t.Fatalf("turn %d out of order: got %q want %q", i+2, request[i+2].Content, want)
		}
	}
}

func TestStartAgainDiscardsHistory(t *testing.T) {
	svc := conversation.NewService()
	ctx := context.Background()

	svc.Start(ctx, "user-1", "화남", "")
	svc.AppendUserTurn(ctx, "user-1", "정말 화가 나요")

	session, err := svc.Start(ctx, "user-1", "감사", "")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}
	if len(session.Turns) != 1 {
		t.Fatalf("restart must discard prior turns, got %d", len(session.Turns))
	}
	if !strings.Contains(session.Turns[0].Content, "감사") {
		t.Fatalf("greeting must reference the new topic: %q", session.Turns[0].Content)
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	svc := conversation.NewService()
	ctx := context.Background()

	svc.Start(ctx, "user-1", "혼란", "")
	if err := svc.AppendUserTurn(ctx, "user-1", "   "); err != conversation.ErrEmptyTurn {
		t.Fatalf("expected ErrEmptyTurn, got %v", err)
	}
}

func TestClearRemovesSession(t *testing.T) {
	svc := conversation.NewService()
	ctx := context.Background()

	svc.Start(ctx, "user-1", "희망", "")
	svc.Clear(ctx, "user-1")

	if _, err := svc.GetSession(ctx, "user-1"); err != conversation.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after Clear, got %v", err)
	}
	if _, err := svc.BuildRequest(ctx, "user-1"); err != conversation.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound from BuildRequest, got %v", err)
	}
}
