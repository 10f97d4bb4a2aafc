package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindtone-labs/mindtone/backend/internal/model/chat"
)

var (
	ErrTopicRequired   = errors.New("topic is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyTurn       = errors.New("turn content is empty")
)

// Service keeps the active conversation per user. A user has exactly one
// session at a time; Start on an existing session discards it entirely.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
}

// NewService bootstraps the in-memory conversation service.
func NewService() *Service {
	return &Service{sessions: make(map[string]*chat.Session)}
}

// Start provisions a fresh session for the given emotion topic. The first
// turn is always a synthesized assistant greeting referencing the topic.
func (s *Service) Start(_ context.Context, userID, topic, participant string) (chat.Session, error) {
	if strings.TrimSpace(topic) == "" {
		return chat.Session{}, ErrTopicRequired
	}
	if userID == "" {
		return chat.Session{}, ErrSessionNotFound
	}

	session := &chat.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Participant: strings.TrimSpace(participant),
		Topic:       strings.TrimSpace(topic),
		Turns:       []chat.Turn{chat.AssistantTurn(greeting(topic, participant))},
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	return *session, nil
}

// AppendUserTurn appends a user turn to the active session.
func (s *Service) AppendUserTurn(_ context.Context, userID, text string) error {
	return s.appendTurn(userID, chat.UserTurn(text))
}

// AppendAssistantTurn records the model's reply after an exchange.
func (s *Service) AppendAssistantTurn(_ context.Context, userID, text string) error {
	return s.appendTurn(userID, chat.AssistantTurn(text))
}

func (s *Service) appendTurn(userID string, turn chat.Turn) error {
	if strings.TrimSpace(turn.Content) == "" {
		return ErrEmptyTurn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return ErrSessionNotFound
	}
	session.Turns = append(session.Turns, turn)
	return nil
}

// BuildRequest returns the exact payload for the model call: one system turn
// carrying the empathy persona, followed by every turn in original order.
// The AI service relies on this ordering verbatim.
func (s *Service) BuildRequest(_ context.Context, userID string) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	request := make([]chat.Turn, 0, len(session.Turns)+1)
	request = append(request, chat.SystemTurn(Persona(session.Topic, session.Participant)))
	request = append(request, session.Turns...)
	return request, nil
}

// GetSession retrieves a copy of the user's active session.
func (s *Service) GetSession(_ context.Context, userID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	copied := *session
	copied.Turns = append([]chat.Turn(nil), session.Turns...)
	return copied, nil
}

// Clear drops the user's session, e.g. on logout or topic switch.
func (s *Service) Clear(_ context.Context, userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

func greeting(topic, participant string) string {
	topic = strings.TrimSpace(topic)
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return fmt.Sprintf("안녕하세요! 오늘 %s 감정을 느끼고 계시는군요. 어떤 일이 있으신가요?", topic)
	}
	return fmt.Sprintf("안녕하세요, %s님! 오늘 %s 감정을 느끼고 계시는군요. 어떤 일이 있으신가요?", participant, topic)
}
