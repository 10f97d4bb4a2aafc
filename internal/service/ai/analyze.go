package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
)

// Fixed personas and task prompts for the standalone conversation analysis.
const (
	summaryPersona = "당신은 커플의 대화를 따뜻하게 요약해주는 AI입니다."
	emotionPersona = "당신은 커플의 대화에서 감정을 분석하는 AI입니다."
	empathyPersona = "당신은 커플의 대화에 공감하는 따뜻한 AI입니다."

	summaryTask = "이 대화를 짧고 따뜻하게 요약해줘. 핵심 키워드를 포함해서 2~3줄로 정리해줘."
	emotionTask = "이 대화를 읽고 느껴지는 감정을 하나 또는 두 개로 정리해줘. 감정 단어와 간단한 이유를 말해줘."
	empathyTask = "이 대화에 어울리는 다정한 공감의 한마디를 해줘. 1문장으로 부탁해."
)

// Analysis is the summary / emotion / empathy triple derived from one
// conversation transcript.
type Analysis struct {
	Summary string `json:"summary"`
	Emotion string `json:"emotion"`
	Empathy string `json:"empathy"`
}

type analysisTask struct {
	name        string
	persona     string
	task        string
	maxTokens   int
	temperature float32
}

var analysisTasks = [3]analysisTask{
	{name: "요약", persona: summaryPersona, task: summaryTask, maxTokens: 150, temperature: 0.7},
	{name: "감정 분석", persona: emotionPersona, task: emotionTask, maxTokens: 100, temperature: 0.7},
	{name: "공감 멘트", persona: empathyPersona, task: empathyTask, maxTokens: 100, temperature: 0.8},
}

// AnalyzeConversation issues three independent model requests over the given
// transcript and returns the summary, emotion and empathy results. The call
// never fails: a missing credential or a transport error degrades every field
// to a readable placeholder carrying the failure detail.
func (s *Service) AnalyzeConversation(ctx context.Context, conversation string) Analysis {
	if !s.Available() {
		return Analysis{
			Summary: unavailableText("요약"),
			Emotion: unavailableText("감정 분석"),
			Empathy: unavailableText("공감 멘트"),
		}
	}

	return Analysis{
		Summary: s.runAnalysisTask(ctx, analysisTasks[0], conversation),
		Emotion: s.runAnalysisTask(ctx, analysisTasks[1], conversation),
		Empathy: s.runAnalysisTask(ctx, analysisTasks[2], conversation),
	}
}

func (s *Service) runAnalysisTask(ctx context.Context, task analysisTask, conversation string) string {
	input := map[string]any{
		"persona":      task.persona,
		"conversation": conversation,
		"task":         task.task,
	}

	msg, err := s.analysisChain.Invoke(ctx, input, compose.WithChatModelOption(
		model.WithMaxTokens(task.maxTokens),
		model.WithTemperature(task.temperature),
	))
	if err != nil {
		log.Printf("[ai] %s analysis failed: %v", task.name, err)
		return fmt.Sprintf("API 오류로 %s을(를) 생성하지 못했습니다. 오류: %v", task.name, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return fmt.Sprintf("API 오류로 %s을(를) 생성하지 못했습니다. 오류: 빈 응답", task.name)
	}

	return strings.TrimSpace(msg.Content)
}

func unavailableText(name string) string {
	return fmt.Sprintf("API 키가 설정되지 않아 샘플 %s을(를) 생성합니다. ARK_API_KEY 환경 변수를 설정해주세요.", name)
}
