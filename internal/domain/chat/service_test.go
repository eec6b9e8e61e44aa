package chat

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mednex/mednex/internal/platform/llm"
)

type stubClient struct {
	reply   string
	err     error
	lastReq llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestRespond_ProviderReply(t *testing.T) {
	client := &stubClient{reply: "You should rest. Drink fluids."}
	svc := NewService(client, zerolog.Nop())

	reply := svc.Respond(context.Background(), "i have a headache and fever and cough", nil)

	if reply.Response != "You should rest. Drink fluids." {
		t.Fatalf("unexpected response: %q", reply.Response)
	}
	if reply.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", reply.Confidence)
	}
	if reply.FollowUp {
		t.Fatal("expected no follow-up for a plain answer with enough symptoms")
	}
	wantQuestions := []string{
		"What is your temperature?",
		"How long have you had the fever?",
		"Do you have chills or sweats?",
	}
	if !reflect.DeepEqual(reply.SuggestedQuestions, wantQuestions) {
		t.Fatalf("unexpected questions: %v", reply.SuggestedQuestions)
	}
}

func TestRespond_SendsSystemPromptAndWindowedHistory(t *testing.T) {
	client := &stubClient{reply: "ok"}
	svc := NewService(client, zerolog.Nop())

	history := make([]Message, 0, 12)
	for i := 1; i <= 12; i++ {
		role := "user"
		if i%2 == 0 {
			role = "assistant"
		}
		history = append(history, Message{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	svc.Respond(context.Background(), "current question", history)

	req := client.lastReq
	if req.System != systemPrompt {
		t.Fatal("expected system prompt to be sent")
	}
	if req.MaxTokens != 500 || req.Temperature != 0.7 {
		t.Fatalf("unexpected request settings: max_tokens=%d temperature=%v", req.MaxTokens, req.Temperature)
	}
	if len(req.Messages) != 11 {
		t.Fatalf("expected 10 history messages plus current, got %d", len(req.Messages))
	}
	if req.Messages[0].Content != "m3" {
		t.Fatalf("expected oldest kept message m3, got %q", req.Messages[0].Content)
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "current question" {
		t.Fatalf("unexpected final message: %+v", last)
	}
}

func TestRespond_QuestionInReplyTriggersFollowUp(t *testing.T) {
	client := &stubClient{reply: "Could you tell me more?"}
	svc := NewService(client, zerolog.Nop())

	reply := svc.Respond(context.Background(), "i have pain, fever and cough", nil)

	if !reply.FollowUp {
		t.Fatal("expected follow-up when the assistant asks a question")
	}
}

func TestRespond_FewSymptomsTriggersFollowUp(t *testing.T) {
	client := &stubClient{reply: "Rest well."}
	svc := NewService(client, zerolog.Nop())

	reply := svc.Respond(context.Background(), "hello", nil)

	if !reply.FollowUp {
		t.Fatal("expected follow-up when few symptoms are known")
	}
	wantQuestions := []string{
		"How long have you been experiencing these symptoms?",
		"Are there any other symptoms you've noticed?",
		"What makes your symptoms better or worse?",
	}
	if !reflect.DeepEqual(reply.SuggestedQuestions, wantQuestions) {
		t.Fatalf("unexpected questions: %v", reply.SuggestedQuestions)
	}
}

func TestRespond_ProviderErrorFallsBack(t *testing.T) {
	client := &stubClient{err: errors.New("rate limited")}
	svc := NewService(client, zerolog.Nop())

	reply := svc.Respond(context.Background(), "fever and chills today", nil)

	if reply.Confidence != 0.6 {
		t.Fatalf("expected fallback confidence 0.6, got %v", reply.Confidence)
	}
	want := "I understand you're experiencing fever. Could you tell me more about when these symptoms started and how severe they are? Please remember this is educational information only - consult a healthcare professional for proper medical advice."
	if reply.Response != want {
		t.Fatalf("unexpected fallback response: %q", reply.Response)
	}
	if !reply.FollowUp {
		t.Fatal("expected follow-up in fallback reply")
	}
	if !reflect.DeepEqual(reply.ExtractedSymptoms, []string{"fever"}) {
		t.Fatalf("unexpected symptoms: %v", reply.ExtractedSymptoms)
	}
}

func TestRespond_NilClientUsesFallback(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	reply := svc.Respond(context.Background(), "hello doctor", nil)

	if reply.Confidence != 0.6 {
		t.Fatalf("expected fallback confidence, got %v", reply.Confidence)
	}
	if !strings.HasPrefix(reply.Response, "Could you describe your symptoms in more detail?") {
		t.Fatalf("unexpected fallback response: %q", reply.Response)
	}
	wantQuestions := []string{
		"When did your symptoms start?",
		"How severe are your symptoms?",
		"What makes them better or worse?",
	}
	if !reflect.DeepEqual(reply.SuggestedQuestions, wantQuestions) {
		t.Fatalf("unexpected questions: %v", reply.SuggestedQuestions)
	}
}

func TestNeedsFollowUp(t *testing.T) {
	three := []string{"fever", "cough", "rash"}
	cases := []struct {
		response string
		symptoms []string
		want     bool
	}{
		{"Please tell me more about the onset.", three, true},
		{"Anything else?", three, true},
		{"COULD YOU describe the pain?", three, true},
		{"Rest and hydrate.", three, false},
		{"Rest and hydrate.", []string{"fever"}, true},
	}
	for _, tc := range cases {
		if got := needsFollowUp(tc.response, tc.symptoms); got != tc.want {
			t.Errorf("needsFollowUp(%q, %d symptoms) = %v, want %v", tc.response, len(tc.symptoms), got, tc.want)
		}
	}
}

func TestSuggestedQuestions_PainTakesPriority(t *testing.T) {
	got := suggestedQuestions([]string{"chest pain", "fever"})

	want := []string{
		"How would you rate the pain on a scale of 1-10?",
		"When did the pain start?",
		"What makes the pain better or worse?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected pain questions first, got %v", got)
	}
}
