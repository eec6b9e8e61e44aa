package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mednex/mednex/internal/platform/llm"
)

const systemPrompt = `You are a medical symptom analysis assistant. Your role is to:
1. Ask clarifying questions about symptoms in a professional, empathetic manner
2. Extract and understand medical symptoms from user descriptions
3. Provide educational information (never diagnose)
4. Always include disclaimers that this is educational, not diagnostic

Guidelines:
- Be empathetic and professional
- Ask specific follow-up questions about symptoms
- Focus on symptom characteristics: duration, severity, triggers, etc.
- Never provide medical diagnoses
- Always recommend consulting healthcare professionals
- Keep responses concise but informative

Remember: This is an EDUCATIONAL tool, not a medical diagnostic system.`

const (
	maxHistoryContext = 10
	replyMaxTokens    = 500
	replyTemperature  = 0.7

	providerConfidence = 0.85
	fallbackConfidence = 0.6
)

// Service drives the conversational symptom collection flow.
type Service struct {
	client llm.Client
	logger zerolog.Logger
}

// NewService creates a chat service. client may be nil, in which case every
// reply comes from the canned fallback flow.
func NewService(client llm.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Respond produces the assistant reply for one user message. Provider
// failures degrade to the canned fallback instead of returning an error.
func (s *Service) Respond(ctx context.Context, message string, history []Message) *Reply {
	if s.client == nil {
		return s.fallbackReply(message)
	}

	messages := make([]llm.Message, 0, maxHistoryContext+1)
	start := len(history) - maxHistoryContext
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	response, err := s.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("chat completion failed")
		return s.fallbackReply(message)
	}

	symptoms := extractSymptoms(message, history)
	return &Reply{
		Response:           response,
		FollowUp:           needsFollowUp(response, symptoms),
		SuggestedQuestions: suggestedQuestions(symptoms),
		ExtractedSymptoms:  symptoms,
		Confidence:         providerConfidence,
	}
}

// needsFollowUp reports whether the reply should prompt the user again,
// either because the assistant asked something or too few symptoms are
// known so far.
func needsFollowUp(response string, symptoms []string) bool {
	lowered := strings.ToLower(response)
	for _, indicator := range []string{"?", "could you", "can you", "would you", "tell me more"} {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return len(symptoms) < 3
}

// suggestedQuestions picks up to three follow-up questions matching the
// symptoms mentioned so far.
func suggestedQuestions(symptoms []string) []string {
	joined := strings.ToLower(strings.Join(symptoms, " "))
	questions := make([]string, 0, 3)

	if strings.Contains(joined, "pain") {
		questions = append(questions,
			"How would you rate the pain on a scale of 1-10?",
			"When did the pain start?",
			"What makes the pain better or worse?",
		)
	}
	if strings.Contains(joined, "fever") {
		questions = append(questions,
			"What is your temperature?",
			"How long have you had the fever?",
			"Do you have chills or sweats?",
		)
	}
	if strings.Contains(joined, "cough") {
		questions = append(questions,
			"Is it a dry cough or do you cough up mucus?",
			"How long have you been coughing?",
			"Is the cough worse at certain times?",
		)
	}
	if len(questions) == 0 {
		questions = []string{
			"How long have you been experiencing these symptoms?",
			"Are there any other symptoms you've noticed?",
			"What makes your symptoms better or worse?",
		}
	}
	if len(questions) > 3 {
		questions = questions[:3]
	}
	return questions
}

func (s *Service) fallbackReply(message string) *Reply {
	symptoms := extractSymptoms(message, nil)

	var response string
	if len(symptoms) > 0 {
		shown := symptoms
		if len(shown) > 3 {
			shown = shown[:3]
		}
		response = "I understand you're experiencing " + strings.Join(shown, ", ") + ". Could you tell me more about when these symptoms started and how severe they are? Please remember this is educational information only - consult a healthcare professional for proper medical advice."
	} else {
		response = "Could you describe your symptoms in more detail? For example, when did they start, how severe are they, and what makes them better or worse? Remember, this is educational information only - please consult a healthcare professional for medical advice."
	}

	return &Reply{
		Response: response,
		FollowUp: true,
		SuggestedQuestions: []string{
			"When did your symptoms start?",
			"How severe are your symptoms?",
			"What makes them better or worse?",
		},
		ExtractedSymptoms: symptoms,
		Confidence:        fallbackConfidence,
	}
}
