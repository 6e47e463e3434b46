package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/academic"
)

var (
	// errors
	ErrNoMessages     = errors.New("at least one message is required")
	ErrUnknownMode    = errors.New("unknown assistant mode")
	ErrBadModelOutput = errors.New("could not parse model output")
)

type (
	// Client is the external LLM collaborator. Implementations live under
	// services/assistant; this package never talks to a model directly.
	Client interface {
		Complete(ctx context.Context, system string, messages []Message) (string, error)
	}

	ServiceInterface interface {
		Generate(ctx context.Context, mode Mode, messages []Message, info academic.Info) (Response, error)
	}

	service struct {
		client Client
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(client Client) *service {
	return &service{client: client}
}

// Generate runs one assistant turn in the requested mode, grounding the model
// in the student's academic context.
func (svc *service) Generate(ctx context.Context, mode Mode, messages []Message, info academic.Info) (Response, error) {
	if !ValidMode(mode) {
		return Response{}, core.NewValidationError(ErrUnknownMode,
			core.FieldError{Field: "mode", Error: ErrUnknownMode.Error()})
	}
	if len(messages) == 0 {
		return Response{}, core.NewValidationError(ErrNoMessages,
			core.FieldError{Field: "messages", Error: ErrNoMessages.Error()})
	}
	for _, m := range messages {
		if !validRole(m.Role) {
			return Response{}, core.NewValidationError(errors.Errorf("invalid role %q", m.Role),
				core.FieldError{Field: "messages", Error: "roles must be user, assistant or system"})
		}
	}

	raw, err := svc.client.Complete(ctx, systemPrompt(mode, info), messages)
	if err != nil {
		return Response{}, errors.Wrap(err, "completing")
	}
	return parseResponse(mode, raw)
}

func systemPrompt(mode Mode, info academic.Info) string {
	var b strings.Builder
	b.WriteString("You are a study assistant for an engineering student.")
	if info.IsComplete() {
		fmt.Fprintf(&b, " The student is in %s, semester %s", academic.YearLabel(info.Year), info.Semester)
		if info.Branch != "" {
			fmt.Fprintf(&b, ", branch %s", academic.BranchLabel(info.Branch))
		}
		b.WriteString(".")
		if len(info.Electives) > 0 {
			fmt.Fprintf(&b, " Electives: %s.", strings.Join(info.Electives, ", "))
		}
	}

	switch mode {
	case ModeChat:
		b.WriteString(" Answer questions clearly and concisely in markdown.")
	case ModeFlashcards:
		b.WriteString(` Produce flashcards for the requested topic.
Respond with ONLY a JSON array of objects shaped {"front": string, "back": string}. No prose.`)
	case ModeQuiz:
		b.WriteString(` Produce a multiple-choice quiz for the requested topic.
Respond with ONLY a JSON array of objects shaped
{"question": string, "options": [4 strings], "answerIndex": 0-3, "explanation": string}. No prose.`)
	case ModeMindmap:
		b.WriteString(" Produce a mindmap of the requested topic as a nested markdown bullet list. Respond with only the list.")
	}
	return b.String()
}

func parseResponse(mode Mode, raw string) (Response, error) {
	switch mode {
	case ModeFlashcards:
		var cards []Flashcard
		if err := json.Unmarshal(stripFences(raw), &cards); err != nil || len(cards) == 0 {
			return Response{}, errors.Wrapf(ErrBadModelOutput, "flashcards: %v", err)
		}
		return Response{Flashcards: cards}, nil
	case ModeQuiz:
		var quiz []QuizQuestion
		if err := json.Unmarshal(stripFences(raw), &quiz); err != nil || len(quiz) == 0 {
			return Response{}, errors.Wrapf(ErrBadModelOutput, "quiz: %v", err)
		}
		for i, q := range quiz {
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				return Response{}, errors.Wrapf(ErrBadModelOutput, "quiz: question %d answer out of range", i)
			}
		}
		return Response{Quiz: quiz}, nil
	default:
		return Response{Content: raw}, nil
	}
}

// stripFences tolerates models wrapping JSON in a markdown code fence.
func stripFences(raw string) []byte {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return []byte(s)
}
