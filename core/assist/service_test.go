package assist

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/academic"
)

// fakeClient returns a canned reply and records the prompt it was given.
type fakeClient struct {
	reply  string
	err    error
	system string
}

func (c *fakeClient) Complete(_ context.Context, system string, _ []Message) (string, error) {
	c.system = system
	return c.reply, c.err
}

var ctx = context.Background()

func userSays(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

func Test_service_Generate_validation(t *testing.T) {
	client := &fakeClient{reply: "hi"}
	svc := NewService(client)

	t.Run("unknown mode", func(t *testing.T) {
		_, err := svc.Generate(ctx, "karaoke", userSays("hi"), academic.Info{})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, ErrUnknownMode, errors.Cause(vErr.Err))
	})

	t.Run("no messages", func(t *testing.T) {
		_, err := svc.Generate(ctx, ModeChat, nil, academic.Info{})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, ErrNoMessages, errors.Cause(vErr.Err))
	})

	t.Run("bad role", func(t *testing.T) {
		_, err := svc.Generate(ctx, ModeChat, []Message{{Role: "narrator", Content: "hi"}}, academic.Info{})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	assert.Empty(t, client.system, "invalid requests never reach the model")
}

func Test_service_Generate_chat(t *testing.T) {
	client := &fakeClient{reply: "Dijkstra relaxes edges."}
	svc := NewService(client)

	info := academic.Info{Year: academic.YearSE, Semester: "3", Branch: "COMP"}
	resp, err := svc.Generate(ctx, ModeChat, userSays("Explain Dijkstra"), info)
	require.NoError(t, err)
	assert.Equal(t, "Dijkstra relaxes edges.", resp.Content)
	assert.Empty(t, resp.Flashcards)
	assert.Empty(t, resp.Quiz)

	// the prompt grounds the model in the student's situation
	assert.Contains(t, client.system, "semester 3")
	assert.Contains(t, client.system, academic.BranchLabel("COMP"))
}

func Test_service_Generate_flashcards(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: `[{"front": "TCP", "back": "reliable"}]`})
		resp, err := svc.Generate(ctx, ModeFlashcards, userSays("networks"), academic.Info{})
		require.NoError(t, err)
		require.Len(t, resp.Flashcards, 1)
		assert.Equal(t, "TCP", resp.Flashcards[0].Front)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: "```json\n[{\"front\": \"TCP\", \"back\": \"reliable\"}]\n```"})
		resp, err := svc.Generate(ctx, ModeFlashcards, userSays("networks"), academic.Info{})
		require.NoError(t, err)
		assert.Len(t, resp.Flashcards, 1)
	})

	t.Run("prose instead of JSON", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: "Sure! Here are your cards..."})
		_, err := svc.Generate(ctx, ModeFlashcards, userSays("networks"), academic.Info{})
		assert.Equal(t, ErrBadModelOutput, errors.Cause(err))
	})

	t.Run("empty array", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: `[]`})
		_, err := svc.Generate(ctx, ModeFlashcards, userSays("networks"), academic.Info{})
		assert.Equal(t, ErrBadModelOutput, errors.Cause(err))
	})
}

func Test_service_Generate_quiz(t *testing.T) {
	valid := `[{"question": "Q?", "options": ["a", "b", "c", "d"], "answerIndex": 2, "explanation": "because"}]`

	t.Run("valid quiz", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: valid})
		resp, err := svc.Generate(ctx, ModeQuiz, userSays("DS"), academic.Info{})
		require.NoError(t, err)
		require.Len(t, resp.Quiz, 1)
		assert.Equal(t, 2, resp.Quiz[0].AnswerIndex)
	})

	t.Run("answer out of range", func(t *testing.T) {
		svc := NewService(&fakeClient{reply: `[{"question": "Q?", "options": ["a", "b"], "answerIndex": 5}]`})
		_, err := svc.Generate(ctx, ModeQuiz, userSays("DS"), academic.Info{})
		assert.Equal(t, ErrBadModelOutput, errors.Cause(err))
	})
}

func Test_service_Generate_clientError(t *testing.T) {
	svc := NewService(&fakeClient{err: errors.New("rate limited")})
	_, err := svc.Generate(ctx, ModeChat, userSays("hi"), academic.Info{})
	assert.EqualError(t, errors.Cause(err), "rate limited")
}
