package echoapi

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core/assist"
)

func Test_assistApi(t *testing.T) {
	app := newTestApp(t)

	t.Run("chat without context", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "chat",
			"messages": []map[string]string{{"role": "user", "content": "Explain BFS"}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp assist.Response
		decodeInto(t, rec, &resp)
		assert.Contains(t, resp.Content, "Explain BFS")
	})

	t.Run("chat with context grounds the prompt", func(t *testing.T) {
		setTestContext(t, app)

		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "chat",
			"messages": []map[string]string{{"role": "user", "content": "Explain BFS"}},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		reqs := app.assistant.Requests()
		require.NotEmpty(t, reqs)
		assert.Contains(t, reqs[len(reqs)-1].System, "semester 3")
	})

	t.Run("flashcards", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "flashcards",
			"messages": []map[string]string{{"role": "user", "content": "graphs"}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp assist.Response
		decodeInto(t, rec, &resp)
		assert.NotEmpty(t, resp.Flashcards)
	})

	t.Run("quiz", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "quiz",
			"messages": []map[string]string{{"role": "user", "content": "graphs"}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp assist.Response
		decodeInto(t, rec, &resp)
		require.NotEmpty(t, resp.Quiz)
		assert.NotEmpty(t, resp.Quiz[0].Options)
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "karaoke",
			"messages": []map[string]string{{"role": "user", "content": "hi"}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no messages", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode": "chat",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable model output", func(t *testing.T) {
		app.assistant.Reply = "I refuse to emit JSON."
		defer func() { app.assistant.Reply = "" }()

		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "flashcards",
			"messages": []map[string]string{{"role": "user", "content": "graphs"}},
		})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("model failure", func(t *testing.T) {
		app.assistant.Err = errors.New("rate limited")
		defer func() { app.assistant.Err = nil }()

		rec := app.request(t, http.MethodPost, "/v1/assist", map[string]interface{}{
			"mode":     "chat",
			"messages": []map[string]string{{"role": "user", "content": "hi"}},
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
