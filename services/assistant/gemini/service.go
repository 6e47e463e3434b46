package geminiassist

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/assist"
)

type service struct {
	client *genai.Client
	model  string
}

var _ assist.Client = (*service)(nil)

func NewService(ctx context.Context, conf *core.Config) (*service, error) {
	if conf.Assistant.APIKey == "" {
		return nil, errors.New("assistant API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: conf.Assistant.APIKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &service{client: client, model: conf.Assistant.Model}, nil
}

// contentRole maps a chat role onto the two roles the Gemini API accepts.
// System messages are folded into the user turn; the system prompt proper
// travels as SystemInstruction.
func contentRole(role string) genai.Role {
	if role == assist.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func (svc *service) Complete(ctx context.Context, system string, messages []assist.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		contents = append(contents, genai.NewContentFromText(m.Content, contentRole(m.Role)))
	}

	result, err := svc.client.Models.GenerateContent(ctx, svc.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}
	return result.Text(), nil
}
