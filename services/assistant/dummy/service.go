package dummyassist

import (
	"context"
	"strings"
	"sync"

	"github.com/mustyhq/musty/core/assist"
)

// Service is a canned assistant backend for DEV and tests; it never leaves the
// process.
type Service struct {
	mu       sync.Mutex
	requests []Request

	// Reply overrides the canned output when set.
	Reply string
	// Err is returned as-is when set.
	Err error
}

type Request struct {
	System   string
	Messages []assist.Message
}

var _ assist.Client = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

func (svc *Service) Complete(_ context.Context, system string, messages []assist.Message) (string, error) {
	svc.mu.Lock()
	svc.requests = append(svc.requests, Request{System: system, Messages: messages})
	svc.mu.Unlock()

	if svc.Err != nil {
		return "", svc.Err
	}
	if svc.Reply != "" {
		return svc.Reply, nil
	}

	// the canned replies satisfy each mode's expected output shape
	switch {
	case strings.Contains(system, `"front"`):
		return `[{"front": "What is a graph?", "back": "A set of vertices connected by edges."}]`, nil
	case strings.Contains(system, `"answerIndex"`):
		return `[{"question": "Which traversal uses a queue?", "options": ["DFS", "BFS", "Dijkstra", "Prim"], "answerIndex": 1, "explanation": "BFS visits vertices level by level."}]`, nil
	default:
		last := messages[len(messages)-1]
		return "You asked: " + last.Content, nil
	}
}

// Requests returns every request seen so far.
func (svc *Service) Requests() []Request {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	reqs := make([]Request, len(svc.requests))
	copy(reqs, svc.requests)
	return reqs
}
