// Package kb answers study questions from a knowledge base. The proxy
// backend talks to a notebook service over HTTP; the LLM backend answers
// the same operations from an llm.Provider.
package kb

import (
	"context"
	"errors"
	"fmt"
)

// Service is the knowledge-base collaborator used by the tutor and the
// `ask` command.
type Service interface {
	// Query answers a free-form question.
	Query(ctx context.Context, question string) (*Answer, error)

	// RelatedContent lists material related to a topic.
	RelatedContent(ctx context.Context, topic string) ([]Snippet, error)

	// Search finds material mentioning term.
	Search(ctx context.Context, term string) ([]Snippet, error)
}

// Answer is the reply to a Query.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// Snippet is one related-content or search hit.
type Snippet struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// ErrRemoteService is wrapped by every failure that originates in the
// remote knowledge base, whatever the backend.
var ErrRemoteService = errors.New("knowledge base unavailable")

// ErrNotConfigured is returned by New when no backend can be built.
var ErrNotConfigured = errors.New("knowledge base not configured")

// RemoteError reports a non-2xx reply from the proxy.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("knowledge base returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("knowledge base returned HTTP %d", e.Status)
}

func (e *RemoteError) Unwrap() error { return ErrRemoteService }

// remoteErr tags err as a remote failure while keeping it inspectable
// (context cancellation stays visible to errors.Is).
func remoteErr(op string, err error) error {
	if errors.Is(err, ErrRemoteService) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRemoteService, err)
}
