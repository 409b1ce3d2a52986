package engine

import (
	"context"
	"sync"
)

// Stub is an in-memory Transport. It records every command and answers from
// Replies, falling back to an empty reply.
type Stub struct {
	mu      sync.Mutex
	Replies map[string]string
	Errors  map[string]error
	calls   []string
	closed  bool
}

var _ Transport = (*Stub)(nil)

// NewStub returns a Stub with no canned replies.
func NewStub() *Stub {
	return &Stub{Replies: map[string]string{}, Errors: map[string]error{}}
}

func (s *Stub) Cmd(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.calls = append(s.calls, text)
	if err, ok := s.Errors[text]; ok {
		return "", err
	}
	return s.Replies[text], nil
}

// Reply sets the canned reply for text.
func (s *Stub) Reply(text, reply string) {
	s.mu.Lock()
	s.Replies[text] = reply
	s.mu.Unlock()
}

// Fail makes text return err.
func (s *Stub) Fail(text string, err error) {
	s.mu.Lock()
	s.Errors[text] = err
	s.mu.Unlock()
}

// Calls returns the commands received so far, in order.
func (s *Stub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Reset forgets recorded calls.
func (s *Stub) Reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

func (s *Stub) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
