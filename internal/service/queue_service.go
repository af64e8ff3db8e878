package service

import (
	"context"
	"sync"

	"analysis/toolutil/internal/store"
	"analysis/toolutil/internal/tmpdir"
)

// QueueService is the gateway's view of the store: results are pushed onto
// lists and work items are popped from sets.
type QueueService interface {
	Push(ctx context.Context, list, value string) error
	PopRandom(ctx context.Context, set string) (string, bool, error)
	TempDir() string
}

// Session is the part of *store.Conn the service relies on.
type Session interface {
	Push(ctx context.Context, list, value string) error
	PopRandom(ctx context.Context, set string) (string, bool, error)
}

type queueService struct {
	mu      sync.Mutex
	session Session
	paths   *tmpdir.Provider
}

// NewQueueService wraps a single store session. The session is not safe for
// concurrent use, so every call is serialized here.
func NewQueueService(session Session, paths *tmpdir.Provider) QueueService {
	return &queueService{session: session, paths: paths}
}

func (s *queueService) Push(ctx context.Context, list, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Push(ctx, list, value)
}

func (s *queueService) PopRandom(ctx context.Context, set string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.PopRandom(ctx, set)
}

func (s *queueService) TempDir() string {
	return s.paths.Get()
}

// ensure the store connection satisfies Session
var _ Session = (*store.Conn)(nil)
