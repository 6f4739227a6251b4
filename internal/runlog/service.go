package runlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=runlog
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for keys and execution times.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record stores the outcome of one run.
func (s *Service) Record(ctx context.Context, clientID, clientName, period, status, message string) (*Entry, error) {
	at := s.now()

	e := &Entry{
		ID:         uuid.New(),
		Key:        Key(clientID, period, at),
		ClientID:   clientID,
		ClientName: clientName,
		Period:     period,
		ExecutedAt: at,
		Status:     status,
		Message:    truncate(message, MaxMessageLength),
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("recording run %s: %w", e.Key, err)
	}

	return e, nil
}

// Recent returns the latest entries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return s.repo.ListRecent(ctx, limit)
}
