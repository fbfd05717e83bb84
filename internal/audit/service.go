package audit

import (
	"context"
	"errors"
	"log/slog"

	"blog-platform/internal/auth"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
// It is append-only; there are no Update/Delete methods.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records audit events. Callers treat it as best-effort: use Record,
// which logs failures instead of returning them.
type Service struct {
	repo  Repository
	clock auth.Clock
}

func NewService(repo Repository, clock auth.Clock) *Service {
	if clock == nil {
		clock = auth.SystemClock
	}
	return &Service{repo: repo, clock: clock}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock()
	}
	return s.repo.Append(ctx, e)
}

// Record appends e and logs instead of failing the caller.
func (s *Service) Record(ctx context.Context, log *slog.Logger, e Event) {
	if s == nil {
		return
	}
	if err := s.Append(ctx, e); err != nil {
		log.Warn("audit append failed", "type", e.Type, "err", err)
	}
}
