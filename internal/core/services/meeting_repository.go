package services

import (
	"context"

	"github.com/call-audit-gateway/internal/core/domain"
)

// MeetingRepository is an append-only, most-recent-first record store.
// FindByID returns (nil, nil) when no record has the given id; absence is a
// normal outcome, not a fault.
type MeetingRepository interface {
	Insert(ctx context.Context, record *domain.MeetingRecord) error
	ListAll(ctx context.Context) ([]domain.MeetingRecord, error)
	FindByID(ctx context.Context, id string) (*domain.MeetingRecord, error)
}
