package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/call-audit-gateway/internal/core/domain"
)

const (
	displayDateFormat = "Jan 2, 2006"
	displayTimeFormat = "3:04 PM"
)

// MeetingService builds and registers meeting records. Records are immutable
// after insertion; the only mutation the registry ever sees is a head insert.
type MeetingService struct {
	repo  MeetingRepository
	clock Clock
}

func NewMeetingService(repo MeetingRepository, clock Clock) *MeetingService {
	return &MeetingService{
		repo:  repo,
		clock: clock,
	}
}

// Register creates a record for a confirmed upload and inserts it at the head
// of the registry.
func (s *MeetingService) Register(ctx context.Context, sourceFileName string) (*domain.MeetingRecord, error) {
	if strings.TrimSpace(sourceFileName) == "" {
		return nil, ErrEmptyFileName
	}

	now := s.clock.Now()
	record := &domain.MeetingRecord{
		ID:             newMeetingID(now),
		SourceFileName: sourceFileName,
		CreatedAt:      now,
		DisplayDate:    now.Format(displayDateFormat),
		DisplayTime:    now.Format(displayTimeFormat),
		Status:         domain.StatusCompleted,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("registering meeting: %w", err)
	}
	return record, nil
}

func (s *MeetingService) List(ctx context.Context) ([]domain.MeetingRecord, error) {
	return s.repo.ListAll(ctx)
}

func (s *MeetingService) Get(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// newMeetingID is timestamp-derived for rough ordering with a random tail for
// uniqueness within the same millisecond.
func newMeetingID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
