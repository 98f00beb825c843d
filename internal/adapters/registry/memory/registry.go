package memory

import (
	"context"
	"sync"

	"github.com/call-audit-gateway/internal/core/domain"
)

type MeetingRepository struct {
	mu      sync.RWMutex
	records []domain.MeetingRecord
}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{}
}

func (r *MeetingRepository) Insert(ctx context.Context, record *domain.MeetingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]domain.MeetingRecord{*record}, r.records...)
	return nil
}

func (r *MeetingRepository) ListAll(ctx context.Context) ([]domain.MeetingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MeetingRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.ID == id {
			copied := record
			return &copied, nil
		}
	}
	return nil, nil
}
