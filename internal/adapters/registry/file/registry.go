// Package file persists the meeting registry as a single JSON array,
// most-recent-first. Writes are a read-modify-write of the whole collection,
// guarded by a flock across processes and a mutex within one, and committed
// with an atomic rename so readers never observe a torn file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/call-audit-gateway/internal/core/domain"
	"github.com/call-audit-gateway/internal/logging"
)

const lockRetryDelay = 25 * time.Millisecond

type MeetingRepository struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
	log  zerolog.Logger
}

func NewMeetingRepository(path string) *MeetingRepository {
	return &MeetingRepository{
		path: path,
		lock: flock.New(path + ".lock"),
		log:  logging.WithComponent("registry.file"),
	}
}

func (r *MeetingRepository) Insert(ctx context.Context, record *domain.MeetingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("locking registry: %w", err)
	}
	if !locked {
		return errors.New("registry lock unavailable")
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.log.Warn().Err(err).Msg("releasing registry lock")
		}
	}()

	records := r.readAll()
	records = append([]domain.MeetingRecord{*record}, records...)
	return r.writeAll(records)
}

func (r *MeetingRepository) ListAll(ctx context.Context) ([]domain.MeetingRecord, error) {
	// The file is only ever replaced atomically, so reads need no lock.
	return r.readAll(), nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	for _, record := range r.readAll() {
		if record.ID == id {
			copied := record
			return &copied, nil
		}
	}
	return nil, nil
}

// readAll treats a missing or unreadable backing file as an empty collection
// to keep first-run behavior simple. Corruption is logged so it is not
// silently masked.
func (r *MeetingRepository) readAll() []domain.MeetingRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", r.path).Msg("registry file unreadable, treating as empty")
		}
		return nil
	}

	var records []domain.MeetingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("registry file corrupt, treating as empty")
		return nil
	}
	return records
}

func (r *MeetingRepository) writeAll(records []domain.MeetingRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	pending, err := renameio.NewPendingFile(r.path)
	if err != nil {
		return fmt.Errorf("creating pending registry file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			r.log.Debug().Err(err).Msg("cleanup pending registry file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing registry file: %w", err)
	}
	return nil
}
