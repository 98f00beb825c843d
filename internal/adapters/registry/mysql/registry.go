package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/call-audit-gateway/internal/core/domain"
)

type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Insert(ctx context.Context, record *domain.MeetingRecord) error {
	query := `
		INSERT INTO meetings (id, source_file_name, created_at, display_date, display_time, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SourceFileName,
		record.CreatedAt,
		record.DisplayDate,
		record.DisplayTime,
		record.Status,
	)

	return err
}

func (r *MeetingRepository) ListAll(ctx context.Context) ([]domain.MeetingRecord, error) {
	query := `
		SELECT id, source_file_name, created_at, display_date, display_time, status
		FROM meetings
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MeetingRecord
	for rows.Next() {
		var record domain.MeetingRecord
		err := rows.Scan(
			&record.ID,
			&record.SourceFileName,
			&record.CreatedAt,
			&record.DisplayDate,
			&record.DisplayTime,
			&record.Status,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	query := `
		SELECT id, source_file_name, created_at, display_date, display_time, status
		FROM meetings
		WHERE id = ?
	`

	var record domain.MeetingRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.SourceFileName,
		&record.CreatedAt,
		&record.DisplayDate,
		&record.DisplayTime,
		&record.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
