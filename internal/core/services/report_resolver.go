package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/call-audit-gateway/internal/core/domain"
)

type Outcome string

const (
	OutcomeReady     Outcome = "ready"
	OutcomeNotReady  Outcome = "not-ready"
	OutcomeNotFound  Outcome = "not-found"
	OutcomeTransient Outcome = "transient-error"
)

// Resolution classifies one report lookup. Meeting is populated whenever the
// identifier resolved, including on NotReady, so callers can keep showing the
// record while polling. Err carries the underlying fault on Transient.
type Resolution struct {
	Outcome Outcome
	Report  *domain.ComplianceReport
	Meeting *domain.MeetingRecord
	Err     error
}

type ReportResolverConfig struct {
	Bucket string
}

// ReportResolverService maps a meeting identifier to its compliance artifact.
// It performs no retries; backoff policy belongs to the polling caller.
type ReportResolverService struct {
	meetings MeetingRepository
	store    ObjectFetcher
	cfg      ReportResolverConfig
}

func NewReportResolverService(meetings MeetingRepository, store ObjectFetcher, cfg ReportResolverConfig) *ReportResolverService {
	return &ReportResolverService{
		meetings: meetings,
		store:    store,
		cfg:      cfg,
	}
}

func (s *ReportResolverService) Resolve(ctx context.Context, meetingID string) Resolution {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return Resolution{Outcome: OutcomeTransient, Err: fmt.Errorf("looking up meeting %s: %w", meetingID, err)}
	}
	if meeting == nil {
		// The identifier itself is invalid; callers must stop polling.
		return Resolution{Outcome: OutcomeNotFound}
	}

	if s.cfg.Bucket == "" {
		return Resolution{
			Outcome: OutcomeTransient,
			Meeting: meeting,
			Err:     &ConfigurationError{Key: "REPORT_BUCKET"},
		}
	}

	key := ReportKey(meeting.SourceFileName)
	data, err := s.store.FetchObject(ctx, s.cfg.Bucket, key)
	if errors.Is(err, ErrObjectNotExist) {
		// Expected while the analysis pipeline has not produced output yet.
		return Resolution{Outcome: OutcomeNotReady, Meeting: meeting}
	}
	if err != nil {
		return Resolution{Outcome: OutcomeTransient, Meeting: meeting, Err: err}
	}

	var report domain.ComplianceReport
	if err := json.Unmarshal(data, &report); err != nil {
		return Resolution{
			Outcome: OutcomeTransient,
			Meeting: meeting,
			Err:     fmt.Errorf("malformed report artifact at %s: %w", key, err),
		}
	}
	return Resolution{Outcome: OutcomeReady, Report: &report, Meeting: meeting}
}
