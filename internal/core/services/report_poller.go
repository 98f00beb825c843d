package services

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultPollInterval    = 10 * time.Second
	DefaultTransientBudget = 5
	DefaultPollTimeout     = 15 * time.Minute

	maxTransientBackoff = 2 * time.Minute
)

type ReportResolver interface {
	Resolve(ctx context.Context, meetingID string) Resolution
}

type ReportPollerConfig struct {
	// Interval between attempts while the report is not ready.
	Interval time.Duration
	// TransientBudget caps consecutive transient failures before giving up.
	TransientBudget int
	// Timeout bounds the whole poll, distinct from the transient budget.
	Timeout time.Duration
}

// ReportPoller drives a resolver until the report leaves the not-ready state.
// NotReady polls at a fixed interval until the overall deadline; Transient
// retries with doubling backoff up to the budget; Ready and NotFound stop
// immediately. Cancelling ctx stops the poll at the next wait point.
type ReportPoller struct {
	resolver ReportResolver
	cfg      ReportPollerConfig
}

func NewReportPoller(resolver ReportResolver, cfg ReportPollerConfig) *ReportPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.TransientBudget <= 0 {
		cfg.TransientBudget = DefaultTransientBudget
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	return &ReportPoller{
		resolver: resolver,
		cfg:      cfg,
	}
}

func (p *ReportPoller) Poll(ctx context.Context, meetingID string) (Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	transientLeft := p.cfg.TransientBudget
	backoff := p.cfg.Interval
	var wait time.Duration

	for {
		res := p.resolver.Resolve(ctx, meetingID)
		switch res.Outcome {
		case OutcomeReady, OutcomeNotFound:
			return res, nil
		case OutcomeTransient:
			transientLeft--
			if transientLeft <= 0 {
				return res, fmt.Errorf("transient retry budget exhausted: %w", res.Err)
			}
			// The first retry waits the base interval; only later
			// retries back off.
			wait = backoff
			backoff = min(backoff*2, maxTransientBackoff)
		default:
			transientLeft = p.cfg.TransientBudget
			backoff = p.cfg.Interval
			wait = p.cfg.Interval
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return res, ctx.Err()
		case <-timer.C:
		}
	}
}
