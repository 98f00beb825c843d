package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/call-audit-gateway/internal/core/domain"
)

const (
	DefaultGrantTTL = time.Hour

	uploadFolder  = "audio/"
	uploadTypeTag = "advisor-call"
)

type UploadBrokerConfig struct {
	Bucket   string
	GrantTTL time.Duration
}

// UploadBrokerService issues time-limited write credentials for direct
// client-to-store uploads. It never moves bytes itself and never touches the
// meeting registry.
type UploadBrokerService struct {
	store WriteGrantIssuer
	clock Clock
	cfg   UploadBrokerConfig
}

func NewUploadBrokerService(store WriteGrantIssuer, clock Clock, cfg UploadBrokerConfig) *UploadBrokerService {
	if cfg.GrantTTL <= 0 {
		cfg.GrantTTL = DefaultGrantTTL
	}
	return &UploadBrokerService{
		store: store,
		clock: clock,
		cfg:   cfg,
	}
}

// RequestUploadGrant composes a collision-free object key from the issuance
// instant and the sanitized file name, tags the eventual object with
// provenance metadata, and signs a PUT-only authorization scoped to that key.
func (s *UploadBrokerService) RequestUploadGrant(ctx context.Context, fileName, contentType string) (domain.UploadGrant, error) {
	if strings.TrimSpace(fileName) == "" {
		return domain.UploadGrant{}, ErrEmptyFileName
	}
	if s.cfg.Bucket == "" {
		return domain.UploadGrant{}, &ConfigurationError{Key: "AUDIO_UPLOAD_BUCKET"}
	}

	now := s.clock.Now()
	key := fmt.Sprintf("%s%d-%s", uploadFolder, now.UnixMilli(), SanitizeFileName(fileName))

	metadata := map[string]string{
		"original-name": fileName,
		"upload-type":   uploadTypeTag,
		"uploaded-at":   now.UTC().Format(time.RFC3339),
	}

	url, err := s.store.IssueWriteGrant(ctx, s.cfg.Bucket, key, contentType, metadata, s.cfg.GrantTTL)
	if err != nil {
		return domain.UploadGrant{}, &GrantError{Err: err}
	}

	return domain.UploadGrant{
		ObjectKey: key,
		URL:       url,
		ExpiresAt: now.Add(s.cfg.GrantTTL),
	}, nil
}
