package services

import (
	"context"
	"path"
	"strconv"
	"strings"
)

type OrphanSweeperConfig struct {
	Bucket string
}

// OrphanSweeper reconciles the upload store against the registry. Registry
// entries are the source of truth: an object under the upload folder that no
// record references is an orphan, left behind when a client uploaded but
// never registered. The sweep reports orphans; it never deletes them.
type OrphanSweeper struct {
	meetings MeetingRepository
	store    ObjectLister
	cfg      OrphanSweeperConfig
}

func NewOrphanSweeper(meetings MeetingRepository, store ObjectLister, cfg OrphanSweeperConfig) *OrphanSweeper {
	return &OrphanSweeper{
		meetings: meetings,
		store:    store,
		cfg:      cfg,
	}
}

func (s *OrphanSweeper) Sweep(ctx context.Context) ([]string, error) {
	if s.cfg.Bucket == "" {
		return nil, &ConfigurationError{Key: "AUDIO_UPLOAD_BUCKET"}
	}

	keys, err := s.store.ListObjects(ctx, s.cfg.Bucket, uploadFolder)
	if err != nil {
		return nil, err
	}

	records, err := s.meetings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Records may hold either the full storage key or its base name.
	known := make(map[string]struct{}, len(records))
	for _, r := range records {
		known[path.Base(r.SourceFileName)] = struct{}{}
	}

	var orphans []string
	for _, key := range keys {
		if !registered(known, key) {
			orphans = append(orphans, key)
		}
	}
	return orphans, nil
}

// registered reports whether any record references the stored key. Stored
// keys carry a millisecond issuance prefix, so a record registered under the
// original base name still refers to the same object once the prefix is
// stripped.
func registered(known map[string]struct{}, key string) bool {
	base := path.Base(key)
	if _, ok := known[base]; ok {
		return true
	}
	if i := strings.IndexByte(base, '-'); i > 0 {
		if _, err := strconv.ParseInt(base[:i], 10, 64); err == nil {
			if _, ok := known[base[i+1:]]; ok {
				return true
			}
		}
	}
	return false
}
