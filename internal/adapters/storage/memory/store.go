package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/call-audit-gateway/internal/core/services"
)

// ObjectStore keeps objects in a map. Grants are fake URLs; tests complete an
// "upload" by calling Put directly, standing in for the client's direct PUT.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string][]byte),
	}
}

func (s *ObjectStore) makeKey(bucket, key string) string {
	return bucket + "/" + key
}

func (s *ObjectStore) IssueWriteGrant(ctx context.Context, bucket, key, contentType string, metadata map[string]string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("memory://%s/%s", bucket, key), nil
}

func (s *ObjectStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	s.objects[s.makeKey(bucket, key)] = copied
	return nil
}

func (s *ObjectStore) FetchObject(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[s.makeKey(bucket, key)]
	if !exists {
		return nil, fmt.Errorf("%s/%s: %w", bucket, key, services.ErrObjectNotExist)
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (s *ObjectStore) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.objects[s.makeKey(bucket, key)]
	return exists, nil
}

func (s *ObjectStore) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	bucketPrefix := bucket + "/"
	for stored := range s.objects {
		if !strings.HasPrefix(stored, bucketPrefix) {
			continue
		}
		key := strings.TrimPrefix(stored, bucketPrefix)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
