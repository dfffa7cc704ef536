package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"syllabus-builder/internal/cache"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/logger"

	"go.uber.org/zap"
)

// cacheWorkspaceStore keeps workspaces as JSON documents in a domain.Cache (redis in production).
type cacheWorkspaceStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheWorkspaceStore stores workspaces in cache. A zero ttl keeps them indefinitely.
func NewCacheWorkspaceStore(c domain.Cache, ttl time.Duration) (domain.WorkspaceStore, error) {
	if c == nil {
		return nil, errors.New("workspace store requires a cache")
	}
	return &cacheWorkspaceStore{cache: c, ttl: ttl}, nil
}

func workspaceKey(sessionID string) string {
	return cache.GenerateCacheKey("workspace", "session", sessionID)
}

func (s *cacheWorkspaceStore) Load(ctx context.Context, sessionID string) (*domain.Workspace, error) {
	key := workspaceKey(sessionID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrWorkspaceNotFound
		}
		logger.Get().Error("Failed to load workspace from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load workspace for key %s", key), err)
	}
	if data == "" {
		return nil, domain.ErrWorkspaceNotFound
	}

	var ws domain.Workspace
	if err := json.Unmarshal([]byte(data), &ws); err != nil {
		logger.Get().Error("Failed to unmarshal workspace", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to decode workspace for key %s", key), err)
	}
	return &ws, nil
}

func (s *cacheWorkspaceStore) Save(ctx context.Context, ws *domain.Workspace) error {
	if ws == nil || ws.SessionID == "" {
		return domain.NewInvalidInputError("cannot store a workspace without a session")
	}
	key := workspaceKey(ws.SessionID)
	data, err := json.Marshal(ws)
	if err != nil {
		return domain.NewInternalError("failed to encode workspace", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save workspace", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to save workspace for key %s", key), err)
	}
	logger.Get().Debug("Workspace saved", zap.String("key", key), zap.String("status", string(ws.Status)))
	return nil
}

func (s *cacheWorkspaceStore) Delete(ctx context.Context, sessionID string) error {
	key := workspaceKey(sessionID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to delete workspace for key %s", key), err)
	}
	return nil
}

func (s *cacheWorkspaceStore) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// memoryWorkspaceStore is the single-process store. Entries are kept encoded so callers
// never share a Workspace value with the store.
type memoryWorkspaceStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryWorkspaceStore returns an in-process store. A zero ttl keeps entries until deleted.
func NewMemoryWorkspaceStore(ttl time.Duration) domain.WorkspaceStore {
	return &memoryWorkspaceStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryWorkspaceStore) Load(_ context.Context, sessionID string) (*domain.Workspace, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	if !entry.expires.IsZero() && s.now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, domain.ErrWorkspaceNotFound
	}

	var ws domain.Workspace
	if err := json.Unmarshal(entry.data, &ws); err != nil {
		return nil, domain.NewInternalError("failed to decode workspace", err)
	}
	return &ws, nil
}

func (s *memoryWorkspaceStore) Save(_ context.Context, ws *domain.Workspace) error {
	if ws == nil || ws.SessionID == "" {
		return domain.NewInvalidInputError("cannot store a workspace without a session")
	}
	data, err := json.Marshal(ws)
	if err != nil {
		return domain.NewInternalError("failed to encode workspace", err)
	}
	now := s.now()
	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expires = now.Add(s.ttl)
	}
	s.mu.Lock()
	s.purgeExpiredLocked(now)
	s.entries[ws.SessionID] = entry
	s.mu.Unlock()
	return nil
}

// purgeExpiredLocked drops entries of sessions that never came back. Callers hold mu.
func (s *memoryWorkspaceStore) purgeExpiredLocked(now time.Time) {
	for id, e := range s.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

func (s *memoryWorkspaceStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *memoryWorkspaceStore) Ping(context.Context) error {
	return nil
}
