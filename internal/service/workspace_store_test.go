package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
	PingFunc   func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

func sampleWorkspace(sessionID string) *domain.Workspace {
	ws := domain.NewWorkspace(sessionID)
	ws.Status = domain.StatusSuccess
	ws.Course = testCourse(2)
	ws.UpdatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return ws
}

func TestCacheWorkspaceStore_Save(t *testing.T) {
	mockCache := &ManualMockCache{}
	ttl := 24 * time.Hour
	store, err := service.NewCacheWorkspaceStore(mockCache, ttl)
	require.NoError(t, err)

	ws := sampleWorkspace("sess-1")
	expected, _ := json.Marshal(ws)

	mockCache.SetFunc = func(ctx context.Context, key string, value string, duration time.Duration) error {
		assert.Equal(t, "syllabus:workspace:session:sess-1", key)
		assert.JSONEq(t, string(expected), value)
		assert.Equal(t, ttl, duration)
		return nil
	}
	assert.NoError(t, store.Save(context.Background(), ws))

	t.Run("missing session", func(t *testing.T) {
		err := store.Save(context.Background(), &domain.Workspace{})
		assert.Equal(t, domain.CodeInvalidInput, domain.CodeOf(err))
	})

	t.Run("cache failure", func(t *testing.T) {
		mockCache.SetFunc = func(ctx context.Context, key string, value string, duration time.Duration) error {
			return errors.New("connection refused")
		}
		err := store.Save(context.Background(), ws)
		assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestCacheWorkspaceStore_Load(t *testing.T) {
	mockCache := &ManualMockCache{}
	store, err := service.NewCacheWorkspaceStore(mockCache, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		ws := sampleWorkspace("sess-2")
		data, _ := json.Marshal(ws)
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			assert.Equal(t, "syllabus:workspace:session:sess-2", key)
			return string(data), nil
		}
		got, err := store.Load(ctx, "sess-2")
		require.NoError(t, err)
		assert.Equal(t, ws.Course.Title, got.Course.Title)
		assert.Equal(t, domain.StatusSuccess, got.Status)
		assert.Len(t, got.Course.Modules, 2)
	})

	t.Run("miss", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "", domain.ErrCacheMiss
		}
		got, err := store.Load(ctx, "sess-2")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("empty value", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "", nil
		}
		_, err := store.Load(ctx, "sess-2")
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("corrupt value", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "{status:", nil
		}
		_, err := store.Load(ctx, "sess-2")
		assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
		assert.Contains(t, err.Error(), "failed to decode workspace")
	})
}

func TestCacheWorkspaceStore_DeleteAndPing(t *testing.T) {
	var deleted string
	mockCache := &ManualMockCache{
		DeleteFunc: func(ctx context.Context, key string) error {
			deleted = key
			return nil
		},
		PingFunc: func(ctx context.Context) error { return nil },
	}
	store, err := service.NewCacheWorkspaceStore(mockCache, 0)
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "sess-3"))
	assert.Equal(t, "syllabus:workspace:session:sess-3", deleted)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewCacheWorkspaceStore_NilCache(t *testing.T) {
	store, err := service.NewCacheWorkspaceStore(nil, time.Hour)
	assert.Nil(t, store)
	assert.Error(t, err)
}

func TestMemoryWorkspaceStore(t *testing.T) {
	store := service.NewMemoryWorkspaceStore(time.Hour)
	ctx := context.Background()

	_, err := store.Load(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	ws := sampleWorkspace("sess-4")
	require.NoError(t, store.Save(ctx, ws))

	got, err := store.Load(ctx, "sess-4")
	require.NoError(t, err)
	assert.Equal(t, ws.Course.Title, got.Course.Title)

	// Loaded values are copies.
	got.Course.Title = "changed"
	again, err := store.Load(ctx, "sess-4")
	require.NoError(t, err)
	assert.Equal(t, ws.Course.Title, again.Course.Title)

	require.NoError(t, store.Delete(ctx, "sess-4"))
	_, err = store.Load(ctx, "sess-4")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	assert.NoError(t, store.Ping(ctx))
}
