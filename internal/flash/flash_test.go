package flash

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) GetDel(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	v, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	delete(m.data, key)
	cmd.SetVal(v)
	return cmd
}

func TestRedisStore_PutPop(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	s := NewRedisStore(mock, 10*time.Minute)

	require.NoError(t, s.Put(ctx, "sess", Success("Product added to cart!")))
	assert.Equal(t, 10*time.Minute, mock.ttls["storefront:flash:sess"])

	got, err := s.Pop(ctx, "sess")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, "Product added to cart!", got.Text)

	// 2回目は無い
	got, err = s.Pop(ctx, "sess")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_BrokenPayload(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	mock.data["storefront:flash:sess"] = "{"

	_, err := NewRedisStore(mock, time.Minute).Pop(ctx, "sess")
	assert.Error(t, err)
}

func TestMemoryStore_PutPop(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	got, err := s.Pop(ctx, "sess")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, "sess", Error("Your cart is empty!")))
	require.NoError(t, s.Put(ctx, "other", Success("Cart updated!")))

	got, err = s.Pop(ctx, "sess")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, Error("Your cart is empty!"), *got)

	got, err = s.Pop(ctx, "sess")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	require.NoError(t, s.Put(ctx, "sess", Success("x")))
	s.now = func() time.Time { return base.Add(2 * time.Minute) }

	got, err := s.Pop(ctx, "sess")
	require.NoError(t, err)
	assert.Nil(t, got)
}
