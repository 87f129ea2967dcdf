package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
)

func newTestStore(cfg StoreConfig) *Store {
	return NewStore(cfg, func(id string) *Session {
		return New(id, &mockCatalog{menus: [][]menu.Item{testMenu()}}, &mockSubmitter{}, zap.NewNop())
	})
}

func TestStore_CreateGetDelete(t *testing.T) {
	st := newTestStore(StoreConfig{})

	s, err := st.Create()
	require.NoError(t, err)
	require.NotEmpty(t, s.ID())
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(s.ID()))
	assert.True(t, s.Closed())
	assert.Equal(t, 0, st.Len())

	_, err = st.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(s.ID()), ErrNotFound)
}

func TestStore_UniqueIDs(t *testing.T) {
	st := newTestStore(StoreConfig{})

	seen := make(map[string]bool)
	for range 50 {
		s, err := st.Create()
		require.NoError(t, err)
		require.False(t, seen[s.ID()])
		seen[s.ID()] = true
	}
}

func TestStore_MaxSessions(t *testing.T) {
	st := newTestStore(StoreConfig{MaxSessions: 2})

	a, err := st.Create()
	require.NoError(t, err)
	_, err = st.Create()
	require.NoError(t, err)

	_, err = st.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	require.NoError(t, st.Delete(a.ID()))
	_, err = st.Create()
	assert.NoError(t, err)
}

func TestStore_Sweep(t *testing.T) {
	st := newTestStore(StoreConfig{TTL: time.Minute})

	idle, err := st.Create()
	require.NoError(t, err)
	active, err := st.Create()
	require.NoError(t, err)

	base := time.Now()
	idle.now = func() time.Time { return base.Add(-2 * time.Minute) }
	idle.State()
	active.now = func() time.Time { return base }
	active.State()

	removed := st.Sweep(base)
	assert.Equal(t, 1, removed)
	assert.True(t, idle.Closed())
	assert.False(t, active.Closed())

	_, err = st.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(active.ID())
	assert.NoError(t, err)
}

func TestStore_SweepDisabledWithoutTTL(t *testing.T) {
	st := newTestStore(StoreConfig{})
	_, err := st.Create()
	require.NoError(t, err)

	assert.Equal(t, 0, st.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, st.Len())
}

func TestStore_StartSweeper(t *testing.T) {
	st := newTestStore(StoreConfig{TTL: time.Nanosecond})
	s, err := st.Create()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := make(chan int, 1)
	st.StartSweeper(ctx, 5*time.Millisecond, func(n int) {
		select {
		case swept <- n:
		default:
		}
	})

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not run")
	}
	assert.True(t, s.Closed())
}

func TestStore_CloseAll(t *testing.T) {
	st := newTestStore(StoreConfig{})
	a, _ := st.Create()
	b, _ := st.Create()

	st.CloseAll()

	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Equal(t, 0, st.Len())
}
