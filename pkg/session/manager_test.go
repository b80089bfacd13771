package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/domain"
	"github.com/lbatista/espalier/pkg/ports"
)

// slowStore counts how many request cycles touch it at once; any overlap
// means the per-session serialization is broken.
type slowStore struct {
	ports.SessionStore
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (s *slowStore) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	if s.inFlight.Add(1) > 1 {
		s.overlap.Store(true)
	}
	defer s.inFlight.Add(-1)
	time.Sleep(2 * time.Millisecond)
	return s.SessionStore.Load(ctx, sessionID)
}

func TestManager_SerializesSameSession(t *testing.T) {
	store := &slowStore{SessionStore: memory.NewStore()}
	m := NewManager(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s-1", &domain.SessionState{QuestionnaireID: "QST-1"}))

	// Each cycle reads the state, appends one answer, writes it back.
	var wg sync.WaitGroup
	const writers = 8
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "s-1", func(ctx context.Context) error {
				state, err := m.Store().Load(ctx, "s-1")
				if err != nil {
					return err
				}
				state.Answers = append(state.Answers, domain.AnswerRecord{
					QuestionCode: "Q1", Value: domain.TextValue("x"),
				})
				return m.Store().Save(ctx, "s-1", state)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, store.overlap.Load(), "read-merge-write cycles overlapped")

	state, err := m.Load(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, state.Answers, writers, "a concurrent merge was lost")
}

func TestManager_ReleasesLockEntries(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, m.WithLock(ctx, "s-1", func(context.Context) error { return nil }))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks, "lock entry leaked after release")
}

func TestManager_PropagatesErrors(t *testing.T) {
	m := NewManager(memory.NewStore())
	sentinel := errors.New("boom")

	err := m.WithLock(context.Background(), "s-1", func(context.Context) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

// recordingLocker captures the distributed lock lifecycle.
type recordingLocker struct {
	locked    atomic.Int32
	unlocked  atomic.Int32
	unlockErr error
	failLock  bool
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.failLock {
		return nil, errors.New("lock held elsewhere")
	}
	l.locked.Add(1)
	return func(ctx context.Context) error {
		l.unlocked.Add(1)
		return l.unlockErr
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	t.Run("locks and unlocks around the critical section", func(t *testing.T) {
		locker := &recordingLocker{}
		m := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(time.Second))

		require.NoError(t, m.WithLock(context.Background(), "s-1", func(context.Context) error { return nil }))
		assert.Equal(t, int32(1), locker.locked.Load())
		assert.Equal(t, int32(1), locker.unlocked.Load())
	})

	t.Run("lock failure aborts the operation", func(t *testing.T) {
		m := NewManager(memory.NewStore(), WithLocker(&recordingLocker{failLock: true}))

		called := false
		err := m.WithLock(context.Background(), "s-1", func(context.Context) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("unlock failure is swallowed, TTL covers it", func(t *testing.T) {
		locker := &recordingLocker{unlockErr: errors.New("connection reset")}
		m := NewManager(memory.NewStore(), WithLocker(locker))

		err := m.WithLock(context.Background(), "s-1", func(context.Context) error { return nil })
		assert.NoError(t, err)
	})
}
