package session_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/session"
)

func newManager(vc *clock.Virtual, opts ...session.Option) *session.Manager {
	cat := catalog.Default()
	return session.NewManager(func(string) *playback.Session {
		return playback.New(cat, vc)
	}, vc, opts...)
}

func TestManager_CreateGetDelete(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc)

	info, s, err := m.Create()
	require.NoError(t, err)
	_, err = uuid.Parse(info.ID)
	assert.NoError(t, err, "ids are UUIDs")
	assert.Equal(t, clock.Epoch, info.Created)

	got, err := m.Get(info.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, []string{info.ID}, m.List())

	require.NoError(t, m.Delete(info.ID))
	_, err = m.Get(info.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(info.ID), domain.ErrSessionNotFound)
	assert.Zero(t, m.Len())
}

func TestManager_DeleteDiscardsPlayback(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc)

	info, s, err := m.Create()
	require.NoError(t, err)
	require.True(t, s.Submit("gdit log"))
	require.NoError(t, m.Delete(info.ID))

	vc.RunUntilIdle(0)
	assert.Equal(t, playback.ResetBanner, s.Lines())
}

func TestManager_MaxSessions(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc, session.WithMaxSessions(2))

	for range 2 {
		_, _, err := m.Create()
		require.NoError(t, err)
	}
	_, _, err := m.Create()
	assert.ErrorIs(t, err, domain.ErrTooManySessions)
}

func TestManager_FullRegistrySweepsExpired(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc, session.WithMaxSessions(1), session.WithIdleTTL(time.Minute))

	first, _, err := m.Create()
	require.NoError(t, err)

	vc.Advance(2 * time.Minute)
	second, _, err := m.Create()
	require.NoError(t, err)

	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, []string{second.ID}, m.List())
}

func TestManager_GetKeepsSessionAlive(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc, session.WithIdleTTL(time.Minute))

	info, _, err := m.Create()
	require.NoError(t, err)

	vc.Advance(50 * time.Second)
	_, err = m.Get(info.ID)
	require.NoError(t, err)

	vc.Advance(50 * time.Second)
	assert.Zero(t, m.Sweep())

	seen, err := m.Info(info.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Epoch.Add(50*time.Second), seen.LastSeen)

	vc.Advance(time.Minute)
	assert.Equal(t, 1, m.Sweep())
}

func TestManager_AttachPinsSession(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc, session.WithIdleTTL(time.Minute))

	info, sess, err := m.Create()
	require.NoError(t, err)

	attached, gone, release, err := m.Attach(info.ID)
	require.NoError(t, err)
	assert.Same(t, sess, attached)

	vc.Advance(10 * time.Minute)
	assert.Zero(t, m.Sweep(), "attached session must survive the sweep")

	release()
	release()
	seen, err := m.Info(info.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Epoch.Add(10*time.Minute), seen.LastSeen)

	vc.Advance(30 * time.Second)
	assert.Zero(t, m.Sweep())
	vc.Advance(time.Minute)
	assert.Equal(t, 1, m.Sweep())

	select {
	case <-gone:
	default:
		t.Fatal("gone channel must be closed after eviction")
	}
}

func TestManager_AttachEndsOnDelete(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc)

	info, _, err := m.Create()
	require.NoError(t, err)
	_, gone, release, err := m.Attach(info.ID)
	require.NoError(t, err)
	defer release()

	require.NoError(t, m.Delete(info.ID))
	select {
	case <-gone:
	default:
		t.Fatal("gone channel must be closed after delete")
	}

	_, _, _, err = m.Attach(info.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_IDGenerator(t *testing.T) {
	vc := clock.NewVirtual()
	n := 0
	m := newManager(vc, session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s-%d", n)
	}))

	a, _, err := m.Create()
	require.NoError(t, err)
	b, _, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-2"}, []string{a.ID, b.ID})

	collide := newManager(vc, session.WithIDGenerator(func() string { return "same" }))
	_, _, err = collide.Create()
	require.NoError(t, err)
	_, _, err = collide.Create()
	assert.Error(t, err)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	vc := clock.NewVirtual()
	m := newManager(vc)

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, s, err := m.Create()
			if !assert.NoError(t, err) {
				return
			}
			s.Submit("gdit init")
			ids <- info.ID
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		_, err := m.Get(id)
		assert.NoError(t, err)
	}
	assert.Equal(t, 50, m.Len())
}
