package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id     string
	mu     sync.Mutex
	sent   [][]byte
	closed bool
	fail   bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("connection gone")
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Register(7, conn)

	got, ok := r.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID())

	_, ok = r.Lookup(8)
	assert.False(t, ok)
}

func TestRegistry_SecondRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn("c1")
	second := newFakeConn("c2")

	r.Register(7, first)
	r.Register(7, second)

	got, ok := r.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "c2", got.ID())
	assert.True(t, first.isClosed())
	assert.False(t, second.isClosed())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DeregisterStaleConnectionKeepsNewer(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn("c1")
	second := newFakeConn("c2")

	r.Register(7, first)
	r.Register(7, second)

	// the stale connection's teardown must not evict the newer one
	r.Deregister(first)

	got, ok := r.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "c2", got.ID())
}

func TestRegistry_Deregister(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Register(7, conn)
	r.Deregister(conn)

	_, ok := r.Lookup(7)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// deregistering twice is a no-op
	r.Deregister(conn)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := int64(n % 10)
			conn := newFakeConn(fmt.Sprintf("c%d", n))
			r.Register(userID, conn)
			r.Lookup(userID)
			r.Deregister(conn)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
