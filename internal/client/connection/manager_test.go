package connection

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// fakeConn is an in-memory Conn that records writes and lets the test
// feed inbound frames or kill the connection.
type fakeConn struct {
	mu     sync.Mutex
	writes [][]byte

	inbound   chan []byte
	dead      chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan []byte, 16),
		dead:    make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case data := <-c.inbound:
		return data, nil
	case <-c.dead:
		return nil, errors.New("connection closed")
	}
}

func (c *fakeConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.dead) })
	return nil
}

func (c *fakeConn) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

func (c *fakeConn) lastWrite() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return nil
	}
	return c.writes[len(c.writes)-1]
}

// fakeDialer hands out a fresh fakeConn per dial and records them.
type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	times []time.Time
}

func (d *fakeDialer) dial(string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	conn := newFakeConn()
	d.conns = append(d.conns, conn)
	d.times = append(d.times, time.Now())
	return conn, nil
}

func (d *fakeDialer) dialTime(i int) time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.times[i]
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

func (d *fakeDialer) conn(i int) *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns[i]
}

func newTestManager(t *testing.T) (*Manager, *fakeDialer) {
	t.Helper()
	dialer := &fakeDialer{}
	m := NewManager("ws://test", dialer.dial, zap.NewNop())
	m.reconnectDelay = 50 * time.Millisecond
	t.Cleanup(m.Close)
	return m, dialer
}

func TestSendBeforeConnectIsDropped(t *testing.T) {
	m, dialer := newTestManager(t)

	m.Send(protocol.GetLobbies{})

	assert.Equal(t, StateConnecting, m.State())
	assert.Equal(t, 0, dialer.dialCount())
}

func TestSendWhileOpenWritesFrame(t *testing.T) {
	m, dialer := newTestManager(t)
	require.NoError(t, m.Connect())
	require.Equal(t, StateOpen, m.State())

	m.Send(protocol.JoinLobby{Id: 5})

	require.Equal(t, 1, dialer.conn(0).writeCount())
	assert.JSONEq(t, `{"joinLobby":{"id":5}}`, string(dialer.conn(0).lastWrite()))
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	m, dialer := newTestManager(t)
	require.NoError(t, m.Connect())
	first := dialer.conn(0)

	first.Close()
	require.Eventually(t, func() bool {
		return m.State() == StateConnecting
	}, time.Second, 5*time.Millisecond)

	m.Send(protocol.GetLobbies{})
	assert.Equal(t, 0, first.writeCount())
}

func TestReconnectAfterClose(t *testing.T) {
	m, dialer := newTestManager(t)
	require.NoError(t, m.Connect())
	require.Equal(t, 1, dialer.dialCount())

	closedAt := time.Now()
	dialer.conn(0).Close()

	require.Eventually(t, func() bool {
		return dialer.dialCount() == 2
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, dialer.dialTime(1).Sub(closedAt), m.reconnectDelay-5*time.Millisecond,
		"redial happened before the reconnect delay")

	// exactly one reconnect per close
	time.Sleep(3 * m.reconnectDelay)
	assert.Equal(t, 2, dialer.dialCount())
	assert.Equal(t, StateOpen, m.State())
}

func TestHandlersSurviveReconnect(t *testing.T) {
	m, dialer := newTestManager(t)

	var mu sync.Mutex
	var seen []protocol.ServerMessage
	m.Router().Register("test", func(msg protocol.ServerMessage, _ *Manager) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, msg)
	})

	require.NoError(t, m.Connect())
	dialer.conn(0).inbound <- []byte(`"startGame"`)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	dialer.conn(0).Close()
	require.Eventually(t, func() bool {
		return dialer.dialCount() == 2 && m.State() == StateOpen
	}, time.Second, 5*time.Millisecond)

	// no re-registration needed on the new physical connection
	dialer.conn(1).inbound <- []byte(`{"error":{"message":"x"}}`)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, protocol.StartGame{}, seen[0])
	assert.Equal(t, protocol.ErrorMessage{Message: "x"}, seen[1])
}

func TestDialFailureKeepsRetrying(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	dial := func(string) (Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return nil, errors.New("connection refused")
	}

	m := NewManager("ws://test", dial, zap.NewNop())
	m.reconnectDelay = 20 * time.Millisecond
	defer m.Close()

	require.Error(t, m.Connect())
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestMalformedInboundFrameIsIgnored(t *testing.T) {
	m, dialer := newTestManager(t)

	var mu sync.Mutex
	var seen []protocol.ServerMessage
	m.Router().Register("test", func(msg protocol.ServerMessage, _ *Manager) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, msg)
	})

	require.NoError(t, m.Connect())
	dialer.conn(0).inbound <- []byte(`{"noSuchVariant":1}`)
	dialer.conn(0).inbound <- []byte(`"startGame"`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, protocol.StartGame{}, seen[0])
}

func TestCloseStopsReconnecting(t *testing.T) {
	m, dialer := newTestManager(t)
	require.NoError(t, m.Connect())

	m.Close()
	assert.Equal(t, StateClosed, m.State())

	// the dead connection must not trigger a redial after shutdown
	time.Sleep(3 * m.reconnectDelay)
	assert.Equal(t, 1, dialer.dialCount())
}
