package connection

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// ReconnectDelay is how long the manager waits after a close before
// dialing the server again.
const ReconnectDelay = 5 * time.Second

// Manager owns the connection to the game server. It holds at most one
// physical connection at a time; when that connection closes, for any
// reason, the manager schedules exactly one redial after ReconnectDelay
// and keeps retrying forever. The router and its handlers belong to the
// manager, not to any single physical connection, so registrations
// survive reconnects.
type Manager struct {
	serverURL      string
	dial           Dialer
	router         *Router
	logger         *zap.Logger
	reconnectDelay time.Duration

	onOpen  func(*Manager)
	onClose func(*Manager, error)

	mu             sync.Mutex
	conn           Conn
	state          State
	generation     uint64
	reconnectTimer *time.Timer
	shutdown       bool
}

// NewManager creates a manager for the given server URL. Nothing is
// dialed until Connect is called.
func NewManager(serverURL string, dial Dialer, logger *zap.Logger) *Manager {
	return &Manager{
		serverURL:      serverURL,
		dial:           dial,
		router:         NewRouter(logger),
		logger:         logger,
		reconnectDelay: ReconnectDelay,
		state:          StateConnecting,
	}
}

// Router returns the inbound message router.
func (m *Manager) Router() *Router {
	return m.router
}

// OnOpen sets the callback invoked after every successful connect,
// before any inbound message is dispatched. Set it before Connect.
func (m *Manager) OnOpen(callback func(*Manager)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOpen = callback
}

// OnClose sets the callback invoked when the current connection is
// lost, before the reconnect is scheduled. Set it before Connect.
func (m *Manager) OnClose(callback func(*Manager, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = callback
}

// State returns the current connection lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect dials the server. On failure the redial is scheduled just
// like after a lost connection, so a single Connect call is enough to
// keep the manager trying forever.
func (m *Manager) Connect() error {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	conn, err := m.dial(m.serverURL)
	if err != nil {
		m.logger.Warn("failed to connect to server",
			zap.String("url", m.serverURL),
			zap.Error(err))
		m.scheduleReconnect()
		return err
	}

	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		conn.Close()
		return nil
	}
	m.generation++
	generation := m.generation
	m.conn = conn
	m.state = StateOpen
	onOpen := m.onOpen
	m.mu.Unlock()

	m.logger.Info("connected to server", zap.String("url", m.serverURL))

	if onOpen != nil {
		onOpen(m)
	}
	go m.readPump(generation, conn)
	return nil
}

// Send serializes and transmits a message if the connection is open.
// While the connection is anything but open the message is silently
// dropped: no queueing, no retry. Callers that need confirmation must
// wait for the server's acknowledgement message.
func (m *Manager) Send(msg protocol.ClientMessage) {
	m.mu.Lock()
	conn := m.conn
	open := m.state == StateOpen && conn != nil
	m.mu.Unlock()

	if !open {
		m.logger.Debug("dropping outbound message, connection not open")
		return
	}

	data, err := protocol.EncodeClientMessage(msg)
	if err != nil {
		m.logger.Error("failed to encode outbound message", zap.Error(err))
		return
	}
	if err := conn.WriteMessage(data); err != nil {
		// the read pump will observe the broken connection and reconnect
		m.logger.Warn("failed to send message", zap.Error(err))
	}
}

// Close shuts the manager down for good: the current connection is
// closed and no reconnect will be attempted.
func (m *Manager) Close() {
	m.mu.Lock()
	m.shutdown = true
	m.state = StateClosed
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
	}
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// readPump reads frames off one physical connection until it dies. The
// generation number guards against a superseded connection acting after
// a newer one has been dialed.
func (m *Manager) readPump(generation uint64, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			m.connectionLost(generation, err)
			return
		}
		if !m.isCurrent(generation) {
			return
		}

		msg, err := protocol.DecodeServerMessage(data)
		if err != nil {
			m.logger.Warn("dropping unrecognized message", zap.Error(err))
			continue
		}
		m.router.Dispatch(msg, m)
	}
}

func (m *Manager) connectionLost(generation uint64, cause error) {
	m.mu.Lock()
	if m.shutdown || generation != m.generation {
		m.mu.Unlock()
		return
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.state = StateConnecting
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Warn("connection lost", zap.Error(cause))

	if onClose != nil {
		onClose(m, cause)
	}
	m.scheduleReconnect()
}

func (m *Manager) scheduleReconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shutdown {
		return
	}
	m.reconnectTimer = time.AfterFunc(m.reconnectDelay, func() {
		m.Connect()
	})
}

func (m *Manager) isCurrent(generation uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return generation == m.generation && !m.shutdown
}
