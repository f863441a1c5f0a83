package lobbies

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/client/connection"
	"github.com/yourusername/shithead-client/internal/protocol"
)

const lobbiesHandlerName = "lobbies.list"

// DefaultPollInterval is how often the browser refreshes the lobby list.
const DefaultPollInterval = 2 * time.Second

// Poller periodically requests the lobby list while started, and keeps
// the latest reply for the browser screen. Ticks that fall while the
// connection is down are dropped by the send contract; the poller does
// not pause or track connectivity itself.
type Poller struct {
	mgr    *connection.Manager
	logger *zap.Logger

	mu      sync.Mutex
	list    []protocol.ExposedLobbyInfo
	done    chan struct{}
	running bool
}

// NewPoller creates a stopped poller over the given manager.
func NewPoller(mgr *connection.Manager, logger *zap.Logger) *Poller {
	return &Poller{
		mgr:    mgr,
		logger: logger,
	}
}

// Start requests the lobby list immediately and then once per interval
// until Stop. Starting a running poller is a no-op.
func (p *Poller) Start(interval time.Duration) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	p.mgr.Router().Register(lobbiesHandlerName, p.handleLobbies)
	p.mgr.Send(protocol.GetLobbies{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.mgr.Send(protocol.GetLobbies{})
			}
		}
	}()
}

// Stop cancels the repeat and drops the poller's interest in replies.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.done)
	p.mu.Unlock()

	p.mgr.Router().Unregister(lobbiesHandlerName)
}

// Lobbies returns the most recently received lobby list.
func (p *Poller) Lobbies() []protocol.ExposedLobbyInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]protocol.ExposedLobbyInfo(nil), p.list...)
}

func (p *Poller) handleLobbies(msg protocol.ServerMessage, _ *connection.Manager) {
	reply, ok := msg.(protocol.Lobbies)
	if !ok {
		return
	}
	p.mu.Lock()
	p.list = reply.List
	p.mu.Unlock()
}
