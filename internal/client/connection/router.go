package connection

import (
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// Handler consumes one inbound server message. Handlers receive every
// message and are expected to ignore the variants they don't care about.
type Handler func(msg protocol.ServerMessage, conn *Manager)

// Router fans every inbound message out to named handlers. Handlers are
// keyed by purpose, not by physical connection, so they survive
// reconnects; whoever registers an entry is responsible for removing it.
type Router struct {
	mu       sync.Mutex
	order    []string
	handlers map[string]Handler
	logger   *zap.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register adds a handler under the given name. Re-registering an
// existing name replaces the handler but keeps its original position in
// the dispatch order.
func (r *Router) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.handlers[name] = handler
}

// Unregister removes the handler with the given name. Removing an
// absent name is a no-op.
func (r *Router) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; !exists {
		return
	}
	delete(r.handlers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Dispatch invokes every handler registered at the moment the call
// begins, in registration order. The iteration runs over a snapshot, so
// handlers may freely register and unregister entries mid-dispatch;
// such changes only take effect for the next dispatch. A panicking
// handler is logged and does not stop the remaining handlers.
func (r *Router) Dispatch(msg protocol.ServerMessage, conn *Manager) {
	r.mu.Lock()
	snapshot := make([]namedHandler, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, namedHandler{name: name, fn: r.handlers[name]})
	}
	r.mu.Unlock()

	for _, entry := range snapshot {
		r.invoke(entry, msg, conn)
	}
}

func (r *Router) invoke(entry namedHandler, msg protocol.ServerMessage, conn *Manager) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("message handler panicked",
				zap.String("handler", entry.name),
				zap.Any("panic", rec))
		}
	}()
	entry.fn(msg, conn)
}

type namedHandler struct {
	name string
	fn   Handler
}
