package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Registry is the in-memory index of authenticated connections keyed by user
// id. A user may hold any number of concurrent connections; each appears in
// the set until its transport closes. All state is process-local: after a
// restart every client must reconnect and re-authenticate.
//
// Register, Unregister, and ConnectionsFor are atomic relative to each other;
// they are invoked concurrently from per-connection read loops and HTTP
// handlers.
type Registry struct {
	mu    sync.RWMutex
	users map[int64]map[string]Conn // userID -> connID -> connection
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[int64]map[string]Conn)}
}

// Register adds conn to userID's live set.
func (r *Registry) Register(userID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.users[userID]
	if set == nil {
		set = make(map[string]Conn)
		r.users[userID] = set
	}
	set[conn.ID()] = conn
}

// Unregister removes conn from userID's live set. When the set becomes empty
// the user entry is dropped entirely. Unknown connections are ignored.
func (r *Registry) Unregister(userID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.users[userID]
	if set == nil {
		return
	}
	delete(set, conn.ID())
	if len(set) == 0 {
		delete(r.users, userID)
	}
}

// ConnectionsFor returns a snapshot of userID's live connections. The slice
// is a copy: callers may iterate it while other goroutines mutate the
// registry, including unregistering connections mid-iteration.
func (r *Registry) ConnectionsFor(userID int64) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.users[userID]
	if len(set) == 0 {
		return nil
	}
	conns := make([]Conn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}

// Online reports whether the user has at least one live connection.
func (r *Registry) Online(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

// Close terminates all tracked connections and clears the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	var conns []Conn
	for _, set := range r.users {
		for _, c := range set {
			conns = append(conns, c)
		}
	}
	r.users = make(map[int64]map[string]Conn)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.CloseGoingAway, "server shutdown")
	}
}
