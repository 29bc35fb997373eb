package realtime

import (
	"sync"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

// Registry is the in-process presence table: user ID to live connection.
// Constructed once at wiring time and injected wherever presence is
// consulted; nothing mutates the maps except Register and Deregister.
type Registry struct {
	mu     sync.RWMutex
	byUser map[int64]domain.Connection
	byConn map[string]int64 // connection ID -> user ID, for O(1) deregister
}

var _ domain.PresenceRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[int64]domain.Connection),
		byConn: make(map[string]int64),
	}
}

// Register binds the user to conn. A prior connection for the same user is
// dropped and closed: last registration wins.
func (r *Registry) Register(userID int64, conn domain.Connection) {
	r.mu.Lock()
	old, hadOld := r.byUser[userID]
	if hadOld && old.ID() != conn.ID() {
		delete(r.byConn, old.ID())
	}
	r.byUser[userID] = conn
	r.byConn[conn.ID()] = userID
	r.mu.Unlock()

	if hadOld && old.ID() != conn.ID() {
		_ = old.Close()
	}
}

// Deregister removes conn's entry. If the user has since re-registered
// with a different connection, the newer entry is left untouched.
func (r *Registry) Deregister(conn domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[conn.ID()]
	if !ok {
		return
	}
	delete(r.byConn, conn.ID())

	if current, ok := r.byUser[userID]; ok && current.ID() == conn.ID() {
		delete(r.byUser, userID)
	}
}

func (r *Registry) Lookup(userID int64) (domain.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.byUser[userID]
	return conn, ok
}

// Len reports how many users are currently connected.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser)
}
