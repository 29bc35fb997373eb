package domain

// Connection is one live client connection able to receive pushed payloads.
// Implementations must be safe for concurrent Send calls.
type Connection interface {
	// ID returns a process-unique identity for this connection.
	ID() string

	// Send pushes a payload to the client. Fire-and-forget from the
	// caller's point of view: there is no acknowledgement.
	Send(payload []byte) error

	Close() error
}

// PresenceRegistry tracks which users currently hold a live connection.
// State is in-memory only and lost on restart; reconnecting clients must
// re-register. At most one entry per user, last registration wins.
// Implementations must be safe for concurrent use.
type PresenceRegistry interface {
	// Register binds the user to conn, replacing any prior entry.
	Register(userID int64, conn Connection)

	// Deregister removes the entry owned by conn. Removing a connection
	// that was already replaced or never registered is a no-op.
	Deregister(conn Connection)

	// Lookup returns the user's live connection if one exists.
	Lookup(userID int64) (Connection, bool)
}
