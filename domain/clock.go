package domain

import "time"

// Clock supplies creation timestamps. Injected so tests can freeze time.
type Clock interface {
	Now() time.Time
}
