package domain

import "time"

// User carries the point balance. The balance is only ever changed through
// conditional updates in the store, so Points here is a snapshot, never a
// value to do arithmetic on.
type User struct {
	ID        string
	Username  string
	Points    int
	CreatedAt time.Time
}
