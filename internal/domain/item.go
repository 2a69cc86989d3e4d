package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusSwapped   ItemStatus = "swapped"
	ItemStatusReserved  ItemStatus = "reserved"
)

// Item is a listed garment. The core only reads it and moves its status and
// ownership; listing CRUD lives elsewhere.
type Item struct {
	ID         string
	OwnerID    string
	Title      string
	Status     ItemStatus
	PointValue int
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Exchangeable reports whether the item can be offered, requested, or redeemed.
func (i Item) Exchangeable() bool {
	return i.Status == ItemStatusAvailable && i.IsApproved
}
