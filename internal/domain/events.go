package domain

import "time"

const (
	TableOrders   = "orders"
	TableProducts = "products"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent says only that a row in Table changed. It never carries the new
// values; consumers re-fetch the authoritative state from the repositories.
type ChangeEvent struct {
	Table     string    `json:"table"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}
