package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusInvoiceCreated OrderStatus = "invoice_created"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusExchanged      OrderStatus = "exchanged"
	OrderStatusDown           OrderStatus = "down"
)

// statusTransitions is the full adjacency table. An order may only move
// along these edges; everything else is rejected as an invalid transition.
// invoice_created is reachable from pending because invoice generation may
// run before a manual confirmation.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusInvoiceCreated},
	OrderStatusConfirmed:      {OrderStatusInvoiceCreated, OrderStatusExchanged, OrderStatusDown},
	OrderStatusInvoiceCreated: {OrderStatusShipped},
	OrderStatusShipped:        {OrderStatusCompleted},
	OrderStatusCompleted:      {},
	OrderStatusExchanged:      {},
	OrderStatusDown:           {},
}

func IsValidStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether from → to is a legal edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from the given status.
func NextStatuses(from OrderStatus) []OrderStatus {
	next := statusTransitions[from]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// StatusHistoryEntry is append-only: one row per transition, never
// rewritten. OldStatus is nil for the creation entry.
type StatusHistoryEntry struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64        `gorm:"not null;index" json:"order_id"`
	OldStatus *OrderStatus `gorm:"type:varchar(20)" json:"old_status"`
	NewStatus OrderStatus  `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy string       `gorm:"type:varchar(255);not null" json:"changed_by"`
	Notes     string       `gorm:"type:text" json:"notes"`
	CreatedAt time.Time    `gorm:"not null;index" json:"created_at"`
}

// OrderNote is a free-text admin annotation, append-only like the history.
type OrderNote struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	Author    string    `gorm:"type:varchar(255);not null" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
