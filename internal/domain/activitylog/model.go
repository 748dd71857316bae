package activitylog

import "time"

// Entry maps to the activity_logs table. OrderID is nil for requests
// that do not concern a single order; the column carries no foreign key
// so entries survive deletion of the order they reference.
type Entry struct {
	ID        int64     `db:"id" json:"id"`
	OrderID   *int64    `db:"order_id" json:"order_id,omitempty"`
	Action    string    `db:"action" json:"action"`
	Endpoint  string    `db:"endpoint" json:"endpoint"`
	Method    string    `db:"method" json:"method"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Details   *string   `db:"details" json:"details,omitempty"`
}
