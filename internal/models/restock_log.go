package models

import "time"

// RestockLog is an immutable audit entry written every time a product is restocked.
type RestockLog struct {
	ID        int       `db:"id" json:"id"`
	ProductID int       `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
