package domain

import "time"

// AuditFields holds the timestamps maintained for every persisted record.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
