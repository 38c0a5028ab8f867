package domain

import "time"

// User represents a player account. The core only ever consumes the
// authenticated UserID; authentication itself lives at the edge.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
