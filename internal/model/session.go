package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. Token carries the JWT ID (jti) so a
// bearer token can be revoked by deleting its row. Expired rows are purged by
// the sweeper worker.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
