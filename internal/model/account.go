package model

import (
	"time"

	"github.com/google/uuid"
)

// ProviderCredential is the only provider this deployment issues.
const ProviderCredential = "credential"

// Account holds a credential tied one-to-one with a User.
// AccountID mirrors the user's email; Password is a bcrypt hash.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountID  string    `gorm:"not null"`
	ProviderID string    `gorm:"type:varchar(30);not null;default:'credential'"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Password   string    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
