package model

import (
	"time"

	"github.com/google/uuid"
)

// Santri status values.
const (
	SantriAktif    = "AKTIF"
	SantriNonAktif = "NON_AKTIF"
	SantriLulus    = "LULUS"
	SantriKeluar   = "KELUAR"
)

// Santri is a student record. NIS is the globally unique student number.
// UserID links back to the login account; it is set in the same transaction
// that creates the santri, so a santri without a user only exists transiently.
type Santri struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NIS       string    `gorm:"column:nis;uniqueIndex;not null"`
	Nama      string    `gorm:"index;not null"`
	Kelas     string    `gorm:"not null"`
	Asrama    string    `gorm:"not null"`
	Wali      string    `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'AKTIF'"`
	UserID    *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	User       *User       `gorm:"foreignKey:UserID"`
	Transaksis []Transaksi `gorm:"foreignKey:SantriID"`
}

func (Santri) TableName() string { return "santri" }
