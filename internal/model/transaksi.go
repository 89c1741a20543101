package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaksi jenis values.
const (
	JenisSPP      = "SPP"
	JenisSyahriah = "SYAHRIAH"
	JenisUangSaku = "UANG_SAKU"
	JenisLaundry  = "LAUNDRY"
)

// Transaksi status values.
const (
	StatusLunas      = "LUNAS"
	StatusPending    = "PENDING"
	StatusBelumBayar = "BELUM_BAYAR"
	StatusDitolak    = "DITOLAK"
)

// ValidJenis are the accepted transaction types.
var ValidJenis = []string{JenisSPP, JenisSyahriah, JenisUangSaku, JenisLaundry}

// ValidTransaksiStatus are the accepted payment statuses.
var ValidTransaksiStatus = []string{StatusLunas, StatusPending, StatusBelumBayar, StatusDitolak}

// IsValidJenis reports whether jenis is a known transaction type.
func IsValidJenis(jenis string) bool {
	for _, j := range ValidJenis {
		if j == jenis {
			return true
		}
	}
	return false
}

// IsValidTransaksiStatus reports whether status is a known payment status.
func IsValidTransaksiStatus(status string) bool {
	for _, s := range ValidTransaksiStatus {
		if s == status {
			return true
		}
	}
	return false
}

// Transaksi is a payment/disbursement record. Jumlah is in whole rupiah —
// integer only, never floats. Rows are immutable once created.
type Transaksi struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kode         string    `gorm:"uniqueIndex;not null"`
	SantriID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Jenis        string    `gorm:"type:varchar(20);index;not null"`
	Bulan        *string
	JenisLaundry *string
	Jumlah       int64  `gorm:"not null"`
	TanggalBayar *time.Time
	Status       string `gorm:"type:varchar(20);index;not null"`
	CreatedAt    time.Time

	Santri *Santri `gorm:"foreignKey:SantriID"`
}

func (Transaksi) TableName() string { return "transaksi" }
