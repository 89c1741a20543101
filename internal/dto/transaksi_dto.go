package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateTransaksiRequest struct {
	SantriID     string  `json:"santriId"     validate:"required,uuid"`
	Jenis        string  `json:"jenis"        validate:"required"`
	Bulan        *string `json:"bulan"`
	JenisLaundry *string `json:"jenisLaundry"`
	Jumlah       int64   `json:"jumlah"       validate:"min=0"`
	TanggalBayar *string `json:"tanggalBayar" validate:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status"       validate:"required"`
}

// TransaksiFilter narrows GET /api/transaksi. Empty fields match everything.
type TransaksiFilter struct {
	Jenis  string `form:"jenis"`
	Status string `form:"status"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransaksiResponse struct {
	ID           string  `json:"id"`
	Kode         string  `json:"kode"`
	SantriID     string  `json:"santriId"`
	NamaSantri   string  `json:"namaSantri,omitempty"`
	Jenis        string  `json:"jenis"`
	Bulan        *string `json:"bulan,omitempty"`
	JenisLaundry *string `json:"jenisLaundry,omitempty"`
	Jumlah       int64   `json:"jumlah"`
	TanggalBayar *string `json:"tanggalBayar,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}
