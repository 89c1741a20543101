package dto

import "encoding/json"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateSantriRequest covers the single-creation path. Email and Password are
// required only when UserID is absent (the service creates the login account
// itself in that case); the conditional check lives in the service.
type CreateSantriRequest struct {
	NIS      string `json:"nis"      validate:"required"`
	Nama     string `json:"nama"     validate:"required"`
	Kelas    string `json:"kelas"    validate:"required"`
	Asrama   string `json:"asrama"   validate:"required"`
	Wali     string `json:"wali"     validate:"required"`
	Status   string `json:"status"   validate:"omitempty,oneof=AKTIF NON_AKTIF LULUS KELUAR"`
	UserID   string `json:"userId"   validate:"omitempty,uuid"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// UpdateSantriRequest carries partial-field semantics: only non-nil fields
// overwrite the stored record.
type UpdateSantriRequest struct {
	NIS      *string `json:"nis"`
	Nama     *string `json:"nama"`
	Kelas    *string `json:"kelas"`
	Asrama   *string `json:"asrama"`
	Wali     *string `json:"wali"`
	Status   *string `json:"status"   validate:"omitempty,oneof=AKTIF NON_AKTIF LULUS KELUAR"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// SantriPostBody is the raw POST /api/santri body. When Bulk is set, Santri
// holds loosely-keyed spreadsheet rows for the import normalizer; otherwise
// the remaining fields describe a single record. Raw rows are kept as
// json.RawMessage so single-record fields and bulk rows can share one route.
type SantriPostBody struct {
	Bulk   bool              `json:"bulk"`
	Santri []json.RawMessage `json:"santri"`

	CreateSantriRequest
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SantriResponse struct {
	ID        string `json:"id"`
	NIS       string `json:"nis"`
	Nama      string `json:"nama"`
	Kelas     string `json:"kelas"`
	Asrama    string `json:"asrama"`
	Wali      string `json:"wali"`
	Status    string `json:"status"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"createdAt"`
}
