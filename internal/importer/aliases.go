// Package importer normalizes loosely-keyed spreadsheet rows into canonical
// santri import fields. Spreadsheets arrive with whatever header spelling the
// operator's template used, so each canonical field probes an ordered list of
// accepted aliases; the first key present in the row wins.
package importer

// Canonical field names resolved by the normalizer.
const (
	FieldNIS      = "nis"
	FieldNama     = "nama"
	FieldKelas    = "kelas"
	FieldAsrama   = "asrama"
	FieldWali     = "wali"
	FieldStatus   = "status"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// FieldAliases maps a canonical field to its ordered candidate keys.
// The table is data, not code: callers may swap in their own table when a
// template drifts, without touching the normalizer.
type FieldAliases map[string][]string

// RequiredFields must resolve non-empty for a row to be importable.
var RequiredFields = []string{FieldNIS, FieldNama, FieldKelas, FieldAsrama, FieldWali, FieldEmail}

// DefaultAliases matches the headers of the distributed xlsx template plus the
// spellings seen in operator-edited copies.
var DefaultAliases = FieldAliases{
	FieldNIS:      {"nis", "NIS", "Nis"},
	FieldNama:     {"nama", "Nama", "NAMA"},
	FieldKelas:    {"kelas", "Kelas", "KELAS"},
	FieldAsrama:   {"asrama", "Asrama", "Nomer Kamar", "Nomer_Kamar", "NomerKamar", "kamar", "Kamar"},
	FieldWali:     {"wali", "Wali", "WALI"},
	FieldStatus:   {"status", "Status", "STATUS"},
	FieldEmail:    {"email", "Email", "EMAIL"},
	FieldPassword: {"password", "Password", "PASSWORD"},
}
