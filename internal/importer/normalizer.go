package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"santripay/internal/model"
)

// Row is one loosely-typed spreadsheet row as decoded from JSON or CSV.
type Row map[string]any

// NormalizedRow holds the canonical fields after alias resolution and
// defaulting. Missing required fields are detected by MissingFields, never
// silently discarded — the caller decides how to report them.
type NormalizedRow struct {
	NIS      string
	Nama     string
	Kelas    string
	Asrama   string
	Wali     string
	Status   string
	Email    string
	Password string
}

// MissingFields returns the required canonical fields this row failed to
// resolve, in table order. Empty result means the row is importable.
func (r NormalizedRow) MissingFields() []string {
	byName := map[string]string{
		FieldNIS:    r.NIS,
		FieldNama:   r.Nama,
		FieldKelas:  r.Kelas,
		FieldAsrama: r.Asrama,
		FieldWali:   r.Wali,
		FieldEmail:  r.Email,
	}
	var missing []string
	for _, f := range RequiredFields {
		if byName[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Normalizer resolves rows against a configurable alias table.
type Normalizer struct {
	aliases         FieldAliases
	defaultPassword string
}

// New builds a Normalizer. A nil aliases table falls back to DefaultAliases.
func New(aliases FieldAliases, defaultPassword string) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Normalizer{aliases: aliases, defaultPassword: defaultPassword}
}

// Normalize resolves every canonical field of one row. Status defaults to
// AKTIF and is upper-cased; password falls back to the configured default.
func (n *Normalizer) Normalize(row Row) NormalizedRow {
	out := NormalizedRow{
		NIS:      n.resolve(row, FieldNIS),
		Nama:     n.resolve(row, FieldNama),
		Kelas:    n.resolve(row, FieldKelas),
		Asrama:   n.resolve(row, FieldAsrama),
		Wali:     n.resolve(row, FieldWali),
		Status:   n.resolve(row, FieldStatus),
		Email:    n.resolve(row, FieldEmail),
		Password: n.resolve(row, FieldPassword),
	}
	if out.Status == "" {
		out.Status = model.SantriAktif
	}
	out.Status = strings.ToUpper(out.Status)
	if out.Password == "" {
		out.Password = n.defaultPassword
	}
	return out
}

// FieldForHeader maps a raw CSV/xlsx header cell to its canonical field.
// Used when resolving a header row once instead of probing every data row.
func (n *Normalizer) FieldForHeader(header string) (string, bool) {
	header = strings.TrimSpace(header)
	for field, candidates := range n.aliases {
		for _, c := range candidates {
			if c == header {
				return field, true
			}
		}
	}
	return "", false
}

// resolve probes the alias list for field; first present, non-empty key wins.
func (n *Normalizer) resolve(row Row, field string) string {
	for _, key := range n.aliases[field] {
		if v, ok := row[key]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringify renders a cell value. JSON numbers decode as float64; integral
// ones are printed without the trailing ".0" a plain format would add (NIS
// columns are routinely typed as numbers in spreadsheets).
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
