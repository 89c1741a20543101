package dto

// ─── Bulk import DTOs ────────────────────────────────────────────────────────

// ImportRowError identifies a rejected row by its NIS (empty when the row had
// none) and the reason it was rejected. Row failures are data, not errors: the
// batch always continues.
type ImportRowError struct {
	NIS   string `json:"nis"`
	Error string `json:"error"`
}

// ImportResult is the outcome of a bulk import. Incomplete rows are counted in
// Failed and reported in Errors — never dropped silently.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Results []SantriResponse `json:"results"`
	Errors  []ImportRowError `json:"errors"`
}
