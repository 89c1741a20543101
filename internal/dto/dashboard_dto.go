package dto

// ─── Dashboard DTOs ──────────────────────────────────────────────────────────

// DashboardStats mirrors the headline cards on the admin dashboard.
// ExpensesThisMonth is a placeholder that always reads 0 until an expenses
// ledger exists; it is kept so the payload shape stays stable.
type DashboardStats struct {
	TotalSantri         int64 `json:"totalSantri"`
	IncomeThisMonth     int64 `json:"incomeThisMonth"`
	ExpensesThisMonth   int64 `json:"expensesThisMonth"`
	PendingTransactions int64 `json:"pendingTransactions"`
}

// MonthlyIncome is one "YYYY-MM" bucket of paid income.
type MonthlyIncome struct {
	Month  string `json:"month"`
	Income int64  `json:"income"`
}

// JenisBreakdown aggregates paid transaksi per transaction type.
type JenisBreakdown struct {
	Jenis string `json:"jenis"`
	Count int64  `json:"count"`
	Total int64  `json:"total"`
}

// FinancialSummary is the year-to-date rollup. TotalIncome always equals the
// sum of the per-jenis totals in TransactionByType.
type FinancialSummary struct {
	TotalIncome       int64            `json:"totalIncome"`
	TotalExpenses     int64            `json:"totalExpenses"`
	MonthlyIncome     []MonthlyIncome  `json:"monthlyIncome"`
	TransactionByType []JenisBreakdown `json:"transactionByType"`
}

// DashboardResponse is the full GET /api/dashboard payload.
type DashboardResponse struct {
	Stats              DashboardStats      `json:"stats"`
	FinancialSummary   FinancialSummary    `json:"financialSummary"`
	RecentTransactions []TransaksiResponse `json:"recentTransactions"`
}
