package service

import (
	"context"
	"time"

	"santripay/internal/dto"
	"santripay/internal/model"
	"santripay/internal/repository"
)

type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
	FinancialSummary(ctx context.Context) (*dto.FinancialSummary, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	santri    repository.SantriRepository
	transaksi repository.TransaksiRepository
	now       func() time.Time
}

func NewDashboardService(
	santri repository.SantriRepository,
	transaksi repository.TransaksiRepository,
) DashboardService {
	return &dashboardService{santri: santri, transaksi: transaksi, now: time.Now}
}

// Stats computes the headline cards: active santri, paid income this calendar
// month, and the pending transaction count. Expenses stay 0 until an expenses
// ledger exists.
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	totalSantri, err := s.santri.CountByStatus(ctx, model.SantriAktif)
	if err != nil {
		return nil, err
	}

	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	income, err := s.transaksi.SumPaidSince(ctx, firstOfMonth)
	if err != nil {
		return nil, err
	}

	pending, err := s.transaksi.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalSantri:         totalSantri,
		IncomeThisMonth:     income,
		ExpensesThisMonth:   0,
		PendingTransactions: pending,
	}, nil
}

// FinancialSummary is the year-to-date rollup: per-month paid income buckets
// and a per-jenis breakdown. All aggregation happens in SQL over integers.
func (s *dashboardService) FinancialSummary(ctx context.Context) (*dto.FinancialSummary, error) {
	now := s.now()
	firstOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	monthly, err := s.transaksi.MonthlyPaidTotals(ctx, firstOfYear)
	if err != nil {
		return nil, err
	}
	byJenis, err := s.transaksi.PaidTotalsByJenis(ctx, firstOfYear)
	if err != nil {
		return nil, err
	}

	var totalIncome int64
	for _, b := range byJenis {
		totalIncome += b.Total
	}

	if monthly == nil {
		monthly = []dto.MonthlyIncome{}
	}
	if byJenis == nil {
		byJenis = []dto.JenisBreakdown{}
	}

	return &dto.FinancialSummary{
		TotalIncome:       totalIncome,
		TotalExpenses:     0,
		MonthlyIncome:     monthly,
		TransactionByType: byJenis,
	}, nil
}

// Dashboard assembles the full GET /api/dashboard payload.
func (s *dashboardService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.FinancialSummary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.transaksi.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats:              *stats,
		FinancialSummary:   *summary,
		RecentTransactions: transaksiToResponses(recent),
	}, nil
}
