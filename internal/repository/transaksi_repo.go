package repository

import (
	"context"
	"time"

	"santripay/internal/dto"
	"santripay/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransaksiRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaksi) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaksi, error)
	List(ctx context.Context, filter dto.TransaksiFilter) ([]model.Transaksi, error)
	Recent(ctx context.Context, limit int) ([]model.Transaksi, error)
	NextKodeNumber(ctx context.Context, tx *gorm.DB) (int, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountBySantri(ctx context.Context, santriID uuid.UUID) (int64, error)
	DeleteBySantri(ctx context.Context, tx *gorm.DB, santriID uuid.UUID) error
	// SumPaidSince returns SUM(jumlah) over LUNAS rows created at or after
	// since. Integer SQL aggregation — amounts never pass through floats.
	SumPaidSince(ctx context.Context, since time.Time) (int64, error)
	MonthlyPaidTotals(ctx context.Context, since time.Time) ([]dto.MonthlyIncome, error)
	PaidTotalsByJenis(ctx context.Context, since time.Time) ([]dto.JenisBreakdown, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type transaksiRepo struct{ db *gorm.DB }

func NewTransaksiRepository(db *gorm.DB) TransaksiRepository { return &transaksiRepo{db: db} }

func (r *transaksiRepo) DB() *gorm.DB { return r.db }

func (r *transaksiRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaksi) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transaksiRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaksi, error) {
	var t model.Transaksi
	err := r.db.WithContext(ctx).Preload("Santri").First(&t, id).Error
	return &t, err
}

func (r *transaksiRepo) List(ctx context.Context, filter dto.TransaksiFilter) ([]model.Transaksi, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaksi{})
	if filter.Jenis != "" {
		q = q.Where("jenis = ?", filter.Jenis)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var rows []model.Transaksi
	err := q.Preload("Santri").Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *transaksiRepo) Recent(ctx context.Context, limit int) ([]model.Transaksi, error) {
	var rows []model.Transaksi
	err := r.db.WithContext(ctx).Preload("Santri").
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *transaksiRepo) NextKodeNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic kode generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('transaksi_kode_seq')").Scan(&num).Error
	return num, err
}

func (r *transaksiRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaksi{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *transaksiRepo) CountBySantri(ctx context.Context, santriID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaksi{}).Where("santri_id = ?", santriID).Count(&count).Error
	return count, err
}

func (r *transaksiRepo) DeleteBySantri(ctx context.Context, tx *gorm.DB, santriID uuid.UUID) error {
	return tx.WithContext(ctx).Where("santri_id = ?", santriID).Delete(&model.Transaksi{}).Error
}

func (r *transaksiRepo) SumPaidSince(ctx context.Context, since time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.Transaksi{}).
		Select("COALESCE(SUM(jumlah), 0)").
		Where("status = ? AND created_at >= ?", model.StatusLunas, since).
		Scan(&sum).Error
	return sum, err
}

func (r *transaksiRepo) MonthlyPaidTotals(ctx context.Context, since time.Time) ([]dto.MonthlyIncome, error) {
	var rows []dto.MonthlyIncome
	err := r.db.WithContext(ctx).Model(&model.Transaksi{}).
		Select("to_char(created_at, 'YYYY-MM') AS month, COALESCE(SUM(jumlah), 0) AS income").
		Where("status = ? AND created_at >= ?", model.StatusLunas, since).
		Group("to_char(created_at, 'YYYY-MM')").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *transaksiRepo) PaidTotalsByJenis(ctx context.Context, since time.Time) ([]dto.JenisBreakdown, error) {
	var rows []dto.JenisBreakdown
	err := r.db.WithContext(ctx).Model(&model.Transaksi{}).
		Select("jenis, COUNT(*) AS count, COALESCE(SUM(jumlah), 0) AS total").
		Where("status = ? AND created_at >= ?", model.StatusLunas, since).
		Group("jenis").
		Order("jenis ASC").
		Scan(&rows).Error
	return rows, err
}
