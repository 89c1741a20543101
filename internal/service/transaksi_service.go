package service

import (
	"context"
	"fmt"
	"time"

	"santripay/internal/config"
	"santripay/internal/dto"
	"santripay/internal/infra"
	"santripay/internal/model"
	"santripay/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransaksiService interface {
	Create(ctx context.Context, req dto.CreateTransaksiRequest) (*dto.TransaksiResponse, error)
	List(ctx context.Context, filter dto.TransaksiFilter) ([]dto.TransaksiResponse, error)
	Recent(ctx context.Context) ([]dto.TransaksiResponse, error)
	// Kwitansi renders the receipt PDF for a LUNAS transaksi and returns the
	// file path. Non-paid rows are refused.
	Kwitansi(ctx context.Context, id uuid.UUID) (string, error)
}

type transaksiService struct {
	transaksi repository.TransaksiRepository
	santri    repository.SantriRepository
	cfg       *config.Config
}

func NewTransaksiService(
	transaksi repository.TransaksiRepository,
	santri repository.SantriRepository,
	cfg *config.Config,
) TransaksiService {
	return &transaksiService{transaksi: transaksi, santri: santri, cfg: cfg}
}

// Create records a payment. The kode is drawn from a database sequence inside
// the insert transaction, so concurrent creates never collide.
func (s *transaksiService) Create(ctx context.Context, req dto.CreateTransaksiRequest) (*dto.TransaksiResponse, error) {
	if !model.IsValidJenis(req.Jenis) {
		return nil, ErrInvalidJenis
	}
	if !model.IsValidTransaksiStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	santriID, err := uuid.Parse(req.SantriID)
	if err != nil {
		return nil, ErrSantriNotFound
	}
	santri, err := s.santri.FindByID(ctx, santriID)
	if err != nil {
		return nil, ErrSantriNotFound
	}

	var tanggalBayar *time.Time
	if req.TanggalBayar != nil && *req.TanggalBayar != "" {
		parsed, err := time.Parse("2006-01-02", *req.TanggalBayar)
		if err != nil {
			return nil, err
		}
		tanggalBayar = &parsed
	}

	t := &model.Transaksi{
		SantriID:     santri.ID,
		Jenis:        req.Jenis,
		Bulan:        req.Bulan,
		JenisLaundry: req.JenisLaundry,
		Jumlah:       req.Jumlah,
		TanggalBayar: tanggalBayar,
		Status:       req.Status,
	}

	txErr := runTx(ctx, s.transaksi.DB(), func(tx *gorm.DB) error {
		num, err := s.transaksi.NextKodeNumber(ctx, tx)
		if err != nil {
			return err
		}
		t.Kode = fmt.Sprintf("TRX-%06d", num)
		return s.transaksi.Create(ctx, tx, t)
	})
	if txErr != nil {
		return nil, txErr
	}

	t.Santri = santri
	resp := transaksiToResponse(t)
	return &resp, nil
}

func (s *transaksiService) List(ctx context.Context, filter dto.TransaksiFilter) ([]dto.TransaksiResponse, error) {
	if filter.Jenis != "" && !model.IsValidJenis(filter.Jenis) {
		return nil, ErrInvalidJenis
	}
	if filter.Status != "" && !model.IsValidTransaksiStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	rows, err := s.transaksi.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transaksiToResponses(rows), nil
}

func (s *transaksiService) Recent(ctx context.Context) ([]dto.TransaksiResponse, error) {
	rows, err := s.transaksi.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	return transaksiToResponses(rows), nil
}

func (s *transaksiService) Kwitansi(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := s.transaksi.FindByID(ctx, id)
	if err != nil {
		return "", ErrTransaksiNotFound
	}
	if t.Status != model.StatusLunas {
		return "", ErrKwitansiNotPaid
	}
	storagePath := "/tmp/santripay/kwitansi"
	if s.cfg != nil && s.cfg.PDFStoragePath != "" {
		storagePath = s.cfg.PDFStoragePath
	}
	return infra.GenerateKwitansiPDF(t, storagePath)
}

func transaksiToResponse(t *model.Transaksi) dto.TransaksiResponse {
	resp := dto.TransaksiResponse{
		ID:           t.ID.String(),
		Kode:         t.Kode,
		SantriID:     t.SantriID.String(),
		Jenis:        t.Jenis,
		Bulan:        t.Bulan,
		JenisLaundry: t.JenisLaundry,
		Jumlah:       t.Jumlah,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.TanggalBayar != nil {
		formatted := t.TanggalBayar.Format("2006-01-02")
		resp.TanggalBayar = &formatted
	}
	if t.Santri != nil {
		resp.NamaSantri = t.Santri.Nama
	}
	return resp
}

func transaksiToResponses(rows []model.Transaksi) []dto.TransaksiResponse {
	resp := make([]dto.TransaksiResponse, len(rows))
	for i := range rows {
		resp[i] = transaksiToResponse(&rows[i])
	}
	return resp
}
