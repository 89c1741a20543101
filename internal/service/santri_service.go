package service

import (
	"context"
	"time"

	"santripay/internal/config"
	"santripay/internal/dto"
	"santripay/internal/model"
	"santripay/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SantriService interface {
	Create(ctx context.Context, req dto.CreateSantriRequest) (*dto.SantriResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SantriResponse, error)
	List(ctx context.Context) ([]dto.SantriResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSantriRequest) (*dto.SantriResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type santriService struct {
	santri    repository.SantriRepository
	users     repository.UserRepository
	accounts  repository.AccountRepository
	sessions  repository.SessionRepository
	transaksi repository.TransaksiRepository
	cfg       *config.Config
}

func NewSantriService(
	santri repository.SantriRepository,
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	transaksi repository.TransaksiRepository,
	cfg *config.Config,
) SantriService {
	return &santriService{
		santri:    santri,
		users:     users,
		accounts:  accounts,
		sessions:  sessions,
		transaksi: transaksi,
		cfg:       cfg,
	}
}

// Create registers a santri together with its login account. When req.UserID
// is set the existing account is linked; otherwise a SANTRI-role user and
// credential account are created in the same transaction, so a failure at any
// step leaves no partial records behind.
func (s *santriService) Create(ctx context.Context, req dto.CreateSantriRequest) (*dto.SantriResponse, error) {
	if _, err := s.santri.FindByNIS(ctx, req.NIS); err == nil {
		return nil, ErrDuplicateNIS
	}

	status := req.Status
	if status == "" {
		status = model.SantriAktif
	}

	santri := &model.Santri{
		NIS:    req.NIS,
		Nama:   req.Nama,
		Kelas:  req.Kelas,
		Asrama: req.Asrama,
		Wali:   req.Wali,
		Status: status,
	}

	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		santri.UserID = &user.ID
		txErr := runTx(ctx, s.santri.DB(), func(tx *gorm.DB) error {
			if err := s.santri.Create(ctx, tx, santri); err != nil {
				return err
			}
			return s.users.SetSantriID(ctx, tx, user.ID, santri.ID)
		})
		if txErr != nil {
			return nil, txErr
		}
		santri.User = user
		resp := santriToResponse(santri)
		return &resp, nil
	}

	if req.Email == "" || req.Password == "" {
		return nil, ErrEmailPasswordMissing
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:          req.Nama,
		Email:         req.Email,
		Role:          model.RoleSantri,
		EmailVerified: false,
	}
	txErr := runTx(ctx, s.santri.DB(), func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return err
		}
		account := &model.Account{
			AccountID:  user.Email,
			ProviderID: model.ProviderCredential,
			UserID:     user.ID,
			Password:   string(hash),
		}
		if err := s.accounts.Create(ctx, tx, account); err != nil {
			return err
		}
		santri.UserID = &user.ID
		if err := s.santri.Create(ctx, tx, santri); err != nil {
			return err
		}
		return s.users.SetSantriID(ctx, tx, user.ID, santri.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	santri.User = user
	resp := santriToResponse(santri)
	return &resp, nil
}

func (s *santriService) Get(ctx context.Context, id uuid.UUID) (*dto.SantriResponse, error) {
	santri, err := s.santri.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSantriNotFound
	}
	resp := santriToResponse(santri)
	return &resp, nil
}

func (s *santriService) List(ctx context.Context) ([]dto.SantriResponse, error) {
	rows, err := s.santri.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SantriResponse, len(rows))
	for i := range rows {
		resp[i] = santriToResponse(&rows[i])
	}
	return resp, nil
}

// Update applies partial-field semantics: only non-nil request fields touch
// the record. Email and password changes flow through to the linked user.
func (s *santriService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSantriRequest) (*dto.SantriResponse, error) {
	santri, err := s.santri.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSantriNotFound
	}

	if req.NIS != nil && *req.NIS != santri.NIS {
		if existing, err := s.santri.FindByNIS(ctx, *req.NIS); err == nil && existing.ID != santri.ID {
			return nil, ErrDuplicateNIS
		}
		santri.NIS = *req.NIS
	}
	if req.Nama != nil {
		santri.Nama = *req.Nama
	}
	if req.Kelas != nil {
		santri.Kelas = *req.Kelas
	}
	if req.Asrama != nil {
		santri.Asrama = *req.Asrama
	}
	if req.Wali != nil {
		santri.Wali = *req.Wali
	}
	if req.Status != nil {
		santri.Status = *req.Status
	}

	// Email and password go through the linked user first: a conflict there has
	// to surface before the santri row is written, otherwise a rejected request
	// would leave the other field changes committed.
	if santri.UserID != nil {
		if req.Email != nil && *req.Email != "" {
			user, err := s.users.FindByID(ctx, *santri.UserID)
			if err == nil && user.Email != *req.Email {
				if _, err := s.users.FindByEmail(ctx, *req.Email); err == nil {
					return nil, ErrDuplicateEmail
				}
				user.Email = *req.Email
				if err := s.users.Update(ctx, user); err != nil {
					return nil, err
				}
				santri.User = user
			}
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
			if err != nil {
				return nil, err
			}
			if err := s.accounts.UpdatePasswordByUser(ctx, *santri.UserID, string(hash)); err != nil {
				return nil, err
			}
		}
	}

	if err := s.santri.Update(ctx, santri); err != nil {
		return nil, err
	}

	resp := santriToResponse(santri)
	return &resp, nil
}

// Delete removes the santri and its login account. Transaksi handling follows
// the configured policy: restrict refuses the delete while payment history
// exists, cascade removes the history in the same transaction.
func (s *santriService) Delete(ctx context.Context, id uuid.UUID) error {
	santri, err := s.santri.FindByID(ctx, id)
	if err != nil {
		return ErrSantriNotFound
	}

	cascade := s.cfg != nil && s.cfg.TransaksiOnSantriDelete == "cascade"
	if !cascade {
		count, err := s.transaksi.CountBySantri(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSantriHasTransaksi
		}
	}

	return runTx(ctx, s.santri.DB(), func(tx *gorm.DB) error {
		if cascade {
			if err := s.transaksi.DeleteBySantri(ctx, tx, id); err != nil {
				return err
			}
		}
		if err := s.santri.Delete(ctx, tx, id); err != nil {
			return err
		}
		if santri.UserID != nil {
			userID := *santri.UserID
			if err := s.accounts.DeleteByUser(ctx, tx, userID); err != nil {
				return err
			}
			if err := s.sessions.DeleteByUser(ctx, tx, userID); err != nil {
				return err
			}
			if err := s.users.Delete(ctx, tx, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

func santriToResponse(s *model.Santri) dto.SantriResponse {
	resp := dto.SantriResponse{
		ID:        s.ID.String(),
		NIS:       s.NIS,
		Nama:      s.Nama,
		Kelas:     s.Kelas,
		Asrama:    s.Asrama,
		Wali:      s.Wali,
		Status:    s.Status,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.User != nil {
		resp.Email = s.User.Email
	}
	return resp
}
