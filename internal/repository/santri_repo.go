package repository

import (
	"context"

	"santripay/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SantriRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Santri) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Santri, error)
	FindByNIS(ctx context.Context, nis string) (*model.Santri, error)
	List(ctx context.Context) ([]model.Santri, error)
	Update(ctx context.Context, s *model.Santri) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	// UnlinkUser clears the user back-link on any santri owned by userID.
	UnlinkUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type santriRepo struct{ db *gorm.DB }

func NewSantriRepository(db *gorm.DB) SantriRepository { return &santriRepo{db: db} }

func (r *santriRepo) DB() *gorm.DB { return r.db }

func (r *santriRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Santri) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *santriRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Santri, error) {
	var s model.Santri
	err := r.db.WithContext(ctx).Preload("User").First(&s, id).Error
	return &s, err
}

func (r *santriRepo) FindByNIS(ctx context.Context, nis string) (*model.Santri, error) {
	var s model.Santri
	err := r.db.WithContext(ctx).Where("nis = ?", nis).First(&s).Error
	return &s, err
}

func (r *santriRepo) List(ctx context.Context) ([]model.Santri, error) {
	var santri []model.Santri
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&santri).Error
	return santri, err
}

func (r *santriRepo) Update(ctx context.Context, s *model.Santri) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *santriRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Santri{}, id).Error
}

func (r *santriRepo) UnlinkUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.Santri{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

func (r *santriRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Santri{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
