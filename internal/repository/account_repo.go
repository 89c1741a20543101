package repository

import (
	"context"

	"santripay/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Account) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error)
	// UpdatePasswordByUser rewrites the hash on every credential row of the
	// user (mirrors the password-change semantics of the admin dashboard).
	UpdatePasswordByUser(ctx context.Context, userID uuid.UUID, hash string) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type accountRepo struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) AccountRepository { return &accountRepo{db: db} }

func (r *accountRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Account) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *accountRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, model.ProviderCredential).
		Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) UpdatePasswordByUser(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_id = ?", userID).
		Update("password", hash).Error
}

func (r *accountRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Account{}).Error
}
