package service

import (
	"context"

	"santripay/internal/dto"
	"santripay/internal/model"
	"santripay/internal/repository"
	"santripay/internal/worker"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users      repository.UserRepository
	accounts   repository.AccountRepository
	sessions   repository.SessionRepository
	santri     repository.SantriRepository
	dispatcher *worker.Dispatcher
}

func NewUserService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	santri repository.SantriRepository,
	dispatcher *worker.Dispatcher,
) UserService {
	return &userService{users: users, accounts: accounts, sessions: sessions, santri: santri, dispatcher: dispatcher}
}

// Create is the admin path: any valid role, User + Account in one transaction.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !model.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		EmailVerified: false,
	}
	txErr := runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return err
		}
		account := &model.Account{
			AccountID:  user.Email,
			ProviderID: model.ProviderCredential,
			UserID:     user.ID,
			Password:   string(hash),
		}
		return s.accounts.Create(ctx, tx, account)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Welcome email is best-effort — delivery failures never fail the request.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{To: user.Email, Name: user.Name})
	}

	resp := userToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	return resp, nil
}

// Delete removes the user together with its credentials and sessions, and
// clears the back-link on any santri record that pointed at it.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return ErrUserNotFound
	}
	return runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
		if err := s.accounts.DeleteByUser(ctx, tx, id); err != nil {
			return err
		}
		if err := s.sessions.DeleteByUser(ctx, tx, id); err != nil {
			return err
		}
		if err := s.santri.UnlinkUser(ctx, tx, id); err != nil {
			return err
		}
		return s.users.Delete(ctx, tx, id)
	})
}
