package service

import (
	"context"
	"time"

	"santripay/internal/config"
	"santripay/internal/dto"
	"santripay/internal/model"
	"santripay/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, jti string) error
}

type authService struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	cfg      *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	cfg *config.Config,
) AuthService {
	return &authService{users: users, accounts: accounts, sessions: sessions, cfg: cfg}
}

// Login verifies the credential hash and issues a bearer token backed by a
// Session row. Both failure modes return the same error so the endpoint
// cannot be used to probe which emails exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	accounts, err := s.accounts.FindByUser(ctx, user.ID)
	if err != nil || len(accounts) == 0 {
		return nil, ErrInvalidCredentials
	}

	matched := false
	for _, acc := range accounts {
		if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)) == nil {
			matched = true
			break
		}
	}
	if !matched {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	jti := uuid.NewString()
	token, err := s.generateToken(user, jti, ttl)
	if err != nil {
		return nil, err
	}

	// Session row backs token revocation; the role check itself happens on
	// every protected request, never here.
	session := &model.Session{
		Token:     jti,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ttl),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        userToResponse(user),
	}, nil
}

// Register is the unauthenticated self-service path: role is always SANTRI.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
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
		Role:          model.RoleSantri,
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

	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, jti string) error {
	return s.sessions.DeleteByToken(ctx, jti)
}

func (s *authService) generateToken(user *model.User, jti string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"jti":     jti,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
	if u.SantriID != nil {
		id := u.SantriID.String()
		resp.SantriID = &id
	}
	return resp
}
