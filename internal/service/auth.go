package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
	"github.com/Shelkonty/feedback-whole/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	Avatar   *string
}

// ProfileUpdate carries optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Email    *string
	Password *string
	Name     *string
	Avatar   *string
}

// AuthResponse pairs a user record with a freshly issued token.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService handles registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	bcryptCost int
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	_, err := s.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Avatar:       input.Avatar,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		// A concurrent registration may win the unique index race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.respondWithToken(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	// Unknown email and wrong password produce the identical error so the
	// response does not reveal which check failed.
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(*user)
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, *update.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if update.Name != nil {
		user.Name = update.Name
	}
	if update.Avatar != nil {
		user.Avatar = update.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *authService) respondWithToken(user models.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}
