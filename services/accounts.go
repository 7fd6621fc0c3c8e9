package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recycle-rewards-system/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService owns user and rider credentials. The gateway calls Login and
// forwards the resulting actor to the rest of the API as headers.
type AccountService struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db, BcryptCost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Address  string `json:"address" validate:"max=500"`
	Phone    string `json:"phone" validate:"max=32"`
}

func (in *RegisterInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (s *AccountService) hash(password string) (string, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// RegisterUser creates a household account with a zero balance.
func (s *AccountService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Address:      in.Address,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	zap.L().Info("[ACCOUNTS] user registered", zap.String("user_id", user.ID))
	return &user, nil
}

// RegisterRider creates a rider account.
func (s *AccountService) RegisterRider(ctx context.Context, in RegisterInput) (*models.Rider, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	rider := models.Rider{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	if err := s.DB.WithContext(ctx).Create(&rider).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert rider: %w", err)
	}

	zap.L().Info("[ACCOUNTS] rider registered", zap.String("rider_id", rider.ID))
	return &rider, nil
}

// Login checks credentials for the given role and returns the matching actor.
func (s *AccountService) Login(ctx context.Context, kind ActorKind, email, password string) (Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	db := s.DB.WithContext(ctx)

	var id, hash string
	switch kind {
	case ActorUser:
		var u models.User
		if err := db.Where("email = ?", email).First(&u).Error; err != nil {
			return Actor{}, s.lookupErr(err)
		}
		id, hash = u.ID, u.PasswordHash
	case ActorRider:
		var r models.Rider
		if err := db.Where("email = ?", email).First(&r).Error; err != nil {
			return Actor{}, s.lookupErr(err)
		}
		id, hash = r.ID, r.PasswordHash
	default:
		return Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, kind)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Actor{}, ErrInvalidCredentials
	}
	return Actor{Kind: kind, ID: id}, nil
}

func (s *AccountService) lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("load account: %w", err)
}
