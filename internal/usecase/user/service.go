package user

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

type Service struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

var _ domain.UserUsecase = (*Service)(nil)

func NewService(u domain.UserRepository, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{
		userRepo:  u,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *Service) Register(ctx context.Context, name, username, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := domain.User{
		Name:     name,
		Username: username,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	return s.userRepo.Insert(ctx, &u)
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", domain.ErrBadParamInput
	}

	return s.issueToken(u)
}

func (s *Service) issueToken(u domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) EditPassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return domain.ErrBadParamInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	u.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, &u)
}

func (s *Service) FetchAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FetchAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
