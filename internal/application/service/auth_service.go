package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/apperror"
	"github.com/shopcart/pos-api/pkg/utils"
)

// AuthService handles cashier authentication
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(employeeRepo repository.EmployeeRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtManager:   jwtManager,
	}
}

// TokenPair holds an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies cashier credentials and issues tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *entity.Employee, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(employee)
	if err != nil {
		return nil, nil, err
	}
	return pair, employee, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	employeeID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(employee)
}

func (s *AuthService) issueTokens(employee *entity.Employee) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(employee.ID, employee.Username, employee.IsAdmin)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to generate access token", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to generate refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
