package service

import (
	"context"
	"fmt"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// CredentialService defines the interface for credential business logic
type CredentialService interface {
	FindAll(ctx context.Context) ([]*domain.Credential, error)
	FindByID(ctx context.Context, id int) (*domain.Credential, error)
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)
	Create(ctx context.Context, credential *domain.Credential, password string) error
	Update(ctx context.Context, credential *domain.Credential) error
	DeleteByID(ctx context.Context, id int) error
}

type credentialService struct {
	credentialRepo repository.CredentialRepository
}

// NewCredentialService creates a new instance of CredentialService
func NewCredentialService(credentialRepo repository.CredentialRepository) CredentialService {
	return &credentialService{credentialRepo: credentialRepo}
}

func (s *credentialService) FindAll(ctx context.Context) ([]*domain.Credential, error) {
	return s.credentialRepo.FindAll(ctx)
}

func (s *credentialService) FindByID(ctx context.Context, id int) (*domain.Credential, error) {
	return s.credentialRepo.FindByID(ctx, id)
}

func (s *credentialService) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	return s.credentialRepo.FindByUsername(ctx, username)
}

func (s *credentialService) Create(ctx context.Context, credential *domain.Credential, password string) error {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	credential.PasswordHash = string(hashedBytes)

	if credential.Role == "" {
		credential.Role = domain.RoleUser
	}

	return s.credentialRepo.Create(ctx, credential)
}

func (s *credentialService) Update(ctx context.Context, credential *domain.Credential) error {
	return s.credentialRepo.Update(ctx, credential)
}

func (s *credentialService) DeleteByID(ctx context.Context, id int) error {
	return s.credentialRepo.DeleteByID(ctx, id)
}
