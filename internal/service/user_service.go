package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	AccessTokenExpiration = 15 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Claims represents the JWT claims
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserService defines the interface for user business logic
type UserService interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Register(ctx context.Context, user *domain.User, username, password string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id int) error
	Authenticate(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type userService struct {
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	jwtSecret      string
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	credentialRepo repository.CredentialRepository,
	jwtSecret string,
) UserService {
	return &userService{
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
		jwtSecret:      jwtSecret,
	}
}

func (s *userService) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Register creates a user together with its credential. The password
// is hashed with bcrypt before it is stored.
func (s *userService) Register(ctx context.Context, user *domain.User, username, password string) (*domain.User, error) {
	existing, err := s.credentialRepo.FindByUsername(ctx, username)
	if err != nil && err != repository.ErrCredentialNotFound {
		return nil, fmt.Errorf("failed to check existing credential: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrUserAlreadyExists
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	credential := &domain.Credential{
		UserID:                  user.UserID,
		Username:                username,
		PasswordHash:            string(hashedBytes),
		Role:                    domain.RoleUser,
		IsEnabled:               true,
		IsAccountNonExpired:     true,
		IsAccountNonLocked:      true,
		IsCredentialsNonExpired: true,
	}
	if err := s.credentialRepo.Create(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, user *domain.User) error {
	return s.userRepo.Update(ctx, user)
}

func (s *userService) DeleteByID(ctx context.Context, id int) error {
	return s.userRepo.DeleteByID(ctx, id)
}

// Authenticate verifies a username/password pair and issues an HS256
// access token carrying the user id and role.
func (s *userService) Authenticate(ctx context.Context, username, password string) (string, *domain.User, error) {
	credential, err := s.credentialRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrCredentialNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find credential: %w", err)
	}

	if !credential.IsEnabled || !credential.IsAccountNonLocked {
		return "", nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	token, err := s.generateAccessToken(user.UserID, credential.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, user, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *userService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *userService) generateAccessToken(userID int, role string) (string, error) {
	expirationTime := time.Now().Add(AccessTokenExpiration)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
